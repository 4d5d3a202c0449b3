// Package configloader discovers, parses, merges, and validates the project
// configuration. A project carries a required moonpack.json plus an optional
// moonpack.local.json that is shallow-merged on top, so developers can keep
// machine-local overrides out of version control.
package configloader

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/moonpack-dev/moonpack/pkg/config"
	"github.com/moonpack-dev/moonpack/pkg/errs"
)

// ConfigFileName is the required project config file.
const ConfigFileName = "moonpack.json"

// LocalConfigFileName is the optional local override file.
const LocalConfigFileName = "moonpack.local.json"

// Load reads and validates the configuration for the project at projectRoot.
// A missing, unparsable, or invalid config is reported with an errs code;
// any other failure to read moonpack.json is returned as the plain OS error.
func Load(projectRoot string) (*config.Config, error) {
	configPath := filepath.Join(projectRoot, ConfigFileName)

	raw, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &errs.ConfigNotFoundError{
				Directory:  projectRoot,
				ConfigPath: configPath,
			}
		}
		return nil, err
	}

	fields, err := decodeFields(configPath, raw)
	if err != nil {
		return nil, err
	}

	localPath := filepath.Join(projectRoot, LocalConfigFileName)
	if localRaw, err := os.ReadFile(localPath); err == nil {
		localFields, err := decodeFields(localPath, localRaw)
		if err != nil {
			return nil, err
		}
		fields = merge(fields, localFields)
	}

	cfg, err := decodeConfig(configPath, fields)
	if err != nil {
		return nil, err
	}

	if violations := cfg.Validate(); len(violations) > 0 {
		return nil, &errs.InvalidConfigError{
			ConfigPath: configPath,
			Errors:     violations,
		}
	}

	cfg.ApplyDefaults()
	return cfg, nil
}

// decodeFields parses a config file into its top-level fields. Keeping the
// fields raw until after the merge makes the merge shallow: a local field
// replaces the project field wholesale.
func decodeFields(path string, raw []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &errs.ConfigParseError{ConfigPath: path, Err: err}
	}
	return fields, nil
}

// merge overlays local on top of base, local fields winning.
func merge(base, local map[string]json.RawMessage) map[string]json.RawMessage {
	merged := make(map[string]json.RawMessage, len(base)+len(local))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range local {
		merged[k] = v
	}
	return merged
}

// decodeConfig converts merged fields into a typed Config. Unknown fields
// are dropped silently for forward compatibility; type mismatches on known
// fields are parse errors.
func decodeConfig(path string, fields map[string]json.RawMessage) (*config.Config, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{}
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, &errs.ConfigParseError{ConfigPath: path, Err: err}
	}
	return cfg, nil
}
