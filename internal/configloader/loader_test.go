package configloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moonpack-dev/moonpack/pkg/config"
	"github.com/moonpack-dev/moonpack/pkg/errs"
)

func writeConfigs(t *testing.T, project, local string) string {
	t.Helper()
	root := t.TempDir()
	if project != "" {
		require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte(project), 0o644))
	}
	if local != "" {
		require.NoError(t, os.WriteFile(filepath.Join(root, LocalConfigFileName), []byte(local), 0o644))
	}
	return root
}

func TestLoad(t *testing.T) {
	root := writeConfigs(t, `{
		"name": "myscript",
		"version": "1.2.3",
		"author": "alice",
		"entry": "src/main.lua"
	}`, "")

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, "myscript", cfg.Name)
	assert.Equal(t, "1.2.3", cfg.Version)
	assert.Equal(t, config.AuthorList{"alice"}, cfg.Author)
	assert.Equal(t, "src/main.lua", cfg.Entry)
	assert.Equal(t, config.DefaultOutDir, cfg.OutDir, "defaults applied")
	assert.Equal(t, config.ResolverRelative, cfg.Resolver)
}

func TestLoadMissingConfig(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)

	var nf *errs.ConfigNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, filepath.Join(nf.Directory, ConfigFileName), nf.ConfigPath)

	code, ok := errs.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.CodeConfigNotFound, code)
}

func TestLoadParseError(t *testing.T) {
	root := writeConfigs(t, `{not json`, "")

	_, err := Load(root)
	require.Error(t, err)

	code, ok := errs.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.CodeConfigParse, code)
}

func TestLoadInvalidConfigCollectsAllErrors(t *testing.T) {
	root := writeConfigs(t, `{"version": "1.0"}`, "")

	_, err := Load(root)
	require.Error(t, err)

	var invalid *errs.InvalidConfigError
	require.ErrorAs(t, err, &invalid)
	assert.Len(t, invalid.Errors, 2, "missing name and entry are both reported")
}

func TestLoadLocalOverrides(t *testing.T) {
	root := writeConfigs(t,
		`{"name": "script", "entry": "src/main.lua", "outDir": "dist"}`,
		`{"outDir": "local-dist"}`,
	)

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "local-dist", cfg.OutDir)
	assert.Equal(t, "script", cfg.Name, "unoverridden fields survive")
}

func TestLoadLocalParseErrorSurfaced(t *testing.T) {
	root := writeConfigs(t,
		`{"name": "script", "entry": "main.lua"}`,
		`{broken`,
	)

	_, err := Load(root)
	require.Error(t, err)

	var parse *errs.ConfigParseError
	require.ErrorAs(t, err, &parse)
	assert.Contains(t, parse.ConfigPath, LocalConfigFileName)
}

func TestLoadLocalCanBreakValidation(t *testing.T) {
	// A local override that blanks a required field fails validation after
	// the merge, not before.
	root := writeConfigs(t,
		`{"name": "script", "entry": "main.lua"}`,
		`{"name": ""}`,
	)

	_, err := Load(root)
	require.Error(t, err)

	code, ok := errs.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.CodeInvalidConfig, code)
}

func TestLoadUnknownFieldsIgnored(t *testing.T) {
	root := writeConfigs(t, `{"name": "s", "entry": "e.lua", "someFutureOption": [1,2,3]}`, "")

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "s", cfg.Name)
}
