// Package config defines the moonpack.json project configuration.
package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
)

// Resolver dialect names accepted in the config.
const (
	// ResolverRelative is the relative-path dialect: `./` and `../`
	// imports are bundled, everything else is external.
	ResolverRelative = "relative"

	// ResolverDotted is the dotted-name dialect with an explicit external
	// prefix list.
	ResolverDotted = "dotted"
)

// DefaultOutDir is where the bundle is written when outDir is not set.
const DefaultOutDir = "dist"

// Config is the parsed project configuration. Unknown fields in the JSON are
// ignored for forward compatibility.
type Config struct {
	// Name is the project name, used for the output file and the bundle
	// header. Required.
	Name string `json:"name"`

	// Version is an optional version string included in the header.
	Version string `json:"version,omitempty"`

	// Author holds one or more author names.
	Author AuthorList `json:"author,omitempty"`

	// Description is an optional one-line project description.
	Description string `json:"description,omitempty"`

	// URL is an optional project homepage.
	URL string `json:"url,omitempty"`

	// Entry is the entry file path, relative to the project root. Required.
	Entry string `json:"entry"`

	// OutDir is the output directory, absolute or relative to the project
	// root. Defaults to "dist".
	OutDir string `json:"outDir,omitempty"`

	// Resolver selects the import resolution dialect. Defaults to
	// "relative".
	Resolver string `json:"resolver,omitempty"`

	// Externals lists external module prefixes for the dotted dialect.
	Externals []string `json:"externals,omitempty"`

	// SourceRoot overrides the source root, relative to the project root.
	// Defaults to the entry file's directory.
	SourceRoot string `json:"sourceRoot,omitempty"`
}

// New returns a config with defaults applied.
func New() *Config {
	return &Config{
		OutDir:   DefaultOutDir,
		Resolver: ResolverRelative,
	}
}

// ApplyDefaults fills zero-valued optional fields in place.
func (c *Config) ApplyDefaults() {
	if c.OutDir == "" {
		c.OutDir = DefaultOutDir
	}
	if c.Resolver == "" {
		c.Resolver = ResolverRelative
	}
}

// EntryPath returns the absolute entry file path for a project rooted at
// projectRoot.
func (c *Config) EntryPath(projectRoot string) string {
	return filepath.Join(projectRoot, filepath.FromSlash(c.Entry))
}

// SourceRootPath returns the absolute source root for a project rooted at
// projectRoot.
func (c *Config) SourceRootPath(projectRoot string) string {
	if c.SourceRoot != "" {
		return filepath.Join(projectRoot, filepath.FromSlash(c.SourceRoot))
	}
	return filepath.Dir(c.EntryPath(projectRoot))
}

// OutputPath returns the absolute path of the emitted bundle.
func (c *Config) OutputPath(projectRoot string) string {
	outDir := filepath.FromSlash(c.OutDir)
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(projectRoot, outDir)
	}
	return filepath.Join(outDir, c.Name+".lua")
}

// Validate returns one message per schema violation, empty when the config
// is valid.
func (c *Config) Validate() []string {
	var errors []string

	if c.Name == "" {
		errors = append(errors, `"name" is required and must be a non-empty string`)
	}
	if c.Entry == "" {
		errors = append(errors, `"entry" is required`)
	}
	switch c.Resolver {
	case "", ResolverRelative, ResolverDotted:
	default:
		errors = append(errors,
			fmt.Sprintf(`"resolver" must be %q or %q, got %q`, ResolverRelative, ResolverDotted, c.Resolver))
	}

	return errors
}

// AuthorList accepts either a single JSON string or an array of strings.
type AuthorList []string

// UnmarshalJSON implements json.Unmarshaler.
func (a *AuthorList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*a = AuthorList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf(`"author" must be a string or an array of strings`)
	}
	*a = AuthorList(many)
	return nil
}

// MarshalJSON implements json.Marshaler. A single author round-trips as a
// plain string.
func (a AuthorList) MarshalJSON() ([]byte, error) {
	if len(a) == 1 {
		return json.Marshal(a[0])
	}
	return json.Marshal([]string(a))
}
