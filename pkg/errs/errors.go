// Package errs defines the closed set of build errors moonpack can report.
// Config, module-resolution, and cycle failures carry one of these codes plus
// a structured details payload, so the CLI and tests can branch on the code
// instead of parsing messages. Filesystem failures, such as a missing entry
// file or a failed output write, are returned as ordinary wrapped errors.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Code identifies a category of build failure.
type Code string

const (
	// CodeConfigNotFound means no moonpack.json exists in the target directory.
	CodeConfigNotFound Code = "CONFIG_NOT_FOUND"

	// CodeConfigParse means the config file is not valid JSON.
	CodeConfigParse Code = "CONFIG_PARSE_ERROR"

	// CodeInvalidConfig means the config parsed but violates the schema.
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// CodeModuleNotFound means a bundled import could not be resolved to a file.
	CodeModuleNotFound Code = "MODULE_NOT_FOUND"

	// CodeCircularDependency means the module graph contains at least one cycle.
	CodeCircularDependency Code = "CIRCULAR_DEPENDENCY"
)

// Coded is implemented by every error type in this package.
type Coded interface {
	error
	Code() Code
}

// CodeOf extracts the error code from err, unwrapping as needed.
// Returns ("", false) if err carries no code.
func CodeOf(err error) (Code, bool) {
	var coded Coded
	if errors.As(err, &coded) {
		return coded.Code(), true
	}
	return "", false
}

// ConfigNotFoundError reports a missing config file.
type ConfigNotFoundError struct {
	// Directory is the project directory that was searched.
	Directory string

	// ConfigPath is the path that was expected to exist.
	ConfigPath string
}

func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("no moonpack.json found in %s", e.Directory)
}

// Code implements Coded.
func (e *ConfigNotFoundError) Code() Code { return CodeConfigNotFound }

// ConfigParseError reports a JSON syntax failure in a config file.
type ConfigParseError struct {
	// ConfigPath is the file that failed to parse.
	ConfigPath string

	// Err is the underlying decode error.
	Err error
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.ConfigPath, e.Err)
}

// Code implements Coded.
func (e *ConfigParseError) Code() Code { return CodeConfigParse }

// Unwrap exposes the underlying decode error to errors.Is/As.
func (e *ConfigParseError) Unwrap() error { return e.Err }

// InvalidConfigError aggregates every schema violation found in one pass.
type InvalidConfigError struct {
	// ConfigPath is the file the violations were found in.
	ConfigPath string

	// Errors holds one human-readable message per violation.
	Errors []string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid configuration in %s: %s",
		e.ConfigPath, strings.Join(e.Errors, "; "))
}

// Code implements Coded.
func (e *InvalidConfigError) Code() Code { return CodeInvalidConfig }

// ModuleNotFoundError reports a bundled import that resolved to no file.
type ModuleNotFoundError struct {
	// ModuleName is the raw import name as written in the source.
	ModuleName string

	// RequiredBy is the path of the file containing the import.
	RequiredBy string

	// Line is the 1-based line of the require site.
	Line int
}

func (e *ModuleNotFoundError) Error() string {
	return fmt.Sprintf("module %q not found (required by %s:%d)",
		e.ModuleName, e.RequiredBy, e.Line)
}

// Code implements Coded.
func (e *ModuleNotFoundError) Code() Code { return CodeModuleNotFound }

// CircularDependencyError reports every distinct cycle in the module graph.
// Each cycle lists its module ids in traversal order with the starting module
// repeated at the end, e.g. ["a", "b", "a"].
type CircularDependencyError struct {
	Cycles [][]string
}

func (e *CircularDependencyError) Error() string {
	rendered := make([]string, 0, len(e.Cycles))
	for _, cycle := range e.Cycles {
		rendered = append(rendered, strings.Join(cycle, " → "))
	}
	return "circular dependency detected: " + strings.Join(rendered, "; ")
}

// Code implements Coded.
func (e *CircularDependencyError) Code() Code { return CodeCircularDependency }
