package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"config not found", &ConfigNotFoundError{Directory: "/p"}, CodeConfigNotFound},
		{"config parse", &ConfigParseError{ConfigPath: "x.json", Err: errors.New("bad")}, CodeConfigParse},
		{"invalid config", &InvalidConfigError{Errors: []string{"nope"}}, CodeInvalidConfig},
		{"module not found", &ModuleNotFoundError{ModuleName: "m"}, CodeModuleNotFound},
		{"circular", &CircularDependencyError{Cycles: [][]string{{"a", "a"}}}, CodeCircularDependency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := CodeOf(tt.err)
			require.True(t, ok)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestCodeOfWrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", &ModuleNotFoundError{ModuleName: "m"})
	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, CodeModuleNotFound, code)
}

func TestCodeOfPlainError(t *testing.T) {
	_, ok := CodeOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestConfigParseUnwrap(t *testing.T) {
	inner := errors.New("unexpected token")
	err := &ConfigParseError{ConfigPath: "moonpack.json", Err: inner}
	assert.ErrorIs(t, err, inner)
}

func TestCircularDependencyMessage(t *testing.T) {
	err := &CircularDependencyError{Cycles: [][]string{
		{"a", "b", "a"},
		{"c", "c"},
	}}

	msg := err.Error()
	assert.Contains(t, msg, "a → b → a")
	assert.Contains(t, msg, "c → c")
}

func TestModuleNotFoundMessage(t *testing.T) {
	err := &ModuleNotFoundError{ModuleName: "./util", RequiredBy: "src/main.lua", Line: 3}
	assert.Equal(t, `module "./util" not found (required by src/main.lua:3)`, err.Error())
}

func TestInvalidConfigMessage(t *testing.T) {
	err := &InvalidConfigError{
		ConfigPath: "moonpack.json",
		Errors:     []string{"a is bad", "b is worse"},
	}
	assert.Contains(t, err.Error(), "a is bad; b is worse")
}
