package requires

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moonpack-dev/moonpack/pkg/lexscan"
)

func extract(t *testing.T, src string) []Site {
	t.Helper()
	return Extract([]byte(src), lexscan.Scan([]byte(src)))
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantName string
		wantKind Kind
	}{
		{
			name:     "standard double quoted",
			src:      `local m = require("mod")`,
			wantName: "mod",
			wantKind: KindStandard,
		},
		{
			name:     "standard single quoted",
			src:      `local m = require('mod')`,
			wantName: "mod",
			wantKind: KindStandard,
		},
		{
			name:     "standard with inner whitespace",
			src:      `local m = require ( "mod" )`,
			wantName: "mod",
			wantKind: KindStandard,
		},
		{
			name:     "compact with space",
			src:      `local m = require "mod"`,
			wantName: "mod",
			wantKind: KindCompact,
		},
		{
			name:     "compact without space",
			src:      `local m = require'mod'`,
			wantName: "mod",
			wantKind: KindCompact,
		},
		{
			name:     "pcall form",
			src:      `local ok, m = pcall(require, "mod")`,
			wantName: "mod",
			wantKind: KindPcall,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sites := extract(t, tt.src)
			require.Len(t, sites, 1)
			assert.Equal(t, tt.wantName, sites[0].ModuleName)
			assert.Equal(t, tt.wantKind, sites[0].Kind)
		})
	}
}

func TestExtractIgnoresNonSites(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"require inside string", `local s = "require('fake')"`},
		{"require inside long bracket string", `local s = [=[require("fake")]=]`},
		{"require inside comment", "-- require('fake')"},
		{"require inside block comment", "--[[ require('fake') ]]"},
		{"identifier prefix", `required("mod")`},
		{"identifier suffix", `myrequire("mod")`},
		{"no argument", `require()`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, extract(t, tt.src))
		})
	}
}

func TestExtractPositions(t *testing.T) {
	src := "local a = 1\nlocal m = require('mod')"
	sites := extract(t, src)

	require.Len(t, sites, 1)
	assert.Equal(t, 2, sites[0].Line)
	assert.Equal(t, 11, sites[0].Column)
	assert.Equal(t, 22, sites[0].Offset)
	assert.Equal(t, `require('mod')`, sites[0].RawText)
	assert.Equal(t, byte('\''), sites[0].Quote)
}

func TestExtractMultipleSitesSortedByOffset(t *testing.T) {
	src := "local a = require('a')\nlocal b = require \"b\"\nlocal ok = pcall(require, 'c')"
	sites := extract(t, src)

	require.Len(t, sites, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{
		sites[0].ModuleName, sites[1].ModuleName, sites[2].ModuleName,
	})
	assert.True(t, sites[0].Offset < sites[1].Offset)
	assert.True(t, sites[1].Offset < sites[2].Offset)
}

func TestExtractCompactInsideCallDiscarded(t *testing.T) {
	// A bare-string require as a call argument reads as part of the outer
	// call and is not treated as a standalone site.
	sites := extract(t, `register(require "mod")`)
	assert.Empty(t, sites)
}

func TestExtractNoDoubleCountingStandardAndCompact(t *testing.T) {
	sites := extract(t, `local m = require("mod")`)
	require.Len(t, sites, 1)
	assert.Equal(t, KindStandard, sites[0].Kind)
}

func TestExtractImports(t *testing.T) {
	src := "local ev = require('lib.samp.events')\nutils = require 'utils'\nlocal s = \"x = require('fake')\""
	decls := ExtractImports([]byte(src), lexscan.Scan([]byte(src)))

	require.Len(t, decls, 2)

	assert.Equal(t, "ev", decls[0].VarName)
	assert.Equal(t, "lib.samp.events", decls[0].ModuleName)
	assert.True(t, decls[0].Local)
	assert.Equal(t, 1, decls[0].Line)

	assert.Equal(t, "utils", decls[1].VarName)
	assert.Equal(t, "utils", decls[1].ModuleName)
	assert.False(t, decls[1].Local)
	assert.Equal(t, 2, decls[1].Line)
}
