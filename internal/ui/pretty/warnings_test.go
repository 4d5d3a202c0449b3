package pretty

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/moonpack-dev/moonpack/pkg/lint"
)

func TestPrintDuplicate(t *testing.T) {
	var buf bytes.Buffer
	p := NewWarningPrinter(NewStyles(false), "/proj")

	p.Print(&buf, &lint.Result{
		DuplicateAssignments: []lint.DuplicateAssignment{{
			PropertyPath: "sampev.onServerMessage",
			Occurrences: []lint.ExternalAssignment{
				{FilePath: "/proj/src/a.lua", Line: 2},
				{FilePath: "/proj/src/b.lua", Line: 5},
			},
		}},
	})

	out := buf.String()
	assert.Contains(t, out, "warning:")
	assert.Contains(t, out, `"sampev.onServerMessage" is assigned in 2 files`)
	assert.Contains(t, out, "src/a.lua:2")
	assert.Contains(t, out, "src/b.lua:5")
	assert.Contains(t, out, "[duplicate-event-assignment]")
}

func TestPrintEventAndUnused(t *testing.T) {
	var buf bytes.Buffer
	p := NewWarningPrinter(NewStyles(false), "")

	p.Print(&buf, &lint.Result{
		EventsInModules: []lint.EventInModule{
			{EventName: "main", FilePath: "worker.lua", Line: 1},
		},
		UnusedRequires: []lint.UnusedRequire{
			{VarName: "u", ModuleName: "utils", FilePath: "main.lua", Line: 3},
		},
	})

	out := buf.String()
	assert.Contains(t, out, `handler "main" is declared outside the entry script`)
	assert.Contains(t, out, "worker.lua:1")
	assert.Contains(t, out, `"utils" is required as "u" but never used`)
	assert.Contains(t, out, "main.lua:3")
}

func TestPrintEmptyResultPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	p := NewWarningPrinter(NewStyles(false), "")

	p.Print(&buf, &lint.Result{})
	assert.Empty(t, buf.String())
}

func TestFormatBuildSummary(t *testing.T) {
	s := NewStyles(false)

	one := s.FormatBuildSummary(1, 0, "dist/out.lua", 12*time.Millisecond)
	assert.Contains(t, one, "bundled 1 module")
	assert.NotContains(t, one, "warning")

	many := s.FormatBuildSummary(3, 2, "dist/out.lua", 12*time.Millisecond)
	assert.Contains(t, many, "bundled 3 modules")
	assert.Contains(t, many, "2 warnings")
}

func TestFormatBuildFailure(t *testing.T) {
	s := NewStyles(false)
	out := s.FormatBuildFailure(errors.New("boom"))
	assert.Contains(t, out, "build failed")
	assert.Contains(t, out, "boom")
}

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, IsColorEnabled("always", &buf))
	assert.False(t, IsColorEnabled("never", &buf))
	assert.False(t, IsColorEnabled("auto", &buf), "non-file writer is never a terminal")
}
