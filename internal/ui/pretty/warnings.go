package pretty

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/moonpack-dev/moonpack/pkg/lint"
)

// Check identifiers shown next to each finding.
const (
	checkDuplicateAssignment = "duplicate-event-assignment"
	checkEventInModule       = "event-in-module"
	checkUnusedRequire       = "unused-require"
)

// WarningPrinter renders lint findings as styled terminal output.
type WarningPrinter struct {
	styles *Styles
	root   string
}

// NewWarningPrinter creates a printer. Paths are shown relative to root when
// possible.
func NewWarningPrinter(styles *Styles, root string) *WarningPrinter {
	return &WarningPrinter{styles: styles, root: root}
}

// Print writes every finding in result to w, one block per finding.
func (p *WarningPrinter) Print(w io.Writer, result *lint.Result) {
	for _, dup := range result.DuplicateAssignments {
		p.printDuplicate(w, dup)
	}
	for _, ev := range result.EventsInModules {
		p.printEvent(w, ev)
	}
	for _, un := range result.UnusedRequires {
		p.printUnused(w, un)
	}
}

func (p *WarningPrinter) printDuplicate(w io.Writer, dup lint.DuplicateAssignment) {
	fmt.Fprintf(w, "%s %s %s\n",
		p.styles.Warning.Render("warning:"),
		p.styles.Message.Render(fmt.Sprintf("%q is assigned in %d files; the last assignment wins at runtime",
			dup.PropertyPath, distinctFiles(dup))),
		p.styles.CheckID.Render("["+checkDuplicateAssignment+"]"),
	)
	for _, occ := range dup.Occurrences {
		fmt.Fprintf(w, "  %s%s\n",
			p.styles.FilePath.Render(p.rel(occ.FilePath)),
			p.styles.Location.Render(fmt.Sprintf(":%d", occ.Line)),
		)
	}
}

func (p *WarningPrinter) printEvent(w io.Writer, ev lint.EventInModule) {
	fmt.Fprintf(w, "%s %s %s\n  %s%s\n",
		p.styles.Warning.Render("warning:"),
		p.styles.Message.Render(fmt.Sprintf("handler %q is declared outside the entry script and will never fire",
			ev.EventName)),
		p.styles.CheckID.Render("["+checkEventInModule+"]"),
		p.styles.FilePath.Render(p.rel(ev.FilePath)),
		p.styles.Location.Render(fmt.Sprintf(":%d", ev.Line)),
	)
}

func (p *WarningPrinter) printUnused(w io.Writer, un lint.UnusedRequire) {
	fmt.Fprintf(w, "%s %s %s\n  %s%s\n",
		p.styles.Warning.Render("warning:"),
		p.styles.Message.Render(fmt.Sprintf("%q is required as %q but never used", un.ModuleName, un.VarName)),
		p.styles.CheckID.Render("["+checkUnusedRequire+"]"),
		p.styles.FilePath.Render(p.rel(un.FilePath)),
		p.styles.Location.Render(fmt.Sprintf(":%d", un.Line)),
	)
}

// rel shortens path relative to the printer root when possible.
func (p *WarningPrinter) rel(path string) string {
	if p.root == "" {
		return path
	}
	rel, err := filepath.Rel(p.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func distinctFiles(dup lint.DuplicateAssignment) int {
	files := make(map[string]bool, len(dup.Occurrences))
	for _, occ := range dup.Occurrences {
		files[occ.FilePath] = true
	}
	return len(files)
}
