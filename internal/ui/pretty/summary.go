package pretty

import (
	"fmt"
	"time"
)

// FormatBuildSummary renders the one-line result shown after a successful
// build.
func (s *Styles) FormatBuildSummary(modules, warnings int, output string, elapsed time.Duration) string {
	line := s.Success.Render("✓") + " " +
		s.Bold.Render(fmt.Sprintf("bundled %d %s", modules, plural(modules, "module", "modules"))) +
		s.Dim.Render(fmt.Sprintf(" → %s (%s)", output, elapsed.Round(time.Millisecond)))

	if warnings > 0 {
		line += " " + s.Warning.Render(fmt.Sprintf("%d %s", warnings, plural(warnings, "warning", "warnings")))
	}
	return line
}

// FormatBuildFailure renders the one-line failure banner.
func (s *Styles) FormatBuildFailure(err error) string {
	return s.Failure.Render("✗ build failed: ") + err.Error()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
