package planner

import "fmt"

// BuildLog accumulates the ordered diagnostic trail of one mission build.
// On failure the trail up to the failing step travels with the error report.
type BuildLog struct {
	lines []string
}

func (l *BuildLog) Appendf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

// Lines returns the accumulated log in append order.
func (l *BuildLog) Lines() []string {
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
