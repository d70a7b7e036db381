package telemetry

import (
	"fmt"
	"io"
	"time"
)

// Report writes the recorded steps and their total to w, one line per
// step, durations right-aligned.
func (c *Collector) Report(w io.Writer) {
	steps := c.Steps()
	if len(steps) == 0 {
		return
	}

	width := 0
	for _, s := range steps {
		if len(s.Name) > width {
			width = len(s.Name)
		}
	}

	var total time.Duration
	for _, s := range steps {
		total += s.Duration
		fmt.Fprintf(w, "  %-*s  %10s\n", width, s.Name, formatDuration(s.Duration))
	}
	fmt.Fprintf(w, "  %-*s  %10s\n", width, "total", formatDuration(total))
}

// formatDuration keeps durations short: sub-millisecond timings are shown
// in microseconds, everything else with millisecond precision.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.Round(10 * time.Millisecond).String()
	}
}
