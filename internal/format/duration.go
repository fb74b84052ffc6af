package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats an evaluation time for display:
// microseconds below a millisecond, whole milliseconds below a second, and
// time.Duration's own form above that.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(time.Millisecond).String()
}
