package utils

import (
	"fmt"
	"math"
	"time"
)

// ANSI escape sequences used for terminal output.
const (
	DefaultColor = "\x1b[39m"
	SuccessColor = "\x1b[92m"
	WarningColor = "\x1b[93m"
)

// FormatTime formats a time.Duration to a human readable value.
func FormatTime(d time.Duration) string {
	if d.Seconds() < 60.0 {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	if d.Minutes() < 60.0 {
		remainingSeconds := math.Mod(d.Seconds(), 60)
		return fmt.Sprintf("%dm %.1fs", int64(d.Minutes()), remainingSeconds)
	}
	remainingMinutes := math.Mod(d.Minutes(), 60)
	remainingSeconds := math.Mod(d.Seconds(), 60)
	return fmt.Sprintf("%dh %dm %.1fs", int64(d.Hours()), int64(remainingMinutes), remainingSeconds)
}
