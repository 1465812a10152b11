package report

import (
	"fmt"
	"strings"
	"time"
)

// FormatDuration renders a duration as HH:MM:SS. Hours are not wrapped at 24
// and negative durations keep a leading sign.
func FormatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, total/3600, (total/60)%60, total%60)
}

// FormatDurationCompact switches to "{d}d HH:MM:SS" once a duration reaches a
// full day, for list contexts where tall hour counts read poorly.
func FormatDurationCompact(d time.Duration) string {
	if d < 24*time.Hour {
		return FormatDuration(d)
	}
	days := int(d.Hours()) / 24
	return fmt.Sprintf("%dd %s", days, FormatDuration(d-time.Duration(days)*24*time.Hour))
}

// FormatClock renders a time of day honoring the 24h preference. Meridiem
// markers are lowercase.
func FormatClock(t time.Time, use24Hour bool) string {
	if use24Hour {
		return t.Format("15:04")
	}
	return strings.ToLower(t.Format("3:04 PM"))
}
