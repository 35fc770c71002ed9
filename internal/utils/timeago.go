package utils

import (
	"fmt"
	"time"
)

// TimeAgo renders a timestamp as a human-friendly relative string for the
// activity feed: "Just now", "5 minutes ago", "3 hours ago", "2 days ago",
// falling back to the date for anything older than a week.
func TimeAgo(t, now time.Time) string {
	diff := now.Sub(t)

	if diff < time.Minute {
		return "Just now"
	}

	if minutes := int(diff.Minutes()); minutes < 60 {
		return fmt.Sprintf("%d %s ago", minutes, pluralize("minute", minutes))
	}

	if hours := int(diff.Hours()); hours < 24 {
		return fmt.Sprintf("%d %s ago", hours, pluralize("hour", hours))
	}

	if days := int(diff.Hours() / 24); days < 7 {
		return fmt.Sprintf("%d %s ago", days, pluralize("day", days))
	}

	return t.Format("1/2/2006")
}

func pluralize(unit string, n int) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
