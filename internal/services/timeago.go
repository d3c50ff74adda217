package services

import (
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

// TimeAgo converts an ambiguous timestamp value into a coarse relative-age
// label. Anything that cannot be parsed degrades to "Recent" instead of
// failing the request.
func TimeAgo(v interface{}, now time.Time) string {
	t, ok := ParseScanTime(v)
	if !ok {
		return "Recent"
	}

	minutes := int(now.Sub(t).Minutes())
	switch {
	case minutes < 1:
		return "Just now"
	case minutes < 60:
		return fmt.Sprintf("%d mins ago", minutes)
	case minutes < minutesPerDay:
		return fmt.Sprintf("%d hr ago", minutes/60)
	default:
		return fmt.Sprintf("%d days ago", minutes/minutesPerDay)
	}
}
