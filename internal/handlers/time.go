package handlers

import (
	"fmt"
	"time"
)

// LocalOffset returns the UTC offset of t's zone split into hours and
// minutes. Both parts carry the sign of the offset. The value is for display
// only and is never stored.
func LocalOffset(t time.Time) (hours, minutes int) {
	_, seconds := t.Zone()
	return seconds / 3600, (seconds % 3600) / 60
}

// FormatOffset renders an offset as UTC+hh:mm.
func FormatOffset(hours, minutes int) string {
	sign := '+'
	if hours < 0 || minutes < 0 {
		sign = '-'
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, abs(hours), abs(minutes))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
