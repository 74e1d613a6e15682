package handlers

import (
	"testing"
	"time"
)

func TestLocalOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		offset      int
		wantHours   int
		wantMinutes int
		wantText    string
	}{
		{name: "utc", offset: 0, wantText: "UTC+00:00"},
		{name: "cdt", offset: -5 * 3600, wantHours: -5, wantText: "UTC-05:00"},
		{name: "india", offset: 5*3600 + 30*60, wantHours: 5, wantMinutes: 30, wantText: "UTC+05:30"},
		{name: "newfoundland", offset: -(3*3600 + 30*60), wantHours: -3, wantMinutes: -30, wantText: "UTC-03:30"},
		{name: "marquesas", offset: -(9*3600 + 30*60), wantHours: -9, wantMinutes: -30, wantText: "UTC-09:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			now := time.Date(2023, 7, 23, 12, 0, 0, 0, time.FixedZone(tt.name, tt.offset))
			hours, minutes := LocalOffset(now)
			if hours != tt.wantHours || minutes != tt.wantMinutes {
				t.Errorf("LocalOffset() = (%d, %d), want (%d, %d)", hours, minutes, tt.wantHours, tt.wantMinutes)
			}
			if got := FormatOffset(hours, minutes); got != tt.wantText {
				t.Errorf("FormatOffset() = %q, want %q", got, tt.wantText)
			}
		})
	}
}
