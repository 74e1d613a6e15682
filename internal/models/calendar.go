package models

// DefaultCalendarName is used when no calendar is named and no default exists.
const DefaultCalendarName = "default calendar"

// Calendar represents a named group of events
type Calendar struct {
	Name      string `json:"name" db:"calendar_name"`
	IsDefault bool   `json:"is_default" db:"is_default"`
	Location  string `json:"location"`
}

// CalendarSummary is one line of the calendar listing
type CalendarSummary struct {
	Name       string `json:"name" db:"calendar_name"`
	IsDefault  bool   `json:"is_default" db:"is_default"`
	EventCount int    `json:"event_count"`
}
