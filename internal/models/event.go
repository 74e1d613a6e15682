package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Recurring defines how often an event repeats. The value is only stored and
// displayed; no occurrences are ever expanded from it.
type Recurring string

const (
	RecurringNo      Recurring = "No"
	RecurringDaily   Recurring = "Daily"
	RecurringWeekly  Recurring = "Weekly"
	RecurringMonthly Recurring = "Monthly"
	RecurringYearly  Recurring = "Yearly"
)

// RecurringValues lists every recurrence in display order.
var RecurringValues = []Recurring{
	RecurringNo,
	RecurringDaily,
	RecurringWeekly,
	RecurringMonthly,
	RecurringYearly,
}

// String returns the canonical text used both in storage and on screen.
func (r Recurring) String() string {
	return string(r)
}

// ParseRecurring decodes the stored text of a recurrence. Any value outside
// the enumeration maps to RecurringNo.
func ParseRecurring(s string) Recurring {
	switch Recurring(s) {
	case RecurringDaily:
		return RecurringDaily
	case RecurringWeekly:
		return RecurringWeekly
	case RecurringMonthly:
		return RecurringMonthly
	case RecurringYearly:
		return RecurringYearly
	default:
		return RecurringNo
	}
}

// ParseRecurringStrict decodes user input case-insensitively and rejects
// unknown values. "none" is accepted as an alias of "No".
func ParseRecurringStrict(s string) (Recurring, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "none") {
		return RecurringNo, nil
	}
	for _, r := range RecurringValues {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return RecurringNo, fmt.Errorf("unknown recurrence %q (want one of No, Daily, Weekly, Monthly, Yearly)", s)
}

// Event represents a single calendar entry. Start and End are opaque
// markers and are never parsed.
type Event struct {
	ID        uuid.UUID `json:"id" db:"event_id"`
	Name      string    `json:"name" db:"event_name"`
	Start     string    `json:"start" db:"event_start"`
	End       string    `json:"end" db:"event_end"`
	Recurring Recurring `json:"recurring" db:"event_recurring"`
}

// NewEvent creates an event with a freshly generated identifier.
func NewEvent(name, start, end string, recurring Recurring) *Event {
	return &Event{
		ID:        uuid.New(),
		Name:      name,
		Start:     start,
		End:       end,
		Recurring: recurring,
	}
}

// ReconstructEvent rebuilds an event from its stored representation.
func ReconstructEvent(id, name, start, end string, recurring Recurring) (*Event, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidIdentifier, id, err)
	}
	return &Event{
		ID:        parsed,
		Name:      name,
		Start:     start,
		End:       end,
		Recurring: recurring,
	}, nil
}

// UpdateName changes the event name in memory only.
func (e *Event) UpdateName(name string) {
	e.Name = name
}

// UpdateStart changes the start marker in memory only.
func (e *Event) UpdateStart(start string) {
	e.Start = start
}

// UpdateEnd changes the end marker in memory only.
func (e *Event) UpdateEnd(end string) {
	e.End = end
}

// UpdateRecurring changes the recurrence in memory only.
func (e *Event) UpdateRecurring(r Recurring) {
	e.Recurring = r
}

// Equal reports whether both events carry the same identity and fields.
func (e *Event) Equal(other *Event) bool {
	if e == nil || other == nil {
		return e == other
	}
	return *e == *other
}
