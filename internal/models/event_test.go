package models

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestParseRecurring(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Recurring
	}{
		{in: "No", want: RecurringNo},
		{in: "Daily", want: RecurringDaily},
		{in: "Weekly", want: RecurringWeekly},
		{in: "Monthly", want: RecurringMonthly},
		{in: "Yearly", want: RecurringYearly},
		{in: "Bogus", want: RecurringNo},
		{in: "", want: RecurringNo},
		{in: "daily", want: RecurringNo},
		{in: "0", want: RecurringNo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := ParseRecurring(tt.in); got != tt.want {
				t.Errorf("ParseRecurring(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRecurringStringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, r := range RecurringValues {
		if got := ParseRecurring(r.String()); got != r {
			t.Errorf("ParseRecurring(%q) = %q", r.String(), got)
		}
	}
}

func TestParseRecurringStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    Recurring
		wantErr bool
	}{
		{name: "canonical", in: "Weekly", want: RecurringWeekly},
		{name: "lower case", in: "monthly", want: RecurringMonthly},
		{name: "padded", in: "  yearly ", want: RecurringYearly},
		{name: "none alias", in: "none", want: RecurringNo},
		{name: "unknown", in: "fortnightly", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseRecurringStrict(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRecurringStrict(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseRecurringStrict(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewEvent(t *testing.T) {
	t.Parallel()

	a := NewEvent("standup", "09:00", "09:15", RecurringDaily)
	b := NewEvent("standup", "09:00", "09:15", RecurringDaily)

	if a.ID == uuid.Nil {
		t.Fatal("NewEvent returned a nil identifier")
	}
	if a.ID == b.ID {
		t.Errorf("two events share identifier %s", a.ID)
	}
	if a.Name != "standup" || a.Start != "09:00" || a.End != "09:15" || a.Recurring != RecurringDaily {
		t.Errorf("fields not stored verbatim: %+v", a)
	}
}

func TestReconstructEvent(t *testing.T) {
	t.Parallel()

	t.Run("valid identifier", func(t *testing.T) {
		t.Parallel()
		id := uuid.New()
		e, err := ReconstructEvent(id.String(), "dentist", "2023-07-23", "2023-07-25", RecurringYearly)
		if err != nil {
			t.Fatalf("ReconstructEvent() error = %v", err)
		}
		if e.ID != id {
			t.Errorf("ID = %s, want %s", e.ID, id)
		}
	})

	t.Run("malformed identifier", func(t *testing.T) {
		t.Parallel()
		_, err := ReconstructEvent("1", "dentist", "2023-07-23", "2023-07-25", RecurringNo)
		if !errors.Is(err, ErrInvalidIdentifier) {
			t.Errorf("error = %v, want ErrInvalidIdentifier", err)
		}
	})
}

func TestEventUpdates(t *testing.T) {
	t.Parallel()

	e := NewEvent("test event", "start_time", "end_time", RecurringNo)
	id := e.ID

	e.UpdateName("renamed")
	e.UpdateStart("new_start")
	e.UpdateEnd("new_end")
	e.UpdateRecurring(RecurringMonthly)

	want := &Event{ID: id, Name: "renamed", Start: "new_start", End: "new_end", Recurring: RecurringMonthly}
	if !e.Equal(want) {
		t.Errorf("event = %+v, want %+v", e, want)
	}
}

func TestStorageErrorIs(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk I/O error")
	err := error(&StorageError{Op: "insert event", Err: cause})

	if !errors.Is(err, ErrStorageIO) {
		t.Error("errors.Is(err, ErrStorageIO) = false")
	}
	if !errors.Is(err, cause) {
		t.Error("cause is not reachable through Unwrap")
	}
	if got, want := err.Error(), "failed to insert event: disk I/O error"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
