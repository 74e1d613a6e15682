package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Kerhoff/cali/internal/models"
)

// CalendarRepository defines the row-level operations on the calendar store.
// Every event row carries the name of its calendar and a copy of the
// calendar's default flag.
type CalendarRepository interface {
	// Location returns the database URL or file path backing the store.
	Location() string

	CalendarExists(ctx context.Context, name string) (bool, error)
	IsDefault(ctx context.Context, name string) (bool, error)
	// GetDefaultName returns the default calendar name and whether one is set.
	GetDefaultName(ctx context.Context) (string, bool, error)
	SetDefault(ctx context.Context, name string) error
	RenameCalendar(ctx context.Context, oldName, newName string) error
	DeleteCalendar(ctx context.Context, name string) error
	ListCalendars(ctx context.Context) ([]models.CalendarSummary, error)

	InsertEvent(ctx context.Context, calendarName string, calendarIsDefault bool, event *models.Event) error
	FindEvents(ctx context.Context, calendarName, query string, exact bool) ([]*models.Event, error)
	GetEvent(ctx context.Context, calendarName string, id uuid.UUID) (*models.Event, error)
	UpdateEvent(ctx context.Context, calendarName string, calendarIsDefault bool, event *models.Event) error
	DeleteEvent(ctx context.Context, calendarName string, id uuid.UUID) error
}
