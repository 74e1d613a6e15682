package metrics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Kerhoff/cali/internal/models"
	"github.com/Kerhoff/cali/internal/repository"
)

type instrumentedRepository struct {
	next    repository.CalendarRepository
	metrics *Metrics
}

// InstrumentRepository wraps repo so every call is counted and timed.
func InstrumentRepository(repo repository.CalendarRepository, m *Metrics) repository.CalendarRepository {
	return &instrumentedRepository{next: repo, metrics: m}
}

func (r *instrumentedRepository) Location() string {
	return r.next.Location()
}

func (r *instrumentedRepository) CalendarExists(ctx context.Context, name string) (ok bool, err error) {
	defer r.observe("calendar_exists", time.Now(), &err)
	return r.next.CalendarExists(ctx, name)
}

func (r *instrumentedRepository) IsDefault(ctx context.Context, name string) (ok bool, err error) {
	defer r.observe("is_default", time.Now(), &err)
	return r.next.IsDefault(ctx, name)
}

func (r *instrumentedRepository) GetDefaultName(ctx context.Context) (name string, ok bool, err error) {
	defer r.observe("get_default_name", time.Now(), &err)
	return r.next.GetDefaultName(ctx)
}

func (r *instrumentedRepository) SetDefault(ctx context.Context, name string) (err error) {
	defer r.observe("set_default", time.Now(), &err)
	return r.next.SetDefault(ctx, name)
}

func (r *instrumentedRepository) RenameCalendar(ctx context.Context, oldName, newName string) (err error) {
	defer r.observe("rename_calendar", time.Now(), &err)
	return r.next.RenameCalendar(ctx, oldName, newName)
}

func (r *instrumentedRepository) DeleteCalendar(ctx context.Context, name string) (err error) {
	defer r.observe("delete_calendar", time.Now(), &err)
	return r.next.DeleteCalendar(ctx, name)
}

func (r *instrumentedRepository) ListCalendars(ctx context.Context) (calendars []models.CalendarSummary, err error) {
	defer r.observe("list_calendars", time.Now(), &err)
	return r.next.ListCalendars(ctx)
}

func (r *instrumentedRepository) InsertEvent(ctx context.Context, calendarName string, calendarIsDefault bool, event *models.Event) (err error) {
	defer r.observe("insert_event", time.Now(), &err)
	return r.next.InsertEvent(ctx, calendarName, calendarIsDefault, event)
}

func (r *instrumentedRepository) FindEvents(ctx context.Context, calendarName, query string, exact bool) (events []*models.Event, err error) {
	defer r.observe("find_events", time.Now(), &err)
	return r.next.FindEvents(ctx, calendarName, query, exact)
}

func (r *instrumentedRepository) GetEvent(ctx context.Context, calendarName string, id uuid.UUID) (event *models.Event, err error) {
	defer r.observe("get_event", time.Now(), &err)
	return r.next.GetEvent(ctx, calendarName, id)
}

func (r *instrumentedRepository) UpdateEvent(ctx context.Context, calendarName string, calendarIsDefault bool, event *models.Event) (err error) {
	defer r.observe("update_event", time.Now(), &err)
	return r.next.UpdateEvent(ctx, calendarName, calendarIsDefault, event)
}

func (r *instrumentedRepository) DeleteEvent(ctx context.Context, calendarName string, id uuid.UUID) (err error) {
	defer r.observe("delete_event", time.Now(), &err)
	return r.next.DeleteEvent(ctx, calendarName, id)
}

func (r *instrumentedRepository) observe(operation string, start time.Time, err *error) {
	r.metrics.Observe(operation, start, *err)
}
