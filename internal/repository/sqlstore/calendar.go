package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Kerhoff/cali/internal/models"
	"github.com/Kerhoff/cali/internal/repository"
)

const eventColumns = `event_id, event_name, event_start, event_end, event_recurring`

// dialect holds the few statements that differ between SQLite and Postgres.
// Both accept $N placeholders.
type dialect struct {
	// rowOrder orders rows by insertion. SQLite keeps rowid across
	// updates; Postgres moves a row's ctid on every update, so it orders by
	// the seq column instead.
	rowOrder    string
	tableExists string
}

var dialects = map[string]dialect{
	"sqlite": {
		rowOrder:    "rowid",
		tableExists: `SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = $1`,
	},
	"postgres": {
		rowOrder:    "seq",
		tableExists: `SELECT 1 FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1`,
	},
}

type calendarRepository struct {
	db       *sql.DB
	dialect  dialect
	location string
}

// NewCalendarRepository creates a new calendar repository. driver is the
// database/sql driver name the handle was opened with ("sqlite" or
// "postgres"); location is only reported back through Location.
func NewCalendarRepository(db *sql.DB, driver, location string) (repository.CalendarRepository, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	return &calendarRepository{db: db, dialect: d, location: location}, nil
}

func (r *calendarRepository) Location() string {
	return r.location
}

func (r *calendarRepository) CalendarExists(ctx context.Context, name string) (bool, error) {
	query := `SELECT 1 FROM calendars WHERE calendar_name = $1 LIMIT 1`
	return r.exists(ctx, "check calendar", query, name)
}

func (r *calendarRepository) IsDefault(ctx context.Context, name string) (bool, error) {
	query := `SELECT 1 FROM calendars WHERE calendar_name = $1 AND is_default = 1 LIMIT 1`
	return r.exists(ctx, "check default calendar", query, name)
}

func (r *calendarRepository) GetDefaultName(ctx context.Context) (string, bool, error) {
	query := `SELECT DISTINCT calendar_name FROM calendars WHERE is_default = 1`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return "", false, &models.StorageError{Op: "query default calendar", Err: err}
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return "", false, &models.StorageError{Op: "scan default calendar", Err: err}
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return "", false, &models.StorageError{Op: "query default calendar", Err: err}
	}

	switch len(names) {
	case 0:
		return "", false, nil
	case 1:
		return names[0], true, nil
	default:
		return "", false, fmt.Errorf("%w: %s", models.ErrAmbiguousDefault, strings.Join(names, ", "))
	}
}

// SetDefault clears the flag on every row and sets it on the rows of name
// in a single transaction. A calendar without rows cannot hold the flag, so
// the transaction is rolled back with ErrCalendarEmpty and the previous
// default stays.
func (r *calendarRepository) SetDefault(ctx context.Context, name string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return &models.StorageError{Op: "begin transaction", Err: err}
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `UPDATE calendars SET is_default = 0 WHERE is_default <> 0`); err != nil {
		return &models.StorageError{Op: "clear default calendar", Err: err}
	}
	result, err := tx.ExecContext(ctx, `UPDATE calendars SET is_default = 1 WHERE calendar_name = $1`, name)
	if err != nil {
		return &models.StorageError{Op: "set default calendar", Err: err}
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return &models.StorageError{Op: "get rows affected", Err: err}
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %q", models.ErrCalendarEmpty, name)
	}

	if err := tx.Commit(); err != nil {
		return &models.StorageError{Op: "commit default calendar", Err: err}
	}
	return nil
}

func (r *calendarRepository) RenameCalendar(ctx context.Context, oldName, newName string) error {
	query := `UPDATE calendars SET calendar_name = $2 WHERE calendar_name = $1`

	if _, err := r.db.ExecContext(ctx, query, oldName, newName); err != nil {
		return &models.StorageError{Op: "rename calendar", Err: err}
	}
	return nil
}

// DeleteCalendar removes every row of the calendar. A missing table is not
// an error.
func (r *calendarRepository) DeleteCalendar(ctx context.Context, name string) error {
	ok, err := r.exists(ctx, "check calendars table", r.dialect.tableExists, "calendars")
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM calendars WHERE calendar_name = $1`, name); err != nil {
		return &models.StorageError{Op: "delete calendar", Err: err}
	}
	return nil
}

func (r *calendarRepository) ListCalendars(ctx context.Context) ([]models.CalendarSummary, error) {
	query := `
		SELECT calendar_name, MAX(is_default), COUNT(*)
		FROM calendars
		GROUP BY calendar_name
		ORDER BY calendar_name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &models.StorageError{Op: "query calendars", Err: err}
	}
	defer rows.Close()

	var calendars []models.CalendarSummary
	for rows.Next() {
		var (
			c         models.CalendarSummary
			isDefault int
		)
		if err := rows.Scan(&c.Name, &isDefault, &c.EventCount); err != nil {
			return nil, &models.StorageError{Op: "scan calendar", Err: err}
		}
		c.IsDefault = isDefault != 0
		calendars = append(calendars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.StorageError{Op: "query calendars", Err: err}
	}

	return calendars, nil
}

func (r *calendarRepository) InsertEvent(ctx context.Context, calendarName string, calendarIsDefault bool, event *models.Event) error {
	query := `
		INSERT INTO calendars (calendar_name, event_id, event_name, event_start, event_end, event_recurring, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		calendarName,
		event.ID.String(),
		event.Name,
		event.Start,
		event.End,
		event.Recurring.String(),
		boolToInt(calendarIsDefault),
	)
	if err != nil {
		return &models.StorageError{Op: "insert event", Err: err}
	}
	return nil
}

// FindEvents matches event names exactly or by substring. LIKE wildcards in
// query are escaped so the substring is taken literally.
func (r *calendarRepository) FindEvents(ctx context.Context, calendarName, query string, exact bool) ([]*models.Event, error) {
	stmt := `SELECT ` + eventColumns + ` FROM calendars WHERE calendar_name = $1`
	arg := query
	if exact {
		stmt += ` AND event_name = $2`
	} else {
		stmt += ` AND event_name LIKE $2 ESCAPE '\'`
		arg = "%" + escapeLike(query) + "%"
	}
	stmt += ` ORDER BY ` + r.dialect.rowOrder

	rows, err := r.db.QueryContext(ctx, stmt, calendarName, arg)
	if err != nil {
		return nil, &models.StorageError{Op: "query events", Err: err}
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.StorageError{Op: "query events", Err: err}
	}

	return events, nil
}

func (r *calendarRepository) GetEvent(ctx context.Context, calendarName string, id uuid.UUID) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM calendars WHERE calendar_name = $1 AND event_id = $2 LIMIT 1`

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, calendarName, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return event, nil
}

// UpdateEvent rewrites the event fields of the row with the event's id in
// calendarName. The calendar name is matched, never written, so an update
// cannot move an event to another calendar.
func (r *calendarRepository) UpdateEvent(ctx context.Context, calendarName string, calendarIsDefault bool, event *models.Event) error {
	query := `
		UPDATE calendars
		SET event_name = $3, event_start = $4, event_end = $5, event_recurring = $6, is_default = $7
		WHERE calendar_name = $1 AND event_id = $2`

	result, err := r.db.ExecContext(ctx, query,
		calendarName,
		event.ID.String(),
		event.Name,
		event.Start,
		event.End,
		event.Recurring.String(),
		boolToInt(calendarIsDefault),
	)
	if err != nil {
		return &models.StorageError{Op: "update event", Err: err}
	}

	return checkAffected(result, event.ID)
}

func (r *calendarRepository) DeleteEvent(ctx context.Context, calendarName string, id uuid.UUID) error {
	query := `DELETE FROM calendars WHERE calendar_name = $1 AND event_id = $2`

	result, err := r.db.ExecContext(ctx, query, calendarName, id.String())
	if err != nil {
		return &models.StorageError{Op: "delete event", Err: err}
	}

	return checkAffected(result, id)
}

func (r *calendarRepository) exists(ctx context.Context, op, query string, args ...interface{}) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, &models.StorageError{Op: op, Err: err}
	}
	return true, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanEvent decodes one row selected with eventColumns. sql.ErrNoRows is
// returned unwrapped.
func scanEvent(row rowScanner) (*models.Event, error) {
	var id, name, start, end, recurring string
	if err := row.Scan(&id, &name, &start, &end, &recurring); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, &models.StorageError{Op: "scan event", Err: err}
	}

	event, err := models.ReconstructEvent(id, name, start, end, models.ParseRecurring(recurring))
	if err != nil {
		return nil, fmt.Errorf("failed to decode event row: %w", err)
	}
	return event, nil
}

func checkAffected(result sql.Result, id uuid.UUID) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return &models.StorageError{Op: "get rows affected", Err: err}
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", models.ErrEventNotFound, id)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
