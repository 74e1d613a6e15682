package metrics

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Kerhoff/cali/internal/config"
	"github.com/Kerhoff/cali/internal/models"
	"github.com/Kerhoff/cali/internal/repository"
	"github.com/Kerhoff/cali/internal/repository/sqlstore"
	"github.com/Kerhoff/cali/pkg/logger"
)

func setupInstrumented(t *testing.T) (repository.CalendarRepository, *Metrics, *config.Database) {
	t.Helper()

	db, err := config.NewDatabase(filepath.Join(t.TempDir(), "calendar.db"), logger.Discard())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	repo, err := sqlstore.NewCalendarRepository(db.DB, db.Driver, db.Location)
	if err != nil {
		t.Fatalf("NewCalendarRepository() error = %v", err)
	}

	m := New()
	return InstrumentRepository(repo, m), m, db
}

func TestInstrumentRepositoryCountsOperations(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, m, _ := setupInstrumented(t)

	event := models.NewEvent("standup", "09:00", "09:15", models.RecurringDaily)
	if err := repo.InsertEvent(ctx, "work", true, event); err != nil {
		t.Fatalf("InsertEvent() error = %v", err)
	}
	if _, err := repo.FindEvents(ctx, "work", "stand", false); err != nil {
		t.Fatalf("FindEvents() error = %v", err)
	}
	if _, err := repo.FindEvents(ctx, "work", "standup", true); err != nil {
		t.Fatalf("FindEvents() error = %v", err)
	}
	if err := repo.DeleteEvent(ctx, "work", models.NewEvent("x", "", "", models.RecurringNo).ID); err == nil {
		t.Fatal("DeleteEvent() of an unknown id succeeded")
	}

	tests := []struct {
		operation string
		status    string
		want      float64
	}{
		{operation: "insert_event", status: "ok", want: 1},
		{operation: "find_events", status: "ok", want: 2},
		{operation: "delete_event", status: "error", want: 1},
		{operation: "delete_event", status: "ok", want: 0},
	}
	for _, tt := range tests {
		got := testutil.ToFloat64(m.operations.WithLabelValues(tt.operation, tt.status))
		if got != tt.want {
			t.Errorf("%s{status=%s} = %v, want %v", tt.operation, tt.status, got, tt.want)
		}
	}

	if n := testutil.CollectAndCount(m.duration); n != 3 {
		t.Errorf("duration series = %d, want 3", n)
	}
}

func TestInstrumentRepositoryCountsStorageErrors(t *testing.T) {
	t.Parallel()

	repo, m, db := setupInstrumented(t)
	db.Close()

	if _, _, err := repo.GetDefaultName(context.Background()); err == nil {
		t.Fatal("GetDefaultName() on a closed database succeeded")
	}
	if got := testutil.ToFloat64(m.operations.WithLabelValues("get_default_name", "error")); got != 1 {
		t.Errorf("get_default_name{status=error} = %v, want 1", got)
	}
}

func TestRegistryGathersStorageMetrics(t *testing.T) {
	t.Parallel()

	repo, m, _ := setupInstrumented(t)
	ctx := context.Background()
	if _, err := repo.CalendarExists(ctx, "work"); err != nil {
		t.Fatalf("CalendarExists() error = %v", err)
	}
	if _, err := repo.ListCalendars(ctx); err != nil {
		t.Fatalf("ListCalendars() error = %v", err)
	}

	n, err := testutil.GatherAndCount(m.Registry(), "cali_storage_operations_total", "cali_storage_operation_duration_seconds")
	if err != nil {
		t.Fatalf("GatherAndCount() error = %v", err)
	}
	if n != 4 {
		t.Errorf("gathered series = %d, want 4", n)
	}
}

func TestWriteTextfile(t *testing.T) {
	t.Parallel()

	repo, m, _ := setupInstrumented(t)
	if _, err := repo.CalendarExists(context.Background(), "work"); err != nil {
		t.Fatalf("CalendarExists() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "cali.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read textfile: %v", err)
	}
	out := string(data)
	for _, want := range []string{
		`cali_storage_operations_total{operation="calendar_exists",status="ok"} 1`,
		`cali_storage_operation_duration_seconds_count{operation="calendar_exists"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("textfile missing %q:\n%s", want, out)
		}
	}
}

func TestLocationPassesThrough(t *testing.T) {
	t.Parallel()

	repo, _, db := setupInstrumented(t)
	if repo.Location() != db.Location {
		t.Errorf("Location() = %q, want %q", repo.Location(), db.Location)
	}
}
