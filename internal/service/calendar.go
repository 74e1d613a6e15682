package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/cali/internal/models"
	"github.com/Kerhoff/cali/internal/repository"
	"github.com/Kerhoff/cali/pkg/logger"
)

// Calendar is a named calendar bound to its store. Event methods persist
// immediately; in-memory changes to an Event are only stored once passed to
// UpdateEvent.
type Calendar struct {
	name      string
	isDefault bool
	repo      repository.CalendarRepository
	logger    logrus.FieldLogger
}

// Name returns the calendar name
func (c *Calendar) Name() string {
	return c.name
}

// IsDefault reports whether this calendar was the default when loaded.
func (c *Calendar) IsDefault() bool {
	return c.isDefault
}

// Location returns where the calendar is stored.
func (c *Calendar) Location() string {
	return c.repo.Location()
}

// Summary returns the calendar as a plain value.
func (c *Calendar) Summary() models.Calendar {
	return models.Calendar{Name: c.name, IsDefault: c.isDefault, Location: c.Location()}
}

func (c *Calendar) AddEvent(ctx context.Context, event *models.Event) error {
	if err := c.repo.InsertEvent(ctx, c.name, c.isDefault, event); err != nil {
		return fmt.Errorf("failed to add event to %q: %w", c.name, err)
	}
	c.log(event).Info("Added event")
	return nil
}

func (c *Calendar) UpdateEvent(ctx context.Context, event *models.Event) error {
	if err := c.repo.UpdateEvent(ctx, c.name, c.isDefault, event); err != nil {
		return fmt.Errorf("failed to update event in %q: %w", c.name, err)
	}
	c.log(event).Info("Updated event")
	return nil
}

func (c *Calendar) RemoveEvent(ctx context.Context, event *models.Event) error {
	if err := c.repo.DeleteEvent(ctx, c.name, event.ID); err != nil {
		return fmt.Errorf("failed to remove event from %q: %w", c.name, err)
	}
	c.log(event).Info("Removed event")
	return nil
}

// FindEvents searches events by exact name or by substring.
func (c *Calendar) FindEvents(ctx context.Context, query string, exact bool) ([]*models.Event, error) {
	events, err := c.repo.FindEvents(ctx, c.name, query, exact)
	if err != nil {
		return nil, fmt.Errorf("failed to search events in %q: %w", c.name, err)
	}
	return events, nil
}

// GetEvent returns the event with id, or nil when the calendar has none.
func (c *Calendar) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	event, err := c.repo.GetEvent(ctx, c.name, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get event %s from %q: %w", id, c.name, err)
	}
	return event, nil
}

// Rename moves every stored event to newName and then renames the calendar
// in memory. newName must not belong to another calendar.
func (c *Calendar) Rename(ctx context.Context, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return fmt.Errorf("calendar name must not be empty")
	}
	if newName == c.name {
		return nil
	}

	exists, err := c.repo.CalendarExists(ctx, newName)
	if err != nil {
		return fmt.Errorf("failed to lookup calendar %q: %w", newName, err)
	}
	if exists {
		return fmt.Errorf("%w: %q", models.ErrCalendarExists, newName)
	}

	if err := c.repo.RenameCalendar(ctx, c.name, newName); err != nil {
		return fmt.Errorf("failed to rename %q: %w", c.name, err)
	}

	logger.WithFields(c.logger, logrus.Fields{
		"calendar": c.name,
		"new_name": newName,
	}).Info("Renamed calendar")
	c.name = newName
	return nil
}

// SetDefault makes this calendar the only default one.
func (c *Calendar) SetDefault(ctx context.Context) error {
	if err := c.repo.SetDefault(ctx, c.name); err != nil {
		return fmt.Errorf("failed to set %q as default: %w", c.name, err)
	}
	c.isDefault = true
	c.logger.WithField("calendar", c.name).Info("Set default calendar")
	return nil
}

// Delete removes the calendar and all of its events.
func (c *Calendar) Delete(ctx context.Context) error {
	if err := c.repo.DeleteCalendar(ctx, c.name); err != nil {
		return fmt.Errorf("failed to delete %q: %w", c.name, err)
	}
	c.logger.WithField("calendar", c.name).Info("Deleted calendar")
	return nil
}

func (c *Calendar) log(event *models.Event) *logrus.Entry {
	return logger.WithFields(c.logger, logrus.Fields{
		"calendar": c.name,
		"event_id": event.ID,
		"event":    event.Name,
	})
}
