package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/cali/internal/models"
	"github.com/Kerhoff/cali/internal/repository"
	"github.com/Kerhoff/cali/pkg/logger"
)

// Service is the business logic layer on top of the calendar repository.
type Service struct {
	logger       logrus.FieldLogger
	Calendars    repository.CalendarRepository
	fallbackName string
}

// New creates a new Service. fallbackName is the calendar used when no name
// is given and no default exists.
func New(logger logrus.FieldLogger, calendars repository.CalendarRepository, fallbackName string) *Service {
	if fallbackName == "" {
		fallbackName = models.DefaultCalendarName
	}
	return &Service{
		logger:       logger,
		Calendars:    calendars,
		fallbackName: fallbackName,
	}
}

// CreateCalendar creates a calendar that does not exist yet. It becomes the
// default when no other calendar is default. Nothing is written until the
// first event is added.
func (s *Service) CreateCalendar(ctx context.Context, name string) (*Calendar, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("calendar name must not be empty")
	}

	exists, err := s.Calendars.CalendarExists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup calendar %q: %w", name, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %q", models.ErrCalendarExists, name)
	}

	_, hasDefault, err := s.Calendars.GetDefaultName(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup default calendar: %w", err)
	}

	logger.WithFields(s.logger, logrus.Fields{
		"calendar":   name,
		"is_default": !hasDefault,
	}).Info("Created new calendar")

	return s.newCalendar(name, !hasDefault), nil
}

// OpenCalendar loads an existing calendar or creates it when missing.
func (s *Service) OpenCalendar(ctx context.Context, name string) (*Calendar, error) {
	name = strings.TrimSpace(name)

	exists, err := s.Calendars.CalendarExists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup calendar %q: %w", name, err)
	}
	if !exists {
		return s.CreateCalendar(ctx, name)
	}

	isDefault, err := s.Calendars.IsDefault(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup default flag of %q: %w", name, err)
	}

	s.logger.WithField("calendar", name).Debug("Loaded calendar")
	return s.newCalendar(name, isDefault), nil
}

// ResolveCalendarName returns name when given, else the default calendar,
// else the fallback name.
func (s *Service) ResolveCalendarName(ctx context.Context, name string) (string, error) {
	if name = strings.TrimSpace(name); name != "" {
		return name, nil
	}

	defaultName, ok, err := s.Calendars.GetDefaultName(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to resolve default calendar: %w", err)
	}
	if ok {
		return defaultName, nil
	}
	return s.fallbackName, nil
}

// ListCalendars returns every calendar that has at least one event.
func (s *Service) ListCalendars(ctx context.Context) ([]models.CalendarSummary, error) {
	calendars, err := s.Calendars.ListCalendars(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}
	return calendars, nil
}

func (s *Service) newCalendar(name string, isDefault bool) *Calendar {
	return &Calendar{
		name:      name,
		isDefault: isDefault,
		repo:      s.Calendars,
		logger:    s.logger,
	}
}
