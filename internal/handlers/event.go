package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/cali/internal/models"
	"github.com/Kerhoff/cali/internal/service"
)

var validate = validator.New()

// EventInput is a new event as typed by the user.
type EventInput struct {
	Name      string `validate:"required"`
	Start     string `validate:"required"`
	End       string `validate:"required"`
	Recurring string
}

// EventChanges holds the fields to change on an event. Nil fields are kept.
type EventChanges struct {
	Name      *string
	Start     *string
	End       *string
	Recurring *string
}

func (c EventChanges) empty() bool {
	return c.Name == nil && c.Start == nil && c.End == nil && c.Recurring == nil
}

// EventHandler handles adding, searching, updating and deleting events.
type EventHandler struct {
	svc    *service.Service
	logger logrus.FieldLogger
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(svc *service.Service, logger logrus.FieldLogger) *EventHandler {
	return &EventHandler{svc: svc, logger: logger}
}

// Add stores a new event in the named (or default) calendar.
func (h *EventHandler) Add(ctx context.Context, calendarName string, input EventInput, out io.Writer) error {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(input); err != nil {
		return err
	}

	recurring := models.RecurringNo
	if input.Recurring != "" {
		r, err := models.ParseRecurringStrict(input.Recurring)
		if err != nil {
			return err
		}
		recurring = r
	}

	cal, err := h.open(ctx, calendarName)
	if err != nil {
		return err
	}

	event := models.NewEvent(input.Name, input.Start, input.End, recurring)
	if err := cal.AddEvent(ctx, event); err != nil {
		return err
	}

	fmt.Fprintf(out, "Added '%s' to '%s' (%s).\n", event.Name, cal.Name(), event.ID)
	return nil
}

// Find prints the events whose name matches query.
func (h *EventHandler) Find(ctx context.Context, calendarName, query string, exact bool, out io.Writer) error {
	cal, err := h.open(ctx, calendarName)
	if err != nil {
		return err
	}

	events, err := cal.FindEvents(ctx, query, exact)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Fprintf(out, "No events in '%s' match '%s'.\n", cal.Name(), query)
		return nil
	}
	return writeEvents(out, events)
}

// Update applies changes to the event with the given id.
func (h *EventHandler) Update(ctx context.Context, calendarName, id string, changes EventChanges, out io.Writer) error {
	if changes.empty() {
		return errors.New("nothing to update: give at least one of --name, --start, --end, --recurring")
	}

	cal, event, err := h.lookup(ctx, calendarName, id)
	if err != nil {
		return err
	}

	if changes.Name != nil {
		name := strings.TrimSpace(*changes.Name)
		if name == "" {
			return errors.New("event name must not be empty")
		}
		event.UpdateName(name)
	}
	if changes.Start != nil {
		event.UpdateStart(*changes.Start)
	}
	if changes.End != nil {
		event.UpdateEnd(*changes.End)
	}
	if changes.Recurring != nil {
		r, err := models.ParseRecurringStrict(*changes.Recurring)
		if err != nil {
			return err
		}
		event.UpdateRecurring(r)
	}

	if err := cal.UpdateEvent(ctx, event); err != nil {
		return err
	}

	fmt.Fprintf(out, "Updated '%s' in '%s'.\n", event.Name, cal.Name())
	return nil
}

// Delete removes the event with the given id.
func (h *EventHandler) Delete(ctx context.Context, calendarName, id string, out io.Writer) error {
	cal, event, err := h.lookup(ctx, calendarName, id)
	if err != nil {
		return err
	}

	if err := cal.RemoveEvent(ctx, event); err != nil {
		return err
	}

	fmt.Fprintf(out, "Deleted '%s' from '%s'.\n", event.Name, cal.Name())
	return nil
}

func (h *EventHandler) open(ctx context.Context, calendarName string) (*service.Calendar, error) {
	name, err := h.svc.ResolveCalendarName(ctx, calendarName)
	if err != nil {
		return nil, err
	}
	return h.svc.OpenCalendar(ctx, name)
}

func (h *EventHandler) lookup(ctx context.Context, calendarName, id string) (*service.Calendar, *models.Event, error) {
	eventID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %q", models.ErrInvalidIdentifier, id)
	}

	cal, err := h.open(ctx, calendarName)
	if err != nil {
		return nil, nil, err
	}

	event, err := cal.GetEvent(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}
	if event == nil {
		return nil, nil, fmt.Errorf("%w: %s in '%s'", models.ErrEventNotFound, eventID, cal.Name())
	}

	h.logger.WithFields(logrus.Fields{
		"calendar": cal.Name(),
		"event_id": eventID,
	}).Debug("Found event")
	return cal, event, nil
}

// validateInput turns validator errors into a message naming the first
// missing field.
func validateInput(input EventInput) error {
	if err := validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("event %s is required", strings.ToLower(verrs[0].Field()))
		}
		return err
	}
	return nil
}

func writeEvents(out io.Writer, events []*models.Event) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTART\tEND\tRECURRING")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Name, e.Start, e.End, e.Recurring)
	}
	return w.Flush()
}
