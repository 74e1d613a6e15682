package handlers

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/cali/internal/service"
)

// CalendarOptions are the calendar-level actions of one invocation.
type CalendarOptions struct {
	// Name may be empty to select the default calendar.
	Name       string
	Delete     bool
	Rename     bool
	SetDefault bool
}

// CalendarHandler handles selecting, deleting, renaming and setting the
// default calendar.
type CalendarHandler struct {
	svc    *service.Service
	logger logrus.FieldLogger
	now    func() time.Time
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(svc *service.Service, logger logrus.FieldLogger) *CalendarHandler {
	return &CalendarHandler{svc: svc, logger: logger, now: time.Now}
}

// Handle runs the requested actions. Delete wins over every other flag;
// rename runs before set-default so the new name becomes default. The new
// name for a rename is read as one line from in.
func (h *CalendarHandler) Handle(ctx context.Context, opts CalendarOptions, in io.Reader, out io.Writer) error {
	name, err := h.svc.ResolveCalendarName(ctx, opts.Name)
	if err != nil {
		return err
	}

	cal, err := h.svc.OpenCalendar(ctx, name)
	if err != nil {
		return err
	}

	if opts.Delete {
		if err := cal.Delete(ctx); err != nil {
			return err
		}
		fmt.Fprintf(out, "'%s' was deleted.\n", cal.Name())
		return nil
	}

	if opts.Rename {
		oldName := cal.Name()
		fmt.Fprintf(out, "Enter a new name for calendar: '%s'\n", oldName)
		newName, err := readLine(in)
		if err != nil {
			return fmt.Errorf("failed to read new calendar name: %w", err)
		}
		if err := cal.Rename(ctx, newName); err != nil {
			return err
		}
		fmt.Fprintf(out, "'%s' was renamed to '%s'.\n", oldName, cal.Name())
	}

	if opts.SetDefault {
		if err := cal.SetDefault(ctx); err != nil {
			return err
		}
		fmt.Fprintf(out, "'%s' is now set as default.\n", cal.Name())
	}

	if opts.Rename || opts.SetDefault {
		return nil
	}
	return h.describe(ctx, cal, out)
}

// describe prints the selected calendar and its events.
func (h *CalendarHandler) describe(ctx context.Context, cal *service.Calendar, out io.Writer) error {
	events, err := cal.FindEvents(ctx, "", false)
	if err != nil {
		return err
	}

	hours, minutes := LocalOffset(h.now())
	defaultMark := ""
	if cal.IsDefault() {
		defaultMark = " (default)"
	}

	fmt.Fprintf(out, "Calendar: %s%s\n", cal.Name(), defaultMark)
	fmt.Fprintf(out, "Stored in: %s\n", cal.Location())
	fmt.Fprintf(out, "Local time: %s\n", FormatOffset(hours, minutes))

	if len(events) == 0 {
		fmt.Fprintln(out, "No events.")
		return nil
	}
	fmt.Fprintf(out, "Events: %d\n", len(events))
	return writeEvents(out, events)
}

// ListHandler prints every stored calendar.
type ListHandler struct {
	svc    *service.Service
	logger logrus.FieldLogger
}

// NewListHandler creates a new ListHandler.
func NewListHandler(svc *service.Service, logger logrus.FieldLogger) *ListHandler {
	return &ListHandler{svc: svc, logger: logger}
}

func (h *ListHandler) Handle(ctx context.Context, out io.Writer) error {
	calendars, err := h.svc.ListCalendars(ctx)
	if err != nil {
		return err
	}

	if len(calendars) == 0 {
		fmt.Fprintln(out, "No calendars yet. Add an event to create one.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CALENDAR\tEVENTS\tDEFAULT")
	for _, c := range calendars {
		mark := ""
		if c.IsDefault {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", c.Name, c.EventCount, mark)
	}
	return w.Flush()
}

// readLine reads one line and trims surrounding whitespace. A final line
// without a newline is accepted.
func readLine(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
