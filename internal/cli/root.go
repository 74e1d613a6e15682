// Package cli wires configuration, storage and handlers into the cali
// command tree.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Kerhoff/cali/internal/config"
	"github.com/Kerhoff/cali/internal/handlers"
	"github.com/Kerhoff/cali/internal/metrics"
	"github.com/Kerhoff/cali/internal/repository/sqlstore"
	"github.com/Kerhoff/cali/internal/service"
	"github.com/Kerhoff/cali/pkg/logger"
)

// app holds what one invocation opens; close releases it.
type app struct {
	cfg     *config.Config
	logger  *logrus.Logger
	db      *config.Database
	metrics *metrics.Metrics
	svc     *service.Service

	dbURL    string
	logLevel string
}

// Execute runs the command line in args and returns the first error.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	a := &app{}
	cmd := newRootCommand(a)
	cmd.SetArgs(args)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	err := cmd.ExecuteContext(ctx)
	if cerr := a.close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func newRootCommand(a *app) *cobra.Command {
	var opts handlers.CalendarOptions

	cmd := &cobra.Command{
		Use:   "cali [calendar]",
		Short: "A simple to use command line calendar.",
		Long: `A simple to use command line calendar.

The calendar argument selects the calendar to use. If no calendar by that
name exists, a new one is created. Without a name the default calendar is
used; if there is no default, a calendar named "default calendar" is used.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Name = args[0]
			}
			h := handlers.NewCalendarHandler(a.svc, a.logger)
			return h.Handle(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVarP(&opts.Delete, "delete", "d", false, "Deletes the specified calendar")
	cmd.Flags().BoolVarP(&opts.Rename, "rename", "r", false, "Renames the specified calendar")
	cmd.Flags().BoolVarP(&opts.SetDefault, "set-default", "s", false, "Sets the specified calendar as default")

	cmd.PersistentFlags().StringVar(&a.dbURL, "db", "", "database file or postgres:// URL (overrides CALI_DATABASE_URL)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (overrides CALI_LOG_LEVEL)")

	cmd.AddCommand(newListCommand(a), newEventCommand(a))
	return cmd
}

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lists all calendars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.NewListHandler(a.svc, a.logger).Handle(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

// open loads configuration and opens the store.
func (a *app) open(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cmd.Flags().Changed("db") {
		cfg.DatabaseURL = a.dbURL
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = logger.New(cfg.LogLevel, cmd.ErrOrStderr())

	db, err := config.NewDatabase(cfg.DatabaseURL, a.logger)
	if err != nil {
		return err
	}
	a.db = db

	if err := db.Migrate(); err != nil {
		return err
	}

	repo, err := sqlstore.NewCalendarRepository(db.DB, db.Driver, db.Location)
	if err != nil {
		return err
	}

	a.metrics = metrics.New()
	a.svc = service.New(a.logger, metrics.InstrumentRepository(repo, a.metrics), cfg.DefaultCalendarName)
	return nil
}

// close writes the metrics textfile when configured and closes the store.
func (a *app) close() error {
	var firstErr error
	if a.metrics != nil && a.cfg != nil && a.cfg.MetricsFile != "" {
		if err := a.metrics.WriteTextfile(a.cfg.MetricsFile); err != nil {
			firstErr = fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close database: %w", err)
		}
	}
	return firstErr
}
