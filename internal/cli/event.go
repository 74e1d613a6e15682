package cli

import (
	"github.com/spf13/cobra"

	"github.com/Kerhoff/cali/internal/handlers"
)

func newEventCommand(a *app) *cobra.Command {
	var calendar string

	cmd := &cobra.Command{
		Use:   "event",
		Short: "Adds, finds, updates and deletes events",
	}
	cmd.PersistentFlags().StringVarP(&calendar, "calendar", "c", "", "calendar to use (default: the default calendar)")

	handler := func() *handlers.EventHandler {
		return handlers.NewEventHandler(a.svc, a.logger)
	}

	var input handlers.EventInput
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Adds an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input.Name = args[0]
			return handler().Add(cmd.Context(), calendar, input, cmd.OutOrStdout())
		},
	}
	add.Flags().StringVar(&input.Start, "start", "", "start of the event")
	add.Flags().StringVar(&input.End, "end", "", "end of the event")
	add.Flags().StringVar(&input.Recurring, "recurring", "No", "No, Daily, Weekly, Monthly or Yearly")

	var exact bool
	find := &cobra.Command{
		Use:   "find [query]",
		Short: "Finds events by name; without a query all events are listed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return handler().Find(cmd.Context(), calendar, query, exact, cmd.OutOrStdout())
		},
	}
	find.Flags().BoolVarP(&exact, "exact", "e", false, "match the whole name instead of a substring")

	var name, start, end, recurring string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Updates an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var changes handlers.EventChanges
			if cmd.Flags().Changed("name") {
				changes.Name = &name
			}
			if cmd.Flags().Changed("start") {
				changes.Start = &start
			}
			if cmd.Flags().Changed("end") {
				changes.End = &end
			}
			if cmd.Flags().Changed("recurring") {
				changes.Recurring = &recurring
			}
			return handler().Update(cmd.Context(), calendar, args[0], changes, cmd.OutOrStdout())
		},
	}
	update.Flags().StringVar(&name, "name", "", "new event name")
	update.Flags().StringVar(&start, "start", "", "new start")
	update.Flags().StringVar(&end, "end", "", "new end")
	update.Flags().StringVar(&recurring, "recurring", "", "No, Daily, Weekly, Monthly or Yearly")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Deletes an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handler().Delete(cmd.Context(), calendar, args[0], cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(add, find, update, del)
	return cmd
}
