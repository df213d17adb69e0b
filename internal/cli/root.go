// Package cli wires the taskdeck commands: the default interactive list, the
// record store server, and sample-data seeding.
package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"taskdeck/internal/api"
	"taskdeck/internal/holiday"
	"taskdeck/internal/store"
	"taskdeck/internal/tui"
)

type App struct {
	Dir        string
	APIBaseURL string
	HolidayURL string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "taskdeck",
		Short:        "Single-team task list (TUI client + record store server)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive task list (expects a record store at --api)
  taskdeck

  # Run the record store
  taskdeck serve --addr 127.0.0.1:8000

  # Fill an empty store with sample data
  taskdeck seed
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive list.
			if len(args) > 0 {
				return cmd.Help()
			}
			return runTUI(app)
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("TASKDECK_DIR", store.DefaultDir()), "Directory for client config and the server database")
	cmd.PersistentFlags().StringVar(&app.APIBaseURL, "api", envOr("TASKDECK_API", "http://127.0.0.1:8000"), "Record store base URL")
	cmd.PersistentFlags().StringVar(&app.HolidayURL, "holiday-feed", envOr("TASKDECK_HOLIDAY_FEED", holiday.DefaultFeedURL), "Holiday feed URL (annotation only)")

	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newSeedCmd(app))
	return cmd
}

func runTUI(app *App) error {
	client := api.NewClient(app.APIBaseURL)
	st := store.Store{Dir: app.Dir}
	return tui.Run(client, st, holiday.NewClient(app.HolidayURL))
}

func envOr(k, d string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return d
}
