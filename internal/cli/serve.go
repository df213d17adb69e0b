package cli

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"taskdeck/internal/server"
	"taskdeck/internal/store"
)

const dbFileName = "todos.sqlite"

func newServeCmd(app *App) *cobra.Command {
	var addr string
	var seedOnStart bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the record store (REST API over SQLite)",
		Long: strings.TrimSpace(`
Run the /todos REST API the task list talks to.

The database lives inside --dir. With --seed, an empty database is filled with
deterministic sample data on startup (a populated one is left untouched).
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
				log.SetLevel(log.DebugLevel)
			}

			if err := (store.Store{Dir: app.Dir}).Ensure(); err != nil {
				return err
			}

			ctx := cmd.Context()
			db, err := store.OpenDB(ctx, filepath.Join(app.Dir, dbFileName))
			if err != nil {
				return err
			}
			defer db.Close()

			if seedOnStart {
				if err := db.Seed(ctx, time.Now()); err != nil {
					return err
				}
			}

			return server.New(db).Start(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", envOr("TASKDECK_ADDR", "127.0.0.1:8000"), "Listen address")
	cmd.Flags().BoolVar(&seedOnStart, "seed", false, "Seed sample data into an empty database on startup")
	return cmd
}

func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty record store database with sample data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (store.Store{Dir: app.Dir}).Ensure(); err != nil {
				return err
			}
			ctx := context.Background()
			db, err := store.OpenDB(ctx, filepath.Join(app.Dir, dbFileName))
			if err != nil {
				return err
			}
			defer db.Close()
			return db.Seed(ctx, time.Now())
		},
	}
}
