package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pbzzardari/PlayverseZone/pkg/errors"
)

type statusView struct {
	Store        string `json:"store"`
	Healthy      bool   `json:"healthy"`
	Error        string `json:"error,omitempty"`
	Catalog      string `json:"catalog"`
	Games        int    `json:"games"`
	Playable     int    `json:"playable"`
	Achievements int    `json:"achievements"`
}

func newStatusCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the progress backend and summarize the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := statusView{
				Store:        app.storeKind(),
				Catalog:      app.games.ConfigPath(),
				Games:        len(app.games.All()),
				Playable:     len(app.games.Playable()),
				Achievements: len(app.games.Achievements()),
			}
			if view.Catalog == "" {
				view.Catalog = "built-in"
			}

			_, err := app.openStore(cmd.Context())
			if err == nil {
				err = app.pingStore(cmd.Context())
			}
			if err != nil {
				view.Error = err.Error()
				app.logger.Error("Progress backend unhealthy", "store", view.Store, "error", err)
			}
			view.Healthy = err == nil

			if rerr := app.render(view, func(w io.Writer) error {
				state := "ok"
				if !view.Healthy {
					state = "unhealthy: " + view.Error
				}
				fmt.Fprintf(w, "Store: %s (%s)\n", view.Store, state)
				fmt.Fprintf(w, "Catalog: %s, %d games (%d playable), %d achievements\n",
					view.Catalog, view.Games, view.Playable, view.Achievements)
				return nil
			}); rerr != nil {
				return rerr
			}
			if err != nil {
				return errors.ErrStorageError("health check", err)
			}
			return nil
		},
	}
}
