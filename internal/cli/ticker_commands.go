package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/pbzzardari/PlayverseZone/pkg/catalog"
	"github.com/pbzzardari/PlayverseZone/pkg/errors"
	"github.com/pbzzardari/PlayverseZone/pkg/ticker"
)

func newCountdownCommand(app *App) *cobra.Command {
	var target string
	var follow bool

	cmd := &cobra.Command{
		Use:   "countdown",
		Short: "Show the time left until the 2026 launch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			at := ticker.DefaultCountdownTarget(time.Local)
			if target != "" {
				t, err := time.Parse(time.RFC3339, target)
				if err != nil {
					return errors.ErrValidationFailed("target", "expected RFC 3339 time")
				}
				at = t
			}

			r := ticker.Until(at, time.Now())
			if err := app.render(r, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, r)
				return err
			}); err != nil {
				return err
			}
			if !follow || r.Expired {
				return nil
			}

			for r := range ticker.Countdown(cmd.Context(), at, ticker.Every(cmd.Context(), ticker.CountdownInterval)) {
				if err := app.render(r, func(w io.Writer) error {
					_, err := fmt.Fprintln(w, r)
					return err
				}); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "countdown target, RFC 3339 (default 2026-01-01T00:00:00 local)")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "keep printing every second until the target or interrupt")
	return cmd
}

func newWatchCommand(app *App) *cobra.Command {
	var duration time.Duration
	var watchCatalog bool

	cmd := &cobra.Command{
		Use:   "watch <game-id>",
		Short: "Simulate a game page: loading overlay and live player counter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			game, ok := app.games.FindByID(args[0])
			if !ok {
				return errors.ErrGameNotFound(args[0])
			}

			ctx := cmd.Context()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			if watchCatalog {
				if err := app.games.Watch(ctx, catalog.DefaultWatchDebounce); err != nil {
					return err
				}
			}

			r := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
			players := ticker.NewLivePlayers(r)
			var loading ticker.LoadingSequence

			playerTicks := players.Run(ctx, ticker.Every(ctx, ticker.LivePlayersInterval))
			loadingTicks := loading.Run(ctx, ticker.Every(ctx, ticker.LoadingInterval))

			fmt.Fprintf(app.stdout, "%s  |  %d playing now\n", game.Title, players.Count())
			frame := loading.Current()
			fmt.Fprintf(app.stdout, "[%3d%%] %s\n", frame.Progress, frame.Message)

			for playerTicks != nil || loadingTicks != nil {
				select {
				case n, ok := <-playerTicks:
					if !ok {
						playerTicks = nil
						continue
					}
					fmt.Fprintf(app.stdout, "%d playing now\n", n)
				case f, ok := <-loadingTicks:
					if !ok {
						loadingTicks = nil
						continue
					}
					fmt.Fprintf(app.stdout, "[%3d%%] %s\n", f.Progress, f.Message)
				}
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&duration, "duration", 10*time.Second, "how long to run; 0 runs until interrupted")
	cmd.Flags().BoolVar(&watchCatalog, "watch-catalog", false, "reload the --catalog file when it changes")
	return cmd
}
