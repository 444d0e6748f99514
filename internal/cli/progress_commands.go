package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pbzzardari/PlayverseZone/pkg/achievement"
	"github.com/pbzzardari/PlayverseZone/pkg/domain"
	"github.com/pbzzardari/PlayverseZone/pkg/errors"
)

type actionResult struct {
	GameID   string                   `json:"game_id"`
	Favorite *bool                    `json:"favorite,omitempty"`
	Rating   int                      `json:"rating,omitempty"`
	EmbedURL string                   `json:"embed_url,omitempty"`
	Unlocked []*domain.AchievementDef `json:"unlocked"`
}

func writeUnlocked(w io.Writer, unlocked []*domain.AchievementDef) {
	for _, def := range unlocked {
		fmt.Fprintf(w, "Achievement unlocked: %s %s - %s\n", def.Icon, def.Title, def.Description)
	}
}

func newPlayCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "play <game-id>",
		Short: "Record a launch of a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			unlocked, err := s.RecordPlay(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			game, _ := app.games.FindByID(args[0])
			res := actionResult{GameID: game.ID, EmbedURL: game.EmbedURL, Unlocked: unlocked}
			return app.render(res, func(w io.Writer) error {
				fmt.Fprintf(w, "Launching %s: %s\n", game.Title, game.EmbedURL)
				writeUnlocked(w, unlocked)
				return nil
			})
		},
	}
}

func newFavoriteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <game-id>",
		Short: "Add a game to favorites, or remove it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			favorite, unlocked, err := s.ToggleFavorite(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			res := actionResult{GameID: args[0], Favorite: &favorite, Unlocked: unlocked}
			return app.render(res, func(w io.Writer) error {
				if favorite {
					fmt.Fprintf(w, "Added %s to favorites\n", args[0])
				} else {
					fmt.Fprintf(w, "Removed %s from favorites\n", args[0])
				}
				writeUnlocked(w, unlocked)
				return nil
			})
		},
	}
}

func newRateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <game-id> <stars>",
		Short: "Rate a game from 1 to 5 stars",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			star, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.ErrValidationFailed("stars", fmt.Sprintf("%q is not a number", args[1]))
			}

			s, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			unlocked, err := s.SetRating(cmd.Context(), args[0], star)
			if err != nil {
				return err
			}

			game, _ := app.games.FindByID(args[0])
			res := actionResult{GameID: game.ID, Rating: star, Unlocked: unlocked}
			return app.render(res, func(w io.Writer) error {
				fmt.Fprintf(w, "Rated %s %d/5 (now %s)\n", game.Title, star,
					game.DisplayedRating(s.State().Ratings).StringFixed(1))
				writeUnlocked(w, unlocked)
				return nil
			})
		},
	}
}

type profileView struct {
	UserID    string                    `json:"user_id"`
	Stats     domain.UserStats          `json:"stats"`
	Favorites []string                  `json:"favorites"`
	Recent    []string                  `json:"recent"`
	Badges    []achievement.BadgeStatus `json:"badges"`
}

func findBadge(badges []achievement.BadgeStatus, id string) (achievement.BadgeStatus, error) {
	for _, b := range badges {
		if b.Def.ID == id {
			return b, nil
		}
	}
	return achievement.BadgeStatus{}, errors.ErrAchievementNotFound(id)
}

func newProfileCommand(app *App) *cobra.Command {
	var badge string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show stats, recent games and the badge wall",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			if badge != "" {
				b, err := findBadge(s.Badges(), badge)
				if err != nil {
					return err
				}
				return app.render(b, func(w io.Writer) error {
					writeBadge(w, b)
					fmt.Fprintf(w, "  %s\n", b.Def.Description)
					return nil
				})
			}

			state := s.State()
			view := profileView{
				UserID:    s.UserID(),
				Stats:     s.Stats(),
				Favorites: state.Favorites,
				Recent:    state.Recent,
				Badges:    s.Badges(),
			}

			return app.render(view, func(w io.Writer) error {
				fmt.Fprintf(w, "Visitor %s\n", view.UserID)
				fmt.Fprintf(w, "Games played: %d  Favorites: %d\n", view.Stats.GamesPlayed, view.Stats.TotalFavorites)
				for _, c := range domain.GameCategories {
					if n := view.Stats.CategoryCount(c); n > 0 {
						fmt.Fprintf(w, "  %s: %d\n", c, n)
					}
				}
				if len(view.Recent) > 0 {
					fmt.Fprintf(w, "Recent: %v\n", view.Recent)
				}
				fmt.Fprintln(w, "Badges:")
				for _, b := range view.Badges {
					writeBadge(w, b)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&badge, "badge", "", "show a single badge by achievement id")
	return cmd
}

func writeBadge(w io.Writer, b achievement.BadgeStatus) {
	mark := " "
	if b.Earned {
		mark = "x"
	}
	fmt.Fprintf(w, "  [%s] %s %s (%d/%d)\n", mark, b.Def.Icon, b.Def.Title, b.Current, b.Target)
}

func newResetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear all progress for the visitor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			if err := s.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "Progress cleared for %s\n", s.UserID())
			return nil
		},
	}
}
