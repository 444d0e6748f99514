package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/pbzzardari/PlayverseZone/pkg/common"
	"github.com/pbzzardari/PlayverseZone/pkg/config"
	"github.com/pbzzardari/PlayverseZone/pkg/domain"
	"github.com/pbzzardari/PlayverseZone/pkg/errors"
	"github.com/pbzzardari/PlayverseZone/pkg/query"
)

type gameRow struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Category     domain.Category `json:"category"`
	Rating       decimal.Decimal `json:"rating"`
	Plays        int64           `json:"plays"`
	AuditedPlays int64           `json:"audited_plays"`
	DateAdded    domain.Date     `json:"date_added"`
	Favorite     bool            `json:"favorite"`
	ComingSoon   bool            `json:"coming_soon,omitempty"`
}

func toRows(games []*domain.Game, state *domain.ProgressState) []gameRow {
	rows := make([]gameRow, 0, len(games))
	for _, g := range games {
		rows = append(rows, gameRow{
			ID:           g.ID,
			Title:        g.Title,
			Category:     g.Category,
			Rating:       g.DisplayedRating(state.Ratings),
			Plays:        g.TotalPlays(state.PlayCounts),
			AuditedPlays: g.AuditedPlays(state.PlayCounts),
			DateAdded:    g.DateAdded,
			Favorite:     state.IsFavorite(g.ID),
			ComingSoon:   g.IsComingSoon,
		})
	}
	return rows
}

func writeRows(w io.Writer, rows []gameRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tRATING\tPLAYS\tADDED\t")
	for _, r := range rows {
		title := r.Title
		if r.Favorite {
			title += " *"
		}
		rating := r.Rating.StringFixed(1)
		if r.ComingSoon {
			rating = "soon"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t\n", r.ID, title, r.Category, rating, r.Plays, r.DateAdded)
	}
	return tw.Flush()
}

func newGamesCommand(app *App) *cobra.Command {
	var search, category, sortBy, shelf string

	cmd := &cobra.Command{
		Use:   "games",
		Short: "List playable games, filtered and sorted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			state := s.State()

			var games []*domain.Game
			if shelf != "" {
				games, err = shelfGames(app, shelf)
				if err != nil {
					return err
				}
			} else {
				cat, ok := domain.ParseCategory(category)
				if !ok {
					return errors.ErrValidationFailed("category", fmt.Sprintf("unknown category %q", category))
				}
				by, ok := query.ParseSortBy(sortBy)
				if !ok && sortBy != "" {
					app.logger.Warn("Unknown sort key, using newest", "sort", sortBy)
				}
				games = query.Query(app.games.ByCategory(cat), query.Params{
					SearchTerm: search,
					Category:   cat,
					SortBy:     by,
				}, state.Ratings)
			}

			rows := toRows(games, state)
			return app.render(rows, func(w io.Writer) error {
				if len(rows) == 0 {
					fmt.Fprintln(w, "No games found.")
					if g, ok := query.DidYouMean(app.games.All(), search); ok {
						fmt.Fprintf(w, "Did you mean %q (%s)?\n", g.Title, g.ID)
					}
					return nil
				}
				return writeRows(w, rows)
			})
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "match title, category, description or tags")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Action|Puzzle|Racing|Idle|Arcade (default All)")
	cmd.Flags().StringVar(&sortBy, "sort", string(query.SortNewest), "newest|oldest|rating|alphabetical")
	cmd.Flags().StringVar(&shelf, "shelf", "", "featured|trending|new|coming-soon (ignores search and sort)")
	return cmd
}

func shelfGames(app *App, shelf string) ([]*domain.Game, error) {
	switch strings.ToLower(shelf) {
	case "featured":
		return app.games.Featured(), nil
	case "trending":
		return app.games.Trending(), nil
	case "new":
		return app.games.NewArrivals(), nil
	case "coming-soon":
		return app.games.ComingSoon(), nil
	default:
		return nil, errors.ErrValidationFailed("shelf", fmt.Sprintf("unknown shelf %q", shelf))
	}
}

func newRankCommand(app *App) *cobra.Command {
	var podiumOnly bool

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Show the leaderboard by total plays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			counts := s.State().PlayCounts

			ranked := query.Rank(app.games.All(), counts)
			if podiumOnly {
				podium := query.Podium(ranked, counts)
				return app.render(podium, func(w io.Writer) error {
					for _, p := range podium {
						fmt.Fprintf(w, "%-6s %s (%d plays)\n", p.Medal, p.Game.Title, p.Plays)
					}
					return nil
				})
			}

			rows := toRows(ranked, s.State())
			return app.render(rows, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "#\tTITLE\tPLAYS\tAUDITED\t")
				for i, r := range rows {
					fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t\n", i+1, r.Title, r.Plays, r.AuditedPlays)
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().BoolVar(&podiumOnly, "podium", false, "only show the gold, silver and bronze places")
	return cmd
}

func newMysteryCommand(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "mystery",
		Short: "Show the daily mystery pick",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := common.TodayKey()
			if date != "" {
				d, err := time.ParseInLocation(time.DateOnly, date, time.Local)
				if err != nil {
					return errors.ErrValidationFailed("date", "expected YYYY-MM-DD")
				}
				key = common.DateKey(d)
			}

			game, ok := query.DailyMysteryPick(app.games.All(), key)
			if !ok {
				return errors.ErrConfigInvalid("catalog has no playable games")
			}

			result := struct {
				DateKey string       `json:"date_key"`
				Game    *domain.Game `json:"game"`
			}{key, game}
			return app.render(result, func(w io.Writer) error {
				fmt.Fprintf(w, "%s: %s (%s)\n", key, game.Title, game.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to pick for, YYYY-MM-DD (default today)")
	return cmd
}

func newSuggestCommand(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "suggest <term>",
		Short: "Show search box suggestions for a term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := args[0]

			if sc, ok := query.LookupShortcut(term); ok {
				return app.render(sc, func(w io.Writer) error {
					if sc.Kind == query.ShortcutCountdown {
						fmt.Fprintln(w, "-> countdown")
						return nil
					}
					fmt.Fprintf(w, "-> %s\n", sc.GameID)
					return nil
				})
			}

			games := query.Suggestions(app.games.All(), term, limit)
			return app.render(games, func(w io.Writer) error {
				for _, g := range games {
					fmt.Fprintf(w, "%s\t%s\n", g.ID, g.Title)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", query.DefaultSuggestionLimit, "maximum number of suggestions")
	return cmd
}

func newValidateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <catalog-file>",
		Short: "Check a catalog file against the schema and catalog rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfigLoader(args[0], app.logger).LoadConfig()
			if err != nil {
				return err
			}

			summary := struct {
				Games        int `json:"games"`
				Achievements int `json:"achievements"`
			}{len(cfg.Games), len(cfg.Achievements)}
			return app.render(summary, func(w io.Writer) error {
				fmt.Fprintf(w, "%s OK: %d games, %d achievements\n", args[0], summary.Games, summary.Achievements)
				return nil
			})
		},
	}
}
