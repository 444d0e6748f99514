// Package progress applies visitor actions (favorite, play, rate) to a
// ProgressState and derives the statistics achievements are judged on.
package progress

import (
	"slices"

	"github.com/pbzzardari/PlayverseZone/pkg/catalog"
	"github.com/pbzzardari/PlayverseZone/pkg/domain"
	"github.com/pbzzardari/PlayverseZone/pkg/errors"
)

// Tracker mutates one explicit ProgressState. It does not check game IDs
// against the catalog; Session does that.
// It is not safe for concurrent use.
type Tracker struct {
	state *domain.ProgressState
}

// NewTracker wraps state. A nil state starts empty.
func NewTracker(state *domain.ProgressState) *Tracker {
	if state == nil {
		state = domain.NewProgressState()
	}
	state.Normalize()
	return &Tracker{state: state}
}

// State returns the tracked state. Callers must not keep it across mutations
// if they need a stable snapshot; use Clone for that.
func (t *Tracker) State() *domain.ProgressState {
	return t.state
}

// ToggleFavorite adds gameID to favorites, or removes it if present.
// Returns whether the game is a favorite afterwards.
func (t *Tracker) ToggleFavorite(gameID string) bool {
	if i := slices.Index(t.state.Favorites, gameID); i >= 0 {
		t.state.Favorites = slices.Delete(t.state.Favorites, i, i+1)
		return false
	}
	t.state.Favorites = append(t.state.Favorites, gameID)
	return true
}

// RecordPlay registers a launch of gameID: it moves the game to the front of
// the recent list, marks it played and bumps its play count.
func (t *Tracker) RecordPlay(gameID string) {
	recent := make([]string, 0, domain.MaxRecent)
	recent = append(recent, gameID)
	for _, id := range t.state.Recent {
		if len(recent) == domain.MaxRecent {
			break
		}
		if id != gameID {
			recent = append(recent, id)
		}
	}
	t.state.Recent = recent

	if !t.state.HasPlayed(gameID) {
		t.state.PlayedHistory = append(t.state.PlayedHistory, gameID)
	}
	t.state.PlayCounts[gameID]++
}

// SetRating stores the visitor's star rating for gameID, replacing any earlier one.
// Stars outside 1..5 are rejected and leave the state untouched.
func (t *Tracker) SetRating(gameID string, star int) error {
	if star < domain.MinStar || star > domain.MaxStar {
		return errors.ErrInvalidRating(gameID, star)
	}
	t.state.Ratings[gameID] = star
	return nil
}

// Stats derives UserStats from state. Played IDs the catalog no longer knows
// are counted in GamesPlayed but not in any category.
func Stats(state *domain.ProgressState, games catalog.Store) domain.UserStats {
	stats := domain.UserStats{
		GamesPlayed:    len(state.PlayedHistory),
		CategoryStats:  make(map[domain.Category]int),
		TotalFavorites: len(state.Favorites),
	}

	seen := make(map[string]struct{}, len(state.PlayedHistory))
	for _, id := range state.PlayedHistory {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		game, ok := games.FindByID(id)
		if !ok {
			continue
		}
		stats.CategoryStats[game.Category]++
	}

	return stats
}
