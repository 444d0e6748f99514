package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/pbzzardari/PlayverseZone/pkg/domain"
	"github.com/pbzzardari/PlayverseZone/pkg/errors"
)

// Key names one independently persisted field of ProgressState.
type Key string

const (
	KeyFavorites          Key = "playverse_favorites"
	KeyRecent             Key = "playverse_recent"
	KeyRatings            Key = "playverse_ratings"
	KeyPlayCounts         Key = "playverse_play_counts"
	KeyPlayedHistory      Key = "playverse_played_history"
	KeyEarnedAchievements Key = "playverse_earned_achievements"
)

// Keys lists every persisted key in a fixed order.
var Keys = []Key{
	KeyFavorites,
	KeyRecent,
	KeyRatings,
	KeyPlayCounts,
	KeyPlayedHistory,
	KeyEarnedAchievements,
}

// IsValid returns true if the key is one of Keys.
func (k Key) IsValid() bool {
	return slices.Contains(Keys, k)
}

// Encode serializes each field of state to its own JSON value.
func Encode(state *domain.ProgressState) (map[Key][]byte, error) {
	s := state.Clone()

	fields := map[Key]any{
		KeyFavorites:          s.Favorites,
		KeyRecent:             s.Recent,
		KeyRatings:            s.Ratings,
		KeyPlayCounts:         s.PlayCounts,
		KeyPlayedHistory:      s.PlayedHistory,
		KeyEarnedAchievements: s.EarnedAchievements,
	}

	out := make(map[Key][]byte, len(fields))
	for key, v := range fields {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", key, err)
		}
		out[key] = data
	}
	return out, nil
}

// Decode rebuilds a ProgressState from raw key values.
// Missing keys take their empty default. A value that does not parse, or that
// breaks a ProgressState invariant, is replaced by its default and logged at warn.
// Unknown keys are ignored.
func Decode(values map[Key][]byte, logger *slog.Logger) *domain.ProgressState {
	state := domain.NewProgressState()

	for _, key := range Keys {
		raw, ok := values[key]
		if !ok || len(strings.TrimSpace(string(raw))) == 0 {
			continue
		}
		if err := decodeKey(state, key, raw); err != nil {
			logger.Warn("Discarding malformed persisted value",
				"key", string(key),
				"error", errors.ErrMalformedState(string(key), err),
			)
		}
	}

	state.Normalize()
	return state
}

func decodeKey(state *domain.ProgressState, key Key, raw []byte) error {
	switch key {
	case KeyFavorites:
		return decodeIDSet(raw, &state.Favorites)
	case KeyPlayedHistory:
		return decodeIDSet(raw, &state.PlayedHistory)
	case KeyEarnedAchievements:
		return decodeIDSet(raw, &state.EarnedAchievements)

	case KeyRecent:
		var recent []string
		if err := decodeIDSet(raw, &recent); err != nil {
			return err
		}
		if len(recent) > domain.MaxRecent {
			recent = recent[:domain.MaxRecent]
		}
		state.Recent = recent
		return nil

	case KeyRatings:
		var ratings map[string]int
		if err := json.Unmarshal(raw, &ratings); err != nil {
			return err
		}
		for id, star := range ratings {
			if star < domain.MinStar || star > domain.MaxStar {
				return fmt.Errorf("rating for %s out of range: %d", id, star)
			}
		}
		state.Ratings = ratings
		return nil

	case KeyPlayCounts:
		var counts map[string]int
		if err := json.Unmarshal(raw, &counts); err != nil {
			return err
		}
		for id, n := range counts {
			if n < 0 {
				return fmt.Errorf("play count for %s is negative: %d", id, n)
			}
		}
		state.PlayCounts = counts
		return nil

	default:
		return fmt.Errorf("unknown key %s", key)
	}
}

// decodeIDSet decodes a JSON array of ids, dropping duplicates but keeping first-seen order.
func decodeIDSet(raw []byte, dst *[]string) error {
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return err
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	*dst = out
	return nil
}
