package domain

import (
	"maps"
	"slices"
)

const (
	// MaxRecent caps the recently played list.
	MaxRecent = 8

	// MinStar and MaxStar bound a user rating.
	MinStar = 1
	MaxStar = 5
)

// ProgressState is one visitor's mutable progress.
// Sets are stored as insertion-ordered slices so persisted values stay stable.
type ProgressState struct {
	Favorites          []string       `json:"favorites"`
	Recent             []string       `json:"recent"`
	Ratings            map[string]int `json:"ratings"`
	PlayCounts         map[string]int `json:"play_counts"`
	PlayedHistory      []string       `json:"played_history"`
	EarnedAchievements []string       `json:"earned_achievements"`
}

// NewProgressState returns an empty state with all collections allocated.
func NewProgressState() *ProgressState {
	return &ProgressState{
		Favorites:          []string{},
		Recent:             []string{},
		Ratings:            map[string]int{},
		PlayCounts:         map[string]int{},
		PlayedHistory:      []string{},
		EarnedAchievements: []string{},
	}
}

// Normalize replaces nil collections with empty ones.
func (p *ProgressState) Normalize() {
	if p.Favorites == nil {
		p.Favorites = []string{}
	}
	if p.Recent == nil {
		p.Recent = []string{}
	}
	if p.Ratings == nil {
		p.Ratings = map[string]int{}
	}
	if p.PlayCounts == nil {
		p.PlayCounts = map[string]int{}
	}
	if p.PlayedHistory == nil {
		p.PlayedHistory = []string{}
	}
	if p.EarnedAchievements == nil {
		p.EarnedAchievements = []string{}
	}
}

// Clone returns a deep copy.
func (p *ProgressState) Clone() *ProgressState {
	c := &ProgressState{
		Favorites:          slices.Clone(p.Favorites),
		Recent:             slices.Clone(p.Recent),
		Ratings:            maps.Clone(p.Ratings),
		PlayCounts:         maps.Clone(p.PlayCounts),
		PlayedHistory:      slices.Clone(p.PlayedHistory),
		EarnedAchievements: slices.Clone(p.EarnedAchievements),
	}
	c.Normalize()
	return c
}

// IsFavorite returns true if the game is in favorites.
func (p *ProgressState) IsFavorite(gameID string) bool {
	return slices.Contains(p.Favorites, gameID)
}

// HasPlayed returns true if the game was ever played.
func (p *ProgressState) HasPlayed(gameID string) bool {
	return slices.Contains(p.PlayedHistory, gameID)
}

// HasEarned returns true if the achievement is already earned.
func (p *ProgressState) HasEarned(achievementID string) bool {
	return slices.Contains(p.EarnedAchievements, achievementID)
}

// UserStats is derived from ProgressState and the catalog; it is never stored.
type UserStats struct {
	GamesPlayed    int              `json:"games_played"`
	CategoryStats  map[Category]int `json:"category_stats"`
	TotalFavorites int              `json:"total_favorites"`
}

// CategoryCount returns the number of distinct played games in c (0 when absent).
func (s UserStats) CategoryCount(c Category) int {
	return s.CategoryStats[c]
}
