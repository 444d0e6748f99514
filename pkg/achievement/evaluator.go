// Package achievement derives unlocked badges from a visitor's stats.
package achievement

import (
	"fmt"
	"slices"

	"github.com/pbzzardari/PlayverseZone/pkg/domain"
)

// Evaluate returns the IDs of definitions not in alreadyEarned whose requirement
// holds for stats, in definition order.
//
// Earned achievements are append-only: a definition that is already earned is
// never re-tested, so a later drop in TotalFavorites cannot retract it.
func Evaluate(stats domain.UserStats, alreadyEarned []string, defs []*domain.AchievementDef) []string {
	newlyEarned := make([]string, 0)

	for _, def := range defs {
		if def == nil || slices.Contains(alreadyEarned, def.ID) {
			continue
		}
		if Met(def.Requirement, stats) {
			newlyEarned = append(newlyEarned, def.ID)
		}
	}

	return newlyEarned
}

// Met reports whether a single requirement holds for stats.
// A nil requirement is never met.
func Met(req domain.Requirement, stats domain.UserStats) bool {
	switch r := req.(type) {
	case domain.PlayCount:
		return stats.GamesPlayed >= r.Value
	case domain.CategoryCount:
		return stats.CategoryCount(r.Category) >= r.Value
	case domain.FavoriteCount:
		return stats.TotalFavorites >= r.Value
	case nil:
		return false
	default:
		panic(fmt.Sprintf("achievement: unhandled requirement %T", req))
	}
}

// Progress returns how far stats are toward req, capped at the threshold.
func Progress(req domain.Requirement, stats domain.UserStats) (current, target int) {
	switch r := req.(type) {
	case domain.PlayCount:
		current = stats.GamesPlayed
	case domain.CategoryCount:
		current = stats.CategoryCount(r.Category)
	case domain.FavoriteCount:
		current = stats.TotalFavorites
	case nil:
		return 0, 0
	default:
		panic(fmt.Sprintf("achievement: unhandled requirement %T", req))
	}

	target = req.Threshold()
	return min(current, target), target
}

// Merge appends newly earned IDs to earned, skipping any already present.
// The result keeps earned's order followed by the new IDs.
func Merge(earned, newlyEarned []string) []string {
	out := slices.Clone(earned)
	if out == nil {
		out = []string{}
	}
	for _, id := range newlyEarned {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// BadgeStatus is one row of the profile badge wall.
type BadgeStatus struct {
	Def     *domain.AchievementDef `json:"achievement"`
	Earned  bool                   `json:"earned"`
	Current int                    `json:"current"`
	Target  int                    `json:"target"`
}

// Summary lists every definition with its earned flag and progress, in definition order.
func Summary(defs []*domain.AchievementDef, earned []string, stats domain.UserStats) []BadgeStatus {
	out := make([]BadgeStatus, 0, len(defs))
	for _, def := range defs {
		if def == nil {
			continue
		}
		current, target := Progress(def.Requirement, stats)
		isEarned := slices.Contains(earned, def.ID)
		if isEarned {
			current = target
		}
		out = append(out, BadgeStatus{
			Def:     def,
			Earned:  isEarned,
			Current: current,
			Target:  target,
		})
	}
	return out
}
