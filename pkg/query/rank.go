package query

import (
	"sort"

	"github.com/pbzzardari/PlayverseZone/pkg/domain"
)

// Medal is the podium badge awarded to the top three ranked games.
type Medal string

const (
	MedalGold   Medal = "gold"
	MedalSilver Medal = "silver"
	MedalBronze Medal = "bronze"
)

var podiumMedals = [...]Medal{MedalGold, MedalSilver, MedalBronze}

// Placement is a ranked game with its podium position (0-based).
type Placement struct {
	Game     *domain.Game `json:"game"`
	Position int          `json:"position"`
	Medal    Medal        `json:"medal"`
	Plays    int64        `json:"plays"`
}

// Rank returns the playable games ordered by total plays (BasePlays plus the
// local play count), most played first. Ties keep catalog order.
func Rank(games []*domain.Game, playCounts map[string]int) []*domain.Game {
	out := make([]*domain.Game, 0, len(games))
	for _, g := range games {
		if g != nil && g.IsPlayable() {
			out = append(out, g)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalPlays(playCounts) > out[j].TotalPlays(playCounts)
	})
	return out
}

// Podium returns the medal placements for the first three entries of an
// already ranked list. Shorter lists yield fewer placements.
func Podium(ranked []*domain.Game, playCounts map[string]int) []Placement {
	n := min(len(ranked), len(podiumMedals))
	out := make([]Placement, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Placement{
			Game:     ranked[i],
			Position: i,
			Medal:    podiumMedals[i],
			Plays:    ranked[i].TotalPlays(playCounts),
		})
	}
	return out
}
