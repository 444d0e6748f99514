// Package query filters, sorts and ranks catalog records.
// Every function is pure: inputs are never modified and results are fresh slices.
package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pbzzardari/PlayverseZone/pkg/domain"
)

// SortBy selects the ordering applied by Query.
type SortBy string

const (
	SortNewest       SortBy = "Newest"
	SortOldest       SortBy = "Oldest"
	SortRating       SortBy = "Rating"
	SortAlphabetical SortBy = "Alphabetical"
)

// SortOptions lists the sort keys in menu order.
var SortOptions = []SortBy{SortNewest, SortOldest, SortRating, SortAlphabetical}

// IsValid returns true if the sort key is known.
// Query accepts unknown keys too and treats them as SortNewest.
func (s SortBy) IsValid() bool {
	switch s {
	case SortNewest, SortOldest, SortRating, SortAlphabetical:
		return true
	default:
		return false
	}
}

// ParseSortBy resolves a sort key case-insensitively. Unknown or empty names
// resolve to SortNewest with ok=false.
func ParseSortBy(name string) (SortBy, bool) {
	for _, s := range SortOptions {
		if strings.EqualFold(strings.TrimSpace(name), string(s)) {
			return s, true
		}
	}
	return SortNewest, false
}

// Params describes one catalog query.
type Params struct {
	SearchTerm string
	Category   domain.Category // empty means CategoryAll
	SortBy     SortBy          // unknown means SortNewest
}

// Query returns the playable games matching p, sorted by p.SortBy.
//
// Coming-soon records are always excluded. The search term matches
// case-insensitively against the title, the category name, the description
// or any tag; an empty term matches everything. ratings supplies the user's
// stars for SortRating and may be nil.
func Query(games []*domain.Game, p Params, ratings map[string]int) []*domain.Game {
	term := strings.ToLower(p.SearchTerm)
	category := p.Category
	if category == "" {
		category = domain.CategoryAll
	}

	out := make([]*domain.Game, 0, len(games))
	for _, g := range games {
		if g == nil || g.IsComingSoon {
			continue
		}
		if !Matches(g, term) {
			continue
		}
		if category != domain.CategoryAll && g.Category != category {
			continue
		}
		out = append(out, g)
	}

	sortGames(out, p.SortBy, ratings)
	return out
}

// Matches reports whether g matches an already lower-cased search term.
func Matches(g *domain.Game, lowerTerm string) bool {
	if lowerTerm == "" {
		return true
	}
	if strings.Contains(strings.ToLower(g.Title), lowerTerm) ||
		strings.Contains(strings.ToLower(string(g.Category)), lowerTerm) ||
		strings.Contains(strings.ToLower(g.Description), lowerTerm) {
		return true
	}
	for _, tag := range g.Tags {
		if strings.Contains(strings.ToLower(tag), lowerTerm) {
			return true
		}
	}
	return false
}

// sortGames sorts in place. All orderings are stable so ties keep catalog order.
func sortGames(games []*domain.Game, by SortBy, ratings map[string]int) {
	switch by {
	case SortOldest:
		sort.SliceStable(games, func(i, j int) bool {
			return games[i].DateAdded.Compare(games[j].DateAdded) < 0
		})

	case SortRating:
		sort.SliceStable(games, func(i, j int) bool {
			return games[i].DisplayedRating(ratings).GreaterThan(games[j].DisplayedRating(ratings))
		})

	case SortAlphabetical:
		// Collators keep internal buffers; one per call keeps Query safe for concurrent use.
		c := collate.New(language.English)
		sort.SliceStable(games, func(i, j int) bool {
			return c.CompareString(games[i].Title, games[j].Title) < 0
		})

	default:
		sort.SliceStable(games, func(i, j int) bool {
			return games[i].DateAdded.Compare(games[j].DateAdded) > 0
		})
	}
}
