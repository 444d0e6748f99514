package query

import (
	"strings"

	"github.com/schollz/closestmatch"

	"github.com/pbzzardari/PlayverseZone/pkg/domain"
)

// DefaultSuggestionLimit is the size of the search box dropdown.
const DefaultSuggestionLimit = 5

// Suggestions returns up to limit games whose title, tags or description contain
// term, case-insensitively, in catalog order. Unlike Query it searches the whole
// catalog, coming-soon teasers included. An empty term yields no suggestions;
// limit <= 0 uses DefaultSuggestionLimit.
func Suggestions(games []*domain.Game, term string, limit int) []*domain.Game {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	lower := strings.ToLower(term)
	out := make([]*domain.Game, 0, limit)
	if lower == "" {
		return out
	}

	for _, g := range games {
		if len(out) == limit {
			break
		}
		if g == nil {
			continue
		}
		if suggestionMatch(g, lower) {
			out = append(out, g)
		}
	}
	return out
}

// suggestionMatch is Matches without the category name.
func suggestionMatch(g *domain.Game, lowerTerm string) bool {
	if strings.Contains(strings.ToLower(g.Title), lowerTerm) {
		return true
	}
	for _, tag := range g.Tags {
		if strings.Contains(strings.ToLower(tag), lowerTerm) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(g.Description), lowerTerm)
}

// ShortcutKind identifies what a hidden search word opens.
type ShortcutKind string

const (
	ShortcutCountdown ShortcutKind = "countdown"
	ShortcutGame      ShortcutKind = "game"
)

// Shortcut is the destination of a hidden search word.
type Shortcut struct {
	Kind   ShortcutKind `json:"kind"`
	GameID string       `json:"game_id,omitempty"`
}

var shortcuts = map[string]Shortcut{
	"2026":      {Kind: ShortcutCountdown},
	"countdown": {Kind: ShortcutCountdown},
	"pubg":      {Kind: ShortcutGame, GameID: "pubg-native-beta"},
	"battle":    {Kind: ShortcutGame, GameID: "pubg-native-beta"},
	"hover":     {Kind: ShortcutGame, GameID: "hoverboard-racers-vr"},
	"future":    {Kind: ShortcutGame, GameID: "hoverboard-racers-vr"},
}

// LookupShortcut resolves a hidden search word. The whole term must match,
// case-insensitively.
func LookupShortcut(term string) (Shortcut, bool) {
	s, ok := shortcuts[strings.ToLower(strings.TrimSpace(term))]
	return s, ok
}

// DidYouMean returns the playable game whose title is closest to term, for
// queries that came back empty. Matching compares character bigrams.
func DidYouMean(games []*domain.Game, term string) (*domain.Game, bool) {
	lower := strings.ToLower(strings.TrimSpace(term))
	if lower == "" {
		return nil, false
	}

	byTitle := make(map[string]*domain.Game, len(games))
	titles := make([]string, 0, len(games))
	for _, g := range games {
		if g == nil || !g.IsPlayable() {
			continue
		}
		title := strings.ToLower(g.Title)
		if _, dup := byTitle[title]; dup {
			continue
		}
		byTitle[title] = g
		titles = append(titles, title)
	}
	if len(titles) == 0 {
		return nil, false
	}

	best := closestmatch.New(titles, []int{2}).Closest(lower)
	g, ok := byTitle[best]
	return g, ok
}
