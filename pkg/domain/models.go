package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Category is the closed set of genres a game can belong to.
// CategoryAll is only meaningful as a filter value; no game carries it.
type Category string

const (
	CategoryAll    Category = "All"
	CategoryIdle   Category = "Idle"
	CategoryArcade Category = "Arcade"
	CategoryPuzzle Category = "Puzzle"
	CategoryAction Category = "Action"
	CategoryRacing Category = "Racing"
)

// GameCategories lists the concrete categories in navigation order.
var GameCategories = []Category{
	CategoryIdle,
	CategoryArcade,
	CategoryPuzzle,
	CategoryAction,
	CategoryRacing,
}

// IsValid returns true if the category can be assigned to a game.
func (c Category) IsValid() bool {
	switch c {
	case CategoryIdle, CategoryArcade, CategoryPuzzle, CategoryAction, CategoryRacing:
		return true
	default:
		return false
	}
}

// IsFilter returns true if the category is usable as a query filter ("All" included).
func (c Category) IsFilter() bool {
	return c == CategoryAll || c.IsValid()
}

// ParseCategory resolves a category name case-insensitively.
// The empty string resolves to CategoryAll.
func ParseCategory(name string) (Category, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CategoryAll, true
	}
	if strings.EqualFold(name, string(CategoryAll)) {
		return CategoryAll, true
	}
	for _, c := range GameCategories {
		if strings.EqualFold(name, string(c)) {
			return c, true
		}
	}
	return "", false
}

// CategoryInfo is a navigation entry: a filter value with its display icon.
type CategoryInfo struct {
	Name Category `json:"name"`
	Icon string   `json:"icon"`
}

// Game is a single catalog record. Records are immutable once loaded.
type Game struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Thumbnail    string          `json:"thumbnail"`
	Category     Category        `json:"category"`
	EmbedURL     string          `json:"embed_url"`
	IsFeatured   bool            `json:"is_featured,omitempty"`
	IsTrending   bool            `json:"is_trending,omitempty"`
	IsNew        bool            `json:"is_new,omitempty"`
	IsComingSoon bool            `json:"is_coming_soon,omitempty"`
	Tags         []string        `json:"tags"`
	DateAdded    Date            `json:"date_added"`
	BaseRating   decimal.Decimal `json:"base_rating"`
	BasePlays    int64           `json:"base_plays"`
}

// IsPlayable returns true if the game can be launched (it is not a coming-soon teaser).
func (g *Game) IsPlayable() bool {
	return !g.IsComingSoon
}

// ratingStep scales a user's star into the cosmetic rating adjustment (star/10).
var ratingStep = decimal.NewFromInt(10)

// DisplayedRating returns the rating shown for the game:
// BaseRating + ratings[id]/10 when the user rated it, BaseRating otherwise.
// The user star is a single-user nudge of at most +0.5, not an average.
func (g *Game) DisplayedRating(ratings map[string]int) decimal.Decimal {
	star, ok := ratings[g.ID]
	if !ok || star == 0 {
		return g.BaseRating
	}
	return g.BaseRating.Add(decimal.NewFromInt(int64(star)).Div(ratingStep))
}

// TotalPlays returns BasePlays plus the local play count for the game.
func (g *Game) TotalPlays(playCounts map[string]int) int64 {
	return g.BasePlays + int64(playCounts[g.ID])
}

// AuditedPlays is the "audited" figure shown next to the play total (total/15, rounded).
func (g *Game) AuditedPlays(playCounts map[string]int) int64 {
	return decimal.NewFromInt(g.TotalPlays(playCounts)).
		Div(decimal.NewFromInt(15)).
		Round(0).
		IntPart()
}
