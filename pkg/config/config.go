package config

import "github.com/pbzzardari/PlayverseZone/pkg/domain"

// Config represents the catalog document loaded from catalog.json (or .yaml).
// This structure is parsed, schema-checked and validated during startup.
type Config struct {
	Games        []*domain.Game           `json:"games"`
	Achievements []*domain.AchievementDef `json:"achievements"`
	Categories   []domain.CategoryInfo    `json:"categories,omitempty"`
}

// DefaultCategories is the navigation list used when a catalog does not define one.
func DefaultCategories() []domain.CategoryInfo {
	return []domain.CategoryInfo{
		{Name: domain.CategoryAll, Icon: "🎮"},
		{Name: domain.CategoryIdle, Icon: "⏳"},
		{Name: domain.CategoryArcade, Icon: "🕹️"},
		{Name: domain.CategoryPuzzle, Icon: "🧩"},
		{Name: domain.CategoryAction, Icon: "💥"},
		{Name: domain.CategoryRacing, Icon: "🏎️"},
	}
}
