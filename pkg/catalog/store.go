package catalog

import "github.com/pbzzardari/PlayverseZone/pkg/domain"

// Store provides read-only lookups over the game catalog and achievement definitions.
// All lookups are thread-safe. Returned records must not be mutated.
type Store interface {
	// FindByID retrieves a game by its unique ID.
	// Returns (nil, false) if the game does not exist.
	// Time complexity: O(1)
	FindByID(gameID string) (*domain.Game, bool)

	// All retrieves every game in catalog order, coming-soon teasers included.
	All() []*domain.Game

	// Playable retrieves the games that can be launched, in catalog order.
	Playable() []*domain.Game

	// ComingSoon retrieves the announced but unreleased games, in catalog order.
	ComingSoon() []*domain.Game

	// Featured, Trending and NewArrivals retrieve the playable games carrying the flag.
	Featured() []*domain.Game
	Trending() []*domain.Game
	NewArrivals() []*domain.Game

	// ByCategory retrieves the playable games of a category.
	// CategoryAll returns the same as Playable.
	ByCategory(category domain.Category) []*domain.Game

	// Achievements retrieves the achievement definitions in configuration order.
	Achievements() []*domain.AchievementDef

	// FindAchievement retrieves an achievement definition by ID.
	FindAchievement(achievementID string) (*domain.AchievementDef, bool)

	// Categories retrieves the navigation list, "All" first.
	Categories() []domain.CategoryInfo

	// Reload rebuilds the store from its catalog file.
	// Returns error if the file cannot be read or is invalid; the previous
	// catalog stays in place in that case.
	Reload() error
}
