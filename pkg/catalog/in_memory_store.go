package catalog

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/pbzzardari/PlayverseZone/pkg/config"
	"github.com/pbzzardari/PlayverseZone/pkg/domain"
)

// InMemoryStore provides O(1) in-memory lookups over a validated catalog.
// Indexes are built at construction and swapped wholesale on reload.
type InMemoryStore struct {
	gamesByID        map[string]*domain.Game           // "game-id" -> Game
	achievementsByID map[string]*domain.AchievementDef // "achievement-id" -> def
	games            []*domain.Game                    // catalog order
	playable         []*domain.Game                    // catalog order, coming-soon excluded
	comingSoon       []*domain.Game
	achievements     []*domain.AchievementDef
	categories       []domain.CategoryInfo
	configPath       string // empty for the compiled-in catalog
	mu               sync.RWMutex
	logger           *slog.Logger
}

// NewInMemoryStore creates a new store from the provided catalog.
// The store is immediately built and ready for lookups.
//
// Parameters:
//   - cfg: Validated catalog
//   - configPath: Path to the catalog file (used for reload); empty disables reload
//   - logger: Structured logger for operational logging
func NewInMemoryStore(cfg *config.Config, configPath string, logger *slog.Logger) *InMemoryStore {
	store := &InMemoryStore{
		configPath: configPath,
		logger:     logger,
	}

	store.build(cfg)

	return store
}

// Default returns a store over the compiled-in catalog.
func Default(logger *slog.Logger) *InMemoryStore {
	return NewInMemoryStore(config.Default(), "", logger)
}

// Load reads, validates and indexes the catalog at path.
func Load(path string, logger *slog.Logger) (*InMemoryStore, error) {
	cfg, err := config.NewConfigLoader(path, logger).LoadConfig()
	if err != nil {
		return nil, err
	}
	return NewInMemoryStore(cfg, path, logger), nil
}

// build constructs all indexes from the catalog and replaces the current ones.
func (s *InMemoryStore) build(cfg *config.Config) {
	gamesByID := make(map[string]*domain.Game, len(cfg.Games))
	games := make([]*domain.Game, 0, len(cfg.Games))
	playable := make([]*domain.Game, 0, len(cfg.Games))
	comingSoon := make([]*domain.Game, 0)

	for _, game := range cfg.Games {
		gamesByID[game.ID] = game
		games = append(games, game)
		if game.IsPlayable() {
			playable = append(playable, game)
		} else {
			comingSoon = append(comingSoon, game)
		}
	}

	achievementsByID := make(map[string]*domain.AchievementDef, len(cfg.Achievements))
	achievements := make([]*domain.AchievementDef, 0, len(cfg.Achievements))
	for _, def := range cfg.Achievements {
		achievementsByID[def.ID] = def
		achievements = append(achievements, def)
	}

	categories := cfg.Categories
	if len(categories) == 0 {
		categories = config.DefaultCategories()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.gamesByID = gamesByID
	s.achievementsByID = achievementsByID
	s.games = games
	s.playable = playable
	s.comingSoon = comingSoon
	s.achievements = achievements
	s.categories = categories

	s.logger.Info("Catalog indexed",
		"games", len(games),
		"playable", len(playable),
		"coming_soon", len(comingSoon),
		"achievements", len(achievements),
	)
}

// FindByID retrieves a game by its unique ID.
// Time complexity: O(1)
func (s *InMemoryStore) FindByID(gameID string) (*domain.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.gamesByID[gameID]
	return game, ok
}

// All retrieves every game in catalog order.
// The slice is replaced, never modified, on reload, so callers may hold it.
func (s *InMemoryStore) All() []*domain.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.games
}

// Playable retrieves the launchable games in catalog order.
func (s *InMemoryStore) Playable() []*domain.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.playable
}

// ComingSoon retrieves the unreleased games in catalog order.
func (s *InMemoryStore) ComingSoon() []*domain.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.comingSoon
}

// Featured retrieves the playable games flagged as featured.
func (s *InMemoryStore) Featured() []*domain.Game {
	return s.filterPlayable(func(g *domain.Game) bool { return g.IsFeatured })
}

// Trending retrieves the playable games flagged as trending.
func (s *InMemoryStore) Trending() []*domain.Game {
	return s.filterPlayable(func(g *domain.Game) bool { return g.IsTrending })
}

// NewArrivals retrieves the playable games flagged as new.
func (s *InMemoryStore) NewArrivals() []*domain.Game {
	return s.filterPlayable(func(g *domain.Game) bool { return g.IsNew })
}

// ByCategory retrieves the playable games of a category.
// Time complexity: O(n) where n is the number of playable games
func (s *InMemoryStore) ByCategory(category domain.Category) []*domain.Game {
	if category == domain.CategoryAll || category == "" {
		return s.Playable()
	}
	return s.filterPlayable(func(g *domain.Game) bool { return g.Category == category })
}

func (s *InMemoryStore) filterPlayable(keep func(*domain.Game) bool) []*domain.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Game, 0, len(s.playable))
	for _, game := range s.playable {
		if keep(game) {
			out = append(out, game)
		}
	}
	return out
}

// Achievements retrieves the achievement definitions in configuration order.
func (s *InMemoryStore) Achievements() []*domain.AchievementDef {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.achievements
}

// FindAchievement retrieves an achievement definition by ID.
func (s *InMemoryStore) FindAchievement(achievementID string) (*domain.AchievementDef, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.achievementsByID[achievementID]
	return def, ok
}

// Categories retrieves the navigation list.
func (s *InMemoryStore) Categories() []domain.CategoryInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.categories
}

// ConfigPath returns the catalog file backing this store (empty for the compiled-in catalog).
func (s *InMemoryStore) ConfigPath() string {
	return s.configPath
}

// Reload reloads the store from the catalog file.
// On failure the current indexes are kept.
//
// Returns:
//   - error: If the store has no file, or the file cannot be read or validated
func (s *InMemoryStore) Reload() error {
	if s.configPath == "" {
		return errors.New("catalog has no backing file to reload")
	}

	loader := config.NewConfigLoader(s.configPath, s.logger)
	newConfig, err := loader.LoadConfig()
	if err != nil {
		return err
	}

	s.build(newConfig)

	s.logger.Info("Catalog reloaded successfully", "config_path", s.configPath)

	return nil
}
