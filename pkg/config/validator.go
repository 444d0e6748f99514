package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pbzzardari/PlayverseZone/pkg/domain"
)

var (
	minRating = decimal.Zero
	maxRating = decimal.NewFromInt(5)
)

// Validator validates catalog documents.
// It ensures all business rules are met before the catalog is served.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate performs comprehensive validation of the catalog.
// It checks for:
// - At least one game exists and at least one of them is playable
// - All game IDs are unique
// - All achievement IDs are unique
// - Every game and achievement is well formed
// - Navigation categories are known filter values
//
// Returns an error describing the first validation failure encountered.
func (v *Validator) Validate(config *Config) error {
	if len(config.Games) == 0 {
		return errors.New("catalog must have at least one game")
	}

	gameIDs := make(map[string]bool)
	playable := 0
	for i, game := range config.Games {
		if game == nil {
			return fmt.Errorf("game at index %d is empty", i)
		}
		if err := v.validateGame(game); err != nil {
			return fmt.Errorf("invalid game '%s': %w", game.ID, err)
		}
		if gameIDs[game.ID] {
			return fmt.Errorf("duplicate game ID: %s", game.ID)
		}
		gameIDs[game.ID] = true
		if game.IsPlayable() {
			playable++
		}
	}
	if playable == 0 {
		return errors.New("catalog must have at least one playable game")
	}

	achievementIDs := make(map[string]bool)
	for i, def := range config.Achievements {
		if def == nil {
			return fmt.Errorf("achievement at index %d is empty", i)
		}
		if err := v.validateAchievement(def); err != nil {
			return fmt.Errorf("invalid achievement '%s': %w", def.ID, err)
		}
		if achievementIDs[def.ID] {
			return fmt.Errorf("duplicate achievement ID: %s", def.ID)
		}
		achievementIDs[def.ID] = true
	}

	seen := make(map[domain.Category]bool)
	for _, info := range config.Categories {
		if !info.Name.IsFilter() {
			return fmt.Errorf("unknown navigation category '%s'", info.Name)
		}
		if seen[info.Name] {
			return fmt.Errorf("duplicate navigation category: %s", info.Name)
		}
		seen[info.Name] = true
	}

	return nil
}

// validateGame validates a single game record.
func (v *Validator) validateGame(game *domain.Game) error {
	if game.ID == "" {
		return errors.New("game ID cannot be empty")
	}
	if strings.TrimSpace(game.Title) == "" {
		return errors.New("game title cannot be empty")
	}
	if !game.Category.IsValid() {
		return fmt.Errorf("invalid category '%s' (must be one of Idle, Arcade, Puzzle, Action, Racing)", game.Category)
	}
	if game.IsPlayable() && game.EmbedURL == "" {
		return errors.New("embed_url cannot be empty for a playable game")
	}
	if game.DateAdded.IsZero() {
		return errors.New("date_added cannot be empty")
	}
	if game.BaseRating.LessThan(minRating) || game.BaseRating.GreaterThan(maxRating) {
		return fmt.Errorf("base_rating %s must be between 0 and 5", game.BaseRating)
	}
	if game.BasePlays < 0 {
		return errors.New("base_plays cannot be negative")
	}
	for _, tag := range game.Tags {
		if strings.TrimSpace(tag) == "" {
			return errors.New("tags cannot contain empty values")
		}
	}
	return nil
}

// validateAchievement validates a single achievement definition.
func (v *Validator) validateAchievement(def *domain.AchievementDef) error {
	if def.ID == "" {
		return errors.New("achievement ID cannot be empty")
	}
	if strings.TrimSpace(def.Title) == "" {
		return errors.New("achievement title cannot be empty")
	}
	if def.Requirement == nil {
		return errors.New("requirement cannot be empty")
	}
	if def.Requirement.Threshold() <= 0 {
		return errors.New("requirement value must be positive")
	}
	if req, ok := def.Requirement.(domain.CategoryCount); ok && !req.Category.IsValid() {
		return fmt.Errorf("category_count requirement references unknown category '%s'", req.Category)
	}
	return nil
}
