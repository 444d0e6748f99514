package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// RequirementType is the wire tag of a requirement variant.
type RequirementType string

const (
	// RequirementPlayCount is met when the number of distinct games played reaches Value.
	RequirementPlayCount RequirementType = "play_count"

	// RequirementCategoryCount is met when the number of distinct games played
	// in Category reaches Value.
	RequirementCategoryCount RequirementType = "category_count"

	// RequirementFavoriteCount is met when the number of favorites reaches Value.
	RequirementFavoriteCount RequirementType = "favorite_count"
)

// IsValid returns true if the requirement type is known.
func (t RequirementType) IsValid() bool {
	switch t {
	case RequirementPlayCount, RequirementCategoryCount, RequirementFavoriteCount:
		return true
	default:
		return false
	}
}

// Requirement is the condition that unlocks an achievement.
// The set of implementations is closed: PlayCount, CategoryCount and FavoriteCount.
type Requirement interface {
	Type() RequirementType
	Threshold() int
	sealed()
}

// PlayCount requires Value distinct games played.
type PlayCount struct {
	Value int
}

// CategoryCount requires Value distinct games played in Category.
type CategoryCount struct {
	Category Category
	Value    int
}

// FavoriteCount requires Value games in favorites.
type FavoriteCount struct {
	Value int
}

func (PlayCount) Type() RequirementType     { return RequirementPlayCount }
func (CategoryCount) Type() RequirementType { return RequirementCategoryCount }
func (FavoriteCount) Type() RequirementType { return RequirementFavoriteCount }

func (r PlayCount) Threshold() int     { return r.Value }
func (r CategoryCount) Threshold() int { return r.Value }
func (r FavoriteCount) Threshold() int { return r.Value }

func (PlayCount) sealed()     {}
func (CategoryCount) sealed() {}
func (FavoriteCount) sealed() {}

// RequirementSpec is the tagged wire form of a Requirement:
//
//	{"type": "category_count", "value": 3, "category": "Idle"}
type RequirementSpec struct {
	Type     RequirementType `json:"type"`
	Value    int             `json:"value"`
	Category Category        `json:"category,omitempty"`
}

// Requirement converts the wire form into its variant.
func (s RequirementSpec) Requirement() (Requirement, error) {
	switch s.Type {
	case RequirementPlayCount:
		return PlayCount{Value: s.Value}, nil
	case RequirementCategoryCount:
		if s.Category == "" {
			return nil, errors.New("category_count requirement needs a category")
		}
		return CategoryCount{Category: s.Category, Value: s.Value}, nil
	case RequirementFavoriteCount:
		return FavoriteCount{Value: s.Value}, nil
	default:
		return nil, fmt.Errorf("unknown requirement type '%s'", s.Type)
	}
}

// SpecOf returns the wire form of a requirement.
func SpecOf(r Requirement) RequirementSpec {
	switch req := r.(type) {
	case PlayCount:
		return RequirementSpec{Type: RequirementPlayCount, Value: req.Value}
	case CategoryCount:
		return RequirementSpec{Type: RequirementCategoryCount, Value: req.Value, Category: req.Category}
	case FavoriteCount:
		return RequirementSpec{Type: RequirementFavoriteCount, Value: req.Value}
	default:
		return RequirementSpec{}
	}
}

// AchievementDef is a static badge definition.
type AchievementDef struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Requirement Requirement `json:"-"`
}

type achievementWire struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Icon        string           `json:"icon"`
	Requirement *RequirementSpec `json:"requirement"`
}

// MarshalJSON writes the requirement in its tagged form.
func (a AchievementDef) MarshalJSON() ([]byte, error) {
	w := achievementWire{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Icon:        a.Icon,
	}
	if a.Requirement != nil {
		spec := SpecOf(a.Requirement)
		w.Requirement = &spec
	}
	return json.Marshal(w)
}

// UnmarshalJSON reads the tagged requirement form. Unknown tags are an error.
func (a *AchievementDef) UnmarshalJSON(data []byte) error {
	var w achievementWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Requirement == nil {
		return fmt.Errorf("achievement '%s' has no requirement", w.ID)
	}
	req, err := w.Requirement.Requirement()
	if err != nil {
		return fmt.Errorf("achievement '%s': %w", w.ID, err)
	}
	*a = AchievementDef{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Icon:        w.Icon,
		Requirement: req,
	}
	return nil
}
