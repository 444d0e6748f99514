package progress

import (
	"context"
	"log/slog"
	"time"

	"github.com/pbzzardari/PlayverseZone/pkg/achievement"
	"github.com/pbzzardari/PlayverseZone/pkg/catalog"
	"github.com/pbzzardari/PlayverseZone/pkg/domain"
	"github.com/pbzzardari/PlayverseZone/pkg/errors"
	"github.com/pbzzardari/PlayverseZone/pkg/notify"
	"github.com/pbzzardari/PlayverseZone/pkg/store"
)

// Session binds one visitor's progress to the catalog, a store and a notifier.
//
// Every mutation validates the game ID, applies the change to a copy of the
// state, re-evaluates achievements, persists the copy and only then makes it
// current. Unlock notifications go out after a successful save; a failed
// notification is logged and never fails the action.
//
// A Session is not safe for concurrent use.
type Session struct {
	userID   string
	catalog  catalog.Store
	store    store.ProgressStore
	notifier notify.AchievementNotifier
	logger   *slog.Logger
	now      func() time.Time

	state *domain.ProgressState
}

// SessionOption customizes a Session.
type SessionOption func(*Session)

// WithNotifier sets where unlocks are announced. Defaults to notify.Nop.
func WithNotifier(n notify.AchievementNotifier) SessionOption {
	return func(s *Session) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithClock overrides the time source used to stamp unlocks.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSession loads userID's progress from ps and returns a session over it.
// Achievements the loaded progress already qualifies for are granted and
// announced before the session is returned.
func NewSession(ctx context.Context, userID string, games catalog.Store, ps store.ProgressStore, logger *slog.Logger, opts ...SessionOption) (*Session, error) {
	if userID == "" {
		return nil, errors.ErrValidationFailed("user_id", "must not be empty")
	}

	s := &Session{
		userID:   userID,
		catalog:  games,
		store:    ps,
		notifier: notify.Nop{},
		logger:   logger.With("user_id", userID),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	state, err := ps.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		state = domain.NewProgressState()
	}
	state.Normalize()
	s.state = state
	s.backfill(ctx)

	return s, nil
}

// backfill grants achievements that were earned but never recorded, e.g. by
// progress written before a definition existed. A failed save keeps the
// loaded state and is retried on the next load.
func (s *Session) backfill(ctx context.Context) {
	next := s.state.Clone()
	newly := s.evaluate(next)
	if len(newly) == 0 {
		return
	}
	if err := s.store.Save(ctx, s.userID, next); err != nil {
		s.logger.Warn("Failed to save backfilled achievements",
			"achievements", newly,
			"error", err)
		return
	}
	s.state = next
	s.logger.Info("Backfilled achievements", "achievements", newly)
	s.announceAll(ctx, newly)
}

// UserID returns the visitor this session belongs to.
func (s *Session) UserID() string {
	return s.userID
}

// State returns a snapshot of the current progress.
func (s *Session) State() *domain.ProgressState {
	return s.state.Clone()
}

// Stats returns the statistics derived from the current progress.
func (s *Session) Stats() domain.UserStats {
	return Stats(s.state, s.catalog)
}

// Badges returns the profile badge wall for the current progress.
func (s *Session) Badges() []achievement.BadgeStatus {
	return achievement.Summary(s.catalog.Achievements(), s.state.EarnedAchievements, s.Stats())
}

// ToggleFavorite flips the favorite flag of gameID.
// Returns whether the game is a favorite afterwards and any achievements it unlocked.
func (s *Session) ToggleFavorite(ctx context.Context, gameID string) (bool, []*domain.AchievementDef, error) {
	var favorite bool
	unlocked, err := s.apply(ctx, gameID, func(_ *domain.Game, t *Tracker) error {
		favorite = t.ToggleFavorite(gameID)
		return nil
	})
	if err != nil {
		return false, nil, err
	}
	return favorite, unlocked, nil
}

// RecordPlay registers a launch of gameID. Coming-soon teasers cannot be launched.
func (s *Session) RecordPlay(ctx context.Context, gameID string) ([]*domain.AchievementDef, error) {
	return s.apply(ctx, gameID, func(game *domain.Game, t *Tracker) error {
		if !game.IsPlayable() {
			return errors.ErrGameNotPlayable(gameID)
		}
		t.RecordPlay(gameID)
		return nil
	})
}

// SetRating stores a 1..5 star rating for gameID.
func (s *Session) SetRating(ctx context.Context, gameID string, star int) ([]*domain.AchievementDef, error) {
	return s.apply(ctx, gameID, func(_ *domain.Game, t *Tracker) error {
		return t.SetRating(gameID, star)
	})
}

// Reset clears all progress, earned achievements included. Stores that
// implement store.Deleter drop the user's keys; others get an empty state saved.
func (s *Session) Reset(ctx context.Context) error {
	empty := domain.NewProgressState()
	var err error
	if d, ok := s.store.(store.Deleter); ok {
		err = d.Delete(ctx, s.userID)
	} else {
		err = s.store.Save(ctx, s.userID, empty)
	}
	if err != nil {
		return err
	}
	s.state = empty
	s.logger.Info("Progress reset")
	return nil
}

func (s *Session) apply(ctx context.Context, gameID string, mutate func(*domain.Game, *Tracker) error) ([]*domain.AchievementDef, error) {
	game, ok := s.catalog.FindByID(gameID)
	if !ok {
		return nil, errors.ErrGameNotFound(gameID)
	}

	next := s.state.Clone()
	if err := mutate(game, NewTracker(next)); err != nil {
		return nil, err
	}

	newly := s.evaluate(next)
	if err := s.store.Save(ctx, s.userID, next); err != nil {
		return nil, err
	}
	s.state = next

	return s.announceAll(ctx, newly), nil
}

// evaluate merges the achievements state now qualifies for into it and
// returns the newly earned IDs.
func (s *Session) evaluate(state *domain.ProgressState) []string {
	newly := achievement.Evaluate(Stats(state, s.catalog), state.EarnedAchievements, s.catalog.Achievements())
	state.EarnedAchievements = achievement.Merge(state.EarnedAchievements, newly)
	return newly
}

func (s *Session) announceAll(ctx context.Context, newly []string) []*domain.AchievementDef {
	unlocked := make([]*domain.AchievementDef, 0, len(newly))
	for _, id := range newly {
		def, ok := s.catalog.FindAchievement(id)
		if !ok {
			continue
		}
		unlocked = append(unlocked, def)
		s.announce(ctx, def)
	}
	return unlocked
}

func (s *Session) announce(ctx context.Context, def *domain.AchievementDef) {
	unlock := notify.Unlock{
		UserID:      s.userID,
		Achievement: def,
		EarnedAt:    s.now(),
	}
	if err := s.notifier.NotifyUnlocked(ctx, unlock); err != nil {
		s.logger.Warn("Failed to announce achievement",
			"achievement_id", def.ID,
			"error", err)
	}
}
