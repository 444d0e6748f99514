// Package notify announces newly earned achievements to collaborators
// (toast rendering, analytics streams, logs).
package notify

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/pbzzardari/PlayverseZone/pkg/domain"
)

// Unlock is one newly earned achievement.
type Unlock struct {
	UserID      string                 `json:"user_id"`
	Achievement *domain.AchievementDef `json:"achievement"`
	EarnedAt    time.Time              `json:"earned_at"`
}

// AchievementNotifier is called once per newly earned achievement, after the
// progress state has been updated.
//
// Notification is best effort: a failed notification never retracts the
// achievement, and callers log the error rather than failing the user action.
type AchievementNotifier interface {
	// NotifyUnlocked publishes one unlock.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - unlock: The user and achievement that was earned
	//
	// Returns error if the unlock could not be delivered.
	NotifyUnlocked(ctx context.Context, unlock Unlock) error
}

// Multi fans an unlock out to several notifiers. Every notifier is called even
// when an earlier one fails; the errors are joined.
type Multi []AchievementNotifier

// NotifyUnlocked calls each notifier in order.
func (m Multi) NotifyUnlocked(ctx context.Context, unlock Unlock) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.NotifyUnlocked(ctx, unlock); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// Nop discards every unlock.
type Nop struct{}

// NotifyUnlocked does nothing.
func (Nop) NotifyUnlocked(context.Context, Unlock) error { return nil }
