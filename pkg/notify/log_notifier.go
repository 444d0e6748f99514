package notify

import (
	"context"
	"log/slog"
)

// LogNotifier writes each unlock to a structured logger and always succeeds.
// It is the default notifier for the CLI and for local development.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier that logs at info level.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// NotifyUnlocked logs the unlock.
func (n *LogNotifier) NotifyUnlocked(ctx context.Context, unlock Unlock) error {
	attrs := []any{
		"user_id", unlock.UserID,
		"earned_at", unlock.EarnedAt,
	}
	if unlock.Achievement != nil {
		attrs = append(attrs,
			"achievement_id", unlock.Achievement.ID,
			"title", unlock.Achievement.Title,
		)
	}
	n.logger.InfoContext(ctx, "Achievement unlocked", attrs...)
	return nil
}
