package notify

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/pbzzardari/PlayverseZone/pkg/errors"
)

const (
	// DefaultStream is the stream unlocks are appended to.
	DefaultStream = "playverse:achievements"

	// DefaultMaxLen caps the stream (approximate trimming).
	DefaultMaxLen = 100000

	defaultAttempts = 3
	defaultBackoff  = 100 * time.Millisecond
)

// RedisStreamNotifier appends each unlock to a Redis stream as a single
// "data" field holding the JSON-encoded Unlock.
type RedisStreamNotifier struct {
	client   redis.Cmdable
	stream   string
	maxLen   int64
	attempts int
	backoff  time.Duration
	logger   *slog.Logger
}

// RedisStreamOption customizes a RedisStreamNotifier.
type RedisStreamOption func(*RedisStreamNotifier)

// WithStream sets the stream name.
func WithStream(stream string) RedisStreamOption {
	return func(n *RedisStreamNotifier) { n.stream = stream }
}

// WithMaxLen sets the approximate stream cap; 0 disables trimming.
func WithMaxLen(maxLen int64) RedisStreamOption {
	return func(n *RedisStreamNotifier) { n.maxLen = maxLen }
}

// WithRetry sets how many times XADD is attempted and the initial backoff,
// which doubles after every failed attempt.
func WithRetry(attempts int, backoff time.Duration) RedisStreamOption {
	return func(n *RedisStreamNotifier) {
		n.attempts = max(attempts, 1)
		n.backoff = backoff
	}
}

// NewRedisStreamNotifier creates a notifier publishing to DefaultStream.
func NewRedisStreamNotifier(client redis.Cmdable, logger *slog.Logger, opts ...RedisStreamOption) *RedisStreamNotifier {
	n := &RedisStreamNotifier{
		client:   client,
		stream:   DefaultStream,
		maxLen:   DefaultMaxLen,
		attempts: defaultAttempts,
		backoff:  defaultBackoff,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Stream returns the stream name.
func (n *RedisStreamNotifier) Stream() string {
	return n.stream
}

// NotifyUnlocked appends the unlock, retrying transient failures.
func (n *RedisStreamNotifier) NotifyUnlocked(ctx context.Context, unlock Unlock) error {
	achievementID := ""
	if unlock.Achievement != nil {
		achievementID = unlock.Achievement.ID
	}

	body, err := json.Marshal(unlock)
	if err != nil {
		return errors.ErrNotifyFailed(achievementID, err)
	}

	args := &redis.XAddArgs{
		Stream: n.stream,
		Values: map[string]any{"data": string(body)},
	}
	if n.maxLen > 0 {
		args.MaxLen = n.maxLen
		args.Approx = true
	}

	backoff := n.backoff
	for attempt := 1; ; attempt++ {
		err = n.client.XAdd(ctx, args).Err()
		if err == nil {
			return nil
		}
		if attempt >= n.attempts || !IsRetryableError(err) {
			return errors.ErrNotifyFailed(achievementID, err)
		}

		n.logger.Warn("Retrying achievement notification",
			"achievement_id", achievementID,
			"attempt", attempt,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return errors.ErrNotifyFailed(achievementID, ctx.Err())
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

// IsRetryableError determines if a publish error should be retried.
//
// Non-retryable errors (fail immediately):
//   - context cancellation or deadline
//   - errors returned by the Redis server itself (WRONGTYPE, NOAUTH, ERR ...)
//   - a closed client
//
// Everything else (timeouts, refused connections, resets) is retried.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if stderrors.Is(err, redis.ErrClosed) {
		return false
	}

	var redisErr redis.Error
	if stderrors.As(err, &redisErr) {
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{"wrongtype", "noauth", "noperm", "invalid"} {
		if strings.Contains(msg, pattern) {
			return false
		}
	}
	return true
}
