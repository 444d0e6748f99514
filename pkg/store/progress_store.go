// Package store persists visitor progress as independent key-value entries.
package store

import (
	"context"

	"github.com/pbzzardari/PlayverseZone/pkg/domain"
)

// ProgressStore loads and saves one visitor's progress.
//
// Every field of ProgressState is persisted under its own key, so a malformed
// value for one key never prevents the others from loading. Concurrent saves for
// the same user are last-writer-wins.
type ProgressStore interface {
	// Load returns the stored progress for userID.
	// A user with nothing stored gets an empty state, not an error.
	// Malformed keys fall back to their empty default and are logged.
	Load(ctx context.Context, userID string) (*domain.ProgressState, error)

	// Save writes every key of state for userID.
	Save(ctx context.Context, userID string, state *domain.ProgressState) error
}

// Deleter is implemented by stores that can drop every key of a user at once.
type Deleter interface {
	// Delete removes all stored progress for userID. Deleting a user with
	// nothing stored is not an error.
	Delete(ctx context.Context, userID string) error
}

var (
	_ Deleter = (*MemoryStore)(nil)
	_ Deleter = (*FileStore)(nil)
	_ Deleter = (*PostgresStore)(nil)
	_ Deleter = (*RedisStore)(nil)

	_ ProgressStore = (*MemoryStore)(nil)
	_ ProgressStore = (*FileStore)(nil)
	_ ProgressStore = (*PostgresStore)(nil)
	_ ProgressStore = (*RedisStore)(nil)
	_ ProgressStore = (*MockProgressStore)(nil)
)
