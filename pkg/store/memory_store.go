package store

import (
	"context"
	"log/slog"
	"maps"
	"sync"

	"github.com/pbzzardari/PlayverseZone/pkg/domain"
	"github.com/pbzzardari/PlayverseZone/pkg/errors"
)

// MemoryStore keeps encoded progress in process memory.
// Values go through the same codec as the durable backends.
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[string]map[Key][]byte
	logger *slog.Logger
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(logger *slog.Logger) *MemoryStore {
	return &MemoryStore{
		users:  make(map[string]map[Key][]byte),
		logger: logger,
	}
}

// Load returns the stored progress for userID, or an empty state.
func (s *MemoryStore) Load(ctx context.Context, userID string) (*domain.ProgressState, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.ErrStorageError("load progress", err)
	}

	s.mu.RLock()
	values := maps.Clone(s.users[userID])
	s.mu.RUnlock()

	return Decode(values, s.logger.With("user_id", userID)), nil
}

// Save replaces every key for userID.
func (s *MemoryStore) Save(ctx context.Context, userID string, state *domain.ProgressState) error {
	if err := ctx.Err(); err != nil {
		return errors.ErrStorageError("save progress", err)
	}

	values, err := Encode(state)
	if err != nil {
		return errors.ErrStorageError("save progress", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[userID] = values
	return nil
}

// Delete forgets the user.
func (s *MemoryStore) Delete(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return errors.ErrStorageError("delete progress", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, userID)
	return nil
}

// SetRaw stores a raw value for one key, bypassing the codec.
// It stands in for a value written by an older or foreign client.
func (s *MemoryStore) SetRaw(userID string, key Key, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.users[userID] == nil {
		s.users[userID] = make(map[Key][]byte)
	}
	s.users[userID][key] = value
}
