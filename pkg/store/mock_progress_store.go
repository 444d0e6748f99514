package store

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pbzzardari/PlayverseZone/pkg/domain"
)

// MockProgressStore is a mock implementation of ProgressStore for testing.
// It uses testify/mock to allow test assertions on method calls.
type MockProgressStore struct {
	mock.Mock
}

// Load mocks loading a user's progress.
func (m *MockProgressStore) Load(ctx context.Context, userID string) (*domain.ProgressState, error) {
	args := m.Called(ctx, userID)
	state, _ := args.Get(0).(*domain.ProgressState)
	return state, args.Error(1)
}

// Save mocks saving a user's progress.
func (m *MockProgressStore) Save(ctx context.Context, userID string, state *domain.ProgressState) error {
	args := m.Called(ctx, userID, state)
	return args.Error(0)
}

// NewMockProgressStore creates a new mock progress store.
func NewMockProgressStore() *MockProgressStore {
	return &MockProgressStore{}
}
