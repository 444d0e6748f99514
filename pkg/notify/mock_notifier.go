package notify

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockNotifier is a mock implementation of AchievementNotifier for testing.
// It uses testify/mock to allow test assertions on method calls.
type MockNotifier struct {
	mock.Mock
}

// NotifyUnlocked mocks publishing an unlock.
func (m *MockNotifier) NotifyUnlocked(ctx context.Context, unlock Unlock) error {
	args := m.Called(ctx, unlock)
	return args.Error(0)
}

// NewMockNotifier creates a new mock notifier.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

var (
	_ AchievementNotifier = (*MockNotifier)(nil)
	_ AchievementNotifier = (*LogNotifier)(nil)
	_ AchievementNotifier = (*RedisStreamNotifier)(nil)
	_ AchievementNotifier = Multi(nil)
	_ AchievementNotifier = Nop{}
)
