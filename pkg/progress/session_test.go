package progress

import (
	"bytes"
	"context"
	stderrors "errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pbzzardari/PlayverseZone/pkg/catalog"
	"github.com/pbzzardari/PlayverseZone/pkg/domain"
	"github.com/pbzzardari/PlayverseZone/pkg/errors"
	"github.com/pbzzardari/PlayverseZone/pkg/notify"
	"github.com/pbzzardari/PlayverseZone/pkg/store"
)

var fixedNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func newTestSession(t *testing.T, ps store.ProgressStore, opts ...SessionOption) *Session {
	t.Helper()
	opts = append([]SessionOption{WithClock(func() time.Time { return fixedNow })}, opts...)
	s, err := NewSession(context.Background(), "visitor-1", catalog.Default(testLogger()), ps, testLogger(), opts...)
	require.NoError(t, err)
	return s
}

func achievementIDs(defs []*domain.AchievementDef) []string {
	ids := make([]string, 0, len(defs))
	for _, d := range defs {
		ids = append(ids, d.ID)
	}
	return ids
}

func TestNewSession_EmptyUserID(t *testing.T) {
	_, err := NewSession(context.Background(), "", catalog.Default(testLogger()), store.NewMemoryStore(testLogger()), testLogger())
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidationFailed))
}

func TestNewSession_LoadError(t *testing.T) {
	ps := store.NewMockProgressStore()
	ps.On("Load", mock.Anything, "visitor-1").
		Return(nil, errors.ErrStorageError("load progress", stderrors.New("connection reset")))

	_, err := NewSession(context.Background(), "visitor-1", catalog.Default(testLogger()), ps, testLogger())

	assert.True(t, errors.HasCode(err, errors.ErrCodeStorageError))
	ps.AssertExpectations(t)
}

func TestSession_RecordPlay_UnlocksAndNotifies(t *testing.T) {
	ctx := context.Background()
	ps := store.NewMemoryStore(testLogger())
	n := notify.NewMockNotifier()
	n.On("NotifyUnlocked", mock.Anything, mock.Anything).Return(nil)

	s := newTestSession(t, ps, WithNotifier(n))

	unlocked, err := s.RecordPlay(ctx, "idle-startup-tycoon")
	require.NoError(t, err)
	assert.Empty(t, unlocked)

	unlocked, err = s.RecordPlay(ctx, "cinema-business")
	require.NoError(t, err)
	assert.Empty(t, unlocked)

	unlocked, err = s.RecordPlay(ctx, "idle-factory-domination")
	require.NoError(t, err)
	assert.Equal(t, []string{"rookie-gamer", "idle-master"}, achievementIDs(unlocked))

	n.AssertNumberOfCalls(t, "NotifyUnlocked", 2)
	n.AssertCalled(t, "NotifyUnlocked", mock.Anything, mock.MatchedBy(func(u notify.Unlock) bool {
		return u.UserID == "visitor-1" && u.Achievement.ID == "idle-master" && u.EarnedAt.Equal(fixedNow)
	}))

	// replaying never re-announces
	unlocked, err = s.RecordPlay(ctx, "idle-startup-tycoon")
	require.NoError(t, err)
	assert.Empty(t, unlocked)
	n.AssertNumberOfCalls(t, "NotifyUnlocked", 2)

	saved, err := ps.Load(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"rookie-gamer", "idle-master"}, saved.EarnedAchievements)
	assert.Equal(t, 2, saved.PlayCounts["idle-startup-tycoon"])
	assert.Equal(t, "idle-startup-tycoon", saved.Recent[0])
}

func TestSession_FavoritesKeepAchievement(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, store.NewMemoryStore(testLogger()))

	for _, id := range []string{"fast-ball-jump", "cinema-business"} {
		fav, unlocked, err := s.ToggleFavorite(ctx, id)
		require.NoError(t, err)
		assert.True(t, fav)
		assert.Empty(t, unlocked)
	}

	fav, unlocked, err := s.ToggleFavorite(ctx, "zero-to-millionaire")
	require.NoError(t, err)
	assert.True(t, fav)
	assert.Equal(t, []string{"collector"}, achievementIDs(unlocked))

	fav, unlocked, err = s.ToggleFavorite(ctx, "zero-to-millionaire")
	require.NoError(t, err)
	assert.False(t, fav)
	assert.Empty(t, unlocked)

	assert.Equal(t, 2, s.Stats().TotalFavorites)
	assert.True(t, s.State().HasEarned("collector"))
}

func TestSession_UnknownGame(t *testing.T) {
	ctx := context.Background()
	ps := store.NewMockProgressStore()
	ps.On("Load", mock.Anything, "visitor-1").Return(domain.NewProgressState(), nil)

	s := newTestSession(t, ps)

	_, err := s.RecordPlay(ctx, "no-such-game")
	assert.True(t, errors.HasCode(err, errors.ErrCodeGameNotFound))

	_, _, err = s.ToggleFavorite(ctx, "no-such-game")
	assert.True(t, errors.HasCode(err, errors.ErrCodeGameNotFound))

	_, err = s.SetRating(ctx, "no-such-game", 4)
	assert.True(t, errors.HasCode(err, errors.ErrCodeGameNotFound))

	ps.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, s.State().PlayedHistory)
}

func TestSession_SetRating(t *testing.T) {
	ctx := context.Background()
	ps := store.NewMockProgressStore()
	ps.On("Load", mock.Anything, "visitor-1").Return(domain.NewProgressState(), nil)
	ps.On("Save", mock.Anything, "visitor-1", mock.MatchedBy(func(st *domain.ProgressState) bool {
		return st.Ratings["fast-ball-jump"] == 5
	})).Return(nil).Once()

	s := newTestSession(t, ps)

	_, err := s.SetRating(ctx, "fast-ball-jump", 5)
	require.NoError(t, err)

	_, err = s.SetRating(ctx, "fast-ball-jump", 9)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidRating))
	assert.Equal(t, 5, s.State().Ratings["fast-ball-jump"])

	ps.AssertNumberOfCalls(t, "Save", 1)
}

func TestSession_SaveFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	ps := store.NewMockProgressStore()
	ps.On("Load", mock.Anything, "visitor-1").Return(domain.NewProgressState(), nil)
	ps.On("Save", mock.Anything, "visitor-1", mock.Anything).
		Return(errors.ErrStorageError("save progress", stderrors.New("disk full")))

	n := notify.NewMockNotifier()
	s := newTestSession(t, ps, WithNotifier(n))

	_, err := s.RecordPlay(ctx, "fast-ball-jump")

	assert.True(t, errors.HasCode(err, errors.ErrCodeStorageError))
	assert.Empty(t, s.State().PlayedHistory)
	n.AssertNotCalled(t, "NotifyUnlocked", mock.Anything, mock.Anything)
}

func TestSession_NotifyFailureIsLogged(t *testing.T) {
	ctx := context.Background()
	state := domain.NewProgressState()
	state.PlayedHistory = []string{"fast-ball-jump", "cinema-business"}

	ps := store.NewMockProgressStore()
	ps.On("Load", mock.Anything, "visitor-1").Return(state, nil)
	ps.On("Save", mock.Anything, "visitor-1", mock.Anything).Return(nil)

	n := notify.NewMockNotifier()
	n.On("NotifyUnlocked", mock.Anything, mock.Anything).Return(stderrors.New("stream down"))

	var logs bytes.Buffer
	s, err := NewSession(ctx, "visitor-1", catalog.Default(testLogger()), ps,
		slog.New(slog.NewTextHandler(&logs, nil)), WithNotifier(n))
	require.NoError(t, err)

	unlocked, err := s.RecordPlay(ctx, "zero-to-millionaire")

	require.NoError(t, err)
	assert.Equal(t, []string{"rookie-gamer"}, achievementIDs(unlocked))
	assert.True(t, s.State().HasEarned("rookie-gamer"))
	assert.Contains(t, logs.String(), "Failed to announce achievement")
}

func TestSession_Reset(t *testing.T) {
	ctx := context.Background()
	ps := store.NewMemoryStore(testLogger())
	s := newTestSession(t, ps)

	_, err := s.RecordPlay(ctx, "fast-ball-jump")
	require.NoError(t, err)

	require.NoError(t, s.Reset(ctx))

	assert.Empty(t, s.State().PlayedHistory)
	saved, err := ps.Load(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Empty(t, saved.PlayCounts)
}

func TestSession_Badges(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, store.NewMemoryStore(testLogger()))

	_, err := s.RecordPlay(ctx, "idle-startup-tycoon")
	require.NoError(t, err)

	badges := s.Badges()
	require.Len(t, badges, 3)
	assert.Equal(t, "rookie-gamer", badges[0].Def.ID)
	assert.False(t, badges[0].Earned)
	assert.Equal(t, 1, badges[0].Current)
	assert.Equal(t, 3, badges[0].Target)
	assert.Equal(t, 1, badges[1].Current)
	assert.Equal(t, 0, badges[2].Current)
}

func TestSession_StateIsSnapshot(t *testing.T) {
	s := newTestSession(t, store.NewMemoryStore(testLogger()))

	snap := s.State()
	snap.Favorites = append(snap.Favorites, "fast-ball-jump")

	assert.Empty(t, s.State().Favorites)
	assert.Equal(t, "visitor-1", s.UserID())
}

func TestSession_ComingSoonIsNotPlayable(t *testing.T) {
	ctx := context.Background()
	ps := store.NewMockProgressStore()
	ps.On("Load", mock.Anything, "visitor-1").Return(domain.NewProgressState(), nil)

	n := notify.NewMockNotifier()
	s := newTestSession(t, ps, WithNotifier(n))

	for _, id := range []string{"pubg-native-beta", "hoverboard-racers-vr"} {
		unlocked, err := s.RecordPlay(ctx, id)
		assert.True(t, errors.HasCode(err, errors.ErrCodeGameNotPlayable), id)
		assert.Empty(t, unlocked)
	}

	state := s.State()
	assert.Empty(t, state.PlayedHistory)
	assert.Empty(t, state.PlayCounts)
	ps.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	n.AssertNotCalled(t, "NotifyUnlocked", mock.Anything, mock.Anything)
}

func TestSession_ComingSoonPlaysDoNotCountTowardRookie(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, store.NewMemoryStore(testLogger()))

	for _, id := range []string{"pubg-native-beta", "hoverboard-racers-vr", "fast-ball-jump"} {
		_, _ = s.RecordPlay(ctx, id)
	}

	assert.Equal(t, []string{"fast-ball-jump"}, s.State().PlayedHistory)
	assert.False(t, s.State().HasEarned("rookie-gamer"))
}

func TestNewSession_BackfillsEarnedAchievements(t *testing.T) {
	state := domain.NewProgressState()
	state.PlayedHistory = []string{"fast-ball-jump", "cinema-business", "zero-to-millionaire"}

	ps := store.NewMockProgressStore()
	ps.On("Load", mock.Anything, "visitor-1").Return(state, nil)
	ps.On("Save", mock.Anything, "visitor-1", mock.MatchedBy(func(st *domain.ProgressState) bool {
		return st.HasEarned("rookie-gamer")
	})).Return(nil).Once()

	n := notify.NewMockNotifier()
	n.On("NotifyUnlocked", mock.Anything, mock.MatchedBy(func(u notify.Unlock) bool {
		return u.Achievement.ID == "rookie-gamer" && u.EarnedAt.Equal(fixedNow)
	})).Return(nil).Once()

	s := newTestSession(t, ps, WithNotifier(n))

	assert.Equal(t, []string{"rookie-gamer"}, s.State().EarnedAchievements)
	ps.AssertExpectations(t)
	n.AssertExpectations(t)
}

func TestNewSession_BackfillSaveFailureKeepsLoadedState(t *testing.T) {
	state := domain.NewProgressState()
	state.PlayedHistory = []string{"fast-ball-jump", "cinema-business", "zero-to-millionaire"}

	ps := store.NewMockProgressStore()
	ps.On("Load", mock.Anything, "visitor-1").Return(state, nil)
	ps.On("Save", mock.Anything, "visitor-1", mock.Anything).
		Return(errors.ErrStorageError("save progress", stderrors.New("read-only")))

	n := notify.NewMockNotifier()
	var logs bytes.Buffer
	s, err := NewSession(context.Background(), "visitor-1", catalog.Default(testLogger()), ps,
		slog.New(slog.NewTextHandler(&logs, nil)), WithNotifier(n))

	require.NoError(t, err)
	assert.False(t, s.State().HasEarned("rookie-gamer"))
	assert.Contains(t, logs.String(), "Failed to save backfilled achievements")
	n.AssertNotCalled(t, "NotifyUnlocked", mock.Anything, mock.Anything)
}

func TestSession_Reset_SavesEmptyStateWithoutDeleter(t *testing.T) {
	ctx := context.Background()
	state := domain.NewProgressState()
	state.PlayedHistory = []string{"fast-ball-jump"}

	ps := store.NewMockProgressStore()
	ps.On("Load", mock.Anything, "visitor-1").Return(state, nil)
	ps.On("Save", mock.Anything, "visitor-1", mock.MatchedBy(func(st *domain.ProgressState) bool {
		return len(st.PlayedHistory) == 0 && len(st.EarnedAchievements) == 0
	})).Return(nil).Once()

	s := newTestSession(t, ps)
	require.NoError(t, s.Reset(ctx))

	assert.Empty(t, s.State().PlayedHistory)
	ps.AssertExpectations(t)
}
