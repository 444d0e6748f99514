package progress

import (
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbzzardari/PlayverseZone/pkg/catalog"
	"github.com/pbzzardari/PlayverseZone/pkg/domain"
	"github.com/pbzzardari/PlayverseZone/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestNewTracker_NilState(t *testing.T) {
	tr := NewTracker(nil)
	require.NotNil(t, tr.State())
	assert.Empty(t, tr.State().Favorites)
	assert.NotNil(t, tr.State().Ratings)
}

func TestToggleFavorite_Involution(t *testing.T) {
	tr := NewTracker(domain.NewProgressState())

	assert.True(t, tr.ToggleFavorite("fast-ball-jump"))
	assert.True(t, tr.ToggleFavorite("cinema-business"))
	assert.Equal(t, []string{"fast-ball-jump", "cinema-business"}, tr.State().Favorites)

	assert.False(t, tr.ToggleFavorite("fast-ball-jump"))
	assert.Equal(t, []string{"cinema-business"}, tr.State().Favorites)

	assert.True(t, tr.ToggleFavorite("fast-ball-jump"))
	assert.True(t, tr.State().IsFavorite("fast-ball-jump"))
}

func TestRecordPlay(t *testing.T) {
	tr := NewTracker(nil)

	tr.RecordPlay("a")
	tr.RecordPlay("b")
	tr.RecordPlay("a")

	state := tr.State()
	assert.Equal(t, []string{"a", "b"}, state.Recent)
	assert.Equal(t, []string{"a", "b"}, state.PlayedHistory)
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, state.PlayCounts)
}

func TestRecordPlay_RecentCapped(t *testing.T) {
	tr := NewTracker(nil)
	for i := 0; i < 10; i++ {
		tr.RecordPlay(fmt.Sprintf("game-%d", i))
	}

	recent := tr.State().Recent
	require.Len(t, recent, domain.MaxRecent)
	assert.Equal(t, "game-9", recent[0])
	assert.Equal(t, "game-2", recent[domain.MaxRecent-1])
	assert.Len(t, tr.State().PlayedHistory, 10)

	// replaying an old game keeps the cap and the order of the rest
	tr.RecordPlay("game-5")
	recent = tr.State().Recent
	require.Len(t, recent, domain.MaxRecent)
	assert.Equal(t, []string{"game-5", "game-9", "game-8", "game-7", "game-6", "game-4", "game-3", "game-2"}, recent)
}

func TestSetRating(t *testing.T) {
	tests := []struct {
		name    string
		star    int
		wantErr bool
	}{
		{"lowest", 1, false},
		{"highest", 5, false},
		{"zero", 0, true},
		{"six", 6, true},
		{"negative", -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(nil)
			tr.State().Ratings["g"] = 3

			err := tr.SetRating("g", tt.star)

			if tt.wantErr {
				assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidRating))
				assert.Equal(t, 3, tr.State().Ratings["g"])
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.star, tr.State().Ratings["g"])
		})
	}
}

func TestStats(t *testing.T) {
	games := catalog.Default(testLogger())
	state := domain.NewProgressState()
	state.PlayedHistory = []string{"idle-startup-tycoon", "fast-ball-jump", "cinema-business", "deleted-game"}
	state.Favorites = []string{"fast-ball-jump"}

	stats := Stats(state, games)

	assert.Equal(t, 4, stats.GamesPlayed)
	assert.Equal(t, 1, stats.TotalFavorites)
	assert.Equal(t, 2, stats.CategoryCount(domain.CategoryIdle))
	assert.Equal(t, 1, stats.CategoryCount(domain.CategoryArcade))
	assert.Equal(t, 0, stats.CategoryCount(domain.CategoryRacing))
	assert.Len(t, stats.CategoryStats, 2)
}

func TestStats_Empty(t *testing.T) {
	stats := Stats(domain.NewProgressState(), catalog.Default(testLogger()))

	assert.Zero(t, stats.GamesPlayed)
	assert.Zero(t, stats.TotalFavorites)
	assert.Empty(t, stats.CategoryStats)
}
