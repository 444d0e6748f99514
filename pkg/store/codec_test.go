package store

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbzzardari/PlayverseZone/pkg/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func sampleState() *domain.ProgressState {
	return &domain.ProgressState{
		Favorites:          []string{"fast-ball-jump", "cinema-business"},
		Recent:             []string{"cinema-business", "fast-ball-jump"},
		Ratings:            map[string]int{"fast-ball-jump": 5},
		PlayCounts:         map[string]int{"fast-ball-jump": 2, "cinema-business": 1},
		PlayedHistory:      []string{"fast-ball-jump", "cinema-business"},
		EarnedAchievements: []string{"rookie-gamer"},
	}
}

func TestEncode_WritesEveryKey(t *testing.T) {
	values, err := Encode(sampleState())
	require.NoError(t, err)

	assert.Len(t, values, len(Keys))
	for _, key := range Keys {
		assert.True(t, json.Valid(values[key]), "value for %s must be JSON", key)
	}
	assert.JSONEq(t, `{"fast-ball-jump": 5}`, string(values[KeyRatings]))
	assert.JSONEq(t, `["rookie-gamer"]`, string(values[KeyEarnedAchievements]))
}

func TestEncode_EmptyStateUsesEmptyCollections(t *testing.T) {
	values, err := Encode(&domain.ProgressState{})
	require.NoError(t, err)

	assert.Equal(t, "[]", string(values[KeyFavorites]))
	assert.Equal(t, "{}", string(values[KeyPlayCounts]))
}

func TestDecode(t *testing.T) {
	t.Run("encoded state decodes unchanged", func(t *testing.T) {
		values, err := Encode(sampleState())
		require.NoError(t, err)

		assert.Equal(t, sampleState(), Decode(values, testLogger()))
	})

	t.Run("missing keys default to empty", func(t *testing.T) {
		got := Decode(map[Key][]byte{KeyFavorites: []byte(`["a"]`)}, testLogger())

		assert.Equal(t, []string{"a"}, got.Favorites)
		assert.Equal(t, []string{}, got.Recent)
		assert.Equal(t, map[string]int{}, got.Ratings)
	})

	t.Run("nil map is an empty state", func(t *testing.T) {
		assert.Equal(t, domain.NewProgressState(), Decode(nil, testLogger()))
	})

	t.Run("unknown keys are ignored", func(t *testing.T) {
		got := Decode(map[Key][]byte{"playverse_theme": []byte(`true`)}, testLogger())
		assert.Equal(t, domain.NewProgressState(), got)
	})
}

func TestDecode_MalformedKeysFallBackIndependently(t *testing.T) {
	tests := []struct {
		name  string
		key   Key
		value string
	}{
		{"not json", KeyFavorites, `{oops`},
		{"wrong shape", KeyRecent, `{"a": 1}`},
		{"rating out of range", KeyRatings, `{"g1": 9}`},
		{"rating of zero", KeyRatings, `{"g1": 0}`},
		{"negative play count", KeyPlayCounts, `{"g1": -3}`},
		{"string play count", KeyPlayCounts, `{"g1": "3"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))

			values, err := Encode(sampleState())
			require.NoError(t, err)
			values[tt.key] = []byte(tt.value)

			got := Decode(values, logger)

			want := sampleState()
			switch tt.key {
			case KeyFavorites:
				want.Favorites = []string{}
			case KeyRecent:
				want.Recent = []string{}
			case KeyRatings:
				want.Ratings = map[string]int{}
			case KeyPlayCounts:
				want.PlayCounts = map[string]int{}
			}
			assert.Equal(t, want, got)
			assert.Contains(t, logs.String(), "Discarding malformed persisted value")
			assert.Contains(t, logs.String(), string(tt.key))
		})
	}
}

func TestDecode_RepairsSets(t *testing.T) {
	values := map[Key][]byte{
		KeyFavorites: []byte(`["a", "b", "a"]`),
		KeyRecent:    []byte(`["1","2","3","4","5","6","7","8","9","10"]`),
	}

	got := Decode(values, testLogger())

	assert.Equal(t, []string{"a", "b"}, got.Favorites)
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8"}, got.Recent)
}

func TestDecode_NullValues(t *testing.T) {
	got := Decode(map[Key][]byte{
		KeyFavorites: []byte(`null`),
		KeyRatings:   []byte(`null`),
		KeyRecent:    []byte(`   `),
	}, testLogger())

	assert.Equal(t, domain.NewProgressState(), got)
}

func TestKey_IsValid(t *testing.T) {
	for _, k := range Keys {
		assert.True(t, k.IsValid())
	}
	assert.False(t, Key("playverse_theme").IsValid())
}
