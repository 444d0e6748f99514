package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbzzardari/PlayverseZone/pkg/config"
	"github.com/pbzzardari/PlayverseZone/pkg/errors"
)

// run executes the CLI against an isolated data directory and returns stdout.
func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"--data-dir", dataDir, "--notify", "none"}, args...)
	err := Execute(context.Background(), full, &stdout, &stderr)
	return stdout.String(), err
}

func mustRun(t *testing.T, dataDir string, args ...string) string {
	t.Helper()
	out, err := run(t, dataDir, args...)
	require.NoError(t, err)
	return out
}

func decodeRows(t *testing.T, out string) []gameRow {
	t.Helper()
	var rows []gameRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	return rows
}

func rowIDs(rows []gameRow) []string {
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestGames_DefaultListing(t *testing.T) {
	out := mustRun(t, t.TempDir(), "--user", "u1", "games")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.True(t, strings.HasPrefix(lines[1], "zero-to-millionaire"))
	assert.NotContains(t, out, "pubg-native-beta")
}

func TestGames_JSONSortAndFilter(t *testing.T) {
	dir := t.TempDir()

	rows := decodeRows(t, mustRun(t, dir, "--user", "u1", "-o", "json", "games", "--sort", "alphabetical"))
	assert.Equal(t, []string{
		"cinema-business", "fast-ball-jump", "idle-factory-domination", "idle-startup-tycoon", "zero-to-millionaire",
	}, rowIDs(rows))

	rows = decodeRows(t, mustRun(t, dir, "--user", "u1", "-o", "json", "games", "--category", "idle"))
	assert.Len(t, rows, 3)

	rows = decodeRows(t, mustRun(t, dir, "--user", "u1", "-o", "json", "games", "--shelf", "coming-soon"))
	assert.Equal(t, []string{"pubg-native-beta", "hoverboard-racers-vr"}, rowIDs(rows))
}

func TestGames_InvalidFilters(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "--user", "u1", "games", "--category", "Sports")
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidationFailed))

	_, err = run(t, dir, "--user", "u1", "games", "--shelf", "bargains")
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidationFailed))
}

func TestGames_NoHitsSuggestsTitle(t *testing.T) {
	out := mustRun(t, t.TempDir(), "--user", "u1", "games", "-s", "cinemma business")

	assert.Contains(t, out, "No games found.")
	assert.Contains(t, out, "cinema-business")
}

func TestPlayFlow_UnlocksAndPersists(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, dir, "--user", "u1", "play", "idle-startup-tycoon")
	mustRun(t, dir, "--user", "u1", "play", "cinema-business")
	out := mustRun(t, dir, "--user", "u1", "play", "idle-factory-domination")

	assert.Contains(t, out, "Launching")
	assert.Contains(t, out, "Achievement unlocked: 🎯 Rookie Gamer")
	assert.Contains(t, out, "Idle Master")

	var view profileView
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, dir, "--user", "u1", "-o", "json", "profile")), &view))
	assert.Equal(t, "u1", view.UserID)
	assert.Equal(t, 3, view.Stats.GamesPlayed)
	assert.Equal(t, []string{"idle-factory-domination", "cinema-business", "idle-startup-tycoon"}, view.Recent)
	require.Len(t, view.Badges, 3)
	assert.True(t, view.Badges[0].Earned)
	assert.True(t, view.Badges[1].Earned)
	assert.False(t, view.Badges[2].Earned)

	// another visitor starts clean
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, dir, "--user", "u2", "-o", "json", "profile")), &view))
	assert.Zero(t, view.Stats.GamesPlayed)
}

func TestFavoriteAndRate(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "--user", "u1", "favorite", "fast-ball-jump")
	assert.Contains(t, out, "Added fast-ball-jump")
	out = mustRun(t, dir, "--user", "u1", "favorite", "fast-ball-jump")
	assert.Contains(t, out, "Removed fast-ball-jump")

	out = mustRun(t, dir, "--user", "u1", "rate", "fast-ball-jump", "5")
	assert.Contains(t, out, "now 4.7")

	rows := decodeRows(t, mustRun(t, dir, "--user", "u1", "-o", "json", "games", "--sort", "rating"))
	assert.Equal(t, "idle-startup-tycoon", rows[0].ID)
	assert.Equal(t, "fast-ball-jump", rows[1].ID)

	_, err := run(t, dir, "--user", "u1", "rate", "fast-ball-jump", "7")
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidRating))
	_, err = run(t, dir, "--user", "u1", "rate", "fast-ball-jump", "five")
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidationFailed))
	assert.Contains(t, err.Error(), `"five" is not a number`)
}

func TestPlay_UnknownGame(t *testing.T) {
	_, err := run(t, t.TempDir(), "--user", "u1", "play", "no-such-game")
	assert.True(t, errors.HasCode(err, errors.ErrCodeGameNotFound))
}

func TestPlay_ComingSoonIsRejected(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "--user", "u1", "play", "pubg-native-beta")
	assert.True(t, errors.HasCode(err, errors.ErrCodeGameNotPlayable))
	assert.NotContains(t, out, "Launching")

	var view profileView
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, dir, "--user", "u1", "-o", "json", "profile")), &view))
	assert.Zero(t, view.Stats.GamesPlayed)
}

func TestProfile_Badge(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "--user", "u1", "play", "fast-ball-jump")

	out := mustRun(t, dir, "--user", "u1", "profile", "--badge", "rookie-gamer")
	assert.Contains(t, out, "[ ] 🎯 Rookie Gamer (1/3)")

	_, err := run(t, dir, "--user", "u1", "profile", "--badge", "speedrunner")
	assert.True(t, errors.HasCode(err, errors.ErrCodeAchievementNotFound))
}

func TestStatus(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "status")
	assert.Contains(t, out, "Store: file (ok)")
	assert.Contains(t, out, "built-in, 7 games (5 playable), 3 achievements")

	var view statusView
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, dir, "--store", "memory", "-o", "json", "status")), &view))
	assert.Equal(t, "memory", view.Store)
	assert.True(t, view.Healthy)

	_, err := run(t, dir, "--store", "redis", "status")
	assert.True(t, errors.HasCode(err, errors.ErrCodeStorageError))
}

func TestReset(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "--user", "u1", "play", "fast-ball-jump")
	progressFile := filepath.Join(dir, "progress", "u1.json")
	require.FileExists(t, progressFile)

	out := mustRun(t, dir, "--user", "u1", "reset")
	assert.Contains(t, out, "Progress cleared for u1")
	assert.NoFileExists(t, progressFile)

	var view profileView
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, dir, "--user", "u1", "-o", "json", "profile")), &view))
	assert.Zero(t, view.Stats.GamesPlayed)
}

func TestAnonymousUserIDIsStable(t *testing.T) {
	dir := t.TempDir()

	var first, second profileView
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, dir, "-o", "json", "profile")), &first))
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, dir, "-o", "json", "profile")), &second))

	assert.NotEmpty(t, first.UserID)
	assert.Equal(t, first.UserID, second.UserID)

	data, err := os.ReadFile(filepath.Join(dir, userIDFile))
	require.NoError(t, err)
	assert.Equal(t, first.UserID, strings.TrimSpace(string(data)))
}

func TestRank(t *testing.T) {
	dir := t.TempDir()

	rows := decodeRows(t, mustRun(t, dir, "--user", "u1", "-o", "json", "rank"))
	assert.Equal(t, []string{
		"zero-to-millionaire", "fast-ball-jump", "idle-startup-tycoon", "cinema-business", "idle-factory-domination",
	}, rowIDs(rows))

	out := mustRun(t, dir, "--user", "u1", "rank", "--podium")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "gold"))
}

func TestMystery(t *testing.T) {
	out := mustRun(t, t.TempDir(), "mystery", "--date", "2026-10-19")
	assert.Equal(t, "Mon Oct 19 2026: Idle Factory Domination (idle-factory-domination)\n", out)

	_, err := run(t, t.TempDir(), "mystery", "--date", "19/10/2026")
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidationFailed))
}

func TestSuggest(t *testing.T) {
	dir := t.TempDir()

	assert.Equal(t, "-> countdown\n", mustRun(t, dir, "suggest", "2026"))
	assert.Equal(t, "-> pubg-native-beta\n", mustRun(t, dir, "suggest", "PUBG"))

	out := mustRun(t, dir, "suggest", "idle", "--limit", "2")
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	data, err := json.Marshal(config.Default())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	out := mustRun(t, dir, "validate", path)
	assert.Contains(t, out, "OK: 7 games, 3 achievements")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"games": []}`), 0o600))
	_, err = run(t, dir, "validate", bad)
	assert.Error(t, err)
}

func TestCatalogFlag(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Games = cfg.Games[:1]
	path := filepath.Join(dir, "catalog.json")
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	rows := decodeRows(t, mustRun(t, dir, "--user", "u1", "--catalog", path, "-o", "json", "games"))
	assert.Equal(t, []string{"idle-startup-tycoon"}, rowIDs(rows))
}

func TestCountdown_PastTarget(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "countdown", "--target", "2020-01-01T00:00:00Z")
	assert.Equal(t, "0d 00h 00m 00s\n", out)

	out = mustRun(t, dir, "-o", "json", "countdown", "--target", "2020-01-01T00:00:00Z", "--follow")
	assert.JSONEq(t, `{"days":0,"hours":0,"mins":0,"secs":0,"expired":true}`, out)

	_, err := run(t, dir, "countdown", "--target", "tomorrow")
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidationFailed))
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "watch", "fast-ball-jump", "--duration", "50ms")
	assert.Contains(t, out, "playing now")
	assert.Contains(t, out, "Initializing secure handshake...")

	_, err := run(t, dir, "watch", "nope", "--duration", "50ms")
	assert.True(t, errors.HasCode(err, errors.ErrCodeGameNotFound))
}

func TestUnknownBackends(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "--user", "u1", "--store", "cassandra", "profile")
	assert.True(t, errors.HasCode(err, errors.ErrCodeConfigInvalid))

	var stdout, stderr bytes.Buffer
	err = Execute(context.Background(), []string{"--data-dir", dir, "--user", "u1", "--notify", "carrier-pigeon", "profile"}, &stdout, &stderr)
	assert.True(t, errors.HasCode(err, errors.ErrCodeConfigInvalid))

	_, err = run(t, dir, "--user", "u1", "--store", "redis", "profile")
	assert.True(t, errors.HasCode(err, errors.ErrCodeConfigInvalid))
}

func TestMemoryStoreDoesNotPersist(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "--user", "u1", "--store", "memory", "play", "fast-ball-jump")

	var view profileView
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, dir, "--user", "u1", "--store", "memory", "-o", "json", "profile")), &view))
	assert.Zero(t, view.Stats.GamesPlayed)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "playverse.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("user: from-config\noutput: json\n"), 0o600))

	var view profileView
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, dir, "--config", cfgPath, "profile")), &view))
	assert.Equal(t, "from-config", view.UserID)

	_, err := run(t, dir, "--config", filepath.Join(dir, "missing.yaml"), "profile")
	assert.Error(t, err)
}
