package store

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/lib/pq" // PostgreSQL driver and array support

	"github.com/pbzzardari/PlayverseZone/pkg/domain"
	"github.com/pbzzardari/PlayverseZone/pkg/errors"
)

// PostgresSchema creates the key-value table used by PostgresStore.
const PostgresSchema = `
	CREATE TABLE IF NOT EXISTS user_progress_kv (
		user_id    VARCHAR(100) NOT NULL,
		key        VARCHAR(64)  NOT NULL,
		value      TEXT         NOT NULL,
		updated_at TIMESTAMP    NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_id, key)
	)
`

// PostgresStore implements ProgressStore with one row per (user, key).
type PostgresStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresStore creates a new PostgreSQL-backed progress store.
func NewPostgresStore(db *sql.DB, logger *slog.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: logger,
	}
}

// EnsureSchema creates the table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, PostgresSchema); err != nil {
		return errors.ErrStorageError("ensure schema", err)
	}
	return nil
}

// Load retrieves every stored key for the user.
// A user with no rows gets an empty state.
func (s *PostgresStore) Load(ctx context.Context, userID string) (*domain.ProgressState, error) {
	query := `
		SELECT key, value
		FROM user_progress_kv
		WHERE user_id = $1
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.ErrStorageError("load progress", err)
	}
	defer func() { _ = rows.Close() }()

	values := make(map[Key][]byte, len(Keys))
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, errors.ErrStorageError("scan progress row", err)
		}
		values[Key(key)] = []byte(value)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.ErrStorageError("iterate progress rows", err)
	}

	return Decode(values, s.logger.With("user_id", userID)), nil
}

// Save upserts all keys for the user in a single statement.
// Uses UNNEST over parallel arrays so the six keys cost one round trip.
func (s *PostgresStore) Save(ctx context.Context, userID string, state *domain.ProgressState) error {
	encoded, err := Encode(state)
	if err != nil {
		return errors.ErrStorageError("save progress", err)
	}

	keys := make([]string, 0, len(Keys))
	values := make([]string, 0, len(Keys))
	for _, key := range Keys {
		keys = append(keys, string(key))
		values = append(values, string(encoded[key]))
	}

	query := `
		INSERT INTO user_progress_kv (user_id, key, value, updated_at)
		SELECT $1, t.key, t.value, NOW()
		FROM UNNEST($2::text[], $3::text[]) AS t(key, value)
		ON CONFLICT (user_id, key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, userID, pq.Array(keys), pq.Array(values)); err != nil {
		return errors.ErrStorageError("save progress", err)
	}
	return nil
}

// Delete removes every stored key for the user.
func (s *PostgresStore) Delete(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM user_progress_kv WHERE user_id = $1`, userID); err != nil {
		return errors.ErrStorageError("delete progress", err)
	}
	return nil
}
