package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pbzzardari/PlayverseZone/pkg/domain"
	"github.com/pbzzardari/PlayverseZone/pkg/errors"
)

// FileStore keeps one JSON document per user under a directory:
//
//	{"playverse_favorites": [...], "playverse_ratings": {...}, ...}
//
// Each key is decoded on its own, so one corrupt value does not spoil the rest.
type FileStore struct {
	dir    string
	logger *slog.Logger
}

// NewFileStore creates a store rooted at dir. The directory is created on first save.
func NewFileStore(dir string, logger *slog.Logger) *FileStore {
	return &FileStore{dir: dir, logger: logger}
}

// Dir returns the directory holding the progress documents.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(userID string) (string, error) {
	if userID == "" || userID == "." || userID == ".." ||
		strings.ContainsAny(userID, `/\`) || strings.ContainsRune(userID, 0) {
		return "", errors.ErrValidationFailed("user_id", fmt.Sprintf("'%s' cannot be used as a file name", userID))
	}
	return filepath.Join(s.dir, userID+".json"), nil
}

// Load reads the user's document. A missing file is an empty state.
// A document that is not a JSON object at all is treated as empty and logged.
func (s *FileStore) Load(ctx context.Context, userID string) (*domain.ProgressState, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.ErrStorageError("load progress", err)
	}
	path, err := s.path(userID)
	if err != nil {
		return nil, err
	}
	logger := s.logger.With("user_id", userID)

	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return domain.NewProgressState(), nil
	}
	if err != nil {
		return nil, errors.ErrStorageError("load progress", err)
	}

	var doc map[Key]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn("Discarding malformed progress document",
			"path", path,
			"error", errors.ErrMalformedState(path, err),
		)
		return domain.NewProgressState(), nil
	}

	values := make(map[Key][]byte, len(doc))
	for k, v := range doc {
		values[k] = v
	}
	return Decode(values, logger), nil
}

// Save writes the user's document atomically (temp file plus rename).
func (s *FileStore) Save(ctx context.Context, userID string, state *domain.ProgressState) error {
	if err := ctx.Err(); err != nil {
		return errors.ErrStorageError("save progress", err)
	}
	path, err := s.path(userID)
	if err != nil {
		return err
	}

	values, err := Encode(state)
	if err != nil {
		return errors.ErrStorageError("save progress", err)
	}
	doc := make(map[Key]json.RawMessage, len(values))
	for k, v := range values {
		doc[k] = v
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.ErrStorageError("save progress", err)
	}

	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return errors.ErrStorageError("save progress", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+userID+".*.tmp")
	if err != nil {
		return errors.ErrStorageError("save progress", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.ErrStorageError("save progress", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.ErrStorageError("save progress", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.ErrStorageError("save progress", err)
	}
	return nil
}

// Delete removes the user's document. A missing document is not an error.
func (s *FileStore) Delete(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return errors.ErrStorageError("delete progress", err)
	}
	path, err := s.path(userID)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.ErrStorageError("delete progress", err)
	}
	return nil
}
