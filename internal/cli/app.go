// Package cli implements the playverse command line: catalog queries, visitor
// progress commands and the cosmetic ticker demos.
package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"github.com/pbzzardari/PlayverseZone/pkg/catalog"
	"github.com/pbzzardari/PlayverseZone/pkg/db"
	"github.com/pbzzardari/PlayverseZone/pkg/errors"
	"github.com/pbzzardari/PlayverseZone/pkg/notify"
	"github.com/pbzzardari/PlayverseZone/pkg/progress"
	"github.com/pbzzardari/PlayverseZone/pkg/store"
)

// Setting keys. Each is also a flag name and, upper-cased with dashes turned
// into underscores, a PLAYVERSE_ environment variable.
const (
	keyConfig      = "config"
	keyCatalog     = "catalog"
	keyUser        = "user"
	keyStore       = "store"
	keyDataDir     = "data-dir"
	keyRedisURL    = "redis-url"
	keyRedisPrefix = "redis-prefix"
	keyNotify      = "notify"
	keyStream      = "stream"
	keyOutput      = "output"
	keyLogLevel    = "log-level"
	keyLogFormat   = "log-format"
	keyLogFile     = "log-file"
	keyLogMaxSize  = "log-max-size"
	keyLogBackups  = "log-max-backups"
	keyLogMaxAge   = "log-max-age"
	keyLogCompress = "log-compress"

	envPrefix  = "PLAYVERSE"
	userIDFile = "user_id"
)

// App carries what every command needs once flags and config are resolved.
type App struct {
	v      *viper.Viper
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
	games  *catalog.InMemoryStore

	redis   *redis.Client
	db      *sql.DB
	closers []func() error
}

func newApp(stdout, stderr io.Writer) *App {
	return &App{
		v:      viper.New(),
		stdout: stdout,
		stderr: stderr,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// configure reads the optional config file, binds env and builds the logger
// and the catalog. It runs before every command.
func (a *App) configure() error {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	if path := a.v.GetString(keyConfig); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	a.logger = NewLogger(LogOptions{
		Level:      a.v.GetString(keyLogLevel),
		Format:     a.v.GetString(keyLogFormat),
		File:       a.v.GetString(keyLogFile),
		MaxSizeMB:  a.v.GetInt(keyLogMaxSize),
		MaxBackups: a.v.GetInt(keyLogBackups),
		MaxAgeDays: a.v.GetInt(keyLogMaxAge),
		Compress:   a.v.GetBool(keyLogCompress),
	}, a.stderr)

	if path := a.v.GetString(keyCatalog); path != "" {
		games, err := catalog.Load(path, a.logger)
		if err != nil {
			return err
		}
		a.games = games
	} else {
		a.games = catalog.Default(a.logger)
	}

	return nil
}

// Close releases backend connections in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("Failed to close backend", "error", err)
		}
	}
	a.closers = nil
}

func (a *App) dataDir() string {
	if dir := a.v.GetString(keyDataDir); dir != "" {
		return dir
	}
	if base, err := os.UserConfigDir(); err == nil {
		return filepath.Join(base, "playverse")
	}
	return ".playverse"
}

// userID returns the configured visitor ID, or the anonymous ID stored in
// the data directory, creating one on first use.
func (a *App) userID() (string, error) {
	if id := strings.TrimSpace(a.v.GetString(keyUser)); id != "" {
		return id, nil
	}

	path := filepath.Join(a.dataDir(), userIDFile)
	if data, err := os.ReadFile(path); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read user id: %w", err)
	}

	id := uuid.NewString()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("failed to write user id: %w", err)
	}
	a.logger.Info("Created anonymous visitor", "user_id", id)
	return id, nil
}

func (a *App) redisClient() (*redis.Client, error) {
	if a.redis != nil {
		return a.redis, nil
	}
	url := a.v.GetString(keyRedisURL)
	if url == "" {
		return nil, errors.ErrConfigInvalid("redis-url is required for the redis backend")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	a.redis = redis.NewClient(opt)
	a.closers = append(a.closers, a.redis.Close)
	return a.redis, nil
}

func (a *App) openStore(ctx context.Context) (store.ProgressStore, error) {
	switch kind := a.storeKind(); kind {
	case "file":
		return store.NewFileStore(filepath.Join(a.dataDir(), "progress"), a.logger), nil

	case "memory":
		return store.NewMemoryStore(a.logger), nil

	case "postgres":
		conn, err := db.Connect(db.NewConfigFromEnv())
		if err != nil {
			return nil, errors.ErrStorageError("connect", err)
		}
		a.closers = append(a.closers, conn.Close)
		a.db = conn
		ps := store.NewPostgresStore(conn, a.logger)
		if err := ps.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return ps, nil

	case "redis":
		client, err := a.redisClient()
		if err != nil {
			return nil, err
		}
		prefix := a.v.GetString(keyRedisPrefix)
		if prefix == "" {
			prefix = store.DefaultRedisPrefix
		}
		return store.NewRedisStore(client, prefix, a.logger), nil

	default:
		return nil, errors.ErrConfigInvalid(fmt.Sprintf("unknown store %q (want file, memory, postgres or redis)", kind))
	}
}

// storeKind returns the configured progress backend, lower-cased with "file" as default.
func (a *App) storeKind() string {
	if kind := strings.ToLower(a.v.GetString(keyStore)); kind != "" {
		return kind
	}
	return "file"
}

// pingStore checks the connection of an opened network backend.
func (a *App) pingStore(ctx context.Context) error {
	switch a.storeKind() {
	case "postgres":
		return db.Health(a.db)
	case "redis":
		if err := a.redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis unhealthy: %w", err)
		}
	}
	return nil
}

func (a *App) openNotifier() (notify.AchievementNotifier, error) {
	switch kind := strings.ToLower(a.v.GetString(keyNotify)); kind {
	case "", "log":
		return notify.NewLogNotifier(a.logger), nil

	case "none":
		return notify.Nop{}, nil

	case "redis":
		client, err := a.redisClient()
		if err != nil {
			return nil, err
		}
		var opts []notify.RedisStreamOption
		if stream := a.v.GetString(keyStream); stream != "" {
			opts = append(opts, notify.WithStream(stream))
		}
		return notify.Multi{
			notify.NewLogNotifier(a.logger),
			notify.NewRedisStreamNotifier(client, a.logger, opts...),
		}, nil

	default:
		return nil, errors.ErrConfigInvalid(fmt.Sprintf("unknown notifier %q (want log, redis or none)", kind))
	}
}

// session opens the configured store and notifier and loads the visitor's progress.
func (a *App) session(ctx context.Context) (*progress.Session, error) {
	userID, err := a.userID()
	if err != nil {
		return nil, err
	}
	ps, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	n, err := a.openNotifier()
	if err != nil {
		return nil, err
	}
	return progress.NewSession(ctx, userID, a.games, ps, a.logger, progress.WithNotifier(n))
}

func (a *App) jsonOutput() bool {
	return strings.EqualFold(a.v.GetString(keyOutput), "json")
}

// render writes v as indented JSON when --output=json, otherwise calls text.
func (a *App) render(v any, text func(w io.Writer) error) error {
	if a.jsonOutput() {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return text(a.stdout)
}
