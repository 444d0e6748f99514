package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

// Execute runs the playverse CLI with args and returns the command error.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root, app := newRootCommand(stdout, stderr)
	defer app.Close()

	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCommand(stdout, stderr io.Writer) (*cobra.Command, *App) {
	app := newApp(stdout, stderr)

	root := &cobra.Command{
		Use:           "playverse",
		Short:         "PlayverseZone catalog and progress engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.configure()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.String(keyConfig, "", "config file (yaml, json or toml)")
	pf.String(keyCatalog, "", "catalog file (json or yaml); the built-in catalog when empty")
	pf.String(keyUser, "", "visitor id; an anonymous id is created in the data directory when empty")
	pf.String(keyStore, "file", "progress backend: file|memory|postgres|redis")
	pf.String(keyDataDir, "", "directory for the anonymous id and file backend (default: user config dir)")
	pf.String(keyRedisURL, "", "redis url for the redis store or notifier, e.g. redis://localhost:6379/0")
	pf.String(keyRedisPrefix, "", "key prefix for the redis store")
	pf.String(keyNotify, "log", "achievement notifier: log|redis|none")
	pf.String(keyStream, "", "redis stream for achievement unlocks")
	pf.StringP(keyOutput, "o", "text", "output format: text|json")
	pf.String(keyLogLevel, "warn", "log level: debug|info|warn|error")
	pf.String(keyLogFormat, "text", "log format: text|json")
	pf.String(keyLogFile, "", "log file path (enables rotation)")
	pf.Int(keyLogMaxSize, 100, "max size of log file in MB before rotation")
	pf.Int(keyLogBackups, 7, "max number of old log files to retain")
	pf.Int(keyLogMaxAge, 7, "max age (days) to retain old log files")
	pf.Bool(keyLogCompress, true, "compress rotated log files")
	_ = app.v.BindPFlags(pf)

	root.AddCommand(
		newGamesCommand(app),
		newRankCommand(app),
		newMysteryCommand(app),
		newSuggestCommand(app),
		newPlayCommand(app),
		newFavoriteCommand(app),
		newRateCommand(app),
		newProfileCommand(app),
		newResetCommand(app),
		newValidateCommand(app),
		newStatusCommand(app),
		newCountdownCommand(app),
		newWatchCommand(app),
	)

	return root, app
}
