package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/baiirun/launchboard/internal/board"
	"github.com/baiirun/launchboard/internal/config"
	"github.com/baiirun/launchboard/internal/db"
	"github.com/baiirun/launchboard/internal/remote"
	"github.com/baiirun/launchboard/internal/store"
)

// app holds the global flags shared by every command.
type app struct {
	configPath string
	endpoint   string
	dbPath     string
	logLevel   string
	jsonOut    bool
}

// session is everything one invocation needs. Each invocation is one
// session: the backend starts remote and may fail over to local storage
// during it.
type session struct {
	cfg    *config.Config
	db     *db.DB
	board  *board.Board
	logger *logrus.Logger
	launch time.Time
	clock  func() time.Time
}

func newLogger(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(logrus.WarnLevel)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return logger
}

func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, *logrus.Logger, error) {
	logger := newLogger(cmd.ErrOrStderr())
	cfg, err := config.NewLoader(logger).Load(a.configPath, config.Overrides{
		Endpoint: a.endpoint,
		DBPath:   a.dbPath,
		LogLevel: a.logLevel,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.SetLevel(cfg.LogLevel())
	return cfg, logger, nil
}

// open loads the configuration and wires the board over both backends.
func (a *app) open(cmd *cobra.Command) (*session, error) {
	cfg, logger, err := a.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	launch, err := cfg.Launch.Time()
	if err != nil {
		return nil, err
	}
	clock, err := cfg.Launch.Clock()
	if err != nil {
		return nil, err
	}

	database, err := db.Open(cfg.Local.Path)
	if err != nil {
		return nil, err
	}
	if err := database.Init(); err != nil {
		database.Close()
		return nil, err
	}

	local := store.New(database, cfg.Local.Key, logger)
	rc := remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.Collection, cfg.Remote.Timeout)
	facade := board.NewFacade(rc, local, logger, cfg.Remote.ListLimit)

	logger.WithFields(logrus.Fields{
		"endpoint": rc.Endpoint(),
		"db":       cfg.Local.Path,
	}).Debug("session opened")

	return &session{
		cfg:    cfg,
		db:     database,
		board:  board.New(facade, logger),
		logger: logger,
		launch: launch,
		clock:  clock,
	}, nil
}

func (s *session) Close() error {
	return s.db.Close()
}

// withSession opens a session for the duration of fn.
func (a *app) withSession(fn func(cmd *cobra.Command, args []string, s *session) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := a.open(cmd)
		if err != nil {
			return err
		}
		defer s.Close()
		return fn(cmd, args, s)
	}
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "launchboard",
		Short:         "Kanban board for a product launch",
		Long:          `A task board for a four-week launch plan. Tasks are stored through a remote task collection and fall back to a local database when that API is not available.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.RunE = newBoardCmd(a).RunE

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.config/launchboard/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.endpoint, "endpoint", "", "remote API base URL")
	rootCmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "local database path")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "output JSON")

	rootCmd.AddCommand(
		newBoardCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newAddCmd(a),
		newEditCmd(a),
		newMoveCmd(a),
		newCheckCmd(a, true),
		newCheckCmd(a, false),
		newRmCmd(a),
		newStatsCmd(a),
		newCountdownCmd(a),
		newSeedCmd(a),
		newClearCmd(a),
		newPingCmd(a),
		newModeCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
