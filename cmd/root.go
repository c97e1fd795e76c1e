package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendwise/internal/config"
	"github.com/theirongolddev/spendwise/internal/store"
	"github.com/theirongolddev/spendwise/internal/tracker"
)

var (
	flagUser     string
	flagDB       string
	flagQuiet    bool
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "spendwise",
	Short: "Smart spending tracker",
	Long:  "Track expenses, score your month, compare periods and earn badges for spending less.",
	RunE:  runDashboard,

	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "User id (default from config, then \"local\")")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
}

// newLogger builds the process logger: text on stderr at --log-level.
func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	level, err := logrus.ParseLevel(flagLogLevel)
	if err != nil {
		logger.WithField("level", flagLogLevel).Warn("unknown log level, using warn")
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}

// session is everything a command needs to talk to the tracker.
type session struct {
	cfg    config.Config
	userID string
	store  *store.Store
	svc    *tracker.Service
	logger *logrus.Logger
}

func (s *session) Close() error {
	return s.store.Close()
}

// openSession is the shared setup path used by all commands. It resolves
// the effective config, opens the database and pushes the configured name
// and budget to the user's profile.
func openSession(ctx context.Context, logger *logrus.Logger) (*session, error) {
	cfg, err := config.LoadEffective()
	if err != nil {
		return nil, err
	}
	if flagDB != "" {
		cfg.General.DBPath = flagDB
	}
	userID := cfg.General.UserID
	if flagUser != "" {
		userID = flagUser
	}
	if userID == "" {
		userID = config.DefaultConfig().General.UserID
	}

	st, err := store.Open(cfg.DBPath(), logger)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	svc := tracker.New(st, logger, tracker.WithCatalog(cfg.Catalog()))
	if _, err := svc.SyncProfile(ctx, userID, cfg.General.Name, cfg.Budget.Monthly); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("syncing profile: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"user_id": userID,
		"db":      cfg.DBPath(),
	}).Debug("session opened")
	return &session{cfg: cfg, userID: userID, store: st, svc: svc, logger: logger}, nil
}
