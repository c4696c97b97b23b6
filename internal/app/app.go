package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/optsmigrate/internal/rewrite"
	"github.com/specialistvlad/optsmigrate/internal/store"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	store    store.Store
	rewriter *rewrite.Rewriter
	check    bool
}

// NewApp is the constructor for the application. Reports go to outW and log
// records to logW. A nil st means the documents live in cfg.Dir.
func NewApp(outW, logW io.Writer, cfg *Config, st store.Store) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	policy, err := rewrite.ParsePolicy(cfg.OnConflict)
	if err != nil {
		// NewConfig already validated the policy, so this is a programmer error.
		panic(fmt.Errorf("invalid configuration: %w", err))
	}

	if st == nil {
		st = store.NewDir(cfg.Dir, cfg.Ext)
	}
	logger.Debug("App configured.", "dir", cfg.Dir, "key", cfg.Key, "on_conflict", policy, "check", cfg.Check)

	return &App{
		outW:     outW,
		logger:   logger,
		store:    st,
		rewriter: rewrite.New(cfg.Key, policy),
		check:    cfg.Check,
	}
}
