package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sixtey7/fjledger/internal/activity"
	"github.com/sixtey7/fjledger/internal/config"
	"github.com/sixtey7/fjledger/internal/ledger"
	"github.com/sixtey7/fjledger/internal/logging"
	"github.com/sixtey7/fjledger/internal/store"
)

// app bundles what a command needs to operate on a project directory.
type app struct {
	cfg      *config.Config
	store    *store.Store
	ledger   *ledger.Service
	activity *activity.Log // nil when the activity log is disabled
}

func openApp(dir string) (*app, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.LoadDir(absDir)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("configuring logging: %w", err)
	}

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	opts := []ledger.Option{
		ledger.WithLogger(logger),
		ledger.WithLegacyAccount(cfg.Import.LegacyAccountName, cfg.Import.LegacyAccountNotes),
	}
	var log *activity.Log
	if cfg.Activity.Enabled {
		log = activity.NewLog(cfg.Activity.Path)
		opts = append(opts, ledger.WithRecorder(log))
	}

	return &app{
		cfg:      cfg,
		store:    st,
		ledger:   ledger.NewService(st, opts...),
		activity: log,
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// withApp opens the project at dir for the duration of fn.
func withApp(dir string, fn func(a *app) error) error {
	a, err := openApp(dir)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
