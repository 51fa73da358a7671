package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/f3rmion/symbols/internal/charset"
	"github.com/f3rmion/symbols/internal/config"
	"github.com/f3rmion/symbols/internal/logging"
	"github.com/f3rmion/symbols/internal/recent"
	"github.com/f3rmion/symbols/internal/storage"
)

// environment holds the collaborators shared by the commands.
type environment struct {
	dir     string
	cfg     *config.Config
	store   *charset.Store
	backend storage.Storage
	tracker *recent.Tracker
	closers []io.Closer
}

// openEnvironment loads the config from the config directory, registers its
// character sets and opens the recent-use storage.
func openEnvironment(ctx context.Context, logger zerolog.Logger) (*environment, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	dir := getConfigDir()
	cfgPath := filepath.Join(dir, config.FileName)

	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return nil, err
	}

	store := charset.NewStore(
		charset.NewSourceFetcher(dir, cfg.FetchTimeout),
		charset.WithLogger(logger),
	)
	if _, err := os.Stat(cfgPath); err == nil {
		if err := cfg.Register(store, dir); err != nil {
			return nil, err
		}
	} else {
		// No config yet: serve the bundled set until 'symbols init' runs.
		entries, err := charset.DecodeEntries(config.StarterSet())
		if err != nil {
			return nil, fmt.Errorf("decoding bundled set: %w", err)
		}
		if err := store.RegisterInline(cfg.DefaultSet, entries); err != nil {
			return nil, err
		}
	}

	env := &environment{dir: dir, cfg: cfg, store: store}

	if path := cfg.StoragePath(dir); path != "" {
		db, err := storage.OpenSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		env.backend = db
		env.closers = append(env.closers, db)
	} else {
		env.backend = storage.NewMemory()
	}

	env.tracker = recent.New(env.backend, recent.Key(cfg.Host),
		recent.WithLimit(cfg.RecentLimit),
		recent.WithLogger(logger),
	)
	logger.Debug().Str("dir", dir).Strs("sets", store.Names()).Msg("environment ready")
	return env, nil
}

// setName returns the --set flag or SYMBOLS_SET, falling back to the
// configured default set.
func (e *environment) setName() string {
	if name := viper.GetString("set"); name != "" {
		return name
	}
	return e.cfg.DefaultSet
}

// resolve loads the selected set.
func (e *environment) resolve(ctx context.Context) (string, []charset.Entry, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	name := e.setName()
	if !e.store.Registered(name) {
		return name, nil, fmt.Errorf("%w (available: %s)",
			&charset.UnknownSetError{Name: name}, strings.Join(e.store.Names(), ", "))
	}
	entries, err := e.store.Resolve(ctx, name)
	if err != nil {
		return name, nil, err
	}
	return name, entries, nil
}

// Close releases the storage backend.
func (e *environment) Close() error {
	var errs []error
	for _, c := range e.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// cliLogger returns the stderr logger used by the non-interactive commands.
func cliLogger() zerolog.Logger {
	return logging.New(os.Stderr, viper.GetBool("verbose"))
}
