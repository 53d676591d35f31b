package application

import (
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/go-propstore/propstore/internal/config"
	"github.com/go-propstore/propstore/internal/settings"
)

// App encapsulates the configuration store and the logger used by the shell.
type App struct {
	store  *settings.Store
	logger *zap.Logger
}

// New resolves the process-wide store and wires the application. A failure
// to load the bundled default resource is unrecoverable and surfaces here;
// the shell must not run against a silently empty store.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	store, err := settings.Default()
	if err != nil {
		return nil, fmt.Errorf("initialize configuration store: %w", err)
	}
	return NewWithStore(cfg, logger, store)
}

// NewWithStore wires the application around an externally supplied store.
// It applies the configured override file, if any, before returning.
func NewWithStore(cfg config.Config, logger *zap.Logger, store *settings.Store) (*App, error) {
	if cfg.Overrides != "" {
		if err := store.LoadFile(cfg.Overrides); err != nil {
			return nil, fmt.Errorf("apply overrides: %w", err)
		}
		logger.Info("merged override properties",
			zap.String("path", cfg.Overrides),
			zap.Int("entries", store.Len()),
		)
	}

	return &App{store: store, logger: logger}, nil
}

// Get writes the value of key to w. When the key is absent and fallback is
// non-nil, the fallback is written instead; without a fallback an absent
// key is an error.
func (a *App) Get(w io.Writer, key string, fallback *string) error {
	if fallback != nil {
		fmt.Fprintln(w, a.store.GetString(key, *fallback))
		return nil
	}

	value, ok := a.store.Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %q", settings.ErrKeyNotFound, key)
	}
	fmt.Fprintln(w, value)
	return nil
}

// Has writes whether key has a non-blank value.
func (a *App) Has(w io.Writer, key string) error {
	fmt.Fprintln(w, strconv.FormatBool(a.store.HasValue(key)))
	return nil
}

// GetInt writes the value of key parsed as an integer.
func (a *App) GetInt(w io.Writer, key string) error {
	n, err := a.store.GetInt(key)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, n)
	return nil
}

// GetInt64 writes the value of key parsed as a 64-bit integer.
func (a *App) GetInt64(w io.Writer, key string) error {
	n, err := a.store.GetInt64(key)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, n)
	return nil
}

// GetBool writes the value of key interpreted as a boolean.
func (a *App) GetBool(w io.Writer, key string) error {
	b, err := a.store.GetBool(key)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, strconv.FormatBool(b))
	return nil
}

// Load merges the properties file at path into the live store.
func (a *App) Load(path string) error {
	if err := a.store.LoadFile(path); err != nil {
		return err
	}
	a.logger.Info("merged properties file",
		zap.String("path", path),
		zap.Int("entries", a.store.Len()),
	)
	return nil
}

// Dump writes the raw bundled default resource to w. The copy is
// best-effort: failures are logged, never returned, and the command still
// exits successfully.
func (a *App) Dump(w io.Writer) {
	if err := settings.DumpDefault(w); err != nil {
		a.logger.Warn("failed to dump default resource", zap.Error(err))
	}
}

// List writes all entries of the live store as key=value lines, sorted by key.
func (a *App) List(w io.Writer) error {
	for _, key := range a.store.Keys() {
		value, _ := a.store.Lookup(key)
		if _, err := fmt.Fprintf(w, "%s=%s\n", key, value); err != nil {
			return fmt.Errorf("write entry: %w", err)
		}
	}
	return nil
}
