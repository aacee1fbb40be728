package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/handiism/shelves/internal/config"
	"github.com/handiism/shelves/internal/journal"
	"github.com/handiism/shelves/internal/library"
	"github.com/handiism/shelves/internal/logging"
)

type commandContext struct {
	configFlag string
	levelFlag  string
	verbose    bool

	configOnce sync.Once
	configPath string
	settings   *config.Settings
	configErr  error

	logger   *slog.Logger
	closeLog func() error
	store    *journal.Store
}

func newCommandContext() *commandContext {
	return &commandContext{logger: logging.NewNop()}
}

func (c *commandContext) ensureSettings() (*config.Settings, error) {
	c.configOnce.Do(func() {
		path, err := c.path()
		if err != nil {
			c.configErr = err
			return
		}
		settings, err := config.Load(path)
		if err != nil {
			c.configErr = fmt.Errorf("load %s: %w", path, err)
			return
		}
		if level := strings.TrimSpace(c.levelFlag); level != "" {
			settings.Logging.Level = level
		}
		c.configPath = path
		c.settings = settings
	})
	return c.settings, c.configErr
}

func (c *commandContext) path() (string, error) {
	if p := strings.TrimSpace(c.configFlag); p != "" {
		return p, nil
	}
	p, err := config.DefaultPath()
	if err != nil {
		return "", fmt.Errorf("determine default config path: %w", err)
	}
	return p, nil
}

// saveSettings persists the loaded settings to the file they came from.
func (c *commandContext) saveSettings() error {
	if c.settings == nil {
		return errors.New("configuration not loaded")
	}
	if err := c.settings.Save(c.configPath); err != nil {
		return fmt.Errorf("save %s: %w", c.configPath, err)
	}
	return nil
}

func (c *commandContext) initLogger(w io.Writer) error {
	if c.closeLog != nil {
		return nil
	}
	logger, closeFn, err := logging.New(logging.Options{
		Level:  c.settings.Logging.Level,
		Format: c.settings.Logging.Format,
		File:   c.settings.Logging.File,
		Writer: w,
	})
	if err != nil {
		return err
	}
	c.logger = logger
	c.closeLog = closeFn
	return nil
}

// openJournal opens the decision journal. It returns nil when the journal is
// disabled.
func (c *commandContext) openJournal() (*journal.Store, error) {
	if c.store != nil || !c.settings.Journal.Enabled {
		return c.store, nil
	}
	store, err := journal.Open(c.settings.Journal.Path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	c.store = store
	return store, nil
}

func (c *commandContext) newManager(out io.Writer) (*library.Manager, error) {
	opts := []library.Option{
		library.WithLogger(c.logger),
		library.WithProgress(progressPrinter(out, c.verbose)),
	}
	store, err := c.openJournal()
	if err != nil {
		return nil, err
	}
	if store != nil {
		opts = append(opts, library.WithJournal(store))
	}
	return library.NewManager(c.settings, opts...), nil
}

func (c *commandContext) close() {
	if c.store != nil {
		if err := c.store.Close(); err != nil {
			c.logger.Warn("close journal", "error", err)
		}
		c.store = nil
	}
	if c.closeLog != nil {
		_ = c.closeLog()
		c.closeLog = nil
	}
}
