package cmd

import (
	"fmt"
	"os"

	"github.com/ziadkadry99/bookcat/internal/catalog"
	"github.com/ziadkadry99/bookcat/internal/config"
	"github.com/ziadkadry99/bookcat/internal/page"
	"github.com/ziadkadry99/bookcat/internal/progress"
	"github.com/ziadkadry99/bookcat/internal/session"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	c, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `bookcat init` to create a config file", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return c, nil
}

// newSessionStore returns the cookie store for the configured backend.
func newSessionStore() (*session.Store, error) {
	return session.NewStore(cfg.SessionFile, cfg.BaseURL)
}

// newClient creates a catalog client that restores and saves the session.
func newClient() (*catalog.Client, error) {
	store, err := newSessionStore()
	if err != nil {
		return nil, err
	}
	return catalog.New(cfg.BaseURL,
		catalog.WithListPath(cfg.ListPath),
		catalog.WithCookieStore(store),
		catalog.WithReporter(progress.NewReporter(os.Stderr)),
	)
}

// newPage returns a terminal page starting at path.
func newPage(path string) *page.Terminal {
	return page.NewTerminal(os.Stdin, os.Stdout, cfg.Color, path)
}
