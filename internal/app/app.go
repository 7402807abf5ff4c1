// Package app wires configuration, logging, metrics and seed data into the
// actionlog command line.
package app

import (
	"fmt"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/dshills/actionlog/internal/chat"
	"github.com/dshills/actionlog/internal/config"
	"github.com/dshills/actionlog/internal/library"
	"github.com/dshills/actionlog/internal/logging"
	"github.com/dshills/actionlog/internal/metrics"
	"github.com/dshills/actionlog/internal/route"
	"github.com/dshills/actionlog/internal/seed"
)

// Options are the command-line overrides applied on top of the config file.
type Options struct {
	// ConfigPath is the path to the TOML configuration file.
	ConfigPath string

	// LogLevel overrides logging.level when non-empty.
	LogLevel string

	// Stats forces counters on.
	Stats bool
}

// App holds the shared pieces every session needs.
type App struct {
	cfg     config.Config
	logger  log.Logger
	metrics *metrics.Metrics
	seed    *seed.Seed
}

// New loads configuration and seed data. Logs go to stderr.
func New(opts Options, stderr io.Writer) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.Stats {
		cfg.Metrics.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(stderr, cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	s, err := seed.Load(cfg.Seed)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:    cfg,
		logger: logger,
		seed:   s,
	}
	if cfg.Metrics.Enabled {
		a.metrics = metrics.New()
	}

	level.Debug(logger).Log("msg", "app initialized", "config", opts.ConfigPath, "seed", cfg.Seed, "metrics", cfg.Metrics.Enabled)
	return a, nil
}

// Config returns the resolved configuration.
func (a *App) Config() config.Config {
	return a.cfg
}

// Library builds the seeded library.
func (a *App) Library() (*library.Library, error) {
	return a.seed.Library(
		library.WithLogger(log.With(a.logger, "component", "library")),
		library.WithMetrics(a.metrics),
	)
}

// Cursor builds a cursor on the configured route.
func (a *App) Cursor(name, start string) (*route.Cursor, error) {
	if name == "" {
		name = a.cfg.Route.Name
	}
	if start == "" {
		start = a.cfg.Route.Start
	}
	r, err := a.seed.Route(name)
	if err != nil {
		return nil, fmt.Errorf("%w (known routes: %v)", err, a.seed.RouteNames())
	}
	return route.NewCursor(r, start,
		route.WithMoveObserver(metrics.Observer[route.Stop](a.metrics, "route")),
	), nil
}

// Chat builds a chat manager.
func (a *App) Chat() *chat.Manager {
	return chat.NewManager(
		chat.WithLogger(log.With(a.logger, "component", "chat")),
		chat.WithMetrics(a.metrics),
	)
}

// WriteStats prints the counters if metrics are enabled.
func (a *App) WriteStats(w io.Writer) error {
	if a.metrics == nil {
		return nil
	}
	return a.metrics.WriteText(w)
}
