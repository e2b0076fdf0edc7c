// Package app provides the application context and dependency management
// for the mtxkit CLI. It follows idiomatic Go patterns for CLI applications
// by centralizing configuration, dependency injection, and lifecycle management.
package app

import (
	"github.com/rs/zerolog"

	"github.com/omicstation/mtxkit"
	"github.com/omicstation/mtxkit/internal/cmd/output"
	"github.com/omicstation/mtxkit/pkg/errors"
)

// App represents the mtxkit application with all its dependencies.
// It provides a centralized place for configuration and logging,
// following the dependency injection pattern.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger
}

// New creates a new App instance with the given version information.
// The app is initialized with default configuration that can be
// customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "loading configuration", err)
	}
	app.config = config

	// Initialize logger
	logger := NewLogger(config)
	app.logger = &logger

	// Apply any custom options
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format, falling back to
// terminal detection when no format was set.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Format))
}

// Kit creates an assembly kit combining app-level defaults with the
// given per-command options. Later options win, so command flags
// override anything derived from configuration.
func (a *App) Kit(opts ...mtxkit.Option) (mtxkit.Kit, error) {
	combined := append(a.buildKitOptions(), opts...)
	return mtxkit.New(combined...)
}

// buildKitOptions constructs kit options from the app configuration.
func (a *App) buildKitOptions() []mtxkit.Option {
	opts := []mtxkit.Option{
		mtxkit.WithVersion(a.version),
		mtxkit.WithLogger(a.logger),
	}

	if a.config.OutputDir != "" {
		opts = append(opts, mtxkit.WithOutputDir(a.config.OutputDir))
	}
	if a.config.InputType != "" {
		opts = append(opts, mtxkit.WithInputType(a.config.InputType))
	}
	if a.config.ProcessLabel != "" {
		opts = append(opts, mtxkit.WithProcessLabel(a.config.ProcessLabel))
	}
	if !a.config.Compress {
		opts = append(opts, mtxkit.WithUncompressed())
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
