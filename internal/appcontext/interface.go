// Package appcontext provides the shared application context interface
// used by all commands. This eliminates interface duplication across
// command packages and provides a single source of truth for app dependencies.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/omicstation/mtxkit"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/mtxkit/app automatically implements this interface,
// providing dependency injection for commands while maintaining testability.
//
// Commands should accept this interface (or a narrower local subset of it)
// rather than the concrete App type, allowing for easier testing with mock
// implementations.
type Interface interface {
	// Kit creates an assembly kit combining app-level defaults with the
	// given per-command options. Later options win.
	Kit(opts ...mtxkit.Option) (mtxkit.Kit, error)

	// Logger returns the configured logger instance.
	// Commands should use this for all logging operations.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	// Commands that support different output formats should use this.
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
