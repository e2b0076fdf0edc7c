package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/omicstation/mtxkit"
	"github.com/omicstation/mtxkit/pkg/logging"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	KitFunc          func(...mtxkit.Option) (mtxkit.Kit, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Kit creates a kit using the mock function or plain mtxkit.New.
func (m *Mock) Kit(opts ...mtxkit.Option) (mtxkit.Kit, error) {
	if m.KitFunc != nil {
		return m.KitFunc(opts...)
	}
	return mtxkit.New(opts...)
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	return &logging.Nop
}

// OutputFormat returns a format using the mock function or empty string.
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return ""
}

// Version returns a version using the mock function or "test".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "test"
}

// Commit returns a commit using the mock function or empty string.
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return ""
}

// Date returns a date using the mock function or empty string.
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return ""
}

// BuiltBy returns a builder using the mock function or empty string.
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return ""
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
