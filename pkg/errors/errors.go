// Package errors provides custom error types for the mtxkit system.
// These errors enable programmatic error checking and carry enough
// context (paths, axes, counts) to diagnose malformed inputs without
// re-running a pipeline invocation.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the mtxkit system
var (
	// ErrNotFound indicates that a required input resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrMisaligned indicates that two tables disagree on an identifier axis.
	// This class of error aborts the pipeline before any summation because a
	// silent mismatch would corrupt every downstream value.
	ErrMisaligned = errors.New("misaligned axes")
)

// NotFoundError reports a discovery pattern or file path that resolved to
// no input resource.
type NotFoundError struct {
	Resource string // "matrix", "barcodes", "features", "t2g", ...
	Pattern  string // glob pattern or literal path that failed to resolve
	Dir      string // directory searched, if any
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Dir != "" {
		return fmt.Sprintf("%s not found: no match for %q in %s", e.Resource, e.Pattern, e.Dir)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Pattern)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, pattern, dir string) *NotFoundError {
	return &NotFoundError{Resource: resource, Pattern: pattern, Dir: dir}
}

// ShapeError reports a disagreement between a side-table identifier count
// and the corresponding matrix dimension. It is fatal: no alignment work
// may start from an inconsistently shaped table.
type ShapeError struct {
	Axis string // "row" or "column"
	IDs  int    // identifiers supplied by the side table
	Dim  int    // matrix dimension along the axis
	Path string // matrix file, if known
}

// Error implements the error interface
func (e *ShapeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s count mismatch in %s: %d identifiers for %d %ss", e.Axis, e.Path, e.IDs, e.Dim, e.Axis)
	}
	return fmt.Sprintf("%s count mismatch: %d identifiers for %d %ss", e.Axis, e.IDs, e.Dim, e.Axis)
}

// Is implements errors.Is support
func (e *ShapeError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewShapeError creates a new ShapeError
func NewShapeError(axis string, ids, dim int, path string) *ShapeError {
	return &ShapeError{Axis: axis, IDs: ids, Dim: dim, Path: path}
}

// AlignmentError reports that two tables which must share an identifier
// sequence do not. Position is the first index at which they diverge, or
// -1 when the lengths differ.
type AlignmentError struct {
	Axis     string // "row" or "column"
	Left     string // name of the first table (category name)
	Right    string // name of the second table
	Position int
}

// Error implements the error interface
func (e *AlignmentError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("%s identifiers of %s and %s have different lengths", e.Axis, e.Left, e.Right)
	}
	return fmt.Sprintf("%s identifiers of %s and %s diverge at position %d", e.Axis, e.Left, e.Right, e.Position)
}

// Is implements errors.Is support
func (e *AlignmentError) Is(target error) bool {
	return target == ErrMisaligned
}

// NewAlignmentError creates a new AlignmentError
func NewAlignmentError(axis, left, right string, position int) *AlignmentError {
	return &AlignmentError{Axis: axis, Left: left, Right: right, Position: position}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "mtx", "tsv", "yaml", ...
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s file %s, line %d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, line int, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Line:    line,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidInput checks if an error is an invalid input error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsMisaligned checks if an error is an axis alignment error
func IsMisaligned(err error) bool {
	return errors.Is(err, ErrMisaligned)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, 0, err.Error(), err)
}
