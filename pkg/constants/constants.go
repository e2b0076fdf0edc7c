// Package constants provides shared constants used throughout the mtxkit
// codebase. This includes file permissions, artifact names, buffer sizes,
// and other configuration values that should be consistent across the
// application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Buffer constants
const (
	// ScanBufferSize is the maximum line length accepted when scanning
	// text inputs (side tables, mappings, matrix bodies)
	ScanBufferSize = 1 << 20

	// WriteBufferSize is the buffer size for file writers
	WriteBufferSize = 1 << 20
)

// Artifact name constants define the fixed file names inside an output bundle
const (
	// MatrixFilename is the merged count matrix artifact
	MatrixFilename = "matrix.mtx"

	// BarcodesFilename is the row identifier table artifact
	BarcodesFilename = "barcodes.tsv"

	// FeaturesFilename is the feature annotation table artifact
	FeaturesFilename = "features.tsv"

	// ManifestFilename is the bundle manifest artifact
	ManifestFilename = "manifest.yaml"

	// LayersDirname is the subdirectory holding per-category matrices
	LayersDirname = "layers"

	// VersionsFilename is the tool version manifest emitted next to bundles
	VersionsFilename = "versions.yml"

	// GzipSuffix is appended to compressed artifact names
	GzipSuffix = ".gz"

	// BundleSuffix terminates an output bundle directory name
	BundleSuffix = "_matrix"
)

// Default values
const (
	// DefaultInputType is the input type label used when none is specified
	DefaultInputType = "raw"

	// DefaultProcessLabel is the process name keyed in version manifests
	// when the caller does not provide one
	DefaultProcessLabel = "MTXKIT_ASSEMBLE"
)

// Format constants
const (
	// TimeFormatISO8601 is the ISO 8601 time format
	TimeFormatISO8601 = time.RFC3339

	// TimeFormatFilename is the format used in generated filenames
	TimeFormatFilename = "20060102-150405"
)
