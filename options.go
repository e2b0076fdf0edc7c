package mtxkit

import (
	"github.com/rs/zerolog"

	"github.com/omicstation/mtxkit/pkg/constants"
	pkgerrors "github.com/omicstation/mtxkit/pkg/errors"
	"github.com/omicstation/mtxkit/pkg/reconcile"
	"github.com/omicstation/mtxkit/pkg/workflow"
)

// Option is a function that configures a Kit instance.
type Option func(*config) error

// config holds the resolved assembly configuration.
type config struct {
	wf            workflow.Workflow
	inputsDir     string
	outputDir     string
	sample        string
	inputType     string
	t2gPath       string
	version       string
	processLabel  string
	runID         string
	order         reconcile.UnionOrder
	compress      bool
	writeVersions bool
	logger        *zerolog.Logger
}

func defaultConfig() *config {
	return &config{
		wf:            workflow.Standard,
		outputDir:     ".",
		inputType:     constants.DefaultInputType,
		version:       "dev",
		order:         reconcile.OrderLexicographic,
		compress:      true,
		writeVersions: true,
	}
}

func (c *config) validate() error {
	if c.inputsDir == "" {
		return pkgerrors.NewConfigError("mtxkit", "inputs directory is required", nil)
	}
	if c.sample == "" {
		return pkgerrors.NewConfigError("mtxkit", "sample name is required", nil)
	}
	if !c.wf.Valid() {
		return pkgerrors.NewConfigError("mtxkit", "unknown workflow "+c.wf.String(), nil)
	}
	return nil
}

// WithWorkflow sets the quantification workflow variant.
func WithWorkflow(w workflow.Workflow) Option {
	return func(c *config) error {
		if !w.Valid() {
			return pkgerrors.NewConfigError("mtxkit", "unknown workflow "+w.String(), nil)
		}
		c.wf = w
		return nil
	}
}

// WithWorkflowName sets the workflow variant by name ("standard", "lamanno"
// or "nac").
func WithWorkflowName(name string) Option {
	return func(c *config) error {
		w, err := workflow.Parse(name)
		if err != nil {
			return err
		}
		c.wf = w
		return nil
	}
}

// WithInputsDir sets the directory holding quantification output. Required.
func WithInputsDir(dir string) Option {
	return func(c *config) error {
		c.inputsDir = dir
		return nil
	}
}

// WithOutputDir sets the directory the bundle is written under.
// Defaults to the working directory.
func WithOutputDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			dir = "."
		}
		c.outputDir = dir
		return nil
	}
}

// WithSample sets the sample identifier. Required; it names the bundle
// directory and labels every barcode row.
func WithSample(sample string) Option {
	return func(c *config) error {
		c.sample = sample
		return nil
	}
}

// WithInputType sets the input type label ("raw", "filtered") used in the
// bundle directory name and manifest.
func WithInputType(inputType string) Option {
	return func(c *config) error {
		if inputType == "" {
			inputType = constants.DefaultInputType
		}
		c.inputType = inputType
		return nil
	}
}

// WithT2G sets the transcript-to-gene mapping used to join gene symbols onto
// the feature axis. Without it, features carry no symbols.
func WithT2G(path string) Option {
	return func(c *config) error {
		c.t2gPath = path
		return nil
	}
}

// WithVersion sets the tool version recorded in manifests.
func WithVersion(version string) Option {
	return func(c *config) error {
		if version != "" {
			c.version = version
		}
		return nil
	}
}

// WithProcessLabel sets the process key of the tool version manifest.
func WithProcessLabel(label string) Option {
	return func(c *config) error {
		c.processLabel = label
		return nil
	}
}

// WithRunID pins the run identifier instead of generating one, so pipeline
// engines can correlate bundle manifests with their own bookkeeping.
func WithRunID(id string) Option {
	return func(c *config) error {
		c.runID = id
		return nil
	}
}

// WithUnionOrder sets how the merged barcode union is ordered.
func WithUnionOrder(order reconcile.UnionOrder) Option {
	return func(c *config) error {
		c.order = order
		return nil
	}
}

// WithFirstSeenOrder orders the barcode union by first appearance instead of
// lexicographically.
func WithFirstSeenOrder() Option {
	return func(c *config) error {
		c.order = reconcile.OrderFirstSeen
		return nil
	}
}

// WithUncompressed writes plain bundle artifacts instead of gzipped ones.
func WithUncompressed() Option {
	return func(c *config) error {
		c.compress = false
		return nil
	}
}

// WithoutVersionsFile disables writing the tool version manifest.
func WithoutVersionsFile() Option {
	return func(c *config) error {
		c.writeVersions = false
		return nil
	}
}

// WithLogger sets the logger used during assembly. Defaults to the package
// default logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}
