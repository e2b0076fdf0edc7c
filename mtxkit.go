// Package mtxkit assembles kallisto|bustools quantification output into one
// unified, annotated count matrix per sample. It discovers the per-workflow
// matrix files in a sample directory, loads them with their barcode and
// feature side tables, reconciles per-category matrices onto a shared barcode
// union with explicit zero fill, verifies the feature axis, sums the
// categories, joins gene symbols from a transcript-to-gene mapping, and
// writes a self-describing output bundle.
//
// Example usage:
//
//	kit, err := mtxkit.New(
//		mtxkit.WithWorkflowName("lamanno"),
//		mtxkit.WithInputsDir("counts_unfiltered"),
//		mtxkit.WithT2G("t2g.txt"),
//		mtxkit.WithSample("pbmc1k"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := kit.Assemble(context.Background())
package mtxkit

import (
	"context"
	"fmt"

	"github.com/omicstation/mtxkit/pkg/bundle"
	"github.com/omicstation/mtxkit/pkg/reconcile"
	"github.com/omicstation/mtxkit/pkg/workflow"
)

// Kit assembles quantification output for one sample.
type Kit interface {
	// Assemble runs the full pipeline: discover inputs, load matrices,
	// reconcile categories, annotate features, write the bundle.
	Assemble(ctx context.Context) (*Result, error)

	// Workflow returns the configured workflow variant.
	Workflow() workflow.Workflow
}

// Result reports what an assembly run produced.
type Result struct {
	// Manifest is the written bundle's self-description.
	Manifest *bundle.Manifest

	// Stats summarizes the reconciliation that produced the bundle.
	Stats reconcile.Stats

	// BundleDir is the path of the written bundle directory.
	BundleDir string

	// VersionsPath is the path of the tool version manifest, empty when
	// version recording was disabled.
	VersionsPath string
}

// kit is the internal implementation of the Kit interface.
type kit struct {
	config *config
}

// New creates a new Kit with the given options.
func New(opts ...Option) (Kit, error) {
	k := &kit{config: defaultConfig()}

	for _, opt := range opts {
		if err := opt(k.config); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	if err := k.config.validate(); err != nil {
		return nil, err
	}
	return k, nil
}

// Workflow returns the configured workflow variant.
func (k *kit) Workflow() workflow.Workflow {
	return k.config.wf
}
