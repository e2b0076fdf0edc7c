// Package bundle writes an assembled matrix to disk as a self-describing
// output directory: the merged counts, one matrix per category layer, the
// annotated identifier tables, and a manifest recording what was written and
// by which run. The artifacts round-trip through the same Matrix Market codec
// that reads quantification output, so a bundle is itself a valid input for
// downstream tools that speak mtx.
package bundle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentstation/utc"
	"github.com/goccy/go-yaml"
	"github.com/google/uuid"

	"github.com/omicstation/mtxkit/pkg/annotate"
	"github.com/omicstation/mtxkit/pkg/constants"
	pkgerrors "github.com/omicstation/mtxkit/pkg/errors"
	"github.com/omicstation/mtxkit/pkg/logging"
	"github.com/omicstation/mtxkit/pkg/matrix"
	"github.com/omicstation/mtxkit/pkg/mtx"
	"github.com/omicstation/mtxkit/pkg/workflow"
)

// Bundle is everything needed to materialize one sample's assembled output.
type Bundle struct {
	Sample    string
	InputType string
	Workflow  workflow.Workflow
	Assembled *matrix.Assembled

	// Features annotates the column axis. When nil, annotations are
	// derived from the matrix column identifiers alone.
	Features *annotate.FeatureTable

	// Version is the tool version recorded in the manifest.
	Version string

	// RunID labels this invocation in the manifest. Generated when empty.
	RunID string
}

// Manifest is the bundle's on-disk self-description, serialized as YAML.
type Manifest struct {
	Sample    string   `json:"sample" yaml:"sample"`
	InputType string   `json:"input_type" yaml:"input_type"`
	Workflow  string   `json:"workflow" yaml:"workflow"`
	Tool      string   `json:"tool" yaml:"tool"`
	Version   string   `json:"version" yaml:"version"`
	RunID     string   `json:"run_id" yaml:"run_id"`
	CreatedAt utc.Time `json:"created_at" yaml:"created_at"`
	Rows      int      `json:"rows" yaml:"rows"`
	Columns   int      `json:"columns" yaml:"columns"`
	Entries   int      `json:"entries" yaml:"entries"`
	Layers    []string `json:"layers,omitempty" yaml:"layers,omitempty"`
	Files     []string `json:"files" yaml:"files"`
}

// Option configures a bundle write.
type Option func(*writer)

// writer holds the resolved write configuration.
type writer struct {
	compress bool
}

// WithUncompressed writes plain artifacts instead of gzip-compressed ones.
func WithUncompressed() Option {
	return func(w *writer) {
		w.compress = false
	}
}

// Dir returns the bundle directory name for a sample and input type,
// e.g. "sample1_raw_matrix".
func Dir(sample, inputType string) string {
	if inputType == "" {
		inputType = constants.DefaultInputType
	}
	return sample + "_" + inputType + constants.BundleSuffix
}

// Write materializes b under outDir and returns the manifest it wrote. The
// bundle directory is created if needed; existing artifacts with the same
// names are overwritten.
func Write(ctx context.Context, outDir string, b *Bundle, opts ...Option) (*Manifest, error) {
	log := logging.Ctx(ctx)

	if b == nil || b.Assembled == nil {
		return nil, fmt.Errorf("nothing to write: %w", pkgerrors.ErrInvalidInput)
	}
	if b.Sample == "" {
		return nil, pkgerrors.NewConfigError("bundle", "sample name is required", nil)
	}
	if err := b.Assembled.Validate(); err != nil {
		return nil, err
	}

	w := &writer{compress: true}
	for _, opt := range opts {
		opt(w)
	}

	features := b.Features
	if features == nil {
		features = annotate.Annotate(b.Assembled.X.ColIDs(), nil)
	}
	if len(features.IDs) != b.Assembled.X.Cols() {
		return nil, pkgerrors.NewShapeError("column", len(features.IDs), b.Assembled.X.Cols(), "")
	}

	runID := b.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	dir := filepath.Join(outDir, Dir(b.Sample, b.InputType))
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return nil, pkgerrors.WrapIO("create", dir, err)
	}

	var files []string
	record := func(rel string) { files = append(files, rel) }

	// Merged counts.
	name := w.artifact(constants.MatrixFilename)
	if err := mtx.WriteFile(filepath.Join(dir, name), b.Assembled.X); err != nil {
		return nil, err
	}
	record(name)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Per-category layers.
	layerNames := make([]string, 0, len(b.Assembled.Layers))
	if len(b.Assembled.Layers) > 0 {
		layersDir := filepath.Join(dir, constants.LayersDirname)
		if err := os.MkdirAll(layersDir, constants.DirPermissions); err != nil {
			return nil, pkgerrors.WrapIO("create", layersDir, err)
		}
		for _, l := range b.Assembled.Layers {
			layerNames = append(layerNames, l.Name)
			name := w.artifact(l.Name + ".mtx")
			if err := mtx.WriteFile(filepath.Join(layersDir, name), l.Matrix); err != nil {
				return nil, err
			}
			record(constants.LayersDirname + "/" + name)

			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}

	// Barcode table: one row per matrix row, with the sample label the
	// barcodes belong to.
	name = w.artifact(constants.BarcodesFilename)
	if err := w.writeBarcodes(filepath.Join(dir, name), b.Assembled.X.RowIDs(), b.Sample); err != nil {
		return nil, err
	}
	record(name)

	// Feature table: final id, versioned id, symbol.
	name = w.artifact(constants.FeaturesFilename)
	if err := w.writeFeatures(filepath.Join(dir, name), features); err != nil {
		return nil, err
	}
	record(name)

	manifest := &Manifest{
		Sample:    b.Sample,
		InputType: b.InputType,
		Workflow:  b.Workflow.String(),
		Tool:      "mtxkit",
		Version:   b.Version,
		RunID:     runID,
		CreatedAt: utc.Now(),
		Rows:      b.Assembled.X.Rows(),
		Columns:   b.Assembled.X.Cols(),
		Entries:   b.Assembled.X.NNZ(),
		Layers:    layerNames,
		Files:     files,
	}
	if err := writeManifest(filepath.Join(dir, constants.ManifestFilename), manifest); err != nil {
		return nil, err
	}

	log.Info().
		Str("dir", dir).
		Int("rows", manifest.Rows).
		Int("columns", manifest.Columns).
		Int("entries", manifest.Entries).
		Strs("layers", layerNames).
		Msg("wrote bundle")

	return manifest, nil
}

// artifact applies the compression suffix to a base artifact name.
func (w *writer) artifact(base string) string {
	if w.compress {
		return base + constants.GzipSuffix
	}
	return base
}

func (w *writer) writeBarcodes(path string, ids []string, sample string) error {
	out, err := mtx.Create(path)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := fmt.Fprintf(out, "%s\t%s\n", id, sample); err != nil {
			out.Close()
			return pkgerrors.WrapIO("write", path, err)
		}
	}
	return out.Close()
}

func (w *writer) writeFeatures(path string, ft *annotate.FeatureTable) error {
	out, err := mtx.Create(path)
	if err != nil {
		return err
	}
	for i, id := range ft.IDs {
		if _, err := fmt.Fprintf(out, "%s\t%s\t%s\n", id, ft.Versions[i], ft.Symbols[i]); err != nil {
			out.Close()
			return pkgerrors.WrapIO("write", path, err)
		}
	}
	return out.Close()
}

func writeManifest(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return pkgerrors.NewConfigError("bundle", "marshaling manifest", err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return pkgerrors.WrapIO("write", path, err)
	}
	return nil
}

// ReadManifest loads the manifest of a bundle directory.
func ReadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, constants.ManifestFilename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, pkgerrors.NewNotFoundError("manifest", constants.ManifestFilename, dir)
		}
		return nil, pkgerrors.WrapIO("read", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, pkgerrors.WrapParse("yaml", path, err)
	}
	return &m, nil
}
