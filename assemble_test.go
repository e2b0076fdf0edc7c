package mtxkit

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/omicstation/mtxkit/pkg/errors"
	"github.com/omicstation/mtxkit/pkg/logging"
	"github.com/omicstation/mtxkit/pkg/mtx"
)

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func readGz(t *testing.T, path string) string {
	t.Helper()
	r, err := mtx.Open(path)
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

const testT2G = "ENST01\tENSG01.1\tGENE1\nENST02\tENSG02.1\tGENE2\n"

func standardFixture(t *testing.T) string {
	dir := t.TempDir()
	write(t, dir, "cells_x_genes.mtx",
		"%%MatrixMarket matrix coordinate integer general\n3 2 3\n1 1 5\n2 2 1\n3 1 2\n")
	write(t, dir, "cells_x_genes.barcodes.txt", "TTT\nAAA\nCCC\n")
	write(t, dir, "cells_x_genes.genes.txt", "ENSG01.1\nENSG02.1\n")
	write(t, dir, "t2g.txt", testT2G)
	return dir
}

func lamannoFixture(t *testing.T) string {
	dir := t.TempDir()
	write(t, dir, "spliced.mtx",
		"%%MatrixMarket matrix coordinate integer general\n2 2 2\n1 1 5\n2 2 1\n")
	write(t, dir, "spliced.barcodes.txt", "AAA\nCCC\n")
	write(t, dir, "spliced.genes.txt", "ENSG01.1\nENSG02.1\n")
	write(t, dir, "unspliced.mtx",
		"%%MatrixMarket matrix coordinate integer general\n2 2 2\n1 1 2\n2 1 7\n")
	write(t, dir, "unspliced.barcodes.txt", "CCC\nGGG\n")
	write(t, dir, "unspliced.genes.txt", "ENSG01.1\nENSG02.1\n")
	write(t, dir, "t2g.txt", testT2G)
	return dir
}

func nacFixture(t *testing.T) string {
	dir := t.TempDir()
	body := "%%MatrixMarket matrix coordinate integer general\n2 1 1\n1 1 1\n"
	write(t, dir, "cells_x_genes.nascent.mtx", body)
	write(t, dir, "cells_x_genes.ambiguous.mtx",
		"%%MatrixMarket matrix coordinate integer general\n2 1 1\n2 1 3\n")
	write(t, dir, "cells_x_genes.mature.mtx",
		"%%MatrixMarket matrix coordinate integer general\n2 1 2\n1 1 2\n2 1 2\n")
	write(t, dir, "cells_x_genes.barcodes.txt", "AAA\nCCC\n")
	write(t, dir, "cells_x_genes.genes.txt", "ENSG01.1\n")
	write(t, dir, "t2g.txt", "ENST01\tENSG01.1\tGENE1\n")
	return dir
}

func TestAssembleStandard(t *testing.T) {
	inputs := standardFixture(t)
	out := t.TempDir()

	kit, err := New(
		WithWorkflowName("standard"),
		WithInputsDir(inputs),
		WithT2G(filepath.Join(inputs, "t2g.txt")),
		WithSample("sample1"),
		WithOutputDir(out),
		WithVersion("1.0.0"),
		WithLogger(&logging.Nop),
	)
	require.NoError(t, err)

	res, err := kit.Assemble(context.Background())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(out, "sample1_raw_matrix"), res.BundleDir)
	assert.Equal(t, 3, res.Manifest.Rows)
	assert.Equal(t, 2, res.Manifest.Columns)
	assert.Empty(t, res.Manifest.Layers)
	assert.Equal(t, 1, res.Stats.Partitions)

	// Standard keeps the input's barcode file order.
	m, err := mtx.Load(
		filepath.Join(res.BundleDir, "matrix.mtx.gz"),
		filepath.Join(res.BundleDir, "barcodes.tsv.gz"),
		filepath.Join(res.BundleDir, "features.tsv.gz"),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"TTT", "AAA", "CCC"}, m.RowIDs())
	assert.Equal(t, [][]float64{{5, 0}, {0, 1}, {2, 0}}, m.Dense())

	// Feature annotations: stripped id, versioned id, joined symbol.
	features := readGz(t, filepath.Join(res.BundleDir, "features.tsv.gz"))
	assert.Equal(t, "ENSG01\tENSG01.1\tGENE1\nENSG02\tENSG02.1\tGENE2\n", features)

	// Version manifest sits next to the bundle.
	require.NotEmpty(t, res.VersionsPath)
	data, err := os.ReadFile(res.VersionsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "MTXKIT_ASSEMBLE:")
	assert.Contains(t, string(data), "mtxkit: 1.0.0")
	assert.Contains(t, string(data), "go: go")
}

func TestAssembleLaManno(t *testing.T) {
	inputs := lamannoFixture(t)
	out := t.TempDir()

	kit, err := New(
		WithWorkflowName("lamanno"),
		WithInputsDir(inputs),
		WithT2G(filepath.Join(inputs, "t2g.txt")),
		WithSample("velo"),
		WithInputType("filtered"),
		WithOutputDir(out),
		WithLogger(&logging.Nop),
	)
	require.NoError(t, err)

	res, err := kit.Assemble(context.Background())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(out, "velo_filtered_matrix"), res.BundleDir)
	assert.Equal(t, []string{"spliced", "unspliced"}, res.Manifest.Layers)
	assert.Equal(t, 3, res.Manifest.Rows)
	assert.Equal(t, map[string]int{"spliced": 1, "unspliced": 1}, res.Stats.Filled)

	// Merged counts on the sorted barcode union.
	m, err := mtx.Load(
		filepath.Join(res.BundleDir, "matrix.mtx.gz"),
		filepath.Join(res.BundleDir, "barcodes.tsv.gz"),
		filepath.Join(res.BundleDir, "features.tsv.gz"),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAA", "CCC", "GGG"}, m.RowIDs())
	assert.Equal(t, [][]float64{{5, 0}, {2, 1}, {7, 0}}, m.Dense())

	// Layers align to the same union, zero-filled where unobserved.
	spliced, err := mtx.Load(
		filepath.Join(res.BundleDir, "layers", "spliced.mtx.gz"),
		filepath.Join(res.BundleDir, "barcodes.tsv.gz"),
		filepath.Join(res.BundleDir, "features.tsv.gz"),
	)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{5, 0}, {0, 1}, {0, 0}}, spliced.Dense())

	unspliced, err := mtx.Load(
		filepath.Join(res.BundleDir, "layers", "unspliced.mtx.gz"),
		filepath.Join(res.BundleDir, "barcodes.tsv.gz"),
		filepath.Join(res.BundleDir, "features.tsv.gz"),
	)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 0}, {2, 0}, {7, 0}}, unspliced.Dense())

	// Every barcode row carries the sample label.
	barcodes := readGz(t, filepath.Join(res.BundleDir, "barcodes.tsv.gz"))
	assert.Equal(t, "AAA\tvelo\nCCC\tvelo\nGGG\tvelo\n", barcodes)
}

func TestAssembleNac(t *testing.T) {
	inputs := nacFixture(t)
	out := t.TempDir()

	kit, err := New(
		WithWorkflowName("nac"),
		WithInputsDir(inputs),
		WithT2G(filepath.Join(inputs, "t2g.txt")),
		WithSample("nuc1"),
		WithOutputDir(out),
		WithLogger(&logging.Nop),
	)
	require.NoError(t, err)

	res, err := kit.Assemble(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"nascent", "ambiguous", "mature"}, res.Manifest.Layers)

	m, err := mtx.Load(
		filepath.Join(res.BundleDir, "matrix.mtx.gz"),
		filepath.Join(res.BundleDir, "barcodes.tsv.gz"),
		filepath.Join(res.BundleDir, "features.tsv.gz"),
	)
	require.NoError(t, err)

	// nascent: AAA=1; ambiguous: CCC=3; mature: AAA=2, CCC=2.
	assert.Equal(t, []string{"AAA", "CCC"}, m.RowIDs())
	assert.Equal(t, [][]float64{{3}, {5}}, m.Dense())
}

func TestAssembleFirstSeenOrder(t *testing.T) {
	inputs := lamannoFixture(t)
	out := t.TempDir()

	kit, err := New(
		WithWorkflowName("lamanno"),
		WithInputsDir(inputs),
		WithSample("velo"),
		WithOutputDir(out),
		WithFirstSeenOrder(),
		WithoutVersionsFile(),
		WithLogger(&logging.Nop),
	)
	require.NoError(t, err)

	res, err := kit.Assemble(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.VersionsPath)

	barcodes := readGz(t, filepath.Join(res.BundleDir, "barcodes.tsv.gz"))
	assert.Equal(t, "AAA\tvelo\nCCC\tvelo\nGGG\tvelo\n", barcodes)
}

func TestAssembleUncompressed(t *testing.T) {
	inputs := standardFixture(t)
	out := t.TempDir()

	kit, err := New(
		WithWorkflowName("standard"),
		WithInputsDir(inputs),
		WithSample("s1"),
		WithOutputDir(out),
		WithUncompressed(),
		WithLogger(&logging.Nop),
	)
	require.NoError(t, err)

	res, err := kit.Assemble(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(res.BundleDir, "matrix.mtx"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "%%MatrixMarket")
}

func TestAssemblePinnedRunID(t *testing.T) {
	inputs := standardFixture(t)
	out := t.TempDir()

	kit, err := New(
		WithWorkflowName("standard"),
		WithInputsDir(inputs),
		WithSample("s1"),
		WithOutputDir(out),
		WithRunID("nf-task-77"),
		WithLogger(&logging.Nop),
	)
	require.NoError(t, err)

	res, err := kit.Assemble(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "nf-task-77", res.Manifest.RunID)
}

func TestAssembleMissingInputs(t *testing.T) {
	kit, err := New(
		WithWorkflowName("lamanno"),
		WithInputsDir(t.TempDir()),
		WithSample("s1"),
		WithOutputDir(t.TempDir()),
		WithLogger(&logging.Nop),
	)
	require.NoError(t, err)

	_, err = kit.Assemble(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestAssembleMissingT2G(t *testing.T) {
	inputs := standardFixture(t)

	kit, err := New(
		WithWorkflowName("standard"),
		WithInputsDir(inputs),
		WithT2G(filepath.Join(inputs, "missing_t2g.txt")),
		WithSample("s1"),
		WithOutputDir(t.TempDir()),
		WithLogger(&logging.Nop),
	)
	require.NoError(t, err)

	_, err = kit.Assemble(context.Background())
	require.Error(t, err)

	var ioErr *pkgerrors.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want string
	}{
		{
			name: "missing inputs dir",
			opts: []Option{WithSample("s1")},
			want: "inputs directory is required",
		},
		{
			name: "missing sample",
			opts: []Option{WithInputsDir(".")},
			want: "sample name is required",
		},
		{
			name: "bad workflow name",
			opts: []Option{WithWorkflowName("velocity"), WithInputsDir("."), WithSample("s1")},
			want: "unknown workflow",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestKitWorkflow(t *testing.T) {
	kit, err := New(
		WithWorkflowName("nac"),
		WithInputsDir("."),
		WithSample("s1"),
	)
	require.NoError(t, err)
	assert.Equal(t, "nac", kit.Workflow().String())
}
