// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/omicstation/mtxkit/pkg/bundle"
	"github.com/omicstation/mtxkit/pkg/mtx"
	"github.com/omicstation/mtxkit/pkg/reconcile"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

var countPrinter = message.NewPrinter(language.English)

// FormatCount renders an integer with thousands separators for display.
func FormatCount(n int) string {
	return countPrinter.Sprintf("%d", n)
}

// FormatDensity renders the fill fraction of a matrix as a percentage.
// Returns "-" for degenerate shapes.
func FormatDensity(nnz, rows, cols int) string {
	if rows <= 0 || cols <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.4f%%", 100*float64(nnz)/(float64(rows)*float64(cols)))
}

// ManifestToTableData converts a bundle manifest to a property table.
func ManifestToTableData(m *bundle.Manifest) Data {
	rows := [][]string{
		{"Sample", m.Sample},
		{"Workflow", m.Workflow},
		{"Input Type", m.InputType},
		{"Barcodes", FormatCount(m.Rows)},
		{"Genes", FormatCount(m.Columns)},
		{"Entries", FormatCount(m.Entries)},
	}

	if len(m.Layers) > 0 {
		rows = append(rows, []string{"Layers", strings.Join(m.Layers, ", ")})
	}

	rows = append(rows,
		[]string{"Tool", m.Tool + " " + m.Version},
		[]string{"Run ID", m.RunID},
		[]string{"Created", m.CreatedAt.String()},
	)

	return Data{
		Headers: []string{"Property", "Value"},
		Rows:    rows,
	}
}

// StatsToTableData converts reconciliation stats to a property table.
// Fill counts are listed per category in sorted order so output is stable.
func StatsToTableData(s reconcile.Stats) Data {
	rows := [][]string{
		{"Partitions", FormatCount(s.Partitions)},
		{"Union Barcodes", FormatCount(s.UnionRows)},
		{"Genes", FormatCount(s.Columns)},
		{"Merged Entries", FormatCount(s.MergedNNZ)},
	}

	categories := make([]string, 0, len(s.Filled))
	for name := range s.Filled {
		categories = append(categories, name)
	}
	sort.Strings(categories)
	for _, name := range categories {
		rows = append(rows, []string{"Filled (" + name + ")", FormatCount(s.Filled[name])})
	}

	rows = append(rows, []string{"Elapsed", fmt.Sprintf("%dms", s.TotalTimeMs)})

	return Data{
		Headers: []string{"Property", "Value"},
		Rows:    rows,
	}
}

// MatrixFilesToTableData converts Matrix Market headers to a listing table.
// The files and headers slices are parallel.
func MatrixFilesToTableData(files []string, headers []mtx.Header) Data {
	rows := make([][]string, 0, len(files))
	for i, file := range files {
		h := headers[i]
		rows = append(rows, []string{
			file,
			h.Field,
			FormatCount(h.Rows),
			FormatCount(h.Cols),
			FormatCount(h.NNZ),
			FormatDensity(h.NNZ, h.Rows, h.Cols),
		})
	}
	return Data{
		Headers: []string{"File", "Field", "Rows", "Columns", "Entries", "Density"},
		Rows:    rows,
		ColumnAlignment: []Align{
			AlignDefault, // FILE
			AlignDefault, // FIELD
			AlignRight,   // ROWS
			AlignRight,   // COLUMNS
			AlignRight,   // ENTRIES
			AlignRight,   // DENSITY
		},
	}
}
