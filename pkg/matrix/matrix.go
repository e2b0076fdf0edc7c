// Package matrix provides the sparse annotated count table used throughout
// mtxkit: a 2D sparse float64 matrix whose rows are cell barcodes and whose
// columns are feature (gene) identifiers. Identifier sequences are ordered
// and positionally bound to the matrix body; every operation preserves that
// binding or fails.
//
// Matrices are immutable after construction. Operations (ConcatRows,
// ReorderRows, Add) return new matrices and never mutate their operands,
// matching the single-pass pipeline model: load, align, merge, write.
package matrix

import (
	"fmt"
	"sort"

	pkgerrors "github.com/omicstation/mtxkit/pkg/errors"
)

// Entry is one nonzero cell of a matrix under construction, with 0-based
// coordinates.
type Entry struct {
	Row   int
	Col   int
	Value float64
}

// Sparse is a compressed-sparse-row matrix with ordered row and column
// identifier sequences. The zero value is not usable; use New or NewZero.
type Sparse struct {
	rowIDs []string
	colIDs []string

	// CSR body: row i owns cols[indptr[i]:indptr[i+1]] and
	// data[indptr[i]:indptr[i+1]], column indices sorted ascending.
	indptr []int
	cols   []int
	data   []float64
}

// New builds a sparse matrix from identifier sequences and nonzero entries.
// Dimensions are len(rowIDs) x len(colIDs). Entries may appear in any order;
// duplicate coordinates are summed. Out-of-range coordinates are an error.
// Identifier uniqueness is not enforced here - loaders preserve file order,
// and operations that require unique identifiers check at their boundary.
func New(rowIDs, colIDs []string, entries []Entry) (*Sparse, error) {
	nrows, ncols := len(rowIDs), len(colIDs)

	counts := make([]int, nrows+1)
	for i, e := range entries {
		if e.Row < 0 || e.Row >= nrows {
			return nil, fmt.Errorf("entry %d: row index %d out of range [0,%d): %w", i, e.Row, nrows, pkgerrors.ErrInvalidInput)
		}
		if e.Col < 0 || e.Col >= ncols {
			return nil, fmt.Errorf("entry %d: column index %d out of range [0,%d): %w", i, e.Col, ncols, pkgerrors.ErrInvalidInput)
		}
		counts[e.Row+1]++
	}

	indptr := make([]int, nrows+1)
	for i := 1; i <= nrows; i++ {
		indptr[i] = indptr[i-1] + counts[i]
	}

	cols := make([]int, len(entries))
	data := make([]float64, len(entries))
	next := make([]int, nrows)
	copy(next, indptr[:nrows])
	for _, e := range entries {
		p := next[e.Row]
		cols[p] = e.Col
		data[p] = e.Value
		next[e.Row]++
	}

	m := &Sparse{
		rowIDs: append([]string(nil), rowIDs...),
		colIDs: append([]string(nil), colIDs...),
		indptr: indptr,
		cols:   cols,
		data:   data,
	}
	m.normalize()
	return m, nil
}

// NewZero builds an all-zero matrix with the given identifier sequences.
// A zero-row matrix (empty rowIDs) is valid and flows through ConcatRows
// unchanged; the reconciler relies on that for fully-covered partitions.
func NewZero(rowIDs, colIDs []string) *Sparse {
	return &Sparse{
		rowIDs: append([]string(nil), rowIDs...),
		colIDs: append([]string(nil), colIDs...),
		indptr: make([]int, len(rowIDs)+1),
	}
}

// normalize sorts each row by column index and merges duplicate coordinates
// by summing their values. Explicit zeros from summed duplicates are kept;
// they are harmless to every consumer.
func (m *Sparse) normalize() {
	nrows := len(m.rowIDs)
	outCols := m.cols[:0]
	outData := m.data[:0]
	newptr := make([]int, nrows+1)

	for i := 0; i < nrows; i++ {
		start, end := m.indptr[i], m.indptr[i+1]
		row := rowView{cols: m.cols[start:end], data: m.data[start:end]}
		sort.Sort(row)

		for k := 0; k < len(row.cols); {
			c, v := row.cols[k], row.data[k]
			for k++; k < len(row.cols) && row.cols[k] == c; k++ {
				v += row.data[k]
			}
			outCols = append(outCols, c)
			outData = append(outData, v)
		}
		newptr[i+1] = len(outCols)
	}

	m.indptr = newptr
	m.cols = outCols
	m.data = outData
}

// rowView sorts one CSR row's column/value pair slices in lockstep.
type rowView struct {
	cols []int
	data []float64
}

func (r rowView) Len() int           { return len(r.cols) }
func (r rowView) Less(i, j int) bool { return r.cols[i] < r.cols[j] }
func (r rowView) Swap(i, j int) {
	r.cols[i], r.cols[j] = r.cols[j], r.cols[i]
	r.data[i], r.data[j] = r.data[j], r.data[i]
}

// Rows returns the number of rows.
func (m *Sparse) Rows() int { return len(m.rowIDs) }

// Cols returns the number of columns.
func (m *Sparse) Cols() int { return len(m.colIDs) }

// NNZ returns the number of stored entries.
func (m *Sparse) NNZ() int { return len(m.data) }

// RowIDs returns the ordered row identifier sequence.
// The returned slice is internal state and must not be modified.
func (m *Sparse) RowIDs() []string { return m.rowIDs }

// ColIDs returns the ordered column identifier sequence.
// The returned slice is internal state and must not be modified.
func (m *Sparse) ColIDs() []string { return m.colIDs }

// At returns the value at (row i, column j), 0-based. Absent entries are 0.
func (m *Sparse) At(i, j int) float64 {
	if i < 0 || i >= len(m.rowIDs) || j < 0 || j >= len(m.colIDs) {
		return 0
	}
	start, end := m.indptr[i], m.indptr[i+1]
	cols := m.cols[start:end]
	k := sort.SearchInts(cols, j)
	if k < len(cols) && cols[k] == j {
		return m.data[start+k]
	}
	return 0
}

// Iterate walks every stored entry in row-major order (rows in sequence
// order, columns ascending within a row).
func (m *Sparse) Iterate(fn func(row, col int, value float64)) {
	for i := 0; i < len(m.rowIDs); i++ {
		for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
			fn(i, m.cols[p], m.data[p])
		}
	}
}

// Dense materializes the full matrix. Intended for tests and small tables;
// the pipeline itself never densifies.
func (m *Sparse) Dense() [][]float64 {
	out := make([][]float64, len(m.rowIDs))
	for i := range out {
		out[i] = make([]float64, len(m.colIDs))
		for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
			out[i][m.cols[p]] = m.data[p]
		}
	}
	return out
}

// String returns a compact description for logs and errors.
func (m *Sparse) String() string {
	return fmt.Sprintf("%dx%d sparse (nnz=%d)", len(m.rowIDs), len(m.colIDs), len(m.data))
}
