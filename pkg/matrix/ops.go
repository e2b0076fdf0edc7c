package matrix

import (
	"fmt"

	pkgerrors "github.com/omicstation/mtxkit/pkg/errors"
)

// ConcatRows stacks other below m. The result's column space is the union of
// both column sequences: m's columns in their order, then other's columns not
// already present, in their order. Entries absent from an operand's column
// space are exact zeros, which a sparse body represents by omission.
//
// Row identifiers concatenate as-is; callers that require uniqueness check it
// downstream. A zero-row operand contributes columns but no rows.
func (m *Sparse) ConcatRows(other *Sparse) (*Sparse, error) {
	if other == nil {
		return nil, fmt.Errorf("concat operand is nil: %w", pkgerrors.ErrInvalidInput)
	}

	unionCols := append([]string(nil), m.colIDs...)
	pos := make(map[string]int, len(m.colIDs)+len(other.colIDs))
	for j, id := range m.colIDs {
		pos[id] = j
	}
	// Remap for other's columns into union positions.
	remap := make([]int, len(other.colIDs))
	for j, id := range other.colIDs {
		p, ok := pos[id]
		if !ok {
			p = len(unionCols)
			unionCols = append(unionCols, id)
			pos[id] = p
		}
		remap[j] = p
	}

	rowIDs := make([]string, 0, len(m.rowIDs)+len(other.rowIDs))
	rowIDs = append(rowIDs, m.rowIDs...)
	rowIDs = append(rowIDs, other.rowIDs...)

	indptr := make([]int, len(rowIDs)+1)
	cols := make([]int, 0, len(m.cols)+len(other.cols))
	data := make([]float64, 0, len(m.data)+len(other.data))

	for i := 0; i < len(m.rowIDs); i++ {
		cols = append(cols, m.cols[m.indptr[i]:m.indptr[i+1]]...)
		data = append(data, m.data[m.indptr[i]:m.indptr[i+1]]...)
		indptr[i+1] = len(cols)
	}
	base := len(m.rowIDs)
	for i := 0; i < len(other.rowIDs); i++ {
		for p := other.indptr[i]; p < other.indptr[i+1]; p++ {
			cols = append(cols, remap[other.cols[p]])
			data = append(data, other.data[p])
		}
		indptr[base+i+1] = len(cols)
	}

	out := &Sparse{
		rowIDs: rowIDs,
		colIDs: unionCols,
		indptr: indptr,
		cols:   cols,
		data:   data,
	}
	// Remapped rows may be out of column order when other's columns
	// interleave with the union sequence.
	out.normalize()
	return out, nil
}

// ReorderRows returns a matrix whose rows follow ids exactly. Every id must
// name a row of m; m's row identifiers must be unique. Rows of m not named in
// ids are dropped, so a superset matrix can be cut down to a target sequence
// in the same step.
func (m *Sparse) ReorderRows(ids []string) (*Sparse, error) {
	index := make(map[string]int, len(m.rowIDs))
	for i, id := range m.rowIDs {
		if _, dup := index[id]; dup {
			return nil, fmt.Errorf("duplicate row identifier %q: %w", id, pkgerrors.ErrInvalidInput)
		}
		index[id] = i
	}

	indptr := make([]int, len(ids)+1)
	nnz := 0
	src := make([]int, len(ids))
	for i, id := range ids {
		r, ok := index[id]
		if !ok {
			return nil, fmt.Errorf("row identifier %q not present in matrix: %w", id, pkgerrors.ErrNotFound)
		}
		src[i] = r
		nnz += m.indptr[r+1] - m.indptr[r]
		indptr[i+1] = nnz
	}

	cols := make([]int, 0, nnz)
	data := make([]float64, 0, nnz)
	for _, r := range src {
		cols = append(cols, m.cols[m.indptr[r]:m.indptr[r+1]]...)
		data = append(data, m.data[m.indptr[r]:m.indptr[r+1]]...)
	}

	return &Sparse{
		rowIDs: append([]string(nil), ids...),
		colIDs: m.colIDs,
		indptr: indptr,
		cols:   cols,
		data:   data,
	}, nil
}

// Add returns the element-wise sum of m and the others. All operands must
// carry identical row and column identifier sequences (same IDs, same order);
// any divergence aborts with an alignment error rather than summing
// positionally mismatched values.
func (m *Sparse) Add(others ...*Sparse) (*Sparse, error) {
	for n, o := range others {
		if o == nil {
			return nil, fmt.Errorf("sum operand %d is nil: %w", n+1, pkgerrors.ErrInvalidInput)
		}
		left := "operand 0"
		right := fmt.Sprintf("operand %d", n+1)
		if err := checkAligned("row", left, right, m.rowIDs, o.rowIDs); err != nil {
			return nil, err
		}
		if err := checkAligned("column", left, right, m.colIDs, o.colIDs); err != nil {
			return nil, err
		}
	}

	operands := append([]*Sparse{m}, others...)
	indptr := make([]int, len(m.rowIDs)+1)
	var cols []int
	var data []float64

	// Merge the sorted rows of all operands, summing shared coordinates.
	for i := 0; i < len(m.rowIDs); i++ {
		heads := make([]int, len(operands))
		for n, o := range operands {
			heads[n] = o.indptr[i]
		}
		for {
			minCol := -1
			for n, o := range operands {
				if heads[n] < o.indptr[i+1] {
					if c := o.cols[heads[n]]; minCol == -1 || c < minCol {
						minCol = c
					}
				}
			}
			if minCol == -1 {
				break
			}
			sum := 0.0
			for n, o := range operands {
				for heads[n] < o.indptr[i+1] && o.cols[heads[n]] == minCol {
					sum += o.data[heads[n]]
					heads[n]++
				}
			}
			cols = append(cols, minCol)
			data = append(data, sum)
		}
		indptr[i+1] = len(cols)
	}

	return &Sparse{
		rowIDs: m.rowIDs,
		colIDs: m.colIDs,
		indptr: indptr,
		cols:   cols,
		data:   data,
	}, nil
}

// checkAligned verifies two identifier sequences match element-wise and
// reports the first divergence.
func checkAligned(axis, left, right string, a, b []string) error {
	if len(a) != len(b) {
		return pkgerrors.NewAlignmentError(axis, left, right, -1)
	}
	for i := range a {
		if a[i] != b[i] {
			return pkgerrors.NewAlignmentError(axis, left, right, i)
		}
	}
	return nil
}
