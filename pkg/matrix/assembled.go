package matrix

import (
	"fmt"

	pkgerrors "github.com/omicstation/mtxkit/pkg/errors"
)

// Layer is one named per-category matrix carried alongside the merged total.
type Layer struct {
	Name   string
	Matrix *Sparse
}

// Assembled is the unified output of a merge: the summed primary matrix plus
// the per-category layers it was summed from, all sharing one row and column
// identifier space. Layers preserve category order; a single-matrix workflow
// has none.
type Assembled struct {
	X      *Sparse
	Layers []Layer
}

// Layer returns the named layer's matrix, or false when no such layer exists.
func (a *Assembled) Layer(name string) (*Sparse, bool) {
	for _, l := range a.Layers {
		if l.Name == name {
			return l.Matrix, true
		}
	}
	return nil, false
}

// Validate checks the structural invariants writers depend on: a primary
// matrix is present and every layer shares its exact identifier sequences.
func (a *Assembled) Validate() error {
	if a.X == nil {
		return fmt.Errorf("assembled result has no primary matrix: %w", pkgerrors.ErrInvalidInput)
	}
	for _, l := range a.Layers {
		if l.Matrix == nil {
			return fmt.Errorf("layer %q has no matrix: %w", l.Name, pkgerrors.ErrInvalidInput)
		}
		if err := checkAligned("row", "primary", l.Name, a.X.rowIDs, l.Matrix.rowIDs); err != nil {
			return err
		}
		if err := checkAligned("column", "primary", l.Name, a.X.colIDs, l.Matrix.colIDs); err != nil {
			return err
		}
	}
	return nil
}
