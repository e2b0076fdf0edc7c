package mtx

import (
	pkgerrors "github.com/omicstation/mtxkit/pkg/errors"
	"github.com/omicstation/mtxkit/pkg/matrix"
)

// Load reads a quantification triple (matrix plus its two identifier side
// tables) and binds them into one annotated sparse matrix. Identifier order
// is file order. The side-table counts must equal the matrix dimensions;
// a disagreement means the triple is inconsistent and loading fails before
// any identifier is bound to the wrong row or column.
func Load(matrixPath, barcodesPath, featuresPath string) (*matrix.Sparse, error) {
	h, entries, err := ReadFile(matrixPath)
	if err != nil {
		return nil, err
	}

	rowIDs, err := ReadIDs(barcodesPath)
	if err != nil {
		return nil, err
	}
	colIDs, err := ReadIDs(featuresPath)
	if err != nil {
		return nil, err
	}

	if len(rowIDs) != h.Rows {
		return nil, pkgerrors.NewShapeError("row", len(rowIDs), h.Rows, matrixPath)
	}
	if len(colIDs) != h.Cols {
		return nil, pkgerrors.NewShapeError("column", len(colIDs), h.Cols, matrixPath)
	}

	return matrix.New(rowIDs, colIDs, entries)
}
