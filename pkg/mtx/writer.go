package mtx

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/omicstation/mtxkit/pkg/matrix"
)

// Write emits m as Matrix Market coordinate general, 1-based indices in
// row-major order. The field is "integer" when every stored value is
// integral, "real" otherwise, so count matrices round-trip as counts.
func Write(w io.Writer, m *matrix.Sparse) error {
	field := FieldInteger
	m.Iterate(func(_, _ int, v float64) {
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
			field = FieldReal
		}
	})

	if _, err := fmt.Fprintf(w, "%s matrix coordinate %s general\n", Banner, field); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%d %d %d\n", m.Rows(), m.Cols(), m.NNZ()); err != nil {
		return err
	}

	var werr error
	m.Iterate(func(row, col int, v float64) {
		if werr != nil {
			return
		}
		var s string
		if field == FieldInteger {
			s = strconv.FormatInt(int64(v), 10)
		} else {
			s = strconv.FormatFloat(v, 'g', -1, 64)
		}
		_, werr = fmt.Fprintf(w, "%d %d %s\n", row+1, col+1, s)
	})
	return werr
}

// WriteFile writes m to path, gzip-compressed when the name ends in ".gz".
func WriteFile(path string, m *matrix.Sparse) error {
	w, finish, err := openWriter(path)
	if err != nil {
		return err
	}
	if err := Write(w, m); err != nil {
		finish()
		return err
	}
	return finish()
}
