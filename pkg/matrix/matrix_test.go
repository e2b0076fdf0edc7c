package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/omicstation/mtxkit/pkg/errors"
)

func mustNew(t *testing.T, rows, cols []string, entries []Entry) *Sparse {
	t.Helper()
	m, err := New(rows, cols, entries)
	require.NoError(t, err)
	return m
}

func TestNew(t *testing.T) {
	m := mustNew(t,
		[]string{"AAAC", "CCTG", "GGTA"},
		[]string{"g1", "g2"},
		[]Entry{
			{Row: 2, Col: 0, Value: 7},
			{Row: 0, Col: 1, Value: 3},
			{Row: 0, Col: 0, Value: 1},
		},
	)

	assert.Equal(t, 3, m.Rows())
	assert.Equal(t, 2, m.Cols())
	assert.Equal(t, 3, m.NNZ())
	assert.Equal(t, []string{"AAAC", "CCTG", "GGTA"}, m.RowIDs())
	assert.Equal(t, []string{"g1", "g2"}, m.ColIDs())

	assert.Equal(t, 1.0, m.At(0, 0))
	assert.Equal(t, 3.0, m.At(0, 1))
	assert.Equal(t, 0.0, m.At(1, 0))
	assert.Equal(t, 7.0, m.At(2, 0))
	assert.Equal(t, 0.0, m.At(2, 1))
}

func TestNewSumsDuplicateCoordinates(t *testing.T) {
	m := mustNew(t,
		[]string{"r1"},
		[]string{"c1", "c2"},
		[]Entry{
			{Row: 0, Col: 1, Value: 2},
			{Row: 0, Col: 1, Value: 5},
		},
	)

	assert.Equal(t, 7.0, m.At(0, 1))
	assert.Equal(t, 1, m.NNZ())
}

func TestNewRejectsOutOfRangeEntries(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
	}{
		{"row too large", Entry{Row: 2, Col: 0, Value: 1}},
		{"negative row", Entry{Row: -1, Col: 0, Value: 1}},
		{"column too large", Entry{Row: 0, Col: 3, Value: 1}},
		{"negative column", Entry{Row: 0, Col: -2, Value: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New([]string{"r1", "r2"}, []string{"c1", "c2", "c3"}, []Entry{tt.entry})
			require.Error(t, err)
			assert.True(t, pkgerrors.IsInvalidInput(err))
		})
	}
}

func TestNewZero(t *testing.T) {
	m := NewZero([]string{"a", "b"}, []string{"g1", "g2", "g3"})

	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	assert.Equal(t, 0, m.NNZ())
	assert.Equal(t, 0.0, m.At(1, 2))
}

func TestNewZeroEmptyRows(t *testing.T) {
	m := NewZero(nil, []string{"g1"})

	assert.Equal(t, 0, m.Rows())
	assert.Equal(t, 1, m.Cols())
	assert.Equal(t, 0, m.NNZ())
}

func TestAtOutOfRangeIsZero(t *testing.T) {
	m := mustNew(t, []string{"r1"}, []string{"c1"}, []Entry{{Row: 0, Col: 0, Value: 4}})

	assert.Equal(t, 0.0, m.At(5, 0))
	assert.Equal(t, 0.0, m.At(0, 5))
	assert.Equal(t, 0.0, m.At(-1, 0))
}

func TestIterateRowMajor(t *testing.T) {
	m := mustNew(t,
		[]string{"r1", "r2"},
		[]string{"c1", "c2", "c3"},
		[]Entry{
			{Row: 1, Col: 2, Value: 6},
			{Row: 0, Col: 2, Value: 3},
			{Row: 1, Col: 0, Value: 4},
			{Row: 0, Col: 0, Value: 1},
		},
	)

	var got []Entry
	m.Iterate(func(row, col int, value float64) {
		got = append(got, Entry{Row: row, Col: col, Value: value})
	})

	want := []Entry{
		{Row: 0, Col: 0, Value: 1},
		{Row: 0, Col: 2, Value: 3},
		{Row: 1, Col: 0, Value: 4},
		{Row: 1, Col: 2, Value: 6},
	}
	assert.Equal(t, want, got)
}

func TestDense(t *testing.T) {
	m := mustNew(t,
		[]string{"r1", "r2"},
		[]string{"c1", "c2"},
		[]Entry{
			{Row: 0, Col: 1, Value: 2},
			{Row: 1, Col: 0, Value: 5},
		},
	)

	assert.Equal(t, [][]float64{{0, 2}, {5, 0}}, m.Dense())
}

func TestString(t *testing.T) {
	m := mustNew(t, []string{"r1", "r2"}, []string{"c1"}, []Entry{{Row: 0, Col: 0, Value: 1}})
	assert.Equal(t, "2x1 sparse (nnz=1)", m.String())
}
