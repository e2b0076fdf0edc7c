package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembledLayerLookup(t *testing.T) {
	rows := []string{"a"}
	cols := []string{"g1"}
	spliced := NewZero(rows, cols)
	unspliced := NewZero(rows, cols)

	a := &Assembled{
		X: NewZero(rows, cols),
		Layers: []Layer{
			{Name: "spliced", Matrix: spliced},
			{Name: "unspliced", Matrix: unspliced},
		},
	}

	got, ok := a.Layer("unspliced")
	require.True(t, ok)
	assert.Same(t, unspliced, got)

	_, ok = a.Layer("mature")
	assert.False(t, ok)
}

func TestAssembledValidate(t *testing.T) {
	rows := []string{"a", "b"}
	cols := []string{"g1"}

	t.Run("valid", func(t *testing.T) {
		a := &Assembled{
			X:      NewZero(rows, cols),
			Layers: []Layer{{Name: "spliced", Matrix: NewZero(rows, cols)}},
		}
		assert.NoError(t, a.Validate())
	})

	t.Run("no layers", func(t *testing.T) {
		a := &Assembled{X: NewZero(rows, cols)}
		assert.NoError(t, a.Validate())
	})

	t.Run("missing primary", func(t *testing.T) {
		a := &Assembled{}
		assert.Error(t, a.Validate())
	})

	t.Run("nil layer matrix", func(t *testing.T) {
		a := &Assembled{
			X:      NewZero(rows, cols),
			Layers: []Layer{{Name: "spliced"}},
		}
		assert.Error(t, a.Validate())
	})

	t.Run("layer row mismatch", func(t *testing.T) {
		a := &Assembled{
			X:      NewZero(rows, cols),
			Layers: []Layer{{Name: "spliced", Matrix: NewZero([]string{"a"}, cols)}},
		}
		assert.Error(t, a.Validate())
	})
}
