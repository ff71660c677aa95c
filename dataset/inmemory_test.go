package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

func f32(shape []int, vals ...float32) *tensor.Dense {
	return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(vals))
}

func Test_NewInMemory(t *testing.T) {
	t.Parallel()

	ds, err := NewInMemory(map[string]*tensor.Dense{
		"x": f32([]int{3, 2}, 1, 2, 3, 4, 5, 6),
		"y": f32([]int{3}, 0, 1, 0),
	})
	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())

	s, err := ds.Get(1)
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 4}, s["x"].Data())
	assert.Equal(t, []float32{1}, s["y"].Data())
}

func Test_NewInMemory_Errors(t *testing.T) {
	t.Parallel()

	_, err := NewInMemory(nil)
	require.ErrorIs(t, err, ErrNoData)

	_, err = NewInMemory(map[string]*tensor.Dense{
		"x": f32([]int{2, 1}, 1, 2),
		"y": f32([]int{3}, 1, 2, 3),
	})
	require.ErrorIs(t, err, ErrColumnMismatch)
}

func Test_InMemory_Get_OutOfRange(t *testing.T) {
	t.Parallel()

	ds, err := NewInMemory(map[string]*tensor.Dense{"x": f32([]int{2}, 1, 2)})
	require.NoError(t, err)

	_, err = ds.Get(2)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = ds.Get(-1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}
