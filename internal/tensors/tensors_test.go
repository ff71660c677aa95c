package tensors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

func f32(shape []int, vals ...float32) *tensor.Dense {
	return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(vals))
}

func Test_Clone_Isolates(t *testing.T) {
	t.Parallel()

	src := f32([]int{2}, 1, 2)
	c, err := Clone(src)
	require.NoError(t, err)

	c.Data().([]float32)[0] = 99

	assert.Equal(t, []float32{1, 2}, src.Data())
	assert.Equal(t, []float32{99, 2}, c.Data())
	assert.Equal(t, []int(src.Shape()), []int(c.Shape()))
}

func Test_Clone_Dtypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      *tensor.Dense
		wantErr bool
	}{
		{name: "float32", in: f32([]int{1}, 1)},
		{name: "float64", in: tensor.New(tensor.WithShape(1), tensor.WithBacking([]float64{1}))},
		{name: "int", in: tensor.New(tensor.WithShape(1), tensor.WithBacking([]int{1}))},
		{name: "uint8", in: tensor.New(tensor.WithShape(1), tensor.WithBacking([]uint8{1}))},
		{name: "unsupported", in: tensor.New(tensor.WithShape(1), tensor.WithBacking([]int16{1})), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Clone(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrDtype)
				return
			}
			require.NoError(t, err)
		})
	}
}

func Test_CloneSample(t *testing.T) {
	t.Parallel()

	s := map[string]*tensor.Dense{"x": f32([]int{1}, 5), "y": f32([]int{1}, 6)}
	c, err := CloneSample(s)
	require.NoError(t, err)

	c["x"].Data().([]float32)[0] = 0

	assert.Equal(t, []float32{5}, s["x"].Data())
	assert.Len(t, c, 2)
}

func Test_Rows(t *testing.T) {
	t.Parallel()

	col := f32([]int{3, 2}, 1, 2, 3, 4, 5, 6)
	rows, err := Rows(col)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []int{2}, []int(rows[1].Shape()))
	assert.Equal(t, []float32{3, 4}, rows[1].Data())

	// 1-D columns split into single-element rows.
	flat := f32([]int{2}, 9, 8)
	rows, err = Rows(flat)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []int{1}, []int(rows[0].Shape()))
	assert.Equal(t, []float32{9}, rows[0].Data())
}

func Test_MaxShape(t *testing.T) {
	t.Parallel()

	got, err := MaxShape([]*tensor.Dense{
		f32([]int{2, 3}, 0, 0, 0, 0, 0, 0),
		f32([]int{4, 1}, 0, 0, 0, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3}, got)

	_, err = MaxShape([]*tensor.Dense{
		f32([]int{2}, 0, 0),
		f32([]int{2, 1}, 0, 0),
	})
	require.ErrorIs(t, err, ErrShape)
}

func Test_PadTo_TrailingFill(t *testing.T) {
	t.Parallel()

	src := f32([]int{2, 2}, 1, 2, 3, 4)
	padded, err := PadTo(src, []int{3, 3}, -1)
	require.NoError(t, err)

	assert.Equal(t, []int{3, 3}, []int(padded.Shape()))
	assert.Equal(t, []float32{
		1, 2, -1,
		3, 4, -1,
		-1, -1, -1,
	}, padded.Data())
}

func Test_PadTo_NoopAndErrors(t *testing.T) {
	t.Parallel()

	src := f32([]int{2}, 1, 2)

	same, err := PadTo(src, []int{2}, 0)
	require.NoError(t, err)
	assert.Same(t, src, same, "already-sized tensors pass through")

	_, err = PadTo(src, []int{1}, 0)
	require.ErrorIs(t, err, ErrShape, "shrinking is not padding")

	_, err = PadTo(src, []int{2, 1}, 0)
	require.ErrorIs(t, err, ErrShape, "rank must match")
}

func Test_Stack(t *testing.T) {
	t.Parallel()

	stacked, err := Stack([]*tensor.Dense{
		f32([]int{2}, 1, 2),
		f32([]int{2}, 3, 4),
		f32([]int{2}, 5, 6),
	})
	require.NoError(t, err)

	assert.Equal(t, []int{3, 2}, []int(stacked.Shape()))
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, stacked.Data())
}

func Test_Stack_ShapeMismatch(t *testing.T) {
	t.Parallel()

	_, err := Stack([]*tensor.Dense{
		f32([]int{2}, 1, 2),
		f32([]int{3}, 3, 4, 5),
	})
	require.ErrorIs(t, err, ErrShape)
}

func Test_Mean(t *testing.T) {
	t.Parallel()

	m, err := Mean(f32([]int{4}, 1, 2, 3, 4))
	require.NoError(t, err)
	assert.InDelta(t, 2.5, m, 1e-9)

	m, err = Mean(tensor.New(tensor.WithShape(2), tensor.WithBacking([]int{2, 4})))
	require.NoError(t, err)
	assert.InDelta(t, 3.0, m, 1e-9)
}
