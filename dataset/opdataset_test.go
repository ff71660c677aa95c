package dataset

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"

	"github.com/trainflow/trainflow/ops"
	"github.com/trainflow/trainflow/ops/opstest"
	"github.com/trainflow/trainflow/transform"
)

func scaleOp(factor float32, keys []string) ops.Op {
	return opstest.Scale(factor, keys, keys, ops.EveryPhase())
}

func Test_OpDataset_Item(t *testing.T) {
	t.Parallel()

	src := sliceDataset{
		{"x": f32([]int{2}, 1, 2)},
		{"x": f32([]int{2}, 3, 4)},
	}

	d, err := NewOpDataset(src, []ops.Op{scaleOp(10, []string{"x"})}, ops.Train)
	require.NoError(t, err)
	require.Equal(t, 2, d.Len())

	s, err := d.Get(1)
	require.NoError(t, err)
	assert.Equal(t, []float32{30, 40}, s["x"].Data())
}

func Test_OpDataset_DeepCopyIsolation(t *testing.T) {
	t.Parallel()

	src := sliceDataset{{"x": f32([]int{2}, 1, 2)}}

	d, err := NewOpDataset(src, nil, ops.Train)
	require.NoError(t, err)

	first, err := d.Get(0)
	require.NoError(t, err)
	first["x"].Data().([]float32)[0] = 99
	delete(first, "x")

	second, err := d.Get(0)
	require.NoError(t, err)
	require.Contains(t, second, "x")
	assert.Equal(t, []float32{1, 2}, second["x"].Data(), "mutating one retrieval must not leak into the next")
}

func Test_OpDataset_PhaseFilter(t *testing.T) {
	t.Parallel()

	src := sliceDataset{{"x": f32([]int{1}, 1)}}
	chain := []ops.Op{
		scaleOp(2, []string{"x"}),
		ops.NewSampleFunc([]string{"x"}, []string{"x"}, ops.In(ops.Eval),
			func(data []*tensor.Dense, _ *ops.State) ([]*tensor.Dense, error) {
				return nil, assert.AnError
			}),
	}

	d, err := NewOpDataset(src, chain, ops.Train)
	require.NoError(t, err)

	s, err := d.Get(0)
	require.NoError(t, err, "eval-only op must be filtered out of a train wrapper")
	assert.Equal(t, []float32{2}, s["x"].Data())
}

func Test_OpDataset_Batch_Collates(t *testing.T) {
	t.Parallel()

	src := sliceDataset{{"x": f32([]int{2}, 1, 2), "y": f32([]int{1}, 7)}}

	b, err := NewBatched(src, 1)
	require.NoError(t, err)
	d, err := NewOpDataset(b, []ops.Op{scaleOp(10, []string{"x"})}, ops.Train)
	require.NoError(t, err)

	batch, err := d.Get(0)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, []int(batch["x"].Shape()), "collation adds a leading batch axis")
	assert.Equal(t, []float32{10, 20}, batch["x"].Data())
	assert.Equal(t, []int{1, 1}, []int(batch["y"].Shape()))
}

func Test_OpDataset_Batch_PadsRagged(t *testing.T) {
	t.Parallel()

	src := sliceDataset{
		{"x": f32([]int{2}, 1, 2)},
		{"x": f32([]int{3}, 3, 4, 5)},
	}

	b, err := NewBatched(src, 2, WithPadValue(0))
	require.NoError(t, err)
	d, err := NewOpDataset(b, nil, ops.Train)
	require.NoError(t, err)

	batch, err := d.Get(0)
	require.NoError(t, err)
	require.Equal(t, []int{2, 3}, []int(batch["x"].Shape()), "ragged axis pads to the batch maximum")

	// Shuffle may reorder the two samples within the batch, so compare rows
	// as a set.
	data := batch["x"].Data().([]float32)
	assert.ElementsMatch(t, [][]float32{{1, 2, 0}, {3, 4, 5}},
		[][]float32{data[:3], data[3:]})
}

func Test_OpDataset_Batch_RaggedWithoutPadFails(t *testing.T) {
	t.Parallel()

	src := sliceDataset{
		{"x": f32([]int{2}, 1, 2)},
		{"x": f32([]int{3}, 3, 4, 5)},
	}

	b, err := NewBatched(src, 2)
	require.NoError(t, err)
	d, err := NewOpDataset(b, nil, ops.Train)
	require.NoError(t, err)

	_, err = d.Get(0)
	require.Error(t, err)
}

func Test_OpDataset_GetWithRand_Reproducible(t *testing.T) {
	t.Parallel()

	src := sliceDataset{{"x": f32([]int{1}, 0)}}
	noise, err := transform.NewGaussianNoise([]int{4}, 0, 1, []string{"z"}, ops.EveryPhase())
	require.NoError(t, err)

	d, err := NewOpDataset(src, []ops.Op{noise}, ops.Train)
	require.NoError(t, err)

	a, err := d.GetWithRand(0, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	b, err := d.GetWithRand(0, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	assert.Equal(t, a["z"].Data(), b["z"].Data(), "same seed, same draw")
}

func Test_OpDataset_Reshape_EndToEnd(t *testing.T) {
	t.Parallel()

	src := sliceDataset{{"x": f32([]int{3}, 1, 2, 3)}}
	chain := []ops.Op{
		transform.NewReshape([]int{3, 1}, []string{"x"}, []string{"x"}, ops.EveryPhase()),
	}

	d, err := NewOpDataset(src, chain, ops.Train)
	require.NoError(t, err)

	s, err := d.Get(0)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, []int(s["x"].Shape()))
	assert.Equal(t, []float32{1, 2, 3}, s["x"].Data())
}

func Test_OpDataset_Binarize_EndToEnd(t *testing.T) {
	t.Parallel()

	src := sliceDataset{{"x": f32([]int{2}, 0.2, 0.7)}}
	chain := []ops.Op{
		transform.NewBinarize(0.5, []string{"x"}, []string{"y"}, ops.EveryPhase()),
	}

	d, err := NewOpDataset(src, chain, ops.Train)
	require.NoError(t, err)

	s, err := d.Get(0)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.2, 0.7}, s["x"].Data(), "source key survives")
	assert.Equal(t, []float32{0, 1}, s["y"].Data())
}

func Test_NewOpDataset_NilSource(t *testing.T) {
	t.Parallel()

	_, err := NewOpDataset(nil, nil, ops.Train)
	require.ErrorIs(t, err, ErrNoData)
}
