package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"

	"github.com/trainflow/trainflow/dataset"
	"github.com/trainflow/trainflow/ops"
	"github.com/trainflow/trainflow/pkg/logger"
)

func f32(shape []int, vals ...float32) *tensor.Dense {
	return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(vals))
}

// memDataset serves fixed samples and can fail a chosen index.
type memDataset struct {
	samples []dataset.Sample
	failAt  int // -1 disables
}

func newMemDataset(n int) *memDataset {
	d := &memDataset{failAt: -1}
	for i := range n {
		d.samples = append(d.samples, dataset.Sample{"x": f32([]int{1}, float32(i))})
	}

	return d
}

func (d *memDataset) Len() int { return len(d.samples) }

func (d *memDataset) Get(index int) (dataset.Sample, error) {
	if index == d.failAt {
		return nil, assert.AnError
	}
	if index < 0 || index >= len(d.samples) {
		return nil, dataset.ErrIndexOutOfRange
	}

	return d.samples[index], nil
}

func doubler(keys []string) ops.Op {
	return ops.NewSampleFunc(keys, keys, ops.EveryPhase(),
		func(data []*tensor.Dense, _ *ops.State) ([]*tensor.Dense, error) {
			out := make([]*tensor.Dense, len(data))
			for i, t := range data {
				vals := append([]float32(nil), t.Data().([]float32)...)
				for j := range vals {
					vals[j] *= 2
				}
				out[i] = tensor.New(tensor.WithShape([]int(t.Shape())...), tensor.WithBacking(vals))
			}

			return out, nil
		})
}

func Test_New(t *testing.T) {
	t.Parallel()

	p, err := New(Config{
		Data: map[ops.Phase]dataset.Dataset{
			ops.Train: newMemDataset(4),
			ops.Eval:  newMemDataset(2),
		},
		Ops:    doubler([]string{"x"}),
		Logger: logger.Test(t),
	})
	require.NoError(t, err)

	assert.True(t, p.Has(ops.Train))
	assert.True(t, p.Has(ops.Eval))
	assert.False(t, p.Has(ops.Test))
	assert.Equal(t, []ops.Phase{ops.Eval, ops.Train}, p.Phases())
}

func Test_New_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "no datasets",
			cfg:  Config{},
		},
		{
			name: "nil dataset",
			cfg: Config{
				Data: map[ops.Phase]dataset.Dataset{ops.Train: nil},
			},
		},
		{
			name: "unflattenable ops",
			cfg: Config{
				Data: map[ops.Phase]dataset.Dataset{ops.Train: newMemDataset(1)},
				Ops:  42,
			},
			wantErr: ops.ErrInvalidOpList,
		},
		{
			name: "tensor op rejected",
			cfg: Config{
				Data: map[ops.Phase]dataset.Dataset{ops.Train: newMemDataset(1)},
				Ops:  ops.NewTensorFunc([]string{"x"}, []string{"x"}, ops.EveryPhase(), nil),
			},
			wantErr: ops.ErrCapability,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.cfg)
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func Test_Pipeline_Dataset(t *testing.T) {
	t.Parallel()

	p, err := New(Config{
		Data:   map[ops.Phase]dataset.Dataset{ops.Train: newMemDataset(3)},
		Ops:    doubler([]string{"x"}),
		Logger: logger.Test(t),
	})
	require.NoError(t, err)

	ds, err := p.Dataset(ops.Train)
	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())

	s, err := ds.Get(2)
	require.NoError(t, err)
	assert.Equal(t, []float32{4}, s["x"].Data())

	_, err = p.Dataset(ops.Eval)
	require.ErrorIs(t, err, ErrPhaseNotBound)
}
