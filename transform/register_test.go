package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"

	"github.com/trainflow/trainflow/ops"
)

func Test_RegisterDefaults(t *testing.T) {
	t.Parallel()

	r := ops.NewRegistry()
	require.NoError(t, RegisterDefaults(r))
	assert.ElementsMatch(t,
		[]string{"reshape", "binarize", "rescale", "gaussian_noise"},
		r.Names())
}

func Test_Factories(t *testing.T) {
	t.Parallel()

	r := ops.NewRegistry()
	require.NoError(t, RegisterDefaults(r))

	tests := []struct {
		name    string
		args    ops.FactoryArgs
		wantErr bool
	}{
		{
			name: "reshape",
			args: ops.FactoryArgs{
				Inputs:  []string{"x"},
				Outputs: []string{"x"},
				Mode:    ops.EveryPhase(),
				Params:  map[string]any{"shape": []any{3, 1}},
			},
		},
		{
			name: "reshape",
			args: ops.FactoryArgs{
				Inputs:  []string{"x"},
				Outputs: []string{"x"},
				Mode:    ops.EveryPhase(),
				Params:  map[string]any{},
			},
			wantErr: true,
		},
		{
			name: "binarize",
			args: ops.FactoryArgs{
				Inputs:  []string{"x"},
				Outputs: []string{"y"},
				Mode:    ops.EveryPhase(),
				Params:  map[string]any{"threshold": 0.5},
			},
		},
		{
			name: "rescale",
			args: ops.FactoryArgs{
				Inputs:  []string{"x"},
				Outputs: []string{"x"},
				Mode:    ops.EveryPhase(),
				Params:  map[string]any{"offset": 127.5, "scale": 127.5},
			},
		},
		{
			name: "rescale",
			args: ops.FactoryArgs{
				Inputs:  []string{"x"},
				Outputs: []string{"x"},
				Mode:    ops.EveryPhase(),
				Params:  map[string]any{"offset": 0, "scale": "nope"},
			},
			wantErr: true,
		},
		{
			name: "gaussian_noise",
			args: ops.FactoryArgs{
				Outputs: []string{"z"},
				Mode:    ops.In(ops.Train),
				Params:  map[string]any{"shape": []any{4}, "stddev": 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := r.Resolve(tt.name, "1.0.0")
			require.NoError(t, err)

			op, err := f(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.args.Outputs, op.Def().Outputs)
		})
	}
}

func Test_BinarizeFactory_BuildsWorkingOp(t *testing.T) {
	t.Parallel()

	op, err := binarizeFactory(ops.FactoryArgs{
		Inputs:  []string{"x"},
		Outputs: []string{"y"},
		Mode:    ops.EveryPhase(),
		Params:  map[string]any{"threshold": 0.5},
	})
	require.NoError(t, err)

	out, err := op.Forward([]*tensor.Dense{f32([]int{2}, 0.2, 0.7)}, nil)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1}, out[0].Data())
}
