// Package opstest provides utilities for op and pipeline testing.
package opstest

import (
	"math/rand"
	"testing"

	"gorgonia.org/tensor"

	"github.com/trainflow/trainflow/ops"
	"github.com/trainflow/trainflow/pkg/logger"
)

// NewState creates an execution state for testing with a test logger and a
// deterministically seeded random source.
func NewState(t *testing.T, phase ops.Phase) *ops.State {
	t.Helper()

	return &ops.State{
		Phase:  phase,
		Rand:   rand.New(rand.NewSource(1)),
		Logger: logger.Test(t),
	}
}

// Dense builds a float32 tensor with the given shape and values.
func Dense(shape []int, vals ...float32) *tensor.Dense {
	return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(vals))
}

// Scale returns a sample-level op multiplying every float32 element of each
// bound tensor by factor. Handy for building OneOf alternatives whose effect
// is distinguishable in assertions.
func Scale(factor float32, inputs, outputs []string, mode ops.Mode) ops.SampleOp {
	return ops.NewSampleFunc(inputs, outputs, mode,
		func(data []*tensor.Dense, _ *ops.State) ([]*tensor.Dense, error) {
			out := make([]*tensor.Dense, len(data))
			for i, t := range data {
				src := t.Data().([]float32)
				scaled := make([]float32, len(src))
				for j, v := range src {
					scaled[j] = v * factor
				}
				out[i] = tensor.New(
					tensor.WithShape([]int(t.Shape())...),
					tensor.WithBacking(scaled),
				)
			}

			return out, nil
		})
}
