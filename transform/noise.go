package transform

import (
	"fmt"
	"math/rand"

	"gorgonia.org/tensor"

	"github.com/trainflow/trainflow/ops"
)

// GaussianNoise synthesizes a float32 tensor of normally distributed values.
// It declares no input keys: the executor passes no data and the op draws
// entirely from the random source in the execution state (or the process
// source when none is set).
type GaussianNoise struct {
	ops.SampleBase
	shape  []int
	mean   float64
	stddev float64
}

// NewGaussianNoise creates a noise op emitting tensors of the given shape.
func NewGaussianNoise(shape []int, mean, stddev float64, outputs []string, mode ops.Mode) (*GaussianNoise, error) {
	if len(shape) == 0 {
		return nil, fmt.Errorf("gaussian noise: shape must be non-empty")
	}
	for _, d := range shape {
		if d <= 0 {
			return nil, fmt.Errorf("gaussian noise: invalid shape %v", shape)
		}
	}

	return &GaussianNoise{
		SampleBase: ops.NewSampleBase(nil, outputs, mode),
		shape:      append([]int(nil), shape...),
		mean:       mean,
		stddev:     stddev,
	}, nil
}

func (o *GaussianNoise) Forward(_ []*tensor.Dense, state *ops.State) ([]*tensor.Dense, error) {
	n := 1
	for _, d := range o.shape {
		n *= d
	}

	norm := rand.NormFloat64
	if state != nil && state.Rand != nil {
		norm = state.Rand.NormFloat64
	}
	vals := make([]float32, n)
	for i := range vals {
		vals[i] = float32(norm()*o.stddev + o.mean)
	}

	return []*tensor.Dense{
		tensor.New(tensor.WithShape(o.shape...), tensor.WithBacking(vals)),
	}, nil
}
