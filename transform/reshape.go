package transform

import (
	"fmt"

	"gorgonia.org/tensor"

	"github.com/trainflow/trainflow/internal/tensors"
	"github.com/trainflow/trainflow/ops"
)

// Reshape changes each bound tensor to a fixed target shape. The element
// count must match; anything else is an error from the underlying tensor.
type Reshape struct {
	ops.SampleBase
	shape []int
}

// NewReshape creates a Reshape op targeting shape.
func NewReshape(shape []int, inputs, outputs []string, mode ops.Mode) *Reshape {
	return &Reshape{
		SampleBase: ops.NewSampleBase(inputs, outputs, mode),
		shape:      append([]int(nil), shape...),
	}
}

func (o *Reshape) Forward(data []*tensor.Dense, _ *ops.State) ([]*tensor.Dense, error) {
	out := make([]*tensor.Dense, len(data))
	for i, t := range data {
		c, err := tensors.Clone(t)
		if err != nil {
			return nil, err
		}
		if err := c.Reshape(o.shape...); err != nil {
			return nil, fmt.Errorf("reshape %v to %v: %w", t.Shape(), o.shape, err)
		}
		out[i] = c
	}

	return out, nil
}
