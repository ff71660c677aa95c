package transform

import (
	"fmt"

	"gorgonia.org/tensor"

	"github.com/trainflow/trainflow/ops"
)

// Rescale applies (x - offset) / scale elementwise, producing float32. With
// offset and scale both 127.5 it maps uint8 image values into [-1, 1].
type Rescale struct {
	ops.SampleBase
	offset float64
	scale  float64
}

// NewRescale creates a Rescale op. Scale must be non-zero.
func NewRescale(offset, scale float64, inputs, outputs []string, mode ops.Mode) (*Rescale, error) {
	if scale == 0 {
		return nil, fmt.Errorf("rescale: scale must be non-zero")
	}

	return &Rescale{
		SampleBase: ops.NewSampleBase(inputs, outputs, mode),
		offset:     offset,
		scale:      scale,
	}, nil
}

func (o *Rescale) Forward(data []*tensor.Dense, _ *ops.State) ([]*tensor.Dense, error) {
	out := make([]*tensor.Dense, len(data))
	for i, t := range data {
		r, err := rescale(t, o.offset, o.scale)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}

	return out, nil
}

func rescale(t *tensor.Dense, offset, scale float64) (*tensor.Dense, error) {
	var vals []float32
	switch data := t.Data().(type) {
	case []float32:
		vals = rescaleSlice(data, offset, scale)
	case []float64:
		vals = rescaleSlice(data, offset, scale)
	case []int:
		vals = rescaleSlice(data, offset, scale)
	case []uint8:
		vals = rescaleSlice(data, offset, scale)
	default:
		return nil, fmt.Errorf("rescale: unsupported dtype %v", t.Dtype())
	}

	return tensor.New(tensor.WithShape([]int(t.Shape())...), tensor.WithBacking(vals)), nil
}

func rescaleSlice[T float32 | float64 | int | uint8](data []T, offset, scale float64) []float32 {
	out := make([]float32, len(data))
	for i, v := range data {
		out[i] = float32((float64(v) - offset) / scale)
	}

	return out
}
