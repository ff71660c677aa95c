package transform

import (
	"fmt"

	"gorgonia.org/tensor"

	"github.com/trainflow/trainflow/ops"
)

// Binarize maps each element to 1 when it is not less than the threshold and
// to 0 otherwise. The result is always float32.
type Binarize struct {
	ops.SampleBase
	threshold float64
}

// NewBinarize creates a Binarize op with the given threshold.
func NewBinarize(threshold float64, inputs, outputs []string, mode ops.Mode) *Binarize {
	return &Binarize{
		SampleBase: ops.NewSampleBase(inputs, outputs, mode),
		threshold:  threshold,
	}
}

func (o *Binarize) Forward(data []*tensor.Dense, _ *ops.State) ([]*tensor.Dense, error) {
	out := make([]*tensor.Dense, len(data))
	for i, t := range data {
		b, err := binarize(t, o.threshold)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}

	return out, nil
}

func binarize(t *tensor.Dense, threshold float64) (*tensor.Dense, error) {
	var vals []float32
	switch data := t.Data().(type) {
	case []float32:
		vals = binarizeSlice(data, threshold)
	case []float64:
		vals = binarizeSlice(data, threshold)
	case []int:
		vals = binarizeSlice(data, threshold)
	case []uint8:
		vals = binarizeSlice(data, threshold)
	default:
		return nil, fmt.Errorf("binarize: unsupported dtype %v", t.Dtype())
	}

	return tensor.New(tensor.WithShape([]int(t.Shape())...), tensor.WithBacking(vals)), nil
}

// Comparison happens in float64 so integer dtypes binarize against fractional
// thresholds correctly.
func binarizeSlice[T float32 | float64 | int | uint8](data []T, threshold float64) []float32 {
	out := make([]float32, len(data))
	for i, v := range data {
		if float64(v) >= threshold {
			out[i] = 1
		}
	}

	return out
}
