// Package tensors provides the small set of dense-tensor manipulations the
// framework needs around gorgonia tensors: deep clones for sample isolation,
// row splitting for columnar datasets, and the pad/stack pair used for batch
// collation.
//
// Supported element types are the ones training data moves through in
// practice: float32, float64, int and uint8.
package tensors

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/exp/constraints"
	"gorgonia.org/tensor"
)

var (
	// ErrDtype is returned for tensors backed by an unsupported element type.
	ErrDtype = errors.New("unsupported tensor dtype")

	// ErrShape is returned when tensor shapes are incompatible with the
	// requested manipulation.
	ErrShape = errors.New("incompatible tensor shapes")
)

type number interface {
	constraints.Integer | constraints.Float
}

func prod(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}

	return n
}

func dense[T number](shape []int, backing []T) *tensor.Dense {
	return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(backing))
}

// Clone returns a deep copy of t: fresh backing, same shape and dtype.
func Clone(t *tensor.Dense) (*tensor.Dense, error) {
	shape := slices.Clone([]int(t.Shape()))
	switch data := t.Data().(type) {
	case []float32:
		return dense(shape, slices.Clone(data)), nil
	case []float64:
		return dense(shape, slices.Clone(data)), nil
	case []int:
		return dense(shape, slices.Clone(data)), nil
	case []uint8:
		return dense(shape, slices.Clone(data)), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrDtype, t.Dtype())
	}
}

// CloneSample deep-copies every tensor in a sample mapping.
func CloneSample(s map[string]*tensor.Dense) (map[string]*tensor.Dense, error) {
	out := make(map[string]*tensor.Dense, len(s))
	for k, v := range s {
		c, err := Clone(v)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		out[k] = c
	}

	return out, nil
}

// Rows splits t along its leading axis into per-row tensors with fresh
// backing. A 1-D tensor of length N yields N tensors of shape (1).
func Rows(t *tensor.Dense) ([]*tensor.Dense, error) {
	shape := []int(t.Shape())
	if len(shape) == 0 {
		return nil, fmt.Errorf("%w: cannot split a scalar into rows", ErrShape)
	}
	rowShape := slices.Clone(shape[1:])
	if len(rowShape) == 0 {
		rowShape = []int{1}
	}

	switch data := t.Data().(type) {
	case []float32:
		return rows(data, shape[0], rowShape), nil
	case []float64:
		return rows(data, shape[0], rowShape), nil
	case []int:
		return rows(data, shape[0], rowShape), nil
	case []uint8:
		return rows(data, shape[0], rowShape), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrDtype, t.Dtype())
	}
}

func rows[T number](data []T, n int, rowShape []int) []*tensor.Dense {
	stride := prod(rowShape)
	out := make([]*tensor.Dense, n)
	for i := range n {
		out[i] = dense(rowShape, slices.Clone(data[i*stride:(i+1)*stride]))
	}

	return out
}

// MaxShape returns the elementwise maximum extent across the given tensors.
// All tensors must share one rank; differing extents along any number of axes
// are allowed.
func MaxShape(ts []*tensor.Dense) ([]int, error) {
	if len(ts) == 0 {
		return nil, fmt.Errorf("%w: no tensors", ErrShape)
	}
	maxDims := slices.Clone([]int(ts[0].Shape()))
	for _, t := range ts[1:] {
		shape := []int(t.Shape())
		if len(shape) != len(maxDims) {
			return nil, fmt.Errorf("%w: rank %d vs %d", ErrShape, len(shape), len(maxDims))
		}
		for i, d := range shape {
			maxDims[i] = max(maxDims[i], d)
		}
	}

	return maxDims, nil
}

// PadTo grows t to shape, filling the trailing extent of every axis with
// fill. Source data keeps its position at the origin of each axis, so padding
// is always trailing-aligned and deterministic. The fill value is converted to
// the tensor's element type.
func PadTo(t *tensor.Dense, shape []int, fill float64) (*tensor.Dense, error) {
	src := []int(t.Shape())
	if len(src) != len(shape) {
		return nil, fmt.Errorf("%w: rank %d vs %d", ErrShape, len(src), len(shape))
	}
	for i, d := range src {
		if d > shape[i] {
			return nil, fmt.Errorf("%w: axis %d shrinks from %d to %d", ErrShape, i, d, shape[i])
		}
	}
	if slices.Equal(src, shape) {
		return t, nil
	}

	switch data := t.Data().(type) {
	case []float32:
		return dense(slices.Clone(shape), padTo(data, src, shape, float32(fill))), nil
	case []float64:
		return dense(slices.Clone(shape), padTo(data, src, shape, fill)), nil
	case []int:
		return dense(slices.Clone(shape), padTo(data, src, shape, int(fill))), nil
	case []uint8:
		return dense(slices.Clone(shape), padTo(data, src, shape, uint8(fill))), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrDtype, t.Dtype())
	}
}

func padTo[T number](src []T, srcShape, dstShape []int, fill T) []T {
	dst := make([]T, prod(dstShape))
	for i := range dst {
		dst[i] = fill
	}
	copyRegion(dst, src, srcShape, dstShape)

	return dst
}

// copyRegion copies the src block into the origin corner of dst, axis by axis.
func copyRegion[T number](dst, src []T, srcShape, dstShape []int) {
	if len(srcShape) == 1 {
		copy(dst[:srcShape[0]], src[:srcShape[0]])
		return
	}
	srcStride := prod(srcShape[1:])
	dstStride := prod(dstShape[1:])
	for i := range srcShape[0] {
		copyRegion(dst[i*dstStride:(i+1)*dstStride], src[i*srcStride:(i+1)*srcStride],
			srcShape[1:], dstShape[1:])
	}
}

// Stack collates tensors of identical shape and dtype into one tensor with a
// new leading axis, in argument order.
func Stack(ts []*tensor.Dense) (*tensor.Dense, error) {
	if len(ts) == 0 {
		return nil, fmt.Errorf("%w: no tensors", ErrShape)
	}
	shape := []int(ts[0].Shape())
	for _, t := range ts[1:] {
		if !slices.Equal([]int(t.Shape()), shape) {
			return nil, fmt.Errorf("%w: %v vs %v", ErrShape, t.Shape(), ts[0].Shape())
		}
		if t.Dtype() != ts[0].Dtype() {
			return nil, fmt.Errorf("%w: mixed dtypes %v and %v", ErrDtype, t.Dtype(), ts[0].Dtype())
		}
	}
	stacked := append([]int{len(ts)}, shape...)

	switch ts[0].Data().(type) {
	case []float32:
		return dense(stacked, stack[float32](ts)), nil
	case []float64:
		return dense(stacked, stack[float64](ts)), nil
	case []int:
		return dense(stacked, stack[int](ts)), nil
	case []uint8:
		return dense(stacked, stack[uint8](ts)), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrDtype, ts[0].Dtype())
	}
}

func stack[T number](ts []*tensor.Dense) []T {
	var out []T
	for _, t := range ts {
		out = append(out, t.Data().([]T)...)
	}

	return out
}

// Mean returns the arithmetic mean of all elements as float64. Used for
// scalar metric aggregation.
func Mean(t *tensor.Dense) (float64, error) {
	switch data := t.Data().(type) {
	case []float32:
		return mean(data), nil
	case []float64:
		return mean(data), nil
	case []int:
		return mean(data), nil
	case []uint8:
		return mean(data), nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrDtype, t.Dtype())
	}
}

func mean[T number](data []T) float64 {
	if len(data) == 0 {
		return 0
	}
	var sum float64
	for _, v := range data {
		sum += float64(v)
	}

	return sum / float64(len(data))
}
