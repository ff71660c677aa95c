package transform

import (
	"errors"
	"fmt"

	"github.com/trainflow/trainflow/ops"
)

// RegisterDefaults registers the package's ops as versioned factories so
// configuration files can reference them by name.
func RegisterDefaults(r *ops.Registry) error {
	return errors.Join(
		r.Register("reshape", "1.0.0", reshapeFactory),
		r.Register("binarize", "1.0.0", binarizeFactory),
		r.Register("rescale", "1.0.0", rescaleFactory),
		r.Register("gaussian_noise", "1.0.0", gaussianNoiseFactory),
	)
}

func reshapeFactory(args ops.FactoryArgs) (ops.Op, error) {
	shape, err := intSliceParam(args.Params, "shape")
	if err != nil {
		return nil, err
	}

	return NewReshape(shape, args.Inputs, args.Outputs, args.Mode), nil
}

func binarizeFactory(args ops.FactoryArgs) (ops.Op, error) {
	threshold, err := floatParam(args.Params, "threshold")
	if err != nil {
		return nil, err
	}

	return NewBinarize(threshold, args.Inputs, args.Outputs, args.Mode), nil
}

func rescaleFactory(args ops.FactoryArgs) (ops.Op, error) {
	offset, err := floatParam(args.Params, "offset")
	if err != nil {
		return nil, err
	}
	scale, err := floatParam(args.Params, "scale")
	if err != nil {
		return nil, err
	}

	return NewRescale(offset, scale, args.Inputs, args.Outputs, args.Mode)
}

func gaussianNoiseFactory(args ops.FactoryArgs) (ops.Op, error) {
	shape, err := intSliceParam(args.Params, "shape")
	if err != nil {
		return nil, err
	}
	mean, stddev := 0.0, 1.0
	if _, ok := args.Params["mean"]; ok {
		if mean, err = floatParam(args.Params, "mean"); err != nil {
			return nil, err
		}
	}
	if _, ok := args.Params["stddev"]; ok {
		if stddev, err = floatParam(args.Params, "stddev"); err != nil {
			return nil, err
		}
	}

	return NewGaussianNoise(shape, mean, stddev, args.Outputs, args.Mode)
}

// Config decoding yields loosely typed numbers (int or float64 depending on
// the YAML literal); the helpers below normalize them.

func floatParam(params map[string]any, key string) (float64, error) {
	v, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("missing parameter %q", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("parameter %q: want number, got %T", key, v)
	}
}

func intSliceParam(params map[string]any, key string) ([]int, error) {
	v, ok := params[key]
	if !ok {
		return nil, fmt.Errorf("missing parameter %q", key)
	}
	switch s := v.(type) {
	case []int:
		return s, nil
	case []any:
		out := make([]int, len(s))
		for i, e := range s {
			n, ok := e.(int)
			if !ok {
				return nil, fmt.Errorf("parameter %q[%d]: want int, got %T", key, i, e)
			}
			out[i] = n
		}

		return out, nil
	default:
		return nil, fmt.Errorf("parameter %q: want int list, got %T", key, v)
	}
}
