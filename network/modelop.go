package network

import (
	"errors"

	"gorgonia.org/tensor"

	"github.com/trainflow/trainflow/ops"
)

// Model is the external model-execution collaborator. Apply receives one
// tensor per bound input key and returns the model's outputs. Weight updates,
// optimizer stepping and backpropagation live behind this interface, outside
// the framework.
type Model interface {
	Apply(inputs []*tensor.Dense) ([]*tensor.Dense, error)
}

// ModelOp binds a Model into an op chain: batch tensors named by the input
// keys flow into Apply, and its results bind to the output keys.
type ModelOp struct {
	ops.TensorBase
	model Model
}

// NewModelOp creates a ModelOp for model.
func NewModelOp(model Model, inputs, outputs []string, mode ops.Mode) (*ModelOp, error) {
	if model == nil {
		return nil, errors.New("model op: model is nil")
	}

	return &ModelOp{
		TensorBase: ops.NewTensorBase(inputs, outputs, mode),
		model:      model,
	}, nil
}

func (o *ModelOp) Forward(data []*tensor.Dense, _ *ops.State) ([]*tensor.Dense, error) {
	return o.model.Apply(data)
}
