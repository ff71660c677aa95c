package ops

import (
	"slices"

	"gorgonia.org/tensor"
)

// Sample is one logical example flowing through an op chain: named tensor
// fields, mutated in place by each op's output-key writes. Keys not touched by
// any op pass through unchanged.
type Sample map[string]*tensor.Dense

// Definition is the declared contract of an op: which sample keys it reads,
// which keys it writes and which phases it applies to. Definitions are fixed
// at construction time.
//
// Empty Inputs means the op synthesizes data with no keyed input. Empty
// Outputs means the executor discards the op's result.
type Definition struct {
	Inputs  []string
	Outputs []string
	Mode    Mode
}

// Equal reports whether two definitions declare the same contract.
func (d Definition) Equal(o Definition) bool {
	return slices.Equal(d.Inputs, o.Inputs) &&
		slices.Equal(d.Outputs, o.Outputs) &&
		d.Mode.Equal(o.Mode)
}

// Op is a single transform in a chain.
//
// Forward receives one tensor per declared input key, in declaration order,
// and returns one tensor per declared output key. For an op with no input
// keys, data is empty. Forward must not mutate state shared across calls;
// the executor owns binding results back into the sample.
type Op interface {
	Def() Definition
	Forward(data []*tensor.Dense, state *State) ([]*tensor.Dense, error)
}

// SampleOp marks ops that transform a single sample host-side, before
// batching. Implementations embed SampleBase.
type SampleOp interface {
	Op
	isSampleOp()
}

// TensorOp marks ops that run inside the model graph over a collated batch.
// Implementations embed TensorBase.
type TensorOp interface {
	Op
	isTensorOp()
}

// Base provides Definition storage and an identity Forward. Concrete ops embed
// SampleBase or TensorBase (never Base directly) and usually override Forward.
type Base struct {
	def Definition
}

// NewBase constructs the embedded base for a concrete op.
func NewBase(inputs, outputs []string, mode Mode) Base {
	return Base{def: Definition{
		Inputs:  slices.Clone(inputs),
		Outputs: slices.Clone(outputs),
		Mode:    mode,
	}}
}

// Def returns the op's declared contract.
func (b Base) Def() Definition { return b.def }

// Forward is the identity transform.
func (b Base) Forward(data []*tensor.Dense, _ *State) ([]*tensor.Dense, error) {
	return data, nil
}

// SampleBase is the embeddable base for sample-level ops.
type SampleBase struct{ Base }

// NewSampleBase constructs the embedded base for a sample-level op.
func NewSampleBase(inputs, outputs []string, mode Mode) SampleBase {
	return SampleBase{Base: NewBase(inputs, outputs, mode)}
}

func (SampleBase) isSampleOp() {}

// TensorBase is the embeddable base for model-graph ops.
type TensorBase struct{ Base }

// NewTensorBase constructs the embedded base for a model-graph op.
func NewTensorBase(inputs, outputs []string, mode Mode) TensorBase {
	return TensorBase{Base: NewBase(inputs, outputs, mode)}
}

func (TensorBase) isTensorOp() {}

// ForwardFunc is the signature of a function-backed op body.
type ForwardFunc func(data []*tensor.Dense, state *State) ([]*tensor.Dense, error)

// SampleFunc is a sample-level op backed by a plain function. Useful for
// one-off transforms and tests that do not warrant a named op type.
type SampleFunc struct {
	SampleBase
	fn ForwardFunc
}

// NewSampleFunc creates a sample-level op from fn.
func NewSampleFunc(inputs, outputs []string, mode Mode, fn ForwardFunc) *SampleFunc {
	return &SampleFunc{SampleBase: NewSampleBase(inputs, outputs, mode), fn: fn}
}

func (o *SampleFunc) Forward(data []*tensor.Dense, state *State) ([]*tensor.Dense, error) {
	return o.fn(data, state)
}

// TensorFunc is a model-graph op backed by a plain function.
type TensorFunc struct {
	TensorBase
	fn ForwardFunc
}

// NewTensorFunc creates a model-graph op from fn.
func NewTensorFunc(inputs, outputs []string, mode Mode, fn ForwardFunc) *TensorFunc {
	return &TensorFunc{TensorBase: NewTensorBase(inputs, outputs, mode), fn: fn}
}

func (o *TensorFunc) Forward(data []*tensor.Dense, state *State) ([]*tensor.Dense, error) {
	return o.fn(data, state)
}
