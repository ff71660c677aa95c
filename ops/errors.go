package ops

import "errors"

// Contract violations indicate a static pipeline misconfiguration. They are
// fatal and never retried: anything wrapping one of these should surface it to
// the caller unchanged.
var (
	// ErrInvalidOpList is returned by Flatten for values that are not an Op or
	// a (possibly nested) slice of Ops.
	ErrInvalidOpList = errors.New("ops must be an Op or a possibly nested slice of Ops")

	// ErrEmptyOpList is returned by Verify for a chain with no ops.
	ErrEmptyOpList = errors.New("op list is empty")

	// ErrMissingInput is returned by ForwardOps when a declared input key is
	// absent from the sample at the point the op runs.
	ErrMissingInput = errors.New("required input key absent from sample")

	// ErrArityMismatch is returned by ForwardOps when Forward returns a
	// different number of tensors than the op declares outputs.
	ErrArityMismatch = errors.New("forward result count does not match declared outputs")

	// ErrChainEntry is returned by Verify when the first op declares no
	// inputs: the chain would have no entry data.
	ErrChainEntry = errors.New("first op in a chain must declare inputs")

	// ErrChainExit is returned by Verify when the last op declares no
	// outputs: the chain's final result would be silently discarded.
	ErrChainExit = errors.New("last op in a chain must declare outputs")

	// ErrCapability is returned by Verify when an op does not satisfy the
	// capability family required by the component it is placed in.
	ErrCapability = errors.New("op does not satisfy the component's capability family")

	// ErrResultLost is returned by Verify when an op's result has no route
	// forward: the next op reads different keys and this op declares no
	// outputs.
	ErrResultLost = errors.New("op result has no route forward; declare outputs")

	// ErrOneOfContract is returned by NewOneOf when the wrapped ops do not
	// share the same inputs, outputs and mode.
	ErrOneOfContract = errors.New("all ops within a OneOf must share the same inputs, outputs and mode")

	// ErrOpNotFound is returned by Registry.Resolve when no registered op
	// matches the requested name and version constraint.
	ErrOpNotFound = errors.New("op not found in registry")
)
