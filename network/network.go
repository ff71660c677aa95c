package network

import (
	"fmt"

	"github.com/trainflow/trainflow/ops"
	"github.com/trainflow/trainflow/pkg/logger"
)

// Network is an ordered chain of model-graph ops applied per collated batch.
// The chain's key/capability contract is verified once at construction, so a
// misconfigured graph fails before any data flows.
type Network struct {
	chain []ops.Op
	lggr  logger.Logger
}

// New builds a Network from operations, which may be a single op or nested op
// slices (see ops.Flatten). Every op must belong to the model-graph family.
func New(lggr logger.Logger, operations any) (*Network, error) {
	chain, err := ops.Flatten(operations)
	if err != nil {
		return nil, err
	}
	if err := ops.Verify(chain, ops.ComponentNetwork); err != nil {
		return nil, err
	}
	if lggr == nil {
		lggr = logger.Nop()
	}

	return &Network{chain: chain, lggr: lggr}, nil
}

// Ops returns the flattened op chain.
func (n *Network) Ops() []ops.Op {
	return append([]ops.Op(nil), n.chain...)
}

// Forward runs the phase-applicable ops over batch, mutating it in place.
func (n *Network) Forward(batch ops.Sample, state *ops.State) error {
	if state.Logger == nil {
		state = &ops.State{Phase: state.Phase, Rand: state.Rand, Logger: n.lggr}
	}
	if err := ops.ForwardOps(n.chain, batch, state); err != nil {
		return fmt.Errorf("network forward: %w", err)
	}

	return nil
}
