package pipeline

import (
	"errors"
	"fmt"
	"slices"

	"github.com/trainflow/trainflow/dataset"
	"github.com/trainflow/trainflow/ops"
	"github.com/trainflow/trainflow/pkg/logger"
)

// ErrPhaseNotBound is returned by Dataset for phases without bound data.
var ErrPhaseNotBound = errors.New("no dataset bound for phase")

// Config assembles a Pipeline.
type Config struct {
	// Data binds a dataset to each phase the pipeline serves. At least one
	// phase is required.
	Data map[ops.Phase]dataset.Dataset

	// Ops is the shared op chain: a single op or nested op slices (see
	// ops.Flatten). May be empty, in which case samples pass through
	// untransformed.
	Ops any

	Logger logger.Logger
}

// Pipeline owns the per-phase datasets and the sample-op chain applied to
// every retrieved item.
type Pipeline struct {
	data  map[ops.Phase]dataset.Dataset
	chain []ops.Op
	lggr  logger.Logger
}

// New builds a Pipeline. A non-empty op chain is verified for the Pipeline
// component here, before any data flows.
func New(cfg Config) (*Pipeline, error) {
	if len(cfg.Data) == 0 {
		return nil, errors.New("pipeline: no datasets bound")
	}
	for phase, ds := range cfg.Data {
		if ds == nil {
			return nil, fmt.Errorf("pipeline: nil dataset for phase %q", phase)
		}
	}

	chain, err := ops.Flatten(cfg.Ops)
	if err != nil {
		return nil, err
	}
	if len(chain) > 0 {
		if err := ops.Verify(chain, ops.ComponentPipeline); err != nil {
			return nil, err
		}
	}

	lggr := cfg.Logger
	if lggr == nil {
		lggr = logger.Nop()
	}

	data := make(map[ops.Phase]dataset.Dataset, len(cfg.Data))
	for phase, ds := range cfg.Data {
		data[phase] = ds
	}

	return &Pipeline{data: data, chain: chain, lggr: lggr}, nil
}

// Has reports whether data is bound for phase.
func (p *Pipeline) Has(phase ops.Phase) bool {
	_, ok := p.data[phase]

	return ok
}

// Phases returns the bound phases in deterministic order.
func (p *Pipeline) Phases() []ops.Phase {
	phases := make([]ops.Phase, 0, len(p.data))
	for phase := range p.data {
		phases = append(phases, phase)
	}
	slices.Sort(phases)

	return phases
}

// Dataset returns the op-decorated dataset bound to phase. Each call builds a
// fresh wrapper, so batch datasets reshuffle per binding, not per access.
func (p *Pipeline) Dataset(phase ops.Phase) (*dataset.OpDataset, error) {
	ds, ok := p.data[phase]
	if !ok {
		return nil, fmt.Errorf("phase %q: %w", phase, ErrPhaseNotBound)
	}

	wrapped, err := dataset.NewOpDataset(ds, p.chain, phase)
	if err != nil {
		return nil, err
	}
	p.lggr.Debugw("Bound op dataset", "phase", phase, "len", wrapped.Len(), "ops", len(ops.FilterPhase(p.chain, phase)))

	return wrapped, nil
}
