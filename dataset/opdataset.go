package dataset

import (
	"fmt"
	"math/rand"

	"gorgonia.org/tensor"

	"github.com/trainflow/trainflow/internal/tensors"
	"github.com/trainflow/trainflow/ops"
)

// OpDataset decorates a Dataset with an op chain bound to one execution
// phase. Each Get retrieves the underlying item, deep-copies it and runs the
// phase-filtered chain over the copy; for a BatchDataset the chain runs on
// every constituent sample and the results are padded (when the dataset
// configures a pad value) and collated into one columnar sample.
//
// Get is safe for concurrent callers: every call works on its own deep copy,
// and the one-time batch shuffle happens at construction, strictly before any
// access.
type OpDataset struct {
	src   Dataset
	batch BatchDataset // nil when src is item-level
	chain []ops.Op
	phase ops.Phase
}

// NewOpDataset binds operations to ds for phase. The op list is filtered for
// the phase once here, not per access. If ds is a BatchDataset its shuffle
// hook is invoked now, so batch composition is randomized once per wrapper,
// not per access.
func NewOpDataset(ds Dataset, operations []ops.Op, phase ops.Phase) (*OpDataset, error) {
	if ds == nil {
		return nil, ErrNoData
	}

	d := &OpDataset{
		src:   ds,
		chain: ops.FilterPhase(operations, phase),
		phase: phase,
	}
	if b, ok := ds.(BatchDataset); ok {
		b.Shuffle()
		d.batch = b
	}

	return d, nil
}

// Len delegates to the wrapped dataset.
func (d *OpDataset) Len() int { return d.src.Len() }

// Get returns the transformed sample (or collated batch) at index, drawing
// stochastic ops from the process random source.
func (d *OpDataset) Get(index int) (Sample, error) {
	return d.GetWithRand(index, nil)
}

// GetWithRand is Get with an explicit random source for stochastic ops.
// Parallel drivers pass one seeded source per worker so runs stay reproducible
// per worker; rng must not be shared between concurrent calls.
func (d *OpDataset) GetWithRand(index int, rng *rand.Rand) (Sample, error) {
	state := &ops.State{Phase: d.phase, Rand: rng}

	if d.batch != nil {
		return d.getBatch(index, state)
	}

	item, err := d.src.Get(index)
	if err != nil {
		return nil, err
	}
	item, err = tensors.CloneSample(item)
	if err != nil {
		return nil, fmt.Errorf("isolating sample %d: %w", index, err)
	}
	if err := ops.ForwardOps(d.chain, item, state); err != nil {
		return nil, err
	}

	return item, nil
}

func (d *OpDataset) getBatch(index int, state *ops.State) (Sample, error) {
	items, err := d.batch.Batch(index)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("batch %d: %w", index, ErrNoData)
	}

	for i, item := range items {
		copied, err := tensors.CloneSample(item)
		if err != nil {
			return nil, fmt.Errorf("isolating batch %d sample %d: %w", index, i, err)
		}
		if err := ops.ForwardOps(d.chain, copied, state); err != nil {
			return nil, err
		}
		items[i] = copied
	}

	pad, padded := d.batch.PadValue()

	// Collate over the key set of the first sample.
	out := make(Sample, len(items[0]))
	for key := range items[0] {
		vals := make([]*tensor.Dense, len(items))
		for i, item := range items {
			v, ok := item[key]
			if !ok {
				return nil, fmt.Errorf("batch %d sample %d: key %q: %w",
					index, i, key, ops.ErrMissingInput)
			}
			vals[i] = v
		}
		if padded {
			if vals, err = padBatch(vals, pad); err != nil {
				return nil, fmt.Errorf("batch %d key %q: %w", index, key, err)
			}
		}
		stacked, err := tensors.Stack(vals)
		if err != nil {
			return nil, fmt.Errorf("batch %d key %q: %w", index, key, err)
		}
		out[key] = stacked
	}

	return out, nil
}

// padBatch grows every tensor to the per-axis maximum extent across the
// batch, filling the trailing region with pad.
func padBatch(vals []*tensor.Dense, pad float64) ([]*tensor.Dense, error) {
	target, err := tensors.MaxShape(vals)
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		if vals[i], err = tensors.PadTo(v, target, pad); err != nil {
			return nil, err
		}
	}

	return vals, nil
}
