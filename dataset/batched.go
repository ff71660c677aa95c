package dataset

import (
	"fmt"
	"math/rand"
)

// Batched groups an item-level dataset into fixed-size batches, yielding one
// whole batch per index. It implements BatchDataset: batch composition is
// randomized by Shuffle (a permutation of the source indices), and an optional
// pad value lets OpDataset pad ragged per-sample tensors before collation.
//
// The final batch may be smaller than batchSize when the source length is not
// a multiple of it.
type Batched struct {
	src       Dataset
	batchSize int
	order     []int
	padValue  *float64
	rng       *rand.Rand
}

// BatchedOption configures a Batched dataset.
type BatchedOption func(*Batched)

// WithPadValue sets the fill value used to pad per-sample tensors to a common
// shape before collation.
func WithPadValue(v float64) BatchedOption {
	return func(b *Batched) {
		b.padValue = &v
	}
}

// WithRand sets the random source used by Shuffle. Defaults to the process
// source; tests set a seeded one for determinism.
func WithRand(rng *rand.Rand) BatchedOption {
	return func(b *Batched) {
		b.rng = rng
	}
}

// NewBatched wraps src into batches of batchSize.
func NewBatched(src Dataset, batchSize int, opts ...BatchedOption) (*Batched, error) {
	if src == nil || src.Len() == 0 {
		return nil, ErrNoData
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size %d must be positive", batchSize)
	}

	order := make([]int, src.Len())
	for i := range order {
		order[i] = i
	}
	b := &Batched{src: src, batchSize: batchSize, order: order}
	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

// Len returns the number of batches.
func (b *Batched) Len() int {
	return (b.src.Len() + b.batchSize - 1) / b.batchSize
}

// Get is not supported: a Batched dataset yields whole batches.
func (b *Batched) Get(index int) (Sample, error) {
	return nil, ErrSampleAccess
}

// Batch returns the samples composing batch index, in current shuffle order.
// Source retrieval errors propagate unchanged.
func (b *Batched) Batch(index int) ([]Sample, error) {
	if index < 0 || index >= b.Len() {
		return nil, fmt.Errorf("batch %d, len %d: %w", index, b.Len(), ErrIndexOutOfRange)
	}

	lo := index * b.batchSize
	hi := min(lo+b.batchSize, len(b.order))
	batch := make([]Sample, 0, hi-lo)
	for _, srcIdx := range b.order[lo:hi] {
		s, err := b.src.Get(srcIdx)
		if err != nil {
			return nil, err
		}
		batch = append(batch, s)
	}

	return batch, nil
}

// Shuffle permutes batch composition. Not safe to call concurrently with
// Batch; OpDataset calls it once at construction.
func (b *Batched) Shuffle() {
	swap := func(i, j int) { b.order[i], b.order[j] = b.order[j], b.order[i] }
	if b.rng != nil {
		b.rng.Shuffle(len(b.order), swap)
	} else {
		rand.Shuffle(len(b.order), swap)
	}
}

// PadValue returns the configured pad fill value, if any.
func (b *Batched) PadValue() (float64, bool) {
	if b.padValue == nil {
		return 0, false
	}

	return *b.padValue, true
}
