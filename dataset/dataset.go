package dataset

import (
	"errors"

	"github.com/trainflow/trainflow/ops"
)

// Sample is one example's named tensor fields. Alias of ops.Sample: the same
// mapping flows from dataset retrieval through the op chain.
type Sample = ops.Sample

var (
	// ErrIndexOutOfRange is returned by Get and Batch for indices outside
	// [0, Len).
	ErrIndexOutOfRange = errors.New("dataset index out of range")

	// ErrSampleAccess is returned by Get on datasets that only yield whole
	// batches; use Batch instead.
	ErrSampleAccess = errors.New("batch dataset yields whole batches; use Batch")

	// ErrNoData is returned when constructing a dataset from empty input.
	ErrNoData = errors.New("dataset has no data")

	// ErrColumnMismatch is returned when columnar input disagrees on the
	// number of samples per column.
	ErrColumnMismatch = errors.New("columns disagree on sample count")
)

// Dataset is an indexable, sized collection of samples.
//
// Implementations may cache or reuse buffers internally; callers that mutate
// retrieved samples must copy first (OpDataset does).
type Dataset interface {
	Len() int
	Get(index int) (Sample, error)
}

// BatchDataset is a Dataset whose single-index retrieval yields a whole batch
// of independent samples. It is detected by OpDataset via type assertion.
//
// Shuffle randomizes batch composition; OpDataset invokes it exactly once at
// wrapper construction, before any concurrent access begins. PadValue, when
// present, is the fill value used to pad per-sample tensors to a common shape
// before collation.
type BatchDataset interface {
	Dataset
	Batch(index int) ([]Sample, error)
	Shuffle()
	PadValue() (float64, bool)
}
