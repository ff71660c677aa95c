package dataset

import (
	"fmt"

	"gorgonia.org/tensor"

	"github.com/trainflow/trainflow/internal/tensors"
)

// InMemory is a Dataset backed by columnar tensors held in memory: each column
// is one tensor whose leading axis indexes samples. The columns are split into
// per-sample rows once, at construction.
type InMemory struct {
	rows []Sample
}

// NewInMemory builds an InMemory dataset from columns. Every column must have
// the same leading extent.
func NewInMemory(columns map[string]*tensor.Dense) (*InMemory, error) {
	if len(columns) == 0 {
		return nil, ErrNoData
	}

	n := -1
	split := make(map[string][]*tensor.Dense, len(columns))
	for key, col := range columns {
		rows, err := tensors.Rows(col)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", key, err)
		}
		if n == -1 {
			n = len(rows)
		} else if len(rows) != n {
			return nil, fmt.Errorf("column %q has %d samples, want %d: %w",
				key, len(rows), n, ErrColumnMismatch)
		}
		split[key] = rows
	}
	if n == 0 {
		return nil, ErrNoData
	}

	rows := make([]Sample, n)
	for i := range rows {
		s := make(Sample, len(split))
		for key, col := range split {
			s[key] = col[i]
		}
		rows[i] = s
	}

	return &InMemory{rows: rows}, nil
}

// Len returns the number of samples.
func (d *InMemory) Len() int { return len(d.rows) }

// Get returns the sample at index. The returned mapping shares storage with
// the dataset; callers that mutate it must copy first.
func (d *InMemory) Get(index int) (Sample, error) {
	if index < 0 || index >= len(d.rows) {
		return nil, fmt.Errorf("index %d, len %d: %w", index, len(d.rows), ErrIndexOutOfRange)
	}

	return d.rows[index], nil
}
