package pipeline

import (
	"context"
	"math/rand"
	"sync"

	"github.com/trainflow/trainflow/dataset"
	"github.com/trainflow/trainflow/pkg/logger"
)

// Item is one loaded index: the transformed sample, or the error retrieval
// produced. Errors are delivered in-stream so the consumer decides whether to
// abort; the loader itself never retries.
type Item struct {
	Index  int
	Sample dataset.Sample
	Err    error
}

// Loader drives parallel access to an OpDataset. Each worker owns a random
// source seeded from the loader seed and its worker number, which keeps
// stochastic ops reproducible per worker, as the dataset layer leaves
// seeding to its driver.
type Loader struct {
	ds      *dataset.OpDataset
	workers int
	seed    int64
	lggr    logger.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithWorkers sets the worker count. Values below 1 are treated as 1.
func WithWorkers(n int) LoaderOption {
	return func(l *Loader) {
		l.workers = max(n, 1)
	}
}

// WithSeed sets the base seed for the per-worker random sources.
func WithSeed(seed int64) LoaderOption {
	return func(l *Loader) {
		l.seed = seed
	}
}

// WithLogger sets the loader's logger.
func WithLogger(lggr logger.Logger) LoaderOption {
	return func(l *Loader) {
		l.lggr = lggr
	}
}

// NewLoader creates a single-worker Loader over ds; options raise the worker
// count and seed the random sources.
func NewLoader(ds *dataset.OpDataset, opts ...LoaderOption) *Loader {
	l := &Loader{ds: ds, workers: 1, lggr: logger.Nop()}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Stream delivers every index of the dataset exactly once, in index order,
// transformed by the dataset's op chain. The channel closes after the last
// item or once ctx is cancelled; cancellation stops the workers promptly but
// items already in flight may still be delivered.
func (l *Loader) Stream(ctx context.Context) <-chan Item {
	out := make(chan Item)
	indices := make(chan int)
	results := make(chan Item, l.workers)

	go func() {
		defer close(indices)
		for i := range l.ds.Len() {
			select {
			case indices <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for w := range l.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rng := rand.New(rand.NewSource(l.seed + int64(w)))
			for idx := range indices {
				s, err := l.ds.GetWithRand(idx, rng)
				select {
				case results <- Item{Index: idx, Sample: s, Err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// Workers finish out of order; hold completed items until their turn.
	go func() {
		defer close(out)
		next := 0
		pending := map[int]Item{}
		for item := range results {
			pending[item.Index] = item
			for {
				it, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				select {
				case out <- it:
				case <-ctx.Done():
					return
				}
				next++
			}
		}
	}()

	return out
}
