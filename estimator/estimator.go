package estimator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/trainflow/trainflow/internal/tensors"
	"github.com/trainflow/trainflow/network"
	"github.com/trainflow/trainflow/ops"
	"github.com/trainflow/trainflow/pipeline"
	"github.com/trainflow/trainflow/pkg/logger"
)

// Config assembles an Estimator.
type Config struct {
	Pipeline *pipeline.Pipeline
	Network  *network.Network

	// Epochs is the number of passes over the train dataset.
	Epochs int

	// Monitor lists batch keys whose per-batch mean is aggregated into each
	// epoch summary, typically loss keys emitted by network ops.
	Monitor []string

	// Workers is the loader worker count per phase pass. Defaults to 1.
	Workers int

	// Seed is the base seed for per-worker random sources.
	Seed int64

	Logger   logger.Logger
	Reporter Reporter
}

// Estimator runs the training loop: train phase each epoch, followed by an
// eval pass when an eval dataset is bound.
type Estimator struct {
	pipeline *pipeline.Pipeline
	network  *network.Network
	epochs   int
	monitor  []string
	workers  int
	seed     int64
	lggr     logger.Logger
	reporter Reporter
}

// New validates cfg and creates an Estimator. A train dataset is required;
// eval and test are optional.
func New(cfg Config) (*Estimator, error) {
	if cfg.Pipeline == nil {
		return nil, errors.New("estimator: pipeline is required")
	}
	if cfg.Network == nil {
		return nil, errors.New("estimator: network is required")
	}
	if !cfg.Pipeline.Has(ops.Train) {
		return nil, errors.New("estimator: pipeline has no train dataset")
	}
	if cfg.Epochs <= 0 {
		return nil, fmt.Errorf("estimator: epochs %d must be positive", cfg.Epochs)
	}

	e := &Estimator{
		pipeline: cfg.Pipeline,
		network:  cfg.Network,
		epochs:   cfg.Epochs,
		monitor:  append([]string(nil), cfg.Monitor...),
		workers:  max(cfg.Workers, 1),
		seed:     cfg.Seed,
		lggr:     cfg.Logger,
		reporter: cfg.Reporter,
	}
	if e.lggr == nil {
		e.lggr = logger.Nop()
	}
	if e.reporter == nil {
		e.reporter = NewMemoryReporter()
	}

	return e, nil
}

// Fit runs the configured number of epochs and stores the resulting report.
// The report is returned even when a pass fails partway, with Err set and the
// summaries collected so far.
func (e *Estimator) Fit(ctx context.Context) (RunReport, error) {
	report := newRunReport(e.epochs)
	e.lggr.Infow("Starting run", "run_id", report.ID, "epochs", e.epochs)

	phases := []ops.Phase{ops.Train}
	if e.pipeline.Has(ops.Eval) {
		phases = append(phases, ops.Eval)
	}

	var runErr error
	for epoch := 1; epoch <= e.epochs && runErr == nil; epoch++ {
		for _, phase := range phases {
			summary, err := e.runPhase(ctx, epoch, phase)
			if err != nil {
				runErr = fmt.Errorf("epoch %d %s: %w", epoch, phase, err)
				break
			}
			report.Summaries = append(report.Summaries, summary)
			e.lggr.Infow("Epoch phase complete",
				"run_id", report.ID, "epoch", epoch, "phase", phase,
				"batches", summary.Batches, "metrics", summary.Metrics)
		}
	}

	report.CompletedAt = time.Now()
	if runErr != nil {
		report.Err = &ReportError{Message: runErr.Error()}
	}
	if err := e.reporter.AddReport(report); err != nil {
		return report, errors.Join(runErr, err)
	}

	return report, runErr
}

// Test runs a single pass over the test dataset and returns its summary. The
// pipeline must have a test dataset bound.
func (e *Estimator) Test(ctx context.Context) (EpochSummary, error) {
	if !e.pipeline.Has(ops.Test) {
		return EpochSummary{}, fmt.Errorf("%w: %q", pipeline.ErrPhaseNotBound, ops.Test)
	}

	return e.runPhase(ctx, 1, ops.Test)
}

func (e *Estimator) runPhase(ctx context.Context, epoch int, phase ops.Phase) (EpochSummary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ds, err := e.pipeline.Dataset(phase)
	if err != nil {
		return EpochSummary{}, err
	}
	loader := pipeline.NewLoader(ds,
		pipeline.WithWorkers(e.workers),
		// Distinct seeds per epoch so augmentation does not repeat.
		pipeline.WithSeed(e.seed+int64(epoch)*int64(e.workers)),
		pipeline.WithLogger(e.lggr),
	)

	summary := EpochSummary{Epoch: epoch, Phase: phase, Metrics: map[string]float64{}}
	totals := map[string]float64{}

	for item := range loader.Stream(ctx) {
		if item.Err != nil {
			return EpochSummary{}, item.Err
		}

		state := &ops.State{Phase: phase, Logger: e.lggr}
		if err := e.network.Forward(item.Sample, state); err != nil {
			return EpochSummary{}, err
		}

		for _, key := range e.monitor {
			t, ok := item.Sample[key]
			if !ok {
				continue
			}
			m, err := tensors.Mean(t)
			if err != nil {
				return EpochSummary{}, fmt.Errorf("monitor %q: %w", key, err)
			}
			totals[key] += m
		}
		summary.Batches++
	}
	if err := ctx.Err(); err != nil {
		return EpochSummary{}, err
	}

	for key, total := range totals {
		summary.Metrics[key] = total / float64(summary.Batches)
	}

	return summary, nil
}
