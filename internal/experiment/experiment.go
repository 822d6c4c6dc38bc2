package experiment

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/metrics"
	"github.com/san-kum/nbody/internal/system"
)

type Config struct {
	Definition  system.Definition
	Numeric     string
	Integrator  string
	Dt          float64
	Steps       int
	Cycles      int
	Workers     int
	SampleEvery int
	Trail       int
	Logger      zerolog.Logger
}

type Result struct {
	// Frames holds the initial frame and every sampled one, oldest first.
	Frames []dynamo.Frame
	// Trail is the last Trail states of the history ring, newest first.
	Trail      []dynamo.Frame
	Metrics    map[string]float64
	StepsTaken int
	Elapsed    time.Duration
}

type Experiment struct {
	cfg     Config
	runner  Runner
	metrics []metrics.Metric
}

func New(cfg Config) *Experiment {
	if cfg.SampleEvery < 1 {
		cfg.SampleEvery = 1
	}
	return &Experiment{cfg: cfg}
}

// Setup builds the runner and the standard metrics.
func (e *Experiment) Setup(reg *Registry) error {
	r, err := reg.NewRunner(e.cfg.Numeric, e.cfg.Definition, RunnerOptions{
		Integrator: e.cfg.Integrator,
		Cycles:     e.cfg.Cycles,
		Workers:    e.cfg.Workers,
		Logger:     e.cfg.Logger,
	})
	if err != nil {
		return err
	}
	e.runner = r
	e.metrics = reg.DefaultMetrics(r.GravitationalConstant(), r.Softening())
	return nil
}

func (e *Experiment) AddMetric(m metrics.Metric) { e.metrics = append(e.metrics, m) }

// Runner returns the underlying runner, nil before Setup.
func (e *Experiment) Runner() Runner { return e.runner }

// Run always returns a result. On cancellation it covers the steps taken so
// far and the context error is returned alongside it.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.runner == nil {
		return nil, ErrNotSetup
	}

	start := time.Now()
	startStep := e.runner.StepCount()
	res := &Result{Metrics: make(map[string]float64, len(e.metrics))}

	observe := func(f dynamo.Frame) bool {
		res.Frames = append(res.Frames, f)
		for _, m := range e.metrics {
			m.Observe(f)
		}
		return true
	}
	observe(e.runner.Current())

	err := e.runner.Run(ctx, e.cfg.Steps, e.cfg.Dt, e.cfg.SampleEvery, observe)

	res.StepsTaken = e.runner.StepCount() - startStep
	res.Elapsed = time.Since(start)
	res.Trail = e.runner.History(e.cfg.Trail)
	for _, m := range e.metrics {
		res.Metrics[m.Name()] = m.Value()
	}

	e.cfg.Logger.Debug().
		Str("numeric", e.runner.Numeric()).
		Str("integrator", e.runner.Integrator()).
		Int("steps", res.StepsTaken).
		Int("frames", len(res.Frames)).
		Dur("elapsed", res.Elapsed).
		Msg("experiment finished")

	return res, err
}
