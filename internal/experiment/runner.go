package experiment

import (
	"context"

	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/nbody"
	"github.com/san-kum/nbody/internal/numeric"
)

// Runner drives an nbody.System of any representation through float64 in
// and frames out. A Runner is used from one goroutine.
type Runner interface {
	Step(dt float64)
	StepCount() int
	Cycles() int
	Current() dynamo.Frame
	// History returns up to n frames, newest first.
	History(n int) []dynamo.Frame
	// Run steps up to steps times and hands observe every sampled frame:
	// each step divisible by every, and the last one.
	Run(ctx context.Context, steps int, dt float64, every int, observe func(dynamo.Frame) bool) error
	Numeric() string
	Integrator() string
	GravitationalConstant() float64
	Softening() float64
}

type runner[T numeric.Number[T]] struct {
	sys     *nbody.System[T]
	numeric string
}

func (r *runner[T]) Step(dt float64) { r.sys.Step(numeric.From[T](dt)) }

func (r *runner[T]) StepCount() int                 { return r.sys.StepCount() }
func (r *runner[T]) Cycles() int                    { return r.sys.Cycles() }
func (r *runner[T]) Numeric() string                { return r.numeric }
func (r *runner[T]) Integrator() string             { return r.sys.Integrator() }
func (r *runner[T]) GravitationalConstant() float64 { return r.sys.GravitationalConstant().Float64() }
func (r *runner[T]) Softening() float64             { return r.sys.Softening().Float64() }

func (r *runner[T]) Current() dynamo.Frame {
	step := r.sys.StepCount()
	var f dynamo.Frame
	r.sys.View(func(st *dynamo.State[T]) { f = st.Frame(step) })
	return f
}

// History labels initial replicas that precede the first step as step 0.
func (r *runner[T]) History(n int) []dynamo.Frame {
	step := r.sys.StepCount()
	states := r.sys.HistorySnapshot(n)
	frames := make([]dynamo.Frame, len(states))
	for i, st := range states {
		frames[i] = st.Frame(max(step-i, 0))
	}
	return frames
}

func (r *runner[T]) Run(ctx context.Context, steps int, dt float64, every int, observe func(dynamo.Frame) bool) error {
	if every < 1 {
		every = 1
	}
	last := r.sys.StepCount() + steps
	return r.sys.Run(ctx, steps, numeric.From[T](dt), func(step int, st *dynamo.State[T]) bool {
		if step%every != 0 && step != last {
			return true
		}
		return observe(st.Frame(step))
	})
}
