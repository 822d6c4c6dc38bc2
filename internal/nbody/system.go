package nbody

import (
	"context"
	"sync"

	errorsmod "cosmossdk.io/errors"
	"github.com/rs/zerolog"

	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/integrators"
	"github.com/san-kum/nbody/internal/numeric"
	"github.com/san-kum/nbody/internal/system"
	"github.com/san-kum/nbody/internal/vec"
)

// minChunk is the smallest body range handed to one force worker.
const minChunk = 16

type System[T numeric.Number[T]] struct {
	mu sync.RWMutex

	g         T
	softening T

	states []*dynamo.State[T]
	cursor int
	steps  int

	integrator integrators.Integrator[T]
	workers    int
	log        zerolog.Logger
}

// New builds a system from a loaded definition with a history of cycles states.
func New[T numeric.Number[T]](def system.Definition, cycles int, opts ...Option[T]) (*System[T], error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	initial, err := system.BuildState[T](def)
	if err != nil {
		return nil, err
	}
	return NewFromParams(
		numeric.From[T](def.GravitationalConstant),
		numeric.From[T](def.SofteningConstant),
		initial,
		cycles,
		opts...,
	)
}

// NewFromParams replicates initial into every ring slot. The cursor starts at
// slot 0 and the step counter at 0. initial itself is not retained.
func NewFromParams[T numeric.Number[T]](g, softening T, initial *dynamo.State[T], cycles int, opts ...Option[T]) (*System[T], error) {
	if initial == nil {
		return nil, errorsmod.Wrap(dynamo.ErrInvalidState, "initial state is nil")
	}
	if cycles < 1 {
		return nil, errorsmod.Wrapf(dynamo.ErrInvalidCycles, "got %d", cycles)
	}
	if !(softening.Float64() > 0) {
		return nil, errorsmod.Wrapf(dynamo.ErrInvalidSoftening, "got %v", softening.Float64())
	}

	s := &System[T]{
		g:          g,
		softening:  softening,
		states:     make([]*dynamo.State[T], cycles),
		integrator: integrators.NewEuler[T](),
		workers:    1,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	for i := range s.states {
		st := initial.Clone()
		st.Seal()
		s.states[i] = st
	}

	s.log.Debug().
		Int("bodies", initial.Len()).
		Int("cycles", cycles).
		Int("workers", s.workers).
		Str("integrator", s.integrator.Name()).
		Float64("g", g.Float64()).
		Float64("softening", softening.Float64()).
		Msg("nbody system ready")

	return s, nil
}

// Step advances the system by dt and makes the new state current.
func (s *System[T]) Step(dt T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.successor(s.cursor)
	current, target := s.states[s.cursor], s.states[next]
	if current.Len() != target.Len() {
		panic(errorsmod.Wrapf(dynamo.ErrBodyCountMismatch, "slot %d has %d bodies, slot %d has %d",
			s.cursor, current.Len(), next, target.Len()))
	}

	target.SetIDs(current.IDs())
	target.SetMasses(current.Masses())
	s.accelerate(current, target)
	s.integrator.Integrate(dt, current, target)

	s.cursor = next
	s.steps++
}

// accelerate writes the softened pairwise acceleration of every body in src
// into dst. Exactly coincident pairs contribute nothing.
func (s *System[T]) accelerate(src, dst *dynamo.State[T]) {
	pos := src.Positions()
	mass := src.Masses()
	acc := dst.Accelerations()

	dynamo.ParallelFor(len(pos), s.workers, minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			sum := vec.Zero[T]()
			for j := range pos {
				if j == i {
					continue
				}
				d := pos[j].Sub(pos[i])
				dsq := d.LengthSq()
				if dsq.IsZero() {
					continue
				}
				f := s.g.Mul(mass[j]).Div(dsq.Mul(dsq.Add(s.softening).Sqrt()))
				sum = sum.Add(d.Scale(f))
			}
			acc[i] = sum
		}
	})
}

func (s *System[T]) successor(i int) int {
	if i+1 >= len(s.states) {
		return 0
	}
	return i + 1
}

func (s *System[T]) predecessor(i int) int {
	if i == 0 {
		return len(s.states) - 1
	}
	return i - 1
}

// CurrentState returns the newest slot. The view is valid until the next Step.
func (s *System[T]) CurrentState() *dynamo.State[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[s.cursor]
}

// StateHistory returns up to min(count, Cycles()) slots, newest first.
// Views are valid until the next Step.
func (s *System[T]) StateHistory(count int) []*dynamo.State[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history(count)
}

func (s *System[T]) history(count int) []*dynamo.State[T] {
	if count > len(s.states) {
		count = len(s.states)
	}
	if count <= 0 {
		return []*dynamo.State[T]{}
	}

	out := make([]*dynamo.State[T], 0, count)
	idx := s.cursor
	for len(out) < count {
		out = append(out, s.states[idx])
		idx = s.predecessor(idx)
	}
	return out
}

// Snapshot returns a deep copy of the current state.
func (s *System[T]) Snapshot() *dynamo.State[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[s.cursor].Clone()
}

// HistorySnapshot is StateHistory with every state deep-copied.
func (s *System[T]) HistorySnapshot(count int) []*dynamo.State[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h := s.history(count)
	for i := range h {
		h[i] = h[i].Clone()
	}
	return h
}

// View calls fn with the current state while holding off any Step.
// fn must not call Step.
func (s *System[T]) View(fn func(*dynamo.State[T])) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.states[s.cursor])
}

// Run steps the system up to steps times. ctx is checked between steps,
// never during one. observe, if non-nil, sees each completed state and may
// stop the run by returning false.
func (s *System[T]) Run(ctx context.Context, steps int, dt T, observe func(step int, st *dynamo.State[T]) bool) error {
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.Step(dt)

		if observe == nil {
			continue
		}
		cont := true
		s.View(func(st *dynamo.State[T]) {
			cont = observe(s.steps, st)
		})
		if !cont {
			return nil
		}
	}
	return nil
}

func (s *System[T]) StepCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.steps
}

func (s *System[T]) Cursor() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor
}

func (s *System[T]) Cycles() int              { return len(s.states) }
func (s *System[T]) GravitationalConstant() T { return s.g }
func (s *System[T]) Softening() T             { return s.softening }
func (s *System[T]) Integrator() string       { return s.integrator.Name() }
func (s *System[T]) Workers() int             { return s.workers }
