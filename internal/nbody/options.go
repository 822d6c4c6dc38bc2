package nbody

import (
	"github.com/rs/zerolog"

	"github.com/san-kum/nbody/internal/integrators"
	"github.com/san-kum/nbody/internal/numeric"
)

// Option configures a System at construction.
type Option[T numeric.Number[T]] func(*System[T])

// WithIntegrator replaces the default explicit Euler integrator.
func WithIntegrator[T numeric.Number[T]](in integrators.Integrator[T]) Option[T] {
	return func(s *System[T]) {
		if in != nil {
			s.integrator = in
		}
	}
}

// WithWorkers splits the force loop across n goroutines. Results do not
// depend on n.
func WithWorkers[T numeric.Number[T]](n int) Option[T] {
	return func(s *System[T]) {
		if n > 0 {
			s.workers = n
		}
	}
}

func WithLogger[T numeric.Number[T]](l zerolog.Logger) Option[T] {
	return func(s *System[T]) { s.log = l }
}
