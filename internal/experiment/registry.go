package experiment

import (
	"sort"

	errorsmod "cosmossdk.io/errors"
	"github.com/rs/zerolog"

	"github.com/san-kum/nbody/internal/integrators"
	"github.com/san-kum/nbody/internal/metrics"
	"github.com/san-kum/nbody/internal/nbody"
	"github.com/san-kum/nbody/internal/numeric"
	"github.com/san-kum/nbody/internal/system"
)

// RunnerOptions are the representation-independent settings of a Runner.
type RunnerOptions struct {
	Integrator string
	Cycles     int
	Workers    int
	Logger     zerolog.Logger
}

type factory func(def system.Definition, opts RunnerOptions) (Runner, error)

type Registry struct {
	numerics    map[string]factory
	integrators map[string]struct{}
}

func NewRegistry() *Registry {
	r := &Registry{
		numerics:    make(map[string]factory),
		integrators: make(map[string]struct{}),
	}

	r.numerics["f64"] = newFactory[numeric.Float64]("f64")
	r.numerics["q32"] = newFactory[numeric.Q32]("q32")
	r.numerics["dec"] = newFactory[numeric.Dec]("dec")

	r.integrators["euler"] = struct{}{}
	r.integrators["symplectic"] = struct{}{}

	return r
}

func newFactory[T numeric.Number[T]](name string) factory {
	return func(def system.Definition, opts RunnerOptions) (Runner, error) {
		in, err := integratorFor[T](opts.Integrator)
		if err != nil {
			return nil, err
		}
		sys, err := nbody.New[T](def, opts.Cycles,
			nbody.WithIntegrator[T](in),
			nbody.WithWorkers[T](opts.Workers),
			nbody.WithLogger[T](opts.Logger.With().Str("numeric", name).Logger()),
		)
		if err != nil {
			return nil, err
		}
		return &runner[T]{sys: sys, numeric: name}, nil
	}
}

func integratorFor[T numeric.Number[T]](name string) (integrators.Integrator[T], error) {
	switch name {
	case "euler":
		return integrators.NewEuler[T](), nil
	case "symplectic":
		return integrators.NewSemiImplicitEuler[T](), nil
	}
	return nil, errorsmod.Wrapf(ErrUnknownIntegrator, "%q", name)
}

// NewRunner builds a system for def in the named representation.
func (r *Registry) NewRunner(numericName string, def system.Definition, opts RunnerOptions) (Runner, error) {
	fn, ok := r.numerics[numericName]
	if !ok {
		return nil, errorsmod.Wrapf(ErrUnknownNumeric, "%q", numericName)
	}
	if _, ok := r.integrators[opts.Integrator]; !ok {
		return nil, errorsmod.Wrapf(ErrUnknownIntegrator, "%q", opts.Integrator)
	}
	return fn(def, opts)
}

func (r *Registry) ListNumerics() []string    { return sortedKeys(r.numerics) }
func (r *Registry) ListIntegrators() []string { return sortedKeys(r.integrators) }

func (r *Registry) DefaultMetrics(g, softening float64) []metrics.Metric {
	return metrics.Standard(g, softening)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
