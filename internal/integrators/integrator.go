package integrators

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/numeric"
)

// Integrator advances src into dst over dt. dst.Accelerations must already
// hold the accelerations computed from src's positions.
type Integrator[T numeric.Number[T]] interface {
	Name() string
	Integrate(dt T, src, dst *dynamo.State[T])
}

func checkAligned[T numeric.Number[T]](src, dst *dynamo.State[T]) {
	if src.Len() != dst.Len() {
		panic(errorsmod.Wrapf(dynamo.ErrBodyCountMismatch, "source has %d bodies, destination %d", src.Len(), dst.Len()))
	}
}
