package metrics

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/nbody/internal/dynamo"
)

const DefaultEscapeRadius = 100.0

// BoundFraction is the share of observed frames in which every body stays
// within radius of the centre of mass. Non-finite positions count as escaped.
type BoundFraction struct {
	name       string
	radius     float64
	violations int
	samples    int
}

func NewBoundFraction(radius float64) *BoundFraction {
	return &BoundFraction{
		name:   "bound_fraction",
		radius: radius,
	}
}

func (b *BoundFraction) Name() string {
	return b.name
}

func (b *BoundFraction) Observe(f dynamo.Frame) {
	b.samples++
	com := CentreOfMass(f)
	for _, p := range f.Positions {
		if !(r3.Norm(r3.Sub(p, com)) <= b.radius) {
			b.violations++
			break
		}
	}
}

func (b *BoundFraction) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *BoundFraction) Reset() {
	b.violations = 0
	b.samples = 0
}
