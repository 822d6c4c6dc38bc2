// Package metrics computes conserved quantities of N-body frames and tracks
// how far a run drifts from them.
package metrics

import "github.com/san-kum/nbody/internal/dynamo"

// Metric accumulates a single figure over a sequence of frames.
type Metric interface {
	Name() string
	Observe(f dynamo.Frame)
	Value() float64
	Reset()
}

// Standard returns the metrics reported for every run.
func Standard(g, softening float64) []Metric {
	return []Metric{
		NewEnergyDrift(g, softening),
		NewEnergySpread(g, softening),
		NewMomentumDrift(),
		NewAngularMomentumDrift(),
		NewBoundFraction(DefaultEscapeRadius),
	}
}
