package metrics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/nbody/internal/dynamo"
)

func KineticEnergy(f dynamo.Frame) float64 {
	ke := 0.0
	for i, v := range f.Velocities {
		ke += 0.5 * f.Masses[i] * r3.Norm2(v)
	}
	return ke
}

// PotentialEnergy sums the pair potential whose gradient is the softened
// force of the nbody kernel:
//
//	U = -(G mi mj / sqrt(eps)) asinh(sqrt(eps) / d)
//
// Exactly coincident pairs exert no force there and contribute nothing here.
func PotentialEnergy(f dynamo.Frame, g, softening float64) float64 {
	rootEps := math.Sqrt(softening)
	pe := 0.0
	for i := 0; i < f.Len(); i++ {
		for j := i + 1; j < f.Len(); j++ {
			d := r3.Norm(r3.Sub(f.Positions[j], f.Positions[i]))
			if d == 0 {
				continue
			}
			pe -= g * f.Masses[i] * f.Masses[j] / rootEps * math.Asinh(rootEps/d)
		}
	}
	return pe
}

func TotalEnergy(f dynamo.Frame, g, softening float64) float64 {
	return KineticEnergy(f) + PotentialEnergy(f, g, softening)
}

// EnergyDrift is the largest relative deviation of total energy from the
// first observed frame.
type EnergyDrift struct {
	name          string
	g, softening  float64
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(g, softening float64) *EnergyDrift {
	return &EnergyDrift{
		name:      "energy_drift",
		g:         g,
		softening: softening,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(f dynamo.Frame) {
	energy := TotalEnergy(f, e.g, e.softening)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// EnergySpread is the standard deviation of total energy over the run,
// relative to its mean.
type EnergySpread struct {
	name         string
	g, softening float64
	energies     []float64
}

func NewEnergySpread(g, softening float64) *EnergySpread {
	return &EnergySpread{
		name:      "energy_spread",
		g:         g,
		softening: softening,
	}
}

func (e *EnergySpread) Name() string { return e.name }

func (e *EnergySpread) Observe(f dynamo.Frame) {
	e.energies = append(e.energies, TotalEnergy(f, e.g, e.softening))
}

func (e *EnergySpread) Value() float64 {
	if len(e.energies) < 2 {
		return 0
	}
	mean, std := stat.MeanStdDev(e.energies, nil)
	if mean == 0 {
		return std
	}
	return std / math.Abs(mean)
}

// Energies returns the recorded totals in observation order.
func (e *EnergySpread) Energies() []float64 { return e.energies }

func (e *EnergySpread) Reset() { e.energies = e.energies[:0] }
