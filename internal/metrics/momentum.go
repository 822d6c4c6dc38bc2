package metrics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/nbody/internal/dynamo"
)

func Momentum(f dynamo.Frame) r3.Vec {
	var p r3.Vec
	for i, v := range f.Velocities {
		p = r3.Add(p, r3.Scale(f.Masses[i], v))
	}
	return p
}

// AngularMomentum is taken about the origin.
func AngularMomentum(f dynamo.Frame) r3.Vec {
	var l r3.Vec
	for i, v := range f.Velocities {
		l = r3.Add(l, r3.Scale(f.Masses[i], r3.Cross(f.Positions[i], v)))
	}
	return l
}

// CentreOfMass returns the origin for a frame with no mass.
func CentreOfMass(f dynamo.Frame) r3.Vec {
	var c r3.Vec
	total := 0.0
	for i, p := range f.Positions {
		c = r3.Add(c, r3.Scale(f.Masses[i], p))
		total += f.Masses[i]
	}
	if total == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/total, c)
}

// MomentumDrift is the largest |P - P0| seen, where P0 is the momentum of
// the first observed frame.
type MomentumDrift struct {
	name     string
	initial  r3.Vec
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(f dynamo.Frame) {
	p := Momentum(f)
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++
	m.maxDrift = math.Max(m.maxDrift, r3.Norm(r3.Sub(p, m.initial)))
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = r3.Vec{}
	m.maxDrift = 0
	m.samples = 0
}

// AngularMomentumDrift is the largest |L - L0| seen, with L taken about the
// origin.
type AngularMomentumDrift struct {
	initial  r3.Vec
	maxDrift float64
	samples  int
}

func NewAngularMomentumDrift() *AngularMomentumDrift {
	return &AngularMomentumDrift{}
}

func (m *AngularMomentumDrift) Name() string { return "angular_momentum_drift" }

func (m *AngularMomentumDrift) Observe(f dynamo.Frame) {
	l := AngularMomentum(f)
	if m.samples == 0 {
		m.initial = l
	}
	m.samples++
	m.maxDrift = math.Max(m.maxDrift, r3.Norm(r3.Sub(l, m.initial)))
}

func (m *AngularMomentumDrift) Value() float64 { return m.maxDrift }

func (m *AngularMomentumDrift) Reset() {
	m.initial = r3.Vec{}
	m.maxDrift = 0
	m.samples = 0
}
