package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/nbody/internal/dynamo"
)

// Plane selects the two coordinates projected onto a 2D surface.
type Plane int

const (
	PlaneXY Plane = iota
	PlaneXZ
	PlaneYZ
)

func ParsePlane(s string) (Plane, error) {
	switch strings.ToLower(s) {
	case "", "xy":
		return PlaneXY, nil
	case "xz":
		return PlaneXZ, nil
	case "yz":
		return PlaneYZ, nil
	}
	return 0, fmt.Errorf("viz: unknown plane %q", s)
}

// Project returns the in-plane coordinates of body i.
func (p Plane) Project(f dynamo.Frame, i int) (float64, float64) {
	v := f.Positions[i]
	switch p {
	case PlaneXZ:
		return v.X, v.Z
	case PlaneYZ:
		return v.Y, v.Z
	default:
		return v.X, v.Y
	}
}

// Bounds is an axis-aligned box in plane coordinates.
type Bounds struct {
	MinX, MaxX, MinY, MaxY float64
}

// FrameBounds covers every body of every frame with 10% padding per side.
// Every frame must hold n bodies.
func FrameBounds(frames []dynamo.Frame, plane Plane) (Bounds, error) {
	if len(frames) == 0 || frames[0].Len() == 0 {
		return Bounds{}, fmt.Errorf("viz: no trajectory to draw")
	}
	n := frames[0].Len()

	x0, y0 := plane.Project(frames[0], 0)
	b := Bounds{x0, x0, y0, y0}
	for _, f := range frames {
		if f.Len() != n {
			return Bounds{}, fmt.Errorf("viz: frame %d has %d bodies, want %d", f.Step, f.Len(), n)
		}
		for i := 0; i < n; i++ {
			x, y := plane.Project(f, i)
			b.MinX, b.MaxX = min(b.MinX, x), max(b.MaxX, x)
			b.MinY, b.MaxY = min(b.MinY, y), max(b.MaxY, y)
		}
	}

	rangeX := b.MaxX - b.MinX
	rangeY := b.MaxY - b.MinY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.MinX -= rangeX * 0.1
	b.MaxX += rangeX * 0.1
	b.MinY -= rangeY * 0.1
	b.MaxY += rangeY * 0.1
	return b, nil
}

// Scale maps (x, y) onto a w by h surface with y pointing down.
func (b Bounds) Scale(x, y float64, w, h int) (float64, float64) {
	return (x - b.MinX) / (b.MaxX - b.MinX) * float64(w),
		float64(h) - (y-b.MinY)/(b.MaxY-b.MinY)*float64(h)
}
