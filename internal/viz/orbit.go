package viz

import "github.com/san-kum/nbody/internal/dynamo"

// RenderOrbits draws every body's path through frames on a w by h
// character canvas.
func RenderOrbits(frames []dynamo.Frame, w, h int, plane Plane) (*Canvas, error) {
	b, err := FrameBounds(frames, plane)
	if err != nil {
		return nil, err
	}

	c := NewCanvas(w, h)
	sw, sh := c.SubWidth()-1, c.SubHeight()-1
	toPixel := func(f dynamo.Frame, i int) (int, int) {
		x, y := plane.Project(f, i)
		px, py := b.Scale(x, y, sw, sh)
		return int(px + 0.5), int(py + 0.5)
	}

	for i := 0; i < frames[0].Len(); i++ {
		x0, y0 := toPixel(frames[0], i)
		c.Set(x0, y0)
		for _, f := range frames[1:] {
			x1, y1 := toPixel(f, i)
			c.DrawLine(x0, y0, x1, y1)
			x0, y0 = x1, y1
		}
	}
	return c, nil
}
