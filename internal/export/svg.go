package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/viz"
)

// Palette cycles across bodies.
var Palette = []string{"#00ff00", "#ffaa00", "#00aaff", "#ff4488", "#ffffff", "#aa66ff"}

// TrajectorySVG draws one polyline per body through its sampled positions
// and marks the final position with a dot. Every frame must list the same
// bodies in the same order.
func TrajectorySVG(w io.Writer, frames []dynamo.Frame, width, height int, plane viz.Plane) error {
	b, err := viz.FrameBounds(frames, plane)
	if err != nil {
		return err
	}
	n := frames[0].Len()

	toPixel := func(f dynamo.Frame, i int) (float64, float64) {
		x, y := plane.Project(f, i)
		return b.Scale(x, y, width, height)
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	last := frames[len(frames)-1]
	for i := 0; i < n; i++ {
		color := Palette[i%len(Palette)]
		sb.WriteString(fmt.Sprintf(`<path id="%s" fill="none" stroke="%s" stroke-width="1.5" d="M`, last.IDs[i], color))
		for k, f := range frames {
			px, py := toPixel(f, i)
			if k == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", px, py))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px, py))
			}
		}
		sb.WriteString("\"/>\n")

		px, py := toPixel(last, i)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>
`, px, py, color))
	}

	sb.WriteString("</svg>\n")
	_, err = io.WriteString(w, sb.String())
	return err
}
