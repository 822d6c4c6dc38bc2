// Package viz draws N-body trajectories on a Braille canvas for terminal
// output.
//
//   - [Canvas]: 2x4 sub-pixel Braille grid with Bresenham lines
//   - [Plane]: which two coordinates a frame is projected onto
//   - [RenderOrbits]: one polyline per body through sampled frames
package viz
