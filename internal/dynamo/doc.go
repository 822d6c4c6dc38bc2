// Package dynamo provides the per-step primitives of the N-body kernel.
//
//   - [State]: all bodies at one instant, as five index-aligned sequences
//   - [Frame]: float64 projection of a State for diagnostics and persistence
//   - [ParallelFor]: chunked fan-out used by the force routine
//
// # Example
//
//	s := dynamo.NewState[numeric.Float64](2)
//	_ = s.AddEntity("sun", numeric.From[numeric.Float64](1), vec.Zero[numeric.Float64](), ...)
//	s.Seal()
//
// # Thread Safety
//
// State is NOT thread-safe. The nbody package serializes writers against
// readers; a State handed out as a view must not be retained past the next step.
package dynamo
