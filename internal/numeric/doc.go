// Package numeric defines the scalar capability set the simulation kernel is
// written against, and the concrete representations it can be instantiated over.
//
//   - [Float64]: native IEEE-754 double
//   - [Q32]: signed Q32.32 binary fixed point on int64
//   - [Dec]: 18-digit decimal fixed point (cosmossdk.io/math LegacyDec)
//
// Go has no operator overloading, so [Number] is a self-referential constraint:
// every operation is a method returning a new value of the same type.
//
// # Example
//
//	dt := numeric.From[numeric.Q32](0.01)
//	x := numeric.One[numeric.Q32]().Add(dt)
//
// Constructors ([Number.Zero], [Number.One], [Number.FromFloat64]) are invoked on
// the zero value of the type and never read their receiver.
package numeric
