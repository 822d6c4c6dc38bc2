// Package nbody implements the softened direct-summation N-body system and
// its fixed-capacity history ring.
//
// A [System] owns the gravitational constant G, the softening constant ε, a
// ring of [dynamo.State] slots, a cursor naming the newest slot, and a step
// counter. Every [System.Step] reads the cursor slot, writes accelerations,
// velocities and positions into its successor, and advances the cursor:
//
//	a_i = Σ_{j≠i} G m_j (p_j - p_i) / (d² · sqrt(d² + ε)),  d² = |p_j - p_i|²
//
// # Thread Safety
//
// Step holds an exclusive lock for its whole duration. [System.CurrentState]
// and [System.StateHistory] return views into ring slots that are reused in
// place: they are valid only until the next Step. Use [System.Snapshot],
// [System.HistorySnapshot] or [System.View] when another goroutine may step.
package nbody
