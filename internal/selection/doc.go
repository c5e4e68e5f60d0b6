// Package selection holds the working set of franchise candidates a user is
// assembling for comparison.
//
// The package has three pieces:
//
//   - Canonicalize: order- and duplicate-independent comparison key for an
//     id-set. Two selections are equivalent iff their canonical keys are equal.
//   - Set: an ordered, capacity-bounded set of franchise ids. Insertion order
//     is preserved for stable display; membership has set semantics.
//   - Scope: the persistence and isolation boundary of a Set - either
//     anonymous (session-local) or bound to a durable lead record.
//
// Set is not safe for concurrent use on its own. The engine.Coordinator owns
// the Set and serializes all mutations; see package engine.
package selection
