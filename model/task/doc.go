// Package task defines the contracts shared by the queue, the exclusivity
// registry and the processor: a plain Task, the richer Operation carrying
// readiness conditions and lifecycle observers, and the Condition and
// Observer interfaces.
//
// Base provides the dependency, completion and state-change plumbing that
// concrete tasks embed; Block is the plain task built on top of it.
package task
