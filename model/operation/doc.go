// Package operation implements task.Operation: a task that evaluates its
// readiness conditions once dependencies finished, notifies lifecycle
// observers and finishes exactly once with the errors it accumulated.
package operation
