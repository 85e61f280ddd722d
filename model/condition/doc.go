// Package condition provides readiness conditions for operations: exclusive
// categories, injected dependencies and evaluation predicates.
package condition
