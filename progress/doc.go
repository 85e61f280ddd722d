// Package progress keeps aggregated task counters (submitted, running,
// finished, failed, cancelled) for one or more queues. It abstracts away how
// updates are consumed so that callers can observe them uniformly.
package progress
