// Package observer provides task.Observer implementations: Block aggregates
// optional callbacks, while Logging, Tracing and Progress report operation
// lifecycle to zerolog, OpenTelemetry and progress counters.
package observer
