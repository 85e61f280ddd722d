// Package tracing integrates OpenTelemetry with the queue so that task
// submissions and operation runs show up as spans. All instrumentation is
// kept in a separate package; when no provider is installed spans are no-op.
package tracing
