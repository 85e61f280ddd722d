package opqueue

import (
	"github.com/rs/zerolog"
	"github.com/viant/opqueue/policy"
	"github.com/viant/opqueue/service/event"
	"github.com/viant/opqueue/service/dao"
	"github.com/viant/opqueue/service/dao/record"
	"github.com/viant/opqueue/service/exclusivity"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises Service
type Option func(s *Service)

// WithConfig sets the service config
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithLogger sets the logger, overriding logging config
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = &logger
	}
}

// WithRegistry sets the exclusivity registry shared by service queues
func WithRegistry(registry *exclusivity.Registry) Option {
	return func(s *Service) {
		s.registry = registry
	}
}

// WithJournalStore enables the journal with the supplied record store
func WithJournalStore(store dao.Service[string, record.Record]) Option {
	return func(s *Service) {
		s.journalStore = store
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter (OTLP, Jaeger, ...).
// The first successful tracing initialisation in the process wins.
func WithTracingExporter(exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		s.exporter = exporter
	}
}

// WithPolicy sets execution policy enforced on every queue, overriding policy config
func WithPolicy(p *policy.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithEventHandler streams lifecycle events of every queue operation to handler
func WithEventHandler(handler func(*event.Event[event.Lifecycle])) Option {
	return func(s *Service) {
		s.eventHandler = handler
	}
}
