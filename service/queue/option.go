package queue

import (
	"github.com/rs/zerolog"
	"github.com/viant/opqueue/model/task"
	"github.com/viant/opqueue/progress"
	"github.com/viant/opqueue/service/exclusivity"
	"github.com/viant/opqueue/service/processor"
)

// Option represents queue option
type Option func(q *Queue)

// WithName sets queue name
func WithName(name string) Option {
	return func(q *Queue) {
		q.name = name
	}
}

// WithProcessor sets the underlying processor; the queue does not shut a supplied processor down
func WithProcessor(p *processor.Service) Option {
	return func(q *Queue) {
		q.processor = p
	}
}

// WithProcessorOptions sets options used when the queue creates its own processor
func WithProcessorOptions(options ...processor.Option) Option {
	return func(q *Queue) {
		q.processorOptions = append(q.processorOptions, options...)
	}
}

// WithRegistry sets the exclusivity registry, exclusivity.Shared() is used by default
func WithRegistry(registry *exclusivity.Registry) Option {
	return func(q *Queue) {
		q.registry = registry
	}
}

// WithDelegate sets queue delegate
func WithDelegate(delegate Delegate) Option {
	return func(q *Queue) {
		q.delegate = delegate
	}
}

// WithLogger sets queue logger
func WithLogger(logger zerolog.Logger) Option {
	return func(q *Queue) {
		q.logger = logger
	}
}

// WithObservers attaches observers to every submitted operation
func WithObservers(observers ...task.Observer) Option {
	return func(q *Queue) {
		q.observers = append(q.observers, observers...)
	}
}

// WithProgress sets progress tracker updated by the queue
func WithProgress(p *progress.Progress) Option {
	return func(q *Queue) {
		q.progress = p
	}
}

// WithTracing enables submission spans
func WithTracing(enabled bool) Option {
	return func(q *Queue) {
		q.tracing = enabled
	}
}

// WithConditions adds conditions to every operation submitted before it is enqueued
func WithConditions(conditions ...task.Condition) Option {
	return func(q *Queue) {
		q.conditions = append(q.conditions, conditions...)
	}
}
