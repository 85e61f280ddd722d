package operation

import "github.com/viant/opqueue/model/task"

// Option represents an operation option
type Option func(o *Operation)

// WithConditions adds readiness conditions
func WithConditions(conditions ...task.Condition) Option {
	return func(o *Operation) {
		o.conditions = append(o.conditions, conditions...)
	}
}

// WithObservers attaches lifecycle observers
func WithObservers(observers ...task.Observer) Option {
	return func(o *Operation) {
		o.observers = append(o.observers, observers...)
	}
}

// WithDependencies adds explicit dependencies
func WithDependencies(dependencies ...task.Task) Option {
	return func(o *Operation) {
		for _, dep := range dependencies {
			o.AddDependency(dep)
		}
	}
}
