package task

import "context"

// Task represents a plain executable unit understood by the processor.
type Task interface {
	// ID returns the unique task identity
	ID() string

	// Name returns a human readable task name
	Name() string

	// AddDependency makes the task wait for dep to finish before it may start
	AddDependency(dep Task)

	// RemoveDependency drops dep from the dependency set
	RemoveDependency(dep Task)

	// Dependencies returns a copy of the dependency set
	Dependencies() []Task

	// IsReady reports whether the task may be started
	IsReady() bool

	// IsFinished reports whether the task reached its finish state
	IsFinished() bool

	// IsCancelled reports whether Cancel was called
	IsCancelled() bool

	// Cancel requests cooperative cancellation
	Cancel()

	// Start runs the task; it must end with the task finished
	Start(ctx context.Context)

	// Done returns a channel closed once the task finished
	Done() <-chan struct{}

	// AddCompletion registers fn to run once after the task finished
	AddCompletion(fn func())

	// OnStateChange registers fn to run whenever readiness may have changed
	OnStateChange(fn func())
}

// Operation is a Task carrying readiness conditions and lifecycle observers.
type Operation interface {
	Task

	// Conditions returns the readiness preconditions
	Conditions() []Condition

	// AddObserver attaches a lifecycle observer; it must be called before start
	AddObserver(observer Observer)

	// DidEnqueue signals that all queue-side wiring is complete and
	// the operation may start evaluating its conditions
	DidEnqueue()

	// Produce hands a new task to observers, typically to be queued
	Produce(produced Task)

	// Errors returns errors accumulated so far
	Errors() []error
}

// Condition represents a readiness precondition of an Operation.
type Condition interface {
	// Name returns a stable name; for mutually exclusive conditions it is the category
	Name() string

	// MutuallyExclusive reports whether operations with this condition must run one at a time
	MutuallyExclusive() bool

	// Dependency returns an optional task that op has to wait for, or nil
	Dependency(op Operation) Task

	// Evaluate returns an error when the condition is not satisfied
	Evaluate(ctx context.Context, op Operation) error
}

// Observer is notified about Operation lifecycle events.
type Observer interface {
	// DidStart is invoked right before the operation executes
	DidStart(op Operation)

	// DidCancel is invoked the first time the operation is cancelled
	DidCancel(op Operation)

	// DidProduce is invoked when the operation produces a new task
	DidProduce(op Operation, produced Task)

	// DidFinish is invoked as the operation finishes, with accumulated errors
	DidFinish(op Operation, errs []error)
}
