package queue

import "github.com/viant/opqueue/model/task"

// Delegate receives notifications for every task passing through a queue,
// injected dependencies and produced tasks included.
type Delegate interface {
	// WillAdd is invoked right before the task is handed to the processor
	WillAdd(q *Queue, t task.Task)

	// DidFinish is invoked once per finished task, errs is empty when none occurred
	DidFinish(q *Queue, t task.Task, errs []error)
}

// DelegateFuncs adapts two optional callbacks to Delegate
type DelegateFuncs struct {
	OnWillAdd   func(q *Queue, t task.Task)
	OnDidFinish func(q *Queue, t task.Task, errs []error)
}

// WillAdd invokes OnWillAdd when set
func (d *DelegateFuncs) WillAdd(q *Queue, t task.Task) {
	if d.OnWillAdd != nil {
		d.OnWillAdd(q, t)
	}
}

// DidFinish invokes OnDidFinish when set
func (d *DelegateFuncs) DidFinish(q *Queue, t task.Task, errs []error) {
	if d.OnDidFinish != nil {
		d.OnDidFinish(q, t, errs)
	}
}

var _ Delegate = (*DelegateFuncs)(nil)
