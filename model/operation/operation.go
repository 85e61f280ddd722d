package operation

import (
	"context"
	"fmt"
	"sync"

	"github.com/viant/opqueue/model/task"
)

// ExecuteFunc represents operation body, returned error is reported on finish
type ExecuteFunc func(ctx context.Context, op *Operation) error

// Operation represents a task with conditions and lifecycle observers
type Operation struct {
	*task.Base
	execute ExecuteFunc

	mux        sync.Mutex
	state      State
	conditions []task.Condition
	observers  []task.Observer
	errors     []error
	cancelRun  context.CancelFunc
}

// New creates an operation
func New(name string, execute ExecuteFunc, options ...Option) *Operation {
	ret := &Operation{
		Base:    task.NewBase(name),
		execute: execute,
		state:   StateInitialized,
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// State returns current state
func (o *Operation) State() State {
	o.mux.Lock()
	defer o.mux.Unlock()
	return o.state
}

// AddCondition adds a readiness condition; conditions added after enqueue are ignored
func (o *Operation) AddCondition(condition task.Condition) {
	o.mux.Lock()
	defer o.mux.Unlock()
	if o.state != StateInitialized || condition == nil {
		return
	}
	o.conditions = append(o.conditions, condition)
}

// Conditions returns a copy of the readiness conditions
func (o *Operation) Conditions() []task.Condition {
	o.mux.Lock()
	defer o.mux.Unlock()
	return append([]task.Condition(nil), o.conditions...)
}

// AddObserver attaches an observer; observers added once execution started
// miss events that already fired.
func (o *Operation) AddObserver(observer task.Observer) {
	if observer == nil {
		return
	}
	o.mux.Lock()
	o.observers = append(o.observers, observer)
	o.mux.Unlock()
}

func (o *Operation) snapshotObservers() []task.Observer {
	o.mux.Lock()
	defer o.mux.Unlock()
	return append([]task.Observer(nil), o.observers...)
}

// Errors returns accumulated errors
func (o *Operation) Errors() []error {
	o.mux.Lock()
	defer o.mux.Unlock()
	return append([]error(nil), o.errors...)
}

// DidEnqueue moves the operation to pending so that it can evaluate conditions
func (o *Operation) DidEnqueue() {
	o.mux.Lock()
	if o.state != StateInitialized {
		o.mux.Unlock()
		return
	}
	o.state = StatePending
	o.mux.Unlock()
	o.NotifyStateChange()
}

// IsReady reports whether the operation can start. Nothing is ready before
// DidEnqueue. Once pending with all dependencies finished, the first call
// kicks off asynchronous condition evaluation and the operation turns ready
// after it completes. A cancelled operation skips evaluation but still waits
// for its dependencies, so exclusivity lanes finish in registration order.
func (o *Operation) IsReady() bool {
	o.mux.Lock()
	switch o.state {
	case StatePending:
		if !o.DependenciesFinished() {
			o.mux.Unlock()
			return false
		}
		if o.IsCancelled() {
			o.state = StateReady
			o.mux.Unlock()
			return true
		}
		o.state = StateEvaluating
		o.mux.Unlock()
		go o.evaluateConditions()
		return false
	case StateReady:
		o.mux.Unlock()
		return true
	}
	o.mux.Unlock()
	return false
}

func (o *Operation) evaluateConditions() {
	conditions := o.Conditions()
	results := make([]error, len(conditions))
	var wg sync.WaitGroup
	for i, condition := range conditions {
		wg.Add(1)
		go func(i int, condition task.Condition) {
			defer wg.Done()
			results[i] = condition.Evaluate(context.Background(), o)
		}(i, condition)
	}
	wg.Wait()

	var failures []error
	for _, err := range results {
		if err != nil {
			failures = append(failures, err)
		}
	}
	if len(failures) > 0 {
		o.CancelWithErrors(failures...)
	}
	o.mux.Lock()
	if o.state == StateEvaluating {
		o.state = StateReady
	}
	o.mux.Unlock()
	o.NotifyStateChange()
}

// Cancel requests cooperative cancellation
func (o *Operation) Cancel() {
	o.CancelWithErrors()
}

// CancelWithErrors cancels the operation recording errs to be reported on finish
func (o *Operation) CancelWithErrors(errs ...error) {
	o.mux.Lock()
	if o.state.IsTerminal() {
		o.mux.Unlock()
		return
	}
	for _, err := range errs {
		if err != nil {
			o.errors = append(o.errors, err)
		}
	}
	first := o.MarkCancelled()
	cancelRun := o.cancelRun
	o.mux.Unlock()
	if !first {
		return
	}
	if cancelRun != nil {
		cancelRun()
	}
	for _, observer := range o.snapshotObservers() {
		observer.DidCancel(o)
	}
	o.NotifyStateChange()
}

// Produce hands produced task to the observers
func (o *Operation) Produce(produced task.Task) {
	if produced == nil {
		return
	}
	for _, observer := range o.snapshotObservers() {
		observer.DidProduce(o, produced)
	}
}

// Start executes the operation and finishes it; a cancelled operation
// finishes without executing.
func (o *Operation) Start(ctx context.Context) {
	o.mux.Lock()
	if o.state.IsStarted() {
		o.mux.Unlock()
		return
	}
	if o.IsCancelled() {
		o.mux.Unlock()
		o.finish()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	o.cancelRun = cancel
	o.state = StateExecuting
	o.mux.Unlock()

	for _, observer := range o.snapshotObservers() {
		observer.DidStart(o)
	}
	o.finish(o.run(runCtx))
}

func (o *Operation) run(ctx context.Context) (err error) {
	if o.execute == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("operation %v panicked: %v", o.Name(), r)
		}
	}()
	return o.execute(ctx, o)
}

func (o *Operation) finish(errs ...error) {
	o.mux.Lock()
	if o.state.IsTerminal() {
		o.mux.Unlock()
		return
	}
	o.state = StateFinishing
	o.cancelRun = nil
	for _, err := range errs {
		if err != nil {
			o.errors = append(o.errors, err)
		}
	}
	combined := append([]error{}, o.errors...)
	o.mux.Unlock()

	for _, observer := range o.snapshotObservers() {
		observer.DidFinish(o, combined)
	}

	o.mux.Lock()
	o.state = StateFinished
	o.mux.Unlock()
	o.Base.Finish()
}

var _ task.Operation = (*Operation)(nil)
