package queue

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/viant/opqueue/model/task"
	"github.com/viant/opqueue/progress"
	"github.com/viant/opqueue/service/exclusivity"
	"github.com/viant/opqueue/service/observer"
	"github.com/viant/opqueue/service/processor"
	"github.com/viant/opqueue/tracing"
)

// Queue submits tasks to a processor after wiring their conditions,
// exclusivity and completion reporting.
type Queue struct {
	name             string
	processor        *processor.Service
	processorOptions []processor.Option
	ownsProcessor    bool
	registry         *exclusivity.Registry
	logger           zerolog.Logger
	observers        []task.Observer
	conditions       []task.Condition
	progress         *progress.Progress
	tracing          bool

	mux      sync.RWMutex
	delegate Delegate

	trackedMux sync.Mutex
	tracked    map[string]task.Task
}

// New creates a queue
func New(options ...Option) (*Queue, error) {
	ret := &Queue{
		name:    "queue",
		logger:  zerolog.Nop(),
		tracked: map[string]task.Task{},
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.registry == nil {
		ret.registry = exclusivity.Shared()
	}
	if ret.processor == nil {
		options := append([]processor.Option{processor.WithLogger(ret.logger)}, ret.processorOptions...)
		p, err := processor.New(options...)
		if err != nil {
			return nil, err
		}
		ret.processor = p
		ret.ownsProcessor = true
	}
	ret.observers = append(ret.observers, observer.Logging(ret.logger))
	if ret.progress != nil {
		ret.observers = append(ret.observers, observer.Progress(ret.progress))
	}
	return ret, nil
}

// Name returns queue name
func (q *Queue) Name() string { return q.name }

// Registry returns exclusivity registry used by the queue
func (q *Queue) Registry() *exclusivity.Registry { return q.registry }

// Processor returns the underlying processor
func (q *Queue) Processor() *processor.Service { return q.processor }

// SetDelegate replaces queue delegate, nil disables notifications
func (q *Queue) SetDelegate(delegate Delegate) {
	q.mux.Lock()
	q.delegate = delegate
	q.mux.Unlock()
}

func (q *Queue) currentDelegate() Delegate {
	q.mux.RLock()
	defer q.mux.RUnlock()
	return q.delegate
}

// Start starts the underlying processor
func (q *Queue) Start(ctx context.Context) error {
	return q.processor.Start(ctx)
}

// Shutdown stops the processor when it is owned by the queue
func (q *Queue) Shutdown() {
	if q.ownsProcessor {
		q.processor.Shutdown()
	}
}

// Submit wires t and hands it to the processor. Operations get their
// condition dependencies submitted first, their exclusive categories
// registered and DidEnqueue signalled last; plain tasks only get completion
// reporting. A task already submitted and not yet finished, or already
// finished, is ignored so that it is wired and reported once. Submit never
// fails, task failures surface as finish errors.
func (q *Queue) Submit(ctx context.Context, t task.Task) {
	if t == nil || t.IsFinished() {
		return
	}
	if !q.track(t) {
		q.logger.Debug().Str("queue", q.name).Str("task", t.ID()).Msg("task already submitted")
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithoutCancel(ctx)
	var span *tracing.Span
	if q.tracing {
		ctx, span = tracing.StartSpan(ctx, "queue.submit "+t.Name(), tracing.KindProducer)
		span.WithAttributes(map[string]string{"queue.name": q.name, "task.id": t.ID()})
		defer tracing.EndSpan(span, nil)
	}

	t.AddCompletion(func() {
		q.untrack(t)
	})
	op, isOperation := t.(task.Operation)
	if isOperation {
		q.prepare(ctx, op)
	} else {
		t.AddCompletion(func() {
			q.finished(t, nil)
		})
	}

	if delegate := q.currentDelegate(); delegate != nil {
		delegate.WillAdd(q, t)
	}
	q.progress.Update(progress.Delta{Submitted: 1})
	q.processor.Add(t)

	if isOperation {
		op.DidEnqueue()
	}
}

func (q *Queue) prepare(ctx context.Context, op task.Operation) {
	op.AddObserver(&observer.Block{
		OnProduce: func(_ task.Operation, produced task.Task) {
			q.Submit(ctx, produced)
		},
		OnFinish: func(finished task.Operation, errs []error) {
			q.finished(finished, errs)
		},
	})
	for _, o := range q.observers {
		op.AddObserver(o)
	}
	if q.tracing {
		op.AddObserver(observer.Tracing(ctx))
	}
	if adder, ok := op.(conditionAdder); ok {
		for _, condition := range q.conditions {
			adder.AddCondition(condition)
		}
	}

	dependencies := Dependencies(op)
	for _, dependency := range dependencies {
		op.AddDependency(dependency)
		q.Submit(ctx, dependency)
	}

	categories := Categories(op)
	if len(categories) > 0 {
		q.registry.Register(op, categories...)
		registry := q.registry
		op.AddObserver(observer.OnFinished(func(finished task.Operation, _ []error) {
			registry.Unregister(finished, categories...)
		}))
	}
	q.logger.Debug().
		Str("queue", q.name).
		Str("task", op.ID()).
		Strs("dependencies", task.IDs(dependencies)).
		Strs("categories", categories).
		Msg("operation submitted")
}

func (q *Queue) finished(t task.Task, errs []error) {
	if _, isOperation := t.(task.Operation); !isOperation {
		delta := progress.Delta{Finished: 1}
		if t.IsCancelled() {
			delta.Cancelled = 1
		}
		q.progress.Update(delta)
	}
	if errs == nil {
		errs = []error{}
	}
	if delegate := q.currentDelegate(); delegate != nil {
		delegate.DidFinish(q, t, errs)
	}
	releaseDependencies(t)
}

// SubmitBatch submits tasks in order; with wait it blocks until every listed
// task finished (injected dependencies are not awaited) or ctx is done.
func (q *Queue) SubmitBatch(ctx context.Context, tasks []task.Task, wait bool) error {
	for _, t := range tasks {
		q.Submit(ctx, t)
	}
	if !wait {
		return nil
	}
	return task.Wait(ctx, tasks...)
}

// Tracked returns sorted ids of submitted tasks that have not finished yet
func (q *Queue) Tracked() []string {
	q.trackedMux.Lock()
	ret := make([]string, 0, len(q.tracked))
	for id := range q.tracked {
		ret = append(ret, id)
	}
	q.trackedMux.Unlock()
	sort.Strings(ret)
	return ret
}

// track adds t to the tracked set, it returns false when t was already there
func (q *Queue) track(t task.Task) bool {
	q.trackedMux.Lock()
	defer q.trackedMux.Unlock()
	if _, ok := q.tracked[t.ID()]; ok {
		return false
	}
	q.tracked[t.ID()] = t
	return true
}

func (q *Queue) untrack(t task.Task) {
	q.trackedMux.Lock()
	delete(q.tracked, t.ID())
	q.trackedMux.Unlock()
}

type conditionAdder interface {
	AddCondition(condition task.Condition)
}

type releaser interface {
	ReleaseDependencies()
}

func releaseDependencies(t task.Task) {
	if r, ok := t.(releaser); ok {
		r.ReleaseDependencies()
		return
	}
	for _, dep := range t.Dependencies() {
		t.RemoveDependency(dep)
	}
}
