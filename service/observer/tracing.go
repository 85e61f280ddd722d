package observer

import (
	"context"
	"sync"

	"github.com/viant/opqueue/model/task"
	"github.com/viant/opqueue/tracing"
)

type tracer struct {
	ctx   context.Context
	mux   sync.Mutex
	spans map[string]*tracing.Span
}

// Tracing returns an observer recording one span per operation run, parented by ctx.
func Tracing(ctx context.Context) task.Observer {
	if ctx == nil {
		ctx = context.Background()
	}
	return &tracer{ctx: ctx, spans: map[string]*tracing.Span{}}
}

func (t *tracer) DidStart(op task.Operation) {
	_, span := tracing.StartSpan(t.ctx, "operation.run "+op.Name(), tracing.KindConsumer)
	span.WithAttributes(map[string]string{"task.id": op.ID(), "task.name": op.Name()})
	t.mux.Lock()
	t.spans[op.ID()] = span
	t.mux.Unlock()
}

func (t *tracer) DidCancel(op task.Operation) {
	if span := t.span(op, false); span != nil {
		span.AddEvent("cancel", nil)
	}
}

func (t *tracer) DidProduce(op task.Operation, produced task.Task) {
	if span := t.span(op, false); span != nil {
		span.AddEvent("produce", map[string]string{"produced.id": produced.ID()})
	}
}

func (t *tracer) DidFinish(op task.Operation, errs []error) {
	span := t.span(op, true)
	if span == nil {
		return
	}
	tracing.EndSpanWithErrors(span, errs)
}

func (t *tracer) span(op task.Operation, remove bool) *tracing.Span {
	t.mux.Lock()
	defer t.mux.Unlock()
	span := t.spans[op.ID()]
	if remove {
		delete(t.spans, op.ID())
	}
	return span
}
