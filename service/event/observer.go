package event

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/viant/opqueue/internal/clock"
	"github.com/viant/opqueue/model/task"
)

type observer struct {
	queue     string
	publisher *Publisher[Lifecycle]
	logger    zerolog.Logger
	mux       sync.Mutex
	started   map[string]time.Time
}

// Observer returns a task observer publishing lifecycle events of queue
func Observer(queue string, publisher *Publisher[Lifecycle], logger zerolog.Logger) task.Observer {
	return &observer{queue: queue, publisher: publisher, logger: logger, started: map[string]time.Time{}}
}

func (o *observer) publish(op task.Operation, eventType Type, data Lifecycle, elapsed time.Duration) {
	ctx := &Context{
		Queue:       o.queue,
		TaskID:      op.ID(),
		TaskName:    op.Name(),
		EventType:   eventType,
		TimeTakenMs: int(elapsed.Milliseconds()),
	}
	if err := o.publisher.Publish(context.Background(), NewEvent[Lifecycle](ctx, data)); err != nil {
		o.logger.Warn().Err(err).Str("task", op.ID()).Str("event", string(eventType)).Msg("failed to publish event")
	}
}

func (o *observer) DidStart(op task.Operation) {
	o.mux.Lock()
	o.started[op.ID()] = clock.Now()
	o.mux.Unlock()
	o.publish(op, TypeStarted, Lifecycle{}, 0)
}

func (o *observer) DidCancel(op task.Operation) {
	o.publish(op, TypeCancelled, Lifecycle{}, 0)
}

func (o *observer) DidProduce(op task.Operation, produced task.Task) {
	o.publish(op, TypeProduced, Lifecycle{ProducedID: produced.ID()}, 0)
}

func (o *observer) DidFinish(op task.Operation, errs []error) {
	o.mux.Lock()
	startedAt, ok := o.started[op.ID()]
	delete(o.started, op.ID())
	o.mux.Unlock()
	var elapsed time.Duration
	if ok {
		elapsed = clock.Since(startedAt)
	}
	data := Lifecycle{}
	for _, err := range errs {
		data.Errors = append(data.Errors, err.Error())
	}
	o.publish(op, TypeFinished, data, elapsed)
}
