package journal

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"github.com/viant/opqueue/internal/clock"
	"github.com/viant/opqueue/model/task"
	"github.com/viant/opqueue/service/dao"
	"github.com/viant/opqueue/service/dao/record"
	"github.com/viant/opqueue/service/queue"
)

// Journal implements queue.Delegate persisting task records
type Journal struct {
	store  dao.Service[string, record.Record]
	next   queue.Delegate
	logger zerolog.Logger
	mux    sync.Mutex
}

var _ queue.Delegate = (*Journal)(nil)

// New creates a journal backed by store
func New(store dao.Service[string, record.Record], options ...Option) *Journal {
	ret := &Journal{store: store, logger: zerolog.Nop()}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// WillAdd stores an added record
func (j *Journal) WillAdd(q *queue.Queue, t task.Task) {
	r := &record.Record{
		ID:           t.ID(),
		Name:         t.Name(),
		Queue:        q.Name(),
		Status:       record.StatusAdded,
		Dependencies: task.IDs(t.Dependencies()),
		AddedAt:      clock.Now(),
	}
	if op, ok := t.(task.Operation); ok {
		r.Categories = queue.Categories(op)
	}
	j.mux.Lock()
	j.save(r)
	j.mux.Unlock()
	if j.next != nil {
		j.next.WillAdd(q, t)
	}
}

// DidFinish updates record with task outcome
func (j *Journal) DidFinish(q *queue.Queue, t task.Task, errs []error) {
	j.mux.Lock()
	r, err := j.store.Load(context.Background(), t.ID())
	if err != nil {
		if !errors.Is(err, dao.ErrNotFound) {
			j.logger.Warn().Err(err).Str("task", t.ID()).Msg("failed to load journal record")
		}
		r = &record.Record{ID: t.ID(), Name: t.Name(), Queue: q.Name(), AddedAt: clock.Now()}
	}
	finishedAt := clock.Now()
	r.FinishedAt = &finishedAt
	r.Status = Status(t, errs)
	r.Errors = r.Errors[:0]
	for _, e := range errs {
		r.Errors = append(r.Errors, e.Error())
	}
	j.save(r)
	j.mux.Unlock()
	if j.next != nil {
		j.next.DidFinish(q, t, errs)
	}
}

// Records lists stored records
func (j *Journal) Records(ctx context.Context, parameters ...*dao.Parameter) ([]*record.Record, error) {
	return j.store.List(ctx, parameters...)
}

func (j *Journal) save(r *record.Record) {
	if err := j.store.Save(context.Background(), r); err != nil {
		j.logger.Error().Err(err).Str("task", r.ID).Msg("failed to save journal record")
	}
}

// Status derives final record status
func Status(t task.Task, errs []error) record.Status {
	switch {
	case t.IsCancelled():
		return record.StatusCancelled
	case len(errs) > 0:
		return record.StatusFailed
	}
	return record.StatusSucceeded
}
