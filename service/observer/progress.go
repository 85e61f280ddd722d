package observer

import (
	"sync"

	"github.com/viant/opqueue/model/task"
	"github.com/viant/opqueue/progress"
)

type tracker struct {
	progress *progress.Progress
	mux      sync.Mutex
	running  map[string]bool
}

// Progress returns an observer updating running/finished/failed/cancelled counters
func Progress(p *progress.Progress) task.Observer {
	return &tracker{progress: p, running: map[string]bool{}}
}

func (t *tracker) DidStart(op task.Operation) {
	t.mux.Lock()
	t.running[op.ID()] = true
	t.mux.Unlock()
	t.progress.Update(progress.Delta{Running: 1})
}

func (t *tracker) DidCancel(task.Operation) {}

func (t *tracker) DidProduce(task.Operation, task.Task) {}

func (t *tracker) DidFinish(op task.Operation, errs []error) {
	delta := progress.Delta{Finished: 1}
	t.mux.Lock()
	if t.running[op.ID()] {
		delta.Running = -1
		delete(t.running, op.ID())
	}
	t.mux.Unlock()
	switch {
	case op.IsCancelled():
		delta.Cancelled = 1
	case len(errs) > 0:
		delta.Failed = 1
	}
	t.progress.Update(delta)
}
