package progress

import (
	"context"
	"sync"
	"time"

	"github.com/viant/opqueue/internal/clock"
)

// Delta represents an incremental counter change emitted by the queue or
// the progress observer. Fields are signed.
type Delta struct {
	Submitted int
	Running   int
	Finished  int
	Failed    int
	Cancelled int
}

// Progress keeps aggregated task counters. It is safe for concurrent use.
type Progress struct {
	Name      string
	StartedAt time.Time

	SubmittedTasks int
	RunningTasks   int
	FinishedTasks  int
	FailedTasks    int
	CancelledTasks int

	sync.Mutex
	onChange func(Progress)
}

// New creates a tracker
func New(name string, onChange func(Progress)) *Progress {
	return &Progress{Name: name, StartedAt: clock.Now(), onChange: onChange}
}

// Update applies the supplied delta. The onChange callback receives a copy
// and is invoked outside the critical section.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.Lock()
	p.SubmittedTasks += d.Submitted
	p.RunningTasks += d.Running
	p.FinishedTasks += d.Finished
	p.FailedTasks += d.Failed
	p.CancelledTasks += d.Cancelled
	snapshot := p.copy()
	cb := p.onChange
	p.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

func (p *Progress) copy() Progress {
	return Progress{
		Name:           p.Name,
		StartedAt:      p.StartedAt,
		SubmittedTasks: p.SubmittedTasks,
		RunningTasks:   p.RunningTasks,
		FinishedTasks:  p.FinishedTasks,
		FailedTasks:    p.FailedTasks,
		CancelledTasks: p.CancelledTasks,
	}
}

// Snapshot returns a copy of the tracker
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return p.copy()
}

// Pending returns number of submitted tasks that have not finished yet
func (p Progress) Pending() int {
	return p.SubmittedTasks - p.FinishedTasks
}

// OnChange registers a callback invoked after every Update; nil disables it.
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.Lock()
	p.onChange = cb
	p.Unlock()
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithTracker embeds the tracker in a derived context
func WithTracker(ctx context.Context, tracker *Progress) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, trackerKey, tracker)
}

// FromContext extracts the tracker from ctx
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// UpdateCtx applies the delta to the tracker carried by ctx, if any
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
