package task

import (
	"sync"
	"sync/atomic"

	"github.com/viant/opqueue/internal/idgen"
)

// Base implements the dependency, completion and state-change plumbing of a
// Task. Concrete tasks embed *Base and supply Start (and optionally IsReady).
// Base is safe for concurrent use; no callback is ever invoked while an
// internal lock is held.
type Base struct {
	id   string
	name string

	mux          sync.Mutex
	dependencies []Task
	completions  []func()
	listeners    []func()
	finished     bool

	cancelled atomic.Bool
	done      chan struct{}
}

// NewBase creates a Base with a fresh identity.
func NewBase(name string) *Base {
	return &Base{
		id:   idgen.Named(name),
		name: name,
		done: make(chan struct{}),
	}
}

// ID returns task identity
func (b *Base) ID() string { return b.id }

// Name returns task name
func (b *Base) Name() string { return b.name }

// AddDependency adds dep unless it is already present or is the task itself.
// Finishing dep triggers a state change notification on this task.
func (b *Base) AddDependency(dep Task) {
	if dep == nil || dep.ID() == b.id {
		return
	}
	b.mux.Lock()
	for _, candidate := range b.dependencies {
		if candidate.ID() == dep.ID() {
			b.mux.Unlock()
			return
		}
	}
	b.dependencies = append(b.dependencies, dep)
	b.mux.Unlock()
	dep.AddCompletion(b.NotifyStateChange)
}

// RemoveDependency removes dep from the dependency set
func (b *Base) RemoveDependency(dep Task) {
	if dep == nil {
		return
	}
	b.mux.Lock()
	for i, candidate := range b.dependencies {
		if candidate.ID() == dep.ID() {
			b.dependencies = append(b.dependencies[:i:i], b.dependencies[i+1:]...)
			break
		}
	}
	b.mux.Unlock()
	b.NotifyStateChange()
}

// Dependencies returns a copy of the dependency set
func (b *Base) Dependencies() []Task {
	b.mux.Lock()
	defer b.mux.Unlock()
	return append([]Task(nil), b.dependencies...)
}

// ReleaseDependencies drops every recorded dependency. Long exclusivity
// lanes would otherwise keep every finished predecessor reachable.
func (b *Base) ReleaseDependencies() {
	b.mux.Lock()
	b.dependencies = nil
	b.mux.Unlock()
}

// DependenciesFinished reports whether every dependency finished
func (b *Base) DependenciesFinished() bool {
	for _, dep := range b.Dependencies() {
		if !dep.IsFinished() {
			return false
		}
	}
	return true
}

// IsReady reports whether all dependencies finished
func (b *Base) IsReady() bool {
	return !b.IsFinished() && b.DependenciesFinished()
}

// IsFinished reports whether Finish was called
func (b *Base) IsFinished() bool {
	b.mux.Lock()
	defer b.mux.Unlock()
	return b.finished
}

// IsCancelled reports whether the task was cancelled
func (b *Base) IsCancelled() bool { return b.cancelled.Load() }

// MarkCancelled sets the cancelled flag, it returns true on the first call only
func (b *Base) MarkCancelled() bool {
	return b.cancelled.CompareAndSwap(false, true)
}

// Cancel marks the task cancelled and notifies state listeners
func (b *Base) Cancel() {
	if b.IsFinished() {
		return
	}
	if b.MarkCancelled() {
		b.NotifyStateChange()
	}
}

// Done returns a channel closed on finish
func (b *Base) Done() <-chan struct{} { return b.done }

// AddCompletion registers fn to run after finish, fn runs immediately when
// the task has already finished.
func (b *Base) AddCompletion(fn func()) {
	if fn == nil {
		return
	}
	b.mux.Lock()
	if b.finished {
		b.mux.Unlock()
		fn()
		return
	}
	b.completions = append(b.completions, fn)
	b.mux.Unlock()
}

// OnStateChange registers a state change listener
func (b *Base) OnStateChange(fn func()) {
	if fn == nil {
		return
	}
	b.mux.Lock()
	b.listeners = append(b.listeners, fn)
	b.mux.Unlock()
}

// NotifyStateChange invokes all registered state change listeners
func (b *Base) NotifyStateChange() {
	b.mux.Lock()
	listeners := append([]func(){}, b.listeners...)
	b.mux.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// Finish marks the task finished, closes Done and runs completions. It
// returns false when the task had already finished.
func (b *Base) Finish() bool {
	b.mux.Lock()
	if b.finished {
		b.mux.Unlock()
		return false
	}
	b.finished = true
	completions := b.completions
	b.completions = nil
	b.listeners = nil
	b.mux.Unlock()

	close(b.done)
	for _, fn := range completions {
		fn()
	}
	return true
}
