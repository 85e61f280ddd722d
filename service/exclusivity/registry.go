package exclusivity

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/viant/opqueue/model/task"
)

// Registry maps category names to lanes of registered tasks
type Registry struct {
	mux    sync.Mutex
	lanes  map[string][]task.Task
	logger zerolog.Logger
}

var (
	shared     *Registry
	sharedOnce sync.Once
)

// Shared returns the process-wide registry used by queues built without an explicit one
func Shared() *Registry {
	sharedOnce.Do(func() {
		shared = New()
	})
	return shared
}

// New creates an isolated registry
func New(options ...Option) *Registry {
	ret := &Registry{
		lanes:  map[string][]task.Task{},
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Register appends t to every category lane, making it depend on each lane's
// current tail. The whole call happens under a single lock so that t never
// becomes visible with only part of its exclusivity dependencies attached.
func (r *Registry) Register(t task.Task, categories ...string) {
	if t == nil {
		return
	}
	categories = distinct(categories)
	r.mux.Lock()
	defer r.mux.Unlock()
	for _, category := range categories {
		lane := r.lanes[category]
		if contains(lane, t) {
			continue
		}
		if n := len(lane); n > 0 {
			tail := lane[n-1]
			t.AddDependency(tail)
			r.logger.Debug().Str("category", category).Str("task", t.ID()).Str("after", tail.ID()).Msg("exclusivity chained")
		}
		r.lanes[category] = append(lane, t)
	}
}

// Unregister removes t from every category lane it is present in
func (r *Registry) Unregister(t task.Task, categories ...string) {
	if t == nil {
		return
	}
	r.mux.Lock()
	defer r.mux.Unlock()
	for _, category := range categories {
		lane, ok := r.lanes[category]
		if !ok {
			continue
		}
		for i, candidate := range lane {
			if candidate.ID() != t.ID() {
				continue
			}
			if len(lane) == 1 {
				delete(r.lanes, category)
				break
			}
			r.lanes[category] = append(lane[:i:i], lane[i+1:]...)
			break
		}
	}
}

// Lane returns ids of tasks registered under category, in registration order
func (r *Registry) Lane(category string) []string {
	r.mux.Lock()
	defer r.mux.Unlock()
	return task.IDs(r.lanes[category])
}

// Tail returns the most recently registered task of category, or nil
func (r *Registry) Tail(category string) task.Task {
	r.mux.Lock()
	defer r.mux.Unlock()
	lane := r.lanes[category]
	if len(lane) == 0 {
		return nil
	}
	return lane[len(lane)-1]
}

// Categories returns sorted names of categories with at least one registered task
func (r *Registry) Categories() []string {
	r.mux.Lock()
	defer r.mux.Unlock()
	var ret []string
	for category, lane := range r.lanes {
		if len(lane) > 0 {
			ret = append(ret, category)
		}
	}
	sort.Strings(ret)
	return ret
}

// Snapshot returns non-empty lanes as task ids
func (r *Registry) Snapshot() map[string][]string {
	r.mux.Lock()
	defer r.mux.Unlock()
	ret := make(map[string][]string, len(r.lanes))
	for category, lane := range r.lanes {
		if len(lane) == 0 {
			continue
		}
		ret[category] = task.IDs(lane)
	}
	return ret
}

func contains(lane []task.Task, t task.Task) bool {
	for _, candidate := range lane {
		if candidate.ID() == t.ID() {
			return true
		}
	}
	return false
}

func distinct(categories []string) []string {
	if len(categories) < 2 {
		return categories
	}
	seen := make(map[string]bool, len(categories))
	ret := make([]string, 0, len(categories))
	for _, category := range categories {
		if seen[category] {
			continue
		}
		seen[category] = true
		ret = append(ret, category)
	}
	return ret
}
