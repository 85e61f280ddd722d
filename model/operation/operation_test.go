package operation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/opqueue/model/task"
)

type recorder struct {
	mux      sync.Mutex
	events   []string
	produced []task.Task
	errs     []error
}

func (r *recorder) add(event string) {
	r.mux.Lock()
	r.events = append(r.events, event)
	r.mux.Unlock()
}

func (r *recorder) DidStart(task.Operation)  { r.add("start") }
func (r *recorder) DidCancel(task.Operation) { r.add("cancel") }
func (r *recorder) DidProduce(_ task.Operation, produced task.Task) {
	r.mux.Lock()
	r.produced = append(r.produced, produced)
	r.mux.Unlock()
	r.add("produce")
}
func (r *recorder) DidFinish(_ task.Operation, errs []error) {
	r.mux.Lock()
	r.errs = errs
	r.mux.Unlock()
	r.add("finish")
}

func (r *recorder) Events() []string {
	r.mux.Lock()
	defer r.mux.Unlock()
	return append([]string(nil), r.events...)
}

type testCondition struct {
	name string
	err  error
}

func (c *testCondition) Name() string                          { return c.name }
func (c *testCondition) MutuallyExclusive() bool               { return false }
func (c *testCondition) Dependency(task.Operation) task.Task   { return nil }
func (c *testCondition) Evaluate(context.Context, task.Operation) error { return c.err }

func drive(t *testing.T, op *Operation) {
	op.DidEnqueue()
	require.Eventually(t, op.IsReady, time.Second, time.Millisecond)
	op.Start(context.Background())
}

func TestOperation_Lifecycle(t *testing.T) {
	rec := &recorder{}
	child := task.New("child", nil)
	op := New("parent", func(ctx context.Context, op *Operation) error {
		op.Produce(child)
		return nil
	}, WithObservers(rec))

	assert.Equal(t, StateInitialized, op.State())
	assert.False(t, op.IsReady())

	drive(t, op)

	assert.Equal(t, StateFinished, op.State())
	assert.True(t, op.IsFinished())
	assert.Equal(t, []string{"start", "produce", "finish"}, rec.Events())
	assert.Empty(t, rec.errs)
	require.Len(t, rec.produced, 1)
	assert.Equal(t, child.ID(), rec.produced[0].ID())
}

func TestOperation_NotReadyBeforeEnqueue(t *testing.T) {
	op := New("op", nil)
	for i := 0; i < 3; i++ {
		assert.False(t, op.IsReady())
	}
	assert.Equal(t, StateInitialized, op.State())
}

func TestOperation_WaitsForDependencies(t *testing.T) {
	dep := task.New("dep", nil)
	op := New("op", nil, WithDependencies(dep))
	op.DidEnqueue()
	assert.False(t, op.IsReady())
	assert.Equal(t, StatePending, op.State())

	dep.Start(context.Background())
	assert.Eventually(t, op.IsReady, time.Second, time.Millisecond)
}

func TestOperation_Errors(t *testing.T) {
	failure := errors.New("boom")
	testCases := []struct {
		name       string
		execute    ExecuteFunc
		conditions []task.Condition
		expectRun  bool
		expectErrs int
	}{
		{
			name:       "execute error",
			execute:    func(ctx context.Context, op *Operation) error { return failure },
			expectRun:  true,
			expectErrs: 1,
		},
		{
			name:       "panic converted to error",
			execute:    func(ctx context.Context, op *Operation) error { panic("bad") },
			expectRun:  true,
			expectErrs: 1,
		},
		{
			name:       "failed conditions cancel",
			conditions: []task.Condition{&testCondition{name: "a", err: failure}, &testCondition{name: "b", err: failure}, &testCondition{name: "c"}},
			expectErrs: 2,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &recorder{}
			ran := false
			execute := tc.execute
			op := New(tc.name, func(ctx context.Context, op *Operation) error {
				ran = true
				if execute != nil {
					return execute(ctx, op)
				}
				return nil
			}, WithObservers(rec), WithConditions(tc.conditions...))
			drive(t, op)
			assert.Equal(t, tc.expectRun, ran)
			assert.Len(t, rec.errs, tc.expectErrs)
			assert.Len(t, op.Errors(), tc.expectErrs)
			assert.Equal(t, !tc.expectRun, op.IsCancelled())
		})
	}
}

func TestOperation_CancelBeforeStart(t *testing.T) {
	rec := &recorder{}
	ran := false
	dep := task.New("dep", nil)
	op := New("op", func(ctx context.Context, op *Operation) error {
		ran = true
		return nil
	}, WithObservers(rec), WithDependencies(dep))
	op.Cancel()
	op.Cancel()
	assert.False(t, op.IsReady(), "cancelled operation is not ready before enqueue")
	op.DidEnqueue()
	assert.False(t, op.IsReady(), "cancelled operation waits for its dependencies")
	dep.Start(context.Background())
	assert.True(t, op.IsReady())
	op.Start(context.Background())
	assert.False(t, ran)
	assert.Equal(t, []string{"cancel", "finish"}, rec.Events())
}

func TestOperation_CancelWhileExecuting(t *testing.T) {
	started := make(chan struct{})
	op := New("op", func(ctx context.Context, op *Operation) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})
	op.DidEnqueue()
	require.Eventually(t, op.IsReady, time.Second, time.Millisecond)
	go op.Start(context.Background())
	<-started
	op.Cancel()
	select {
	case <-op.Done():
	case <-time.After(time.Second):
		t.Fatal("operation did not observe cancellation")
	}
	require.Len(t, op.Errors(), 1)
	assert.ErrorIs(t, op.Errors()[0], context.Canceled)
}

func TestOperation_AddConditionAfterEnqueueIgnored(t *testing.T) {
	op := New("op", nil)
	op.AddCondition(&testCondition{name: "a"})
	op.DidEnqueue()
	op.AddCondition(&testCondition{name: "b"})
	assert.Len(t, op.Conditions(), 1)
}
