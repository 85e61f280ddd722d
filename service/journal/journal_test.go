package journal

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/opqueue/model/condition"
	"github.com/viant/opqueue/model/operation"
	"github.com/viant/opqueue/model/task"
	"github.com/viant/opqueue/service/dao"
	"github.com/viant/opqueue/service/dao/record"
	"github.com/viant/opqueue/service/dao/record/memory"
	"github.com/viant/opqueue/service/exclusivity"
	"github.com/viant/opqueue/service/queue"
)

func TestJournal(t *testing.T) {
	store := memory.New()
	var finished int32
	j := New(store, WithNext(&queue.DelegateFuncs{
		OnDidFinish: func(*queue.Queue, task.Task, []error) { atomic.AddInt32(&finished, 1) },
	}))
	q, err := queue.New(queue.WithName("ci"), queue.WithRegistry(exclusivity.New()), queue.WithDelegate(j))
	require.NoError(t, err)
	require.NoError(t, q.Start(context.Background()))
	defer q.Shutdown()

	dep := task.New("checkout", nil)
	build := operation.New("build", nil, operation.WithConditions(
		condition.Exclusive("workspace"),
		condition.Dependency("checkout", func(task.Operation) task.Task { return dep }),
	))
	broken := operation.New("lint", func(context.Context, *operation.Operation) error {
		return errors.New("lint failed")
	})
	cancelled := operation.New("deploy", nil)
	cancelled.Cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, q.SubmitBatch(ctx, []task.Task{build, broken, cancelled}, true))
	require.NoError(t, task.Wait(ctx, dep))
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&finished) == 4 }, time.Second, time.Millisecond)

	var testCases = []struct {
		id     string
		status record.Status
		errors int
	}{
		{id: dep.ID(), status: record.StatusSucceeded},
		{id: build.ID(), status: record.StatusSucceeded},
		{id: broken.ID(), status: record.StatusFailed, errors: 1},
		{id: cancelled.ID(), status: record.StatusCancelled},
	}
	for _, testCase := range testCases {
		r, err := store.Load(ctx, testCase.id)
		require.NoError(t, err, testCase.id)
		assert.Equal(t, testCase.status, r.Status, testCase.id)
		assert.Equal(t, "ci", r.Queue)
		assert.Len(t, r.Errors, testCase.errors)
		assert.NotNil(t, r.FinishedAt)
	}

	r, err := store.Load(ctx, build.ID())
	require.NoError(t, err)
	assert.Equal(t, []string{dep.ID()}, r.Dependencies)
	assert.Equal(t, []string{"workspace"}, r.Categories)

	failed, err := j.Records(ctx, dao.NewParameter("Status", string(record.StatusFailed)))
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "lint", failed[0].Name)
}

func TestJournal_FinishWithoutAdd(t *testing.T) {
	store := memory.New()
	j := New(store)
	q, err := queue.New(queue.WithName("q"), queue.WithRegistry(exclusivity.New()))
	require.NoError(t, err)

	orphan := task.New("orphan", nil)
	j.DidFinish(q, orphan, []error{})
	r, err := store.Load(context.Background(), orphan.ID())
	require.NoError(t, err)
	assert.Equal(t, record.StatusSucceeded, r.Status)
}
