package task

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase_Dependencies(t *testing.T) {
	shared := New("shared", nil)
	a := New("a", nil)
	b := New("b", nil)

	a.AddDependency(shared)
	a.AddDependency(shared)
	a.AddDependency(a)
	b.AddDependency(shared)

	assert.Len(t, a.Dependencies(), 1)
	assert.False(t, a.IsReady())

	shared.Start(context.Background())
	assert.True(t, a.IsReady())

	// removing from one task never alters another task's dependency set
	a.ReleaseDependencies()
	assert.Empty(t, a.Dependencies())
	require.Len(t, b.Dependencies(), 1)
	assert.Equal(t, shared.ID(), b.Dependencies()[0].ID())

	deps := b.Dependencies()
	deps[0] = a
	assert.Equal(t, shared.ID(), b.Dependencies()[0].ID())
}

func TestBase_RemoveDependency(t *testing.T) {
	d1, d2 := New("d1", nil), New("d2", nil)
	owner := New("owner", nil)
	owner.AddDependency(d1)
	owner.AddDependency(d2)

	snapshot := owner.Dependencies()
	owner.RemoveDependency(d1)
	assert.Equal(t, []string{d2.ID()}, IDs(owner.Dependencies()))
	assert.Equal(t, []string{d1.ID(), d2.ID()}, IDs(snapshot))
}

func TestBase_StateChangeOnDependencyFinish(t *testing.T) {
	dep := New("dep", nil)
	owner := New("owner", nil)
	owner.AddDependency(dep)

	var notified int32
	owner.OnStateChange(func() { atomic.AddInt32(&notified, 1) })
	dep.Start(context.Background())
	assert.EqualValues(t, 1, atomic.LoadInt32(&notified))
}

func TestBase_Completion(t *testing.T) {
	b := New("b", nil)
	var calls int32
	b.AddCompletion(func() { atomic.AddInt32(&calls, 1) })
	b.Start(context.Background())
	b.Start(context.Background())
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	assert.False(t, b.Finish())

	b.AddCompletion(func() { atomic.AddInt32(&calls, 1) })
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestBlock_Start(t *testing.T) {
	testCases := []struct {
		name   string
		cancel bool
		runs   int32
	}{
		{name: "runs function", runs: 1},
		{name: "cancelled skips function", cancel: true, runs: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var runs int32
			b := New(tc.name, func(ctx context.Context) { atomic.AddInt32(&runs, 1) })
			if tc.cancel {
				b.Cancel()
			}
			b.Start(context.Background())
			assert.Equal(t, tc.runs, atomic.LoadInt32(&runs))
			assert.True(t, b.IsFinished())
			assert.Equal(t, tc.cancel, b.IsCancelled())
		})
	}
}

func TestWait(t *testing.T) {
	done := New("done", nil)
	done.Start(context.Background())
	assert.NoError(t, Wait(context.Background(), done, nil))

	pending := New("pending", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, Wait(ctx, pending), context.DeadlineExceeded)
}
