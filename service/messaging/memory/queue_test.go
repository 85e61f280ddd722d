package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type TestPayload struct {
	ID    string
	Count int
}

func TestQueue(t *testing.T) {
	queue := NewQueue[TestPayload](DefaultConfig())
	ctx := context.Background()
	payload := TestPayload{ID: "test-1", Count: 1}

	err := queue.Publish(ctx, &payload)
	assert.NoError(t, err)
	assert.Equal(t, 1, queue.Size())

	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, message)
	assert.NotEmpty(t, message.ID())
	assert.Equal(t, 0, queue.Size())
	assert.Equal(t, payload, *message.T())

	assert.NoError(t, message.Ack())
	assert.Error(t, message.Ack())
	assert.Error(t, message.Nack(nil))
	assert.Error(t, queue.Publish(ctx, nil))
}

func TestQueue_Order(t *testing.T) {
	queue := NewQueue[TestPayload](DefaultConfig())
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		assert.NoError(t, queue.Publish(ctx, &TestPayload{Count: i}))
	}
	for i := 0; i < 5; i++ {
		message, err := queue.Consume(ctx)
		assert.NoError(t, err)
		assert.Equal(t, i, message.T().Count)
	}
}

func TestQueue_NackDeadLetter(t *testing.T) {
	testCases := []struct {
		name       string
		deadLetter bool
		expectDLQ  int
	}{
		{name: "dead letter enabled", deadLetter: true, expectDLQ: 1},
		{name: "dead letter disabled", deadLetter: false, expectDLQ: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			queue := NewQueue[TestPayload](Config{DeadLetter: tc.deadLetter})
			ctx := context.Background()
			assert.NoError(t, queue.Publish(ctx, &TestPayload{ID: "x"}))
			message, err := queue.Consume(ctx)
			assert.NoError(t, err)
			failure := errors.New("failed")
			assert.NoError(t, message.Nack(failure))
			assert.Equal(t, tc.expectDLQ, queue.DLQSize())
			assert.Equal(t, failure, message.(*Message[TestPayload]).Err())
			// nacked messages are never redelivered
			assert.Equal(t, 0, queue.Size())
		})
	}
}

func TestQueue_Concurrency(t *testing.T) {
	queue := NewQueue[TestPayload](DefaultConfig())
	ctx := context.Background()
	concurrency := 10
	messagesPerProducer := 10

	var wg sync.WaitGroup
	wg.Add(concurrency * 2)
	var consumedCount int
	var consumedMu sync.Mutex

	for i := 0; i < concurrency; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < messagesPerProducer; j++ {
				message, err := queue.Consume(ctx)
				if err != nil {
					t.Errorf("Error consuming: %v", err)
					return
				}
				assert.NoError(t, message.Ack())
				consumedMu.Lock()
				consumedCount++
				consumedMu.Unlock()
			}
		}()
	}
	for i := 0; i < concurrency; i++ {
		go func(producerID int) {
			defer wg.Done()
			for j := 0; j < messagesPerProducer; j++ {
				payload := TestPayload{ID: fmt.Sprintf("p%d-m%d", producerID, j), Count: j}
				if err := queue.Publish(ctx, &payload); err != nil {
					t.Errorf("Error publishing: %v", err)
				}
			}
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Test timed out")
	}
	assert.Equal(t, concurrency*messagesPerProducer, consumedCount)
	assert.Equal(t, 0, queue.Size())
}

func TestQueue_ContextCancellation(t *testing.T) {
	queue := NewQueue[TestPayload](DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	payload := TestPayload{ID: "test"}
	assert.Error(t, queue.Publish(ctx, &payload))

	ctxWithTimeout, cancelTimeout := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancelTimeout()
	_, err := queue.Consume(ctxWithTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	assert.NoError(t, queue.Publish(context.Background(), &payload))
	message, err := queue.Consume(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, message)
}
