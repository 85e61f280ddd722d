package observer

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/opqueue/model/operation"
	"github.com/viant/opqueue/model/task"
	"github.com/viant/opqueue/progress"
	"github.com/viant/opqueue/tracing"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func run(t *testing.T, op *operation.Operation) {
	op.DidEnqueue()
	require.Eventually(t, op.IsReady, time.Second, time.Millisecond)
	op.Start(context.Background())
}

func TestBlock(t *testing.T) {
	var events []string
	var finishErrs []error
	block := &Block{
		OnStart:   func(task.Operation) { events = append(events, "start") },
		OnProduce: func(task.Operation, task.Task) { events = append(events, "produce") },
		OnFinish: func(_ task.Operation, errs []error) {
			events = append(events, "finish")
			finishErrs = errs
		},
	}
	failure := errors.New("failed")
	op := operation.New("op", func(ctx context.Context, op *operation.Operation) error {
		op.Produce(task.New("child", nil))
		return failure
	}, operation.WithObservers(block))
	run(t, op)

	assert.Equal(t, []string{"start", "produce", "finish"}, events)
	assert.Equal(t, []error{failure}, finishErrs)
}

func TestBlock_EmptyHandlers(t *testing.T) {
	block := &Block{}
	op := operation.New("op", nil, operation.WithObservers(block))
	assert.NotPanics(t, func() {
		op.Cancel()
		run(t, op)
	})
	assert.True(t, op.IsFinished())
}

func TestBlock_SharedAcrossOperations(t *testing.T) {
	var finished []string
	shared := OnFinished(func(op task.Operation, _ []error) { finished = append(finished, op.Name()) })
	for _, name := range []string{"a", "b"} {
		run(t, operation.New(name, nil, operation.WithObservers(shared)))
	}
	assert.Equal(t, []string{"a", "b"}, finished)
}

func TestLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.DebugLevel)
	op := operation.New("logged", func(ctx context.Context, op *operation.Operation) error {
		return errors.New("bad")
	}, operation.WithObservers(Logging(logger)))
	run(t, op)

	out := buf.String()
	assert.Contains(t, out, "operation started")
	assert.Contains(t, out, "operation finished")
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, "elapsed")
}

func TestTracing(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	require.NoError(t, tracing.InitWithExporter("opqueue", "test", exporter))

	ok := operation.New("ok", nil, operation.WithObservers(Tracing(context.Background())))
	failed := operation.New("failed", func(ctx context.Context, op *operation.Operation) error {
		return errors.New("bad")
	}, operation.WithObservers(Tracing(nil)))
	run(t, ok)
	run(t, failed)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "operation.run ok", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assert.Equal(t, "operation.run failed", spans[1].Name)
	assert.Equal(t, codes.Error, spans[1].Status.Code)
}

func TestProgress(t *testing.T) {
	p := progress.New("test", nil)
	observer := Progress(p)

	run(t, operation.New("ok", nil, operation.WithObservers(observer)))
	run(t, operation.New("failed", func(ctx context.Context, op *operation.Operation) error {
		return errors.New("bad")
	}, operation.WithObservers(observer)))
	cancelled := operation.New("cancelled", nil, operation.WithObservers(observer))
	cancelled.Cancel()
	run(t, cancelled)

	snapshot := p.Snapshot()
	assert.Equal(t, 3, snapshot.FinishedTasks)
	assert.Equal(t, 1, snapshot.FailedTasks)
	assert.Equal(t, 1, snapshot.CancelledTasks)
	assert.Equal(t, 0, snapshot.RunningTasks)
}
