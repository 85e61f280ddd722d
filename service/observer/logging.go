package observer

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/viant/opqueue/internal/clock"
	"github.com/viant/opqueue/model/task"
)

type logging struct {
	logger  zerolog.Logger
	mux     sync.Mutex
	started map[string]time.Time
}

// Logging returns an observer writing lifecycle events to logger. Finished
// operations with errors are logged at warn level, everything else at debug.
func Logging(logger zerolog.Logger) task.Observer {
	return &logging{logger: logger, started: map[string]time.Time{}}
}

func (l *logging) DidStart(op task.Operation) {
	l.mux.Lock()
	l.started[op.ID()] = clock.Now()
	l.mux.Unlock()
	l.logger.Debug().Str("task", op.ID()).Str("name", op.Name()).Msg("operation started")
}

func (l *logging) DidCancel(op task.Operation) {
	l.logger.Debug().Str("task", op.ID()).Str("name", op.Name()).Msg("operation cancelled")
}

func (l *logging) DidProduce(op task.Operation, produced task.Task) {
	l.logger.Debug().Str("task", op.ID()).Str("produced", produced.ID()).Msg("operation produced task")
}

func (l *logging) DidFinish(op task.Operation, errs []error) {
	l.mux.Lock()
	startedAt, ok := l.started[op.ID()]
	delete(l.started, op.ID())
	l.mux.Unlock()

	event := l.logger.Debug()
	if len(errs) > 0 {
		event = l.logger.Warn().Errs("errors", errs)
	}
	if ok {
		event = event.Dur("elapsed", clock.Since(startedAt))
	}
	event.Str("task", op.ID()).Str("name", op.Name()).Bool("cancelled", op.IsCancelled()).Msg("operation finished")
}
