package processor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/viant/opqueue/model/task"
	"github.com/viant/opqueue/service/messaging"
	"github.com/viant/opqueue/service/messaging/memory"
	"golang.org/x/time/rate"
)

// Config represents processor configuration
type Config struct {
	// WorkerCount is the number of workers, i.e. the maximum number of tasks running at once
	WorkerCount int
	// RatePerSec limits task starts per second across workers, zero disables it
	RatePerSec int
}

// DefaultConfig returns the default processor configuration
func DefaultConfig() Config {
	return Config{WorkerCount: 5}
}

// Validate checks configuration
func (c Config) Validate() error {
	if c.WorkerCount <= 0 {
		return fmt.Errorf("processor.workerCount must be > 0")
	}
	if c.RatePerSec < 0 {
		return fmt.Errorf("processor.ratePerSec must be >= 0")
	}
	return nil
}

// Service executes ready tasks on a pool of workers
type Service struct {
	config  Config
	queue   messaging.Queue[task.Task]
	logger  zerolog.Logger
	limiter *rate.Limiter

	mux     sync.Mutex
	pending map[string]task.Task
	running int32

	workers  []*worker
	workerWg sync.WaitGroup
}

type worker struct {
	id       int
	service  *Service
	ctx      context.Context
	cancelFn context.CancelFunc
}

// New creates a processor
func New(options ...Option) (*Service, error) {
	s := &Service{
		config:  DefaultConfig(),
		logger:  zerolog.Nop(),
		pending: map[string]task.Task{},
	}
	for _, opt := range options {
		opt(s)
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	if s.queue == nil {
		s.queue = memory.NewQueue[task.Task](memory.DefaultConfig())
	}
	if s.config.RatePerSec > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(s.config.RatePerSec), s.config.RatePerSec)
	}
	return s, nil
}

// Start spawns worker goroutines; calling it again is a no-op
func (s *Service) Start(ctx context.Context) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	if len(s.workers) > 0 {
		return nil
	}
	for i := 0; i < s.config.WorkerCount; i++ {
		workerCtx, cancel := context.WithCancel(ctx)
		w := &worker{id: i, service: s, ctx: workerCtx, cancelFn: cancel}
		s.workers = append(s.workers, w)
		s.workerWg.Add(1)
		go w.run()
	}
	return nil
}

// Add hands a task over for execution once it is ready. Finished tasks and
// tasks already waiting are ignored.
func (s *Service) Add(t task.Task) {
	if t == nil || t.IsFinished() {
		return
	}
	s.mux.Lock()
	if _, ok := s.pending[t.ID()]; ok {
		s.mux.Unlock()
		return
	}
	s.pending[t.ID()] = t
	s.mux.Unlock()

	t.OnStateChange(func() { s.dispatch(t) })
	s.dispatch(t)
}

func (s *Service) dispatch(t task.Task) {
	if !t.IsReady() {
		return
	}
	s.mux.Lock()
	if _, ok := s.pending[t.ID()]; !ok {
		s.mux.Unlock()
		return
	}
	delete(s.pending, t.ID())
	s.mux.Unlock()
	if err := s.queue.Publish(context.Background(), &t); err != nil {
		s.logger.Error().Err(err).Str("task", t.ID()).Msg("failed to publish ready task")
	}
}

// Pending returns number of tasks waiting to become ready
func (s *Service) Pending() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return len(s.pending)
}

// Running returns number of tasks currently executed by workers
func (s *Service) Running() int {
	return int(atomic.LoadInt32(&s.running))
}

func (w *worker) run() {
	defer w.service.workerWg.Done()
	for {
		if limiter := w.service.limiter; limiter != nil {
			if err := limiter.Wait(w.ctx); err != nil {
				return
			}
		}
		msg, err := w.service.queue.Consume(w.ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || w.ctx.Err() != nil {
				return
			}
			w.service.logger.Error().Err(err).Int("worker", w.id).Msg("failed to consume")
			continue
		}
		if msg == nil {
			continue
		}
		if pErr := w.service.execute(w.ctx, *msg.T()); pErr != nil {
			w.service.logger.Error().Err(pErr).Int("worker", w.id).Msg("task execution failed")
			_ = msg.Nack(pErr)
			continue
		}
		_ = msg.Ack()
	}
}

func (s *Service) execute(ctx context.Context, t task.Task) (err error) {
	atomic.AddInt32(&s.running, 1)
	defer atomic.AddInt32(&s.running, -1)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task %v panicked: %v", t.ID(), r)
		}
	}()
	t.Start(ctx)
	return nil
}

// Shutdown stops workers and waits for running tasks to return
func (s *Service) Shutdown() {
	s.mux.Lock()
	workers := s.workers
	s.workers = nil
	s.mux.Unlock()
	for _, w := range workers {
		w.cancelFn()
	}
	s.workerWg.Wait()
}
