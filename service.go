package opqueue

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/viant/opqueue/policy"
	"github.com/viant/opqueue/service/dao"
	"github.com/viant/opqueue/service/dao/record"
	"github.com/viant/opqueue/service/dao/record/fs"
	"github.com/viant/opqueue/service/dao/record/memory"
	"github.com/viant/opqueue/service/event"
	"github.com/viant/opqueue/service/exclusivity"
	"github.com/viant/opqueue/service/journal"
	"github.com/viant/opqueue/service/processor"
	"github.com/viant/opqueue/service/queue"
	"github.com/viant/opqueue/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Service creates and owns queues sharing one exclusivity registry, the
// process wide one unless WithRegistry is used.
type Service struct {
	config       *Config
	logger       *zerolog.Logger
	registry     *exclusivity.Registry
	journalStore dao.Service[string, record.Record]
	journal      *journal.Journal
	exporter     sdktrace.SpanExporter
	tracing      bool
	policy       *policy.Policy
	eventHandler func(*event.Event[event.Lifecycle])
	publisher    *event.Publisher[event.Lifecycle]
	listener     *event.Listener[event.Lifecycle]

	mux    sync.Mutex
	queues map[string]*queue.Queue
}

// New creates a service
func New(options ...Option) (*Service, error) {
	ret := &Service{queues: map[string]*queue.Queue{}}
	for _, opt := range options {
		opt(ret)
	}
	if err := ret.init(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *Service) init() error {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if s.logger == nil {
		logger := NewLogger(s.config.Logging, nil)
		s.logger = &logger
	}
	if s.registry == nil {
		s.registry = exclusivity.Shared()
	}
	if err := s.initTracing(); err != nil {
		return err
	}
	if s.policy == nil && s.config.Policy != nil {
		s.policy = policy.FromConfig(s.config.Policy)
	}
	if err := s.initJournal(); err != nil {
		return err
	}
	if s.eventHandler != nil {
		s.publisher = event.NewPublisher[event.Lifecycle](nil)
		s.listener = event.NewListener(s.publisher, s.eventHandler, *s.logger)
		s.listener.Start()
	}
	return nil
}

func (s *Service) initTracing() error {
	tracingConfig := s.config.Tracing
	switch {
	case s.exporter != nil:
		if err := tracing.InitWithExporter(tracingConfig.ServiceName, tracingConfig.Version, s.exporter); err != nil {
			return fmt.Errorf("failed to init tracing: %w", err)
		}
	case tracingConfig.Enabled:
		if err := tracing.Init(tracingConfig.ServiceName, tracingConfig.Version, tracingConfig.Output); err != nil {
			return fmt.Errorf("failed to init tracing: %w", err)
		}
	default:
		return nil
	}
	s.tracing = true
	return nil
}

func (s *Service) initJournal() error {
	store := s.journalStore
	if store == nil {
		if !s.config.Journal.Enabled {
			return nil
		}
		if URL := s.config.Journal.URL; URL != "" {
			fsStore, err := fs.New(URL, fs.WithLogger(*s.logger))
			if err != nil {
				return fmt.Errorf("failed to create journal store: %w", err)
			}
			store = fsStore
		} else {
			store = memory.New()
		}
	}
	s.journal = journal.New(store, journal.WithLogger(*s.logger))
	return nil
}

// Config returns service config
func (s *Service) Config() *Config { return s.config }

// Logger returns service logger
func (s *Service) Logger() zerolog.Logger { return *s.logger }

// Registry returns the exclusivity registry shared by service queues
func (s *Service) Registry() *exclusivity.Registry { return s.registry }

// Journal returns task journal or nil when disabled
func (s *Service) Journal() *journal.Journal { return s.journal }

// NewQueue creates and starts a named queue. Supplied options are applied
// after service defaults, an explicit queue.WithDelegate replaces the journal.
func (s *Service) NewQueue(ctx context.Context, name string, options ...queue.Option) (*queue.Queue, error) {
	if name == "" {
		return nil, fmt.Errorf("queue name was empty")
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.queues[name]; ok {
		return nil, fmt.Errorf("queue %v already exists", name)
	}
	logger := s.logger.With().Str("queue", name).Logger()
	defaults := []queue.Option{
		queue.WithName(name),
		queue.WithRegistry(s.registry),
		queue.WithLogger(logger),
		queue.WithTracing(s.tracing),
		queue.WithProcessorOptions(
			processor.WithWorkers(s.config.Queue.Workers),
			processor.WithRateLimit(s.config.Queue.RatePerSec),
		),
	}
	if s.journal != nil {
		defaults = append(defaults, queue.WithDelegate(s.journal))
	}
	if s.policy != nil {
		defaults = append(defaults, queue.WithConditions(policy.Gate(s.policy)))
	}
	if s.publisher != nil {
		defaults = append(defaults, queue.WithObservers(event.Observer(name, s.publisher, logger)))
	}
	q, err := queue.New(append(defaults, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create queue %v: %w", name, err)
	}
	if err = q.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start queue %v: %w", name, err)
	}
	s.queues[name] = q
	s.logger.Debug().Str("queue", name).Int("workers", s.config.Queue.Workers).Msg("queue started")
	return q, nil
}

// Queue returns a queue created by NewQueue
func (s *Service) Queue(name string) (*queue.Queue, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	q, ok := s.queues[name]
	return q, ok
}

// Queues returns sorted queue names
func (s *Service) Queues() []string {
	s.mux.Lock()
	defer s.mux.Unlock()
	ret := make([]string, 0, len(s.queues))
	for name := range s.queues {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

// Shutdown stops every queue and the event listener
func (s *Service) Shutdown() {
	s.mux.Lock()
	queues := s.queues
	s.queues = map[string]*queue.Queue{}
	s.mux.Unlock()
	for _, q := range queues {
		q.Shutdown()
	}
	if s.listener != nil {
		s.listener.Stop()
	}
}
