package processor

import (
	"github.com/rs/zerolog"
	"github.com/viant/opqueue/model/task"
	"github.com/viant/opqueue/service/messaging"
)

// Option represents processor option
type Option func(*Service)

// WithMessageQueue sets the ready lane implementation
func WithMessageQueue(queue messaging.Queue[task.Task]) Option {
	return func(s *Service) {
		s.queue = queue
	}
}

// WithWorkers sets the number of worker goroutines
func WithWorkers(count int) Option {
	return func(s *Service) {
		s.config.WorkerCount = count
	}
}

// WithConfig sets the configuration for the service
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithRateLimit limits task starts per second, zero disables limiting
func WithRateLimit(perSec int) Option {
	return func(s *Service) {
		s.config.RatePerSec = perSec
	}
}
