package journal

import (
	"github.com/rs/zerolog"
	"github.com/viant/opqueue/service/queue"
)

// Option customises Journal
type Option func(*Journal)

// WithNext chains another delegate notified after the record is stored
func WithNext(next queue.Delegate) Option {
	return func(j *Journal) {
		j.next = next
	}
}

// WithLogger sets logger used to report storage errors
func WithLogger(logger zerolog.Logger) Option {
	return func(j *Journal) {
		j.logger = logger
	}
}
