package exclusivity

import "github.com/rs/zerolog"

// Option represents registry option
type Option func(r *Registry)

// WithLogger sets registry logger
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}
