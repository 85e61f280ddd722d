package opqueue

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/viant/opqueue/policy"
	"github.com/viant/opqueue/service/meta"
)

// Config is a serialisable representation of the service configuration. It
// can be populated from JSON or YAML, see LoadConfig.
type Config struct {
	Queue   QueueConfig   `json:"queue" yaml:"queue"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
	Tracing TracingConfig `json:"tracing" yaml:"tracing"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Policy  *policy.Config `json:"policy,omitempty" yaml:"policy,omitempty"`
}

// QueueConfig defines defaults for queues created by the service
type QueueConfig struct {
	Workers    int `json:"workers" yaml:"workers"`
	RatePerSec int `json:"ratePerSec,omitempty" yaml:"ratePerSec,omitempty"`
}

// LoggingConfig defines logger level and format
type LoggingConfig struct {
	Level   string `json:"level" yaml:"level"`
	Console bool   `json:"console" yaml:"console"`
}

// TracingConfig defines OpenTelemetry setup, empty Output writes spans to stdout
type TracingConfig struct {
	Enabled     bool   `json:"enabled" yaml:"enabled"`
	ServiceName string `json:"serviceName" yaml:"serviceName"`
	Version     string `json:"version" yaml:"version"`
	Output      string `json:"output" yaml:"output"`
}

// JournalConfig enables task journal; URL selects afs location, empty URL keeps records in memory
type JournalConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	URL     string `json:"url" yaml:"url"`
}

// DefaultConfig returns a Config populated with default values. Callers may
// modify the returned struct before passing it to WithConfig.
func DefaultConfig() *Config {
	return &Config{
		Queue:   QueueConfig{Workers: 5},
		Logging: LoggingConfig{Level: "info"},
		Tracing: TracingConfig{ServiceName: "opqueue", Version: "dev"},
	}
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Queue.Workers <= 0 {
		errs = append(errs, fmt.Errorf("queue.workers must be > 0"))
	}
	if c.Queue.RatePerSec < 0 {
		errs = append(errs, fmt.Errorf("queue.ratePerSec must be >= 0"))
	}
	if c.Logging.Level != "" {
		if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
			errs = append(errs, fmt.Errorf("logging.level: %w", err))
		}
	}
	if c.Policy != nil {
		switch c.Policy.Mode {
		case "", policy.ModeAuto, policy.ModeAsk, policy.ModeDeny:
		default:
			errs = append(errs, fmt.Errorf("policy.mode: unsupported %q", c.Policy.Mode))
		}
	}
	if c.Tracing.Enabled && c.Tracing.ServiceName == "" {
		errs = append(errs, fmt.Errorf("tracing.serviceName is required when tracing is enabled"))
	}
	return errors.Join(errs...)
}

// LoadConfig loads a YAML or JSON config from URL over defaults
func LoadConfig(ctx context.Context, URL string, options ...meta.Option) (*Config, error) {
	ret := DefaultConfig()
	if err := meta.New(options...).Load(ctx, URL, ret); err != nil {
		return nil, err
	}
	if err := ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", URL, err)
	}
	return ret, nil
}
