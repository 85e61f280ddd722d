package meta

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Service loads documents from storage
type Service struct {
	fs     afs.Service
	lookup func(string) string
}

// Option customises Service
type Option func(*Service)

// WithFS sets storage service
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithLookup sets ${env.KEY} resolver, os.Getenv by default
func WithLookup(lookup func(string) string) Option {
	return func(s *Service) {
		s.lookup = lookup
	}
}

// Exists returns true if URL exists
func (s *Service) Exists(ctx context.Context, URL string) (bool, error) {
	return s.fs.Exists(ctx, URL)
}

// Download returns document content with env expressions expanded
func (s *Service) Download(ctx context.Context, URL string) ([]byte, error) {
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download %v: %w", URL, err)
	}
	if s.lookup == nil {
		return []byte(expandEnvExpr(string(data))), nil
	}
	return []byte(Expand(string(data), s.lookup)), nil
}

// Load decodes document at URL into target
func (s *Service) Load(ctx context.Context, URL string, target interface{}) error {
	data, err := s.Download(ctx, URL)
	if err != nil {
		return err
	}
	if err = yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode %v: %w", URL, err)
	}
	return nil
}

// New creates meta service
func New(options ...Option) *Service {
	ret := &Service{}
	for _, opt := range options {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	return ret
}
