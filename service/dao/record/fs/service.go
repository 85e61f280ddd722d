package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/option"
	"github.com/viant/afs/url"
	"github.com/viant/opqueue/service/dao"
	"github.com/viant/opqueue/service/dao/record"
)

// Service stores records as JSON documents under a base URL on any afs
// backed storage (local file, mem, cloud).
type Service struct {
	baseURL string
	fs      afs.Service
	logger  zerolog.Logger
	mu      sync.RWMutex
}

var _ dao.Service[string, record.Record] = (*Service)(nil)

// Option customises Service
type Option func(*Service)

// WithLogger sets logger used to report unreadable documents
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithFS sets storage service
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// Save persists a record
func (s *Service) Save(ctx context.Context, r *record.Record) error {
	if r == nil {
		return dao.ErrNilEntity
	}
	if r.ID == "" {
		return dao.ErrInvalidID
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal record %v: %w", r.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	URL := s.recordURL(r.ID)
	if err = s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save record to %s: %w", URL, err)
	}
	return nil
}

// Load retrieves a record
func (s *Service) Load(ctx context.Context, id string) (*record.Record, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	URL := s.recordURL(id)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check record %v: %w", id, err)
	}
	if !exists {
		return nil, dao.ErrNotFound
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read record %v: %w", id, err)
	}
	ret := &record.Record{}
	if err = json.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record %v: %w", id, err)
	}
	return ret, nil
}

// Delete removes a record
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	URL := s.recordURL(id)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return fmt.Errorf("failed to check record %v: %w", id, err)
	}
	if !exists {
		return dao.ErrNotFound
	}
	if err = s.fs.Delete(ctx, URL); err != nil {
		return fmt.Errorf("failed to delete record %v: %w", id, err)
	}
	return nil
}

// List returns records matching parameters, unreadable documents are skipped
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*record.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objects, err := s.fs.List(ctx, s.baseURL, option.NewRecursive(true))
	if err != nil {
		return nil, fmt.Errorf("failed to list records at %v: %w", s.baseURL, err)
	}
	var ret []*record.Record
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		data, err := s.fs.Download(ctx, object)
		if err != nil {
			s.logger.Warn().Err(err).Str("url", object.URL()).Msg("failed to read record")
			continue
		}
		r := &record.Record{}
		if err := json.Unmarshal(data, r); err != nil {
			s.logger.Warn().Err(err).Str("url", object.URL()).Msg("failed to unmarshal record")
			continue
		}
		if r.Matches(parameters) {
			ret = append(ret, r)
		}
	}
	return ret, nil
}

func (s *Service) recordURL(id string) string {
	return url.Join(s.baseURL, strings.ReplaceAll(id, "/", "_")+".json")
}

// New creates a record store rooted at baseURL, the location is created if missing
func New(baseURL string, options ...Option) (*Service, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	ret := &Service{logger: zerolog.Nop()}
	for _, opt := range options {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	ret.baseURL = url.Normalize(baseURL, file.Scheme)

	ctx := context.Background()
	exists, _ := ret.fs.Exists(ctx, ret.baseURL)
	if !exists {
		if err := ret.fs.Create(ctx, ret.baseURL, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create %v: %w", ret.baseURL, err)
		}
	}
	return ret, nil
}
