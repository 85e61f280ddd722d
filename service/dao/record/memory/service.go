package memory

import (
	"github.com/viant/opqueue/service/dao"
	"github.com/viant/opqueue/service/dao/record"
	"github.com/viant/opqueue/service/dao/store"
)

// Service implements an in-memory record storage. All operations are
// thread-safe and return copies of the stored records.
type Service struct {
	*store.MemoryStore[string, record.Record]
}

var _ dao.Service[string, record.Record] = (*Service)(nil)

// New creates in-memory record store
func New() *Service {
	return &Service{MemoryStore: store.NewMemoryStore[string, record.Record](record.Key,
		store.WithClone[string, record.Record]((*record.Record).Clone),
		store.WithFilter[string, record.Record]((*record.Record).Matches),
	)}
}
