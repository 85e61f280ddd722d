package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/opqueue/service/dao"
)

type entry struct {
	ID    string
	Value int
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[string, entry](func(e *entry) string { return e.ID },
		WithClone[string, entry](func(e *entry) *entry { c := *e; return &c }),
		WithFilter[string, entry](func(e *entry, params []*dao.Parameter) bool {
			return len(params) == 0 || e.ID == params[0].Value
		}),
	)

	assert.ErrorIs(t, s.Save(ctx, nil), dao.ErrNilEntity)
	assert.ErrorIs(t, s.Save(ctx, &entry{}), dao.ErrInvalidID)

	original := &entry{ID: "a", Value: 1}
	require.NoError(t, s.Save(ctx, original))
	require.NoError(t, s.Save(ctx, &entry{ID: "b", Value: 2}))
	original.Value = 10

	loaded, err := s.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Value)

	_, err = s.Load(ctx, "missing")
	assert.ErrorIs(t, err, dao.ErrNotFound)

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	filtered, err := s.List(ctx, dao.NewParameter("ID", "b"))
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, 2, filtered[0].Value)

	require.NoError(t, s.Delete(ctx, "a"))
	assert.ErrorIs(t, s.Delete(ctx, "a"), dao.ErrNotFound)
}
