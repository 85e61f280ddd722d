package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/opqueue/service/dao"
)

func TestRecord_Clone(t *testing.T) {
	finishedAt := time.Now()
	r := &Record{ID: "1", Errors: []string{"a"}, Dependencies: []string{"d"}, FinishedAt: &finishedAt}
	clone := r.Clone()
	clone.Errors[0] = "b"
	clone.Dependencies[0] = "e"
	*clone.FinishedAt = finishedAt.Add(time.Hour)
	assert.Equal(t, "a", r.Errors[0])
	assert.Equal(t, "d", r.Dependencies[0])
	assert.Equal(t, finishedAt, *r.FinishedAt)
	assert.Nil(t, (*Record)(nil).Clone())
}

func TestRecord_Matches(t *testing.T) {
	r := &Record{Name: "build", Queue: "ci", Status: StatusFailed}
	assert.True(t, r.Matches(nil))
	assert.True(t, r.Matches([]*dao.Parameter{dao.NewParameter("Queue", "ci")}))
	assert.False(t, r.Matches([]*dao.Parameter{dao.NewParameter("Status", string(StatusSucceeded))}))
	assert.True(t, StatusCancelled.IsFinal())
	assert.False(t, StatusAdded.IsFinal())
}
