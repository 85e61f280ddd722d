package record

import (
	"time"

	"github.com/viant/opqueue/service/dao"
	"github.com/viant/opqueue/service/dao/criteria"
)

// Status represents a task outcome
type Status string

const (
	StatusAdded     Status = "added"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// IsFinal returns true once the task finished
func (s Status) IsFinal() bool {
	return s == StatusSucceeded || s == StatusFailed || s == StatusCancelled
}

// Record describes a single task passing through a queue
type Record struct {
	ID           string     `json:"id" yaml:"id"`
	Name         string     `json:"name" yaml:"name"`
	Queue        string     `json:"queue" yaml:"queue"`
	Status       Status     `json:"status" yaml:"status"`
	Dependencies []string   `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Categories   []string   `json:"categories,omitempty" yaml:"categories,omitempty"`
	Errors       []string   `json:"errors,omitempty" yaml:"errors,omitempty"`
	AddedAt      time.Time  `json:"addedAt" yaml:"addedAt"`
	FinishedAt   *time.Time `json:"finishedAt,omitempty" yaml:"finishedAt,omitempty"`
}

// Key returns record id
func Key(r *Record) string { return r.ID }

// Clone returns a deep copy
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	ret := *r
	ret.Dependencies = append([]string(nil), r.Dependencies...)
	ret.Categories = append([]string(nil), r.Categories...)
	ret.Errors = append([]string(nil), r.Errors...)
	if r.FinishedAt != nil {
		finishedAt := *r.FinishedAt
		ret.FinishedAt = &finishedAt
	}
	return &ret
}

// Elapsed returns time between add and finish, zero while unfinished
func (r *Record) Elapsed() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.AddedAt)
}

// Matches reports whether r satisfies List parameters (Status, Queue, Name)
func (r *Record) Matches(parameters []*dao.Parameter) bool {
	return criteria.Match(map[string]string{
		"Status": string(r.Status),
		"Queue":  r.Queue,
		"Name":   r.Name,
	}, parameters)
}
