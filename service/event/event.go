package event

import "time"

// Type represents lifecycle event type
type Type string

const (
	TypeStarted   Type = "started"
	TypeCancelled Type = "cancelled"
	TypeProduced  Type = "produced"
	TypeFinished  Type = "finished"
)

// Context identifies the task an event is about
type Context struct {
	Queue       string `json:"queue,omitempty"`
	TaskID      string `json:"taskID"`
	TaskName    string `json:"taskName"`
	EventType   Type   `json:"eventType"`
	TimeTakenMs int    `json:"timeTakenMs,omitempty"`
}

// Event wraps payload with its context
type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Data      T                      `json:"data"`
}

// Lifecycle is the payload of task lifecycle events
type Lifecycle struct {
	ProducedID string   `json:"producedID,omitempty"`
	Errors     []string `json:"errors,omitempty"`
}

// NewEvent creates an event
func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:  context,
		Metadata: make(map[string]interface{}),
		Data:     data,
	}
}
