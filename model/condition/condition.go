package condition

import (
	"context"
	"fmt"

	"github.com/viant/opqueue/model/task"
)

// EvaluateFunc represents a condition predicate
type EvaluateFunc func(ctx context.Context, op task.Operation) error

// DependencyFunc returns a dependency for op, or nil
type DependencyFunc func(op task.Operation) task.Task

// Condition is a configurable task.Condition
type Condition struct {
	name       string
	exclusive  bool
	dependency DependencyFunc
	evaluate   EvaluateFunc
}

// Name returns condition name
func (c *Condition) Name() string { return c.name }

// MutuallyExclusive returns true for exclusive categories
func (c *Condition) MutuallyExclusive() bool { return c.exclusive }

// Dependency returns injected dependency
func (c *Condition) Dependency(op task.Operation) task.Task {
	if c.dependency == nil {
		return nil
	}
	return c.dependency(op)
}

// Evaluate evaluates condition
func (c *Condition) Evaluate(ctx context.Context, op task.Operation) error {
	if c.evaluate == nil {
		return nil
	}
	if err := c.evaluate(ctx, op); err != nil {
		return fmt.Errorf("condition %v failed: %w", c.name, err)
	}
	return nil
}

// Exclusive returns a condition placing operations in a mutually exclusive category
func Exclusive(category string) *Condition {
	return &Condition{name: category, exclusive: true}
}

// Func returns a condition satisfied when fn returns nil
func Func(name string, fn EvaluateFunc) *Condition {
	return &Condition{name: name, evaluate: fn}
}

// Dependency returns a condition injecting the task returned by fn
func Dependency(name string, fn DependencyFunc) *Condition {
	return &Condition{name: name, dependency: fn}
}

// WithDependency returns a copy of c that also injects a dependency
func (c *Condition) WithDependency(fn DependencyFunc) *Condition {
	ret := *c
	ret.dependency = fn
	return &ret
}

// WithEvaluate returns a copy of c with the supplied predicate
func (c *Condition) WithEvaluate(fn EvaluateFunc) *Condition {
	ret := *c
	ret.evaluate = fn
	return &ret
}

var _ task.Condition = (*Condition)(nil)
