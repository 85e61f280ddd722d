package condition

import (
	"context"
	"fmt"

	"github.com/viant/opqueue/model/task"
)

// NoCancelledDependencies fails when any dependency was cancelled
func NoCancelledDependencies() *Condition {
	return Func("NoCancelledDependencies", func(ctx context.Context, op task.Operation) error {
		var cancelled []string
		for _, dep := range op.Dependencies() {
			if dep.IsCancelled() {
				cancelled = append(cancelled, dep.Name())
			}
		}
		if len(cancelled) > 0 {
			return fmt.Errorf("cancelled dependencies: %v", cancelled)
		}
		return nil
	})
}

type silent struct {
	task.Condition
}

// Dependency always returns nil
func (s *silent) Dependency(task.Operation) task.Task { return nil }

// Silent wraps condition suppressing its injected dependency; evaluation and
// exclusivity are kept.
func Silent(condition task.Condition) task.Condition {
	return &silent{Condition: condition}
}

type negated struct {
	task.Condition
}

// Name returns negated name
func (n *negated) Name() string { return "Not<" + n.Condition.Name() + ">" }

// MutuallyExclusive is always false for a negated condition
func (n *negated) MutuallyExclusive() bool { return false }

// Evaluate succeeds when the wrapped condition fails
func (n *negated) Evaluate(ctx context.Context, op task.Operation) error {
	if err := n.Condition.Evaluate(ctx, op); err != nil {
		return nil
	}
	return fmt.Errorf("condition %v succeeded", n.Condition.Name())
}

// Negated wraps condition inverting its evaluation
func Negated(condition task.Condition) task.Condition {
	return &negated{Condition: condition}
}
