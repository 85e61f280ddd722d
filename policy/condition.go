package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/opqueue/model/condition"
	"github.com/viant/opqueue/model/task"
)

// ErrDenied is returned for operations rejected by a policy
var ErrDenied = errors.New("policy: denied")

// Evaluate checks op against p
func (p *Policy) Evaluate(ctx context.Context, op task.Operation) error {
	if p == nil {
		return nil
	}
	if !p.IsAllowed(op.Name()) {
		return fmt.Errorf("%w: %v is not allowed", ErrDenied, op.Name())
	}
	switch p.Mode {
	case ModeDeny:
		return fmt.Errorf("%w: %v", ErrDenied, op.Name())
	case ModeAsk:
		if p.Ask == nil || !p.Ask(ctx, op, p) {
			return fmt.Errorf("%w: %v was not approved", ErrDenied, op.Name())
		}
	}
	return nil
}

// Gate returns a readiness condition enforcing p; a nil p falls back to the
// policy carried by the evaluation context.
func Gate(p *Policy) task.Condition {
	return condition.Func("Policy", func(ctx context.Context, op task.Operation) error {
		if p == nil {
			return FromContext(ctx).Evaluate(ctx, op)
		}
		return p.Evaluate(ctx, op)
	})
}
