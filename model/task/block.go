package task

import "context"

// Block is a plain task running a function. It carries no conditions and no
// observers, the queue reports its completion with an empty error list.
type Block struct {
	*Base
	fn func(ctx context.Context)
}

// New creates a plain task
func New(name string, fn func(ctx context.Context)) *Block {
	return &Block{Base: NewBase(name), fn: fn}
}

// Start runs the block unless it was cancelled, then finishes the task
func (b *Block) Start(ctx context.Context) {
	if b.IsFinished() {
		return
	}
	defer b.Finish()
	if !b.IsCancelled() && b.fn != nil {
		b.fn(ctx)
	}
}

var _ Task = (*Block)(nil)
