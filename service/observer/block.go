package observer

import "github.com/viant/opqueue/model/task"

// Block invokes whichever handler is set for an event; nil handlers are skipped.
// A Block carries no state; sharing it across operations is safe when handlers are reentrant.
type Block struct {
	OnStart   func(op task.Operation)
	OnCancel  func(op task.Operation)
	OnProduce func(op task.Operation, produced task.Task)
	OnFinish  func(op task.Operation, errs []error)
}

// DidStart invokes OnStart
func (b *Block) DidStart(op task.Operation) {
	if b.OnStart != nil {
		b.OnStart(op)
	}
}

// DidCancel invokes OnCancel
func (b *Block) DidCancel(op task.Operation) {
	if b.OnCancel != nil {
		b.OnCancel(op)
	}
}

// DidProduce invokes OnProduce
func (b *Block) DidProduce(op task.Operation, produced task.Task) {
	if b.OnProduce != nil {
		b.OnProduce(op, produced)
	}
}

// DidFinish invokes OnFinish
func (b *Block) DidFinish(op task.Operation, errs []error) {
	if b.OnFinish != nil {
		b.OnFinish(op, errs)
	}
}

// OnFinished returns an observer with finish handler only
func OnFinished(fn func(op task.Operation, errs []error)) *Block {
	return &Block{OnFinish: fn}
}

var _ task.Observer = (*Block)(nil)
