// Package opqueue coordinates task execution queues.
//
// A queue created by the root Service wires every submitted operation
// before handing it to a worker pool:
//
//   - dependency tasks required by the operation's conditions are injected
//     and submitted first,
//   - operations tagged with the same exclusive category never run
//     concurrently, even across queues sharing the Service registry,
//   - lifecycle events (start, cancel, produce, finish) reach observers and
//     the queue delegate, optionally a journal persisting task outcomes.
//
// Typical usage:
//
//	srv, _ := opqueue.New(opqueue.WithConfig(cfg))
//	q, _ := srv.NewQueue(ctx, "ingest")
//	q.Submit(ctx, operation.New("load", load,
//		operation.WithConditions(condition.Exclusive("db"))))
//	defer srv.Shutdown()
package opqueue
