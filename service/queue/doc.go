// Package queue wraps the processor with dependency injection, cross-queue
// mutual exclusivity and uniform completion reporting.
//
// Submitting an operation attaches a finish/produce observer, submits every
// dependency its conditions inject, registers its exclusive categories with
// the exclusivity registry, notifies the delegate and only then hands it to
// the processor and signals DidEnqueue. An operation therefore never becomes
// ready before its full dependency set is attached.
//
// Injected dependencies forming a cycle are not detected; the tasks
// involved never become ready.
package queue
