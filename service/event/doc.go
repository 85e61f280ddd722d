// Package event streams task lifecycle events. An Observer attached to
// operations publishes them through a Publisher backed by a messaging
// queue; a Listener consumes them on its own goroutine.
package event
