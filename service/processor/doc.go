// Package processor hosts the workers that execute tasks. Added tasks wait
// until they report ready; each ready task is published once onto a message
// queue consumed by the worker goroutines.
package processor
