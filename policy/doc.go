// Package policy provides optional declarative execution rules for
// operations: a mode (auto, ask, deny) and allow/block lists of operation
// names, enforced as a queue wide readiness condition.
package policy
