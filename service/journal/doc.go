// Package journal provides a queue delegate that records every task passing
// through a queue, from WillAdd to DidFinish, into a dao record store.
package journal
