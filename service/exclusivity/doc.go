// Package exclusivity keeps track of in-flight tasks that declared mutually
// exclusive categories. Each category is a FIFO lane: a registering task
// becomes a dependent of the lane's current tail, so tasks sharing a category
// run one at a time in registration order, whichever queue they belong to.
//
// All registry mutations share one lock; registering a task under several
// categories is atomic with respect to every other Register and Unregister.
package exclusivity
