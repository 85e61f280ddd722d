// Package dao defines the generic storage contract used for task journal
// records, its sentinel errors and List filter parameters. Implementations
// live in sub-packages: store (generic in-memory), record/memory and
// record/fs (afs backed JSON files).
package dao
