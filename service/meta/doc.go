// Package meta loads YAML (or JSON) documents such as configuration from
// any afs supported URL, expanding ${env.KEY} expressions before decoding.
package meta
