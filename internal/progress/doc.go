// Package progress defines the progress reporting primitives shared by the
// summation engines and the frontends. It provides a channel-based update
// type for fan-in aggregation and an observer pattern for decoupled
// notification of multiple listeners.
package progress
