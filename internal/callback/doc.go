// Package callback translates the runtime's hierarchical lifecycle event stream (playbook,
// play, task, per-host result) into time-correlated statsd counters and gauges.
//
// The dispatcher is the single owner of all mutable state: the naming context that metric
// paths are composed from, and the timing tracker that start timestamps live in. Events are
// handled synchronously in arrival order, so an elapsed-time read always observes the start
// written by an earlier event in the same sequence.
package callback
