package callback

import (
	"fmt"
	"time"
)

// MissingStartError indicates a completion event for an execution unit whose start was
// never recorded. It signals an event ordering bug in the delivering runtime, so it is
// surfaced to the caller rather than converted into a garbage elapsed time.
type MissingStartError struct {
	// Kind is the execution unit kind: playbook, play, or task.
	Kind string
	// ID is the task unique identifier, when Kind is task.
	ID string
}

// Error describes the unit whose start is missing.
func (e *MissingStartError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("callback: no start recorded for unit: kind=%s", e.Kind)
	}
	return fmt.Sprintf("callback: no start recorded for unit: kind=%s id=%s", e.Kind, e.ID)
}

// TimingTracker records start timestamps for nested execution units and computes elapsed
// durations for their completion events, even when units complete out of declaration order.
//
// Playbook and play have a single active instance at a time and are tracked as scalar
// timestamps; tasks are keyed by unique identifier. Task entries are never evicted: the
// tracker's footprint is bounded by the number of distinct tasks in a run, and the process
// model is one run per process.
type TimingTracker struct {
	playbook time.Time
	play     time.Time
	tasks    map[string]time.Time
}

// NewTimingTracker creates an empty tracker.
func NewTimingTracker() *TimingTracker {
	return &TimingTracker{
		tasks: make(map[string]time.Time),
	}
}

// StartPlaybook records the playbook start timestamp.
func (t *TimingTracker) StartPlaybook(start time.Time) {
	t.playbook = start
}

// StartPlay records the start timestamp of the active play, replacing any prior play's.
func (t *TimingTracker) StartPlay(start time.Time) {
	t.play = start
}

// StartTask records a start timestamp keyed by the task's unique identifier.
func (t *TimingTracker) StartTask(id string, start time.Time) {
	t.tasks[id] = start
}

// ElapsedPlaybook returns the seconds elapsed between the playbook start and now.
func (t *TimingTracker) ElapsedPlaybook(now time.Time) (float64, error) {
	if t.playbook.IsZero() {
		return 0, &MissingStartError{Kind: "playbook"}
	}

	return now.Sub(t.playbook).Seconds(), nil
}

// ElapsedPlay returns the seconds elapsed between the active play's start and now.
func (t *TimingTracker) ElapsedPlay(now time.Time) (float64, error) {
	if t.play.IsZero() {
		return 0, &MissingStartError{Kind: "play"}
	}

	return now.Sub(t.play).Seconds(), nil
}

// ElapsedTask returns the seconds elapsed between the identified task's start and now.
func (t *TimingTracker) ElapsedTask(id string, now time.Time) (float64, error) {
	start, ok := t.tasks[id]
	if !ok {
		return 0, &MissingStartError{Kind: "task", ID: id}
	}

	return now.Sub(start).Seconds(), nil
}
