//go:generate go run golang.org/x/tools/cmd/stringer@latest -type=Outcome -linecomment=true

package event

import (
	"strings"
)

// Outcome parametrizes the terminal statuses of a task execution on one host.
type Outcome int

const (
	// OK indicates the task completed successfully.
	OK Outcome = iota // ok
	// Skipped indicates the task was not executed on the host.
	Skipped // skipped
	// Failed indicates the task failed on the host.
	Failed // failed
	// AsyncFailed indicates an asynchronously polled task failed on the host.
	AsyncFailed // async_failed
	// Unreachable indicates the host could not be contacted at all.
	Unreachable // unreachable
)

// ParseOutcome looks up an Outcome constant by its stringified (case-insensitive)
// representation.
func ParseOutcome(outcome string) (Outcome, bool) {
	knownOutcomes := []Outcome{OK, Skipped, Failed, AsyncFailed, Unreachable}

	for _, knownOutcome := range knownOutcomes {
		if strings.EqualFold(outcome, knownOutcome.String()) {
			return knownOutcome, true
		}
	}

	return OK, false
}

// OutcomeCounts is the aggregate end-of-run result structure: outcome category to host to
// count. It is produced wholesale by the runtime and read-only here.
type OutcomeCounts map[string]map[string]int

// Event is a single lifecycle event delivered by the automation runtime.
type Event interface {
	event()
}

// PlaybookStart marks the beginning of a playbook run.
type PlaybookStart struct {
	// Basedir is the directory the playbook was loaded from.
	Basedir string `json:"basedir"`
	// FileName is the playbook's file name, extension included.
	FileName string `json:"file"`
	// Plays lists the plays declared by the playbook.
	Plays []string `json:"plays"`
}

// PlayStart marks the beginning of a play within the running playbook.
type PlayStart struct {
	// Play is the play's display representation.
	Play string `json:"play"`
}

// TaskStart marks the beginning of a task or handler task within the running play. Handler
// starts participate in timing but do not change the displayed task name.
type TaskStart struct {
	// Name is the task's display name.
	Name string `json:"task"`
	// UUID is the task's unique identifier, the key that later host outcomes correlate
	// against.
	UUID string `json:"uuid"`
	// Handler distinguishes handler task starts from regular task starts.
	Handler bool `json:"-"`
}

// HostOutcome reports the terminal status of one task execution on one host.
type HostOutcome struct {
	// TaskUUID identifies the task this outcome belongs to.
	TaskUUID string `json:"uuid"`
	// Host is the host the task ran against.
	Host string `json:"host"`
	// CheckMode reports whether the task executed as a dry run.
	CheckMode bool `json:"check_mode"`
	// Status is the task's terminal status on this host.
	Status Outcome `json:"-"`
}

// RunEnd delivers the aggregate per-host outcome counts at the end of the run.
type RunEnd struct {
	// Stats are the final outcome counts, keyed by category then host.
	Stats OutcomeCounts `json:"stats"`
}

func (PlaybookStart) event() {}
func (PlayStart) event()     {}
func (TaskStart) event()     {}
func (HostOutcome) event()   {}
func (RunEnd) event()        {}
