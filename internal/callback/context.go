package callback

import (
	"path/filepath"
	"strings"
)

// ExecutionContext is the mutable naming context that metric paths are composed from.
// Fields are populated by their owning start events and overwritten in place as the run
// progresses; no history is retained. A field read before its start event has fired is an
// empty string, and composition emits it as an empty path segment rather than rejecting
// the metric.
type ExecutionContext struct {
	// Basedir is the playbook's base directory, with dots rewritten for wire safety.
	Basedir string
	// Playbook is the playbook's name segment.
	Playbook string
	// Play is the active play's display representation.
	Play string
	// Task is the display name of the most recently started non-handler task.
	Task string
	// Plays lists the plays declared at playbook start.
	Plays []string
	// CheckMode reports whether the run is a dry run; transmission is suppressed while it
	// holds. It is seeded true and refreshed from each per-host result.
	CheckMode bool
}

// SetPlaybook populates the basedir and playbook segments from a playbook start event.
//
// Dots delimit path segments on the wire, so dots embedded in the base directory are
// rewritten to underscores. The playbook segment is the file's base name truncated at the
// first dot: "site.retry.yml" contributes "site", including the lossy truncation of file
// names with additional literal dots.
func (c *ExecutionContext) SetPlaybook(basedir string, fileName string, plays []string) {
	c.Basedir = strings.ReplaceAll(basedir, ".", "_")
	c.Playbook = strings.SplitN(filepath.Base(fileName), ".", 2)[0]
	c.Plays = plays
}
