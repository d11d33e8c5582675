// Package event defines the lifecycle events delivered by the automation runtime during a
// playbook run, as a closed set of tagged variants.
//
// Each variant carries exactly the fields its consumers need, resolved at decode time; no
// component downstream of this package inspects payload shapes at runtime. Events arrive as
// newline-delimited JSON objects discriminated by an "event" field.
package event
