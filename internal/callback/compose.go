package callback

import (
	"fmt"

	"playstatsd/internal/event"
	"playstatsd/internal/statsd"
)

const (
	counterNamespace = "ansible.counter"
	gaugeNamespace   = "ansible.gauge"
)

// ComposeEventMetrics builds the counter and gauge lines for a single per-host task
// outcome: a counter incrementing the (basedir, playbook, play, task, host, outcome) path
// by one, and a gauge carrying the task's elapsed seconds under the same path. The same
// context and event always yield byte-identical lines.
func ComposeEventMetrics(ctx ExecutionContext, host string, outcome event.Outcome, elapsedSeconds float64) (statsd.Line, statsd.Line) {
	path := fmt.Sprintf(
		"%s.%s.%s.%s.%s.%s",
		ctx.Basedir,
		ctx.Playbook,
		ctx.Play,
		ctx.Task,
		host,
		outcome,
	)

	counter := statsd.Line{
		Name:  fmt.Sprintf("%s.%s", counterNamespace, path),
		Value: 1,
		Type:  statsd.Counter,
	}

	gauge := statsd.Line{
		Name:  fmt.Sprintf("%s.%s", gaugeNamespace, path),
		Value: elapsedSeconds,
		Type:  statsd.Gauge,
	}

	return counter, gauge
}
