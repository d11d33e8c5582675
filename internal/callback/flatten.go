package callback

import (
	"fmt"

	"playstatsd/internal/event"
	"playstatsd/internal/statsd"
)

// FlattenRunStats walks the end-of-run outcome counts and emits one counter and gauge pair
// per (category, host) leaf under a non-empty category. Iteration order over categories
// and hosts is not specified.
//
// The gauge carries the run's total elapsed seconds under a path with no category or host
// dimension, so its line repeats identically for every pair. That duplication matches the
// established metric contract and is deliberately not collapsed.
func FlattenRunStats(ctx ExecutionContext, runtimeSeconds float64, counts event.OutcomeCounts) []statsd.Line {
	var lines []statsd.Line

	for category, hosts := range counts {
		if len(hosts) == 0 {
			continue
		}

		for host := range hosts {
			lines = append(lines, statsd.Line{
				Name: fmt.Sprintf(
					"%s.stats.%s.%s.%s.%s",
					counterNamespace,
					ctx.Basedir,
					ctx.Playbook,
					category,
					host,
				),
				Value: 1,
				Type:  statsd.Counter,
			})

			lines = append(lines, statsd.Line{
				Name: fmt.Sprintf(
					"%s.stats.%s.%s",
					gaugeNamespace,
					ctx.Basedir,
					ctx.Playbook,
				),
				Value: runtimeSeconds,
				Type:  statsd.Gauge,
			})
		}
	}

	return lines
}
