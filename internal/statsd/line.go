//go:generate go run golang.org/x/tools/cmd/stringer@latest -type=MetricType -linecomment=true

package statsd

import (
	"strconv"
	"strings"
)

// MetricType parametrizes the statsd metric kinds that can be encoded in a line.
type MetricType int

const (
	// Counter is a monotonically reported increment.
	Counter MetricType = iota // c
	// Gauge is an absolute point value, or a relative adjustment when marked as a delta.
	Gauge // g
)

// ParseMetricType looks up a MetricType constant by its long (case-insensitive) name.
func ParseMetricType(metricType string) (MetricType, bool) {
	switch strings.ToLower(metricType) {
	case "counter":
		return Counter, true
	case "gauge":
		return Gauge, true
	default:
		return Counter, false
	}
}

// Line is a single immutable metric submission.
type Line struct {
	// Name is the dotted metric path, exclusive of any client-level prefix.
	Name string
	// Value is the metric value; counters carry increments and gauges carry levels.
	Value float64
	// Type selects the statsd metric kind.
	Type MetricType
	// Delta marks a gauge as a relative adjustment rather than an absolute level. It has
	// no effect on counters.
	Delta bool
}

// Serialize encodes the line in the statsd plaintext format, prepending the dot-delimited
// prefix when one is configured: name:value|type, with a trailing |+ or |- for gauge
// deltas. The sign suffix is derived from the sign of the value.
func (l Line) Serialize(prefix string) string {
	var b strings.Builder

	if prefix != "" {
		b.WriteString(prefix)
		b.WriteByte('.')
	}

	b.WriteString(l.Name)
	b.WriteByte(':')
	b.WriteString(strconv.FormatFloat(l.Value, 'f', -1, 64))
	b.WriteByte('|')
	b.WriteString(l.Type.String())

	if l.Delta && l.Type == Gauge {
		if l.Value < 0 {
			b.WriteString("|-")
		} else {
			b.WriteString("|+")
		}
	}

	return b.String()
}
