package statsd

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Submission describes a single, fully specified metric submission, independent of any
// surrounding run context. It backs one-shot submission callers that have no event stream
// to correlate against.
type Submission struct {
	// Host is the statsd server hostname or IP.
	Host string
	// Port is the statsd server port.
	Port int
	// Transport selects UDP or TCP delivery.
	Transport Transport
	// Timeout bounds TCP connection establishment and writes.
	Timeout time.Duration
	// Metric is the dotted metric name.
	Metric string
	// Type selects the statsd metric kind.
	Type MetricType
	// Prefix is an optional metric name prefix.
	Prefix string
	// Value is the counter increment or gauge level.
	Value float64
	// Delta submits a gauge value as a relative adjustment. It is ignored for counters.
	Delta bool
}

// Do validates the submission and performs exactly one send. Unlike the streaming event
// path, failures are returned to the caller: a one-shot submission has no surrounding run
// to protect, so its caller owns the outcome.
func (s Submission) Do() error {
	if err := s.validate(); err != nil {
		return err
	}

	addr := net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
	client, err := NewClient(s.Transport, addr, ClientOpts{
		Prefix:  s.Prefix,
		Timeout: s.Timeout,
	})
	if err != nil {
		return err
	}

	line := Line{
		Name:  s.Metric,
		Value: s.Value,
		Type:  s.Type,
		Delta: s.Delta && s.Type == Gauge,
	}

	return client.Send(line)
}

// validate checks the submission's shape before any network activity.
func (s Submission) validate() error {
	if s.Host == "" {
		return fmt.Errorf("statsd: missing submission host")
	}

	if s.Port <= 0 || s.Port > 65535 {
		return fmt.Errorf("statsd: submission port out of range: port=%d", s.Port)
	}

	if s.Metric == "" {
		return fmt.Errorf("statsd: missing submission metric name")
	}

	return nil
}
