package statsd

import "fmt"

// PayloadSizeError indicates that a serialized metric line exceeds the maximum size
// permitted for a single UDP datagram. The offending line is rejected outright; nothing is
// transmitted and nothing is truncated.
type PayloadSizeError struct {
	// Size is the serialized size of the rejected line, in bytes.
	Size int
	// Max is the configured datagram size limit, in bytes.
	Max int
}

// Error describes the rejected payload.
func (e *PayloadSizeError) Error() string {
	return fmt.Sprintf("statsd: payload exceeds datagram size limit: size=%d max=%d", e.Size, e.Max)
}

// TransportError indicates a network-level failure while submitting a single metric line.
type TransportError struct {
	// Op is the submission phase that failed: dial or write.
	Op string
	// Err is the underlying network error.
	Err error
}

// Error describes the failed operation and its cause.
func (e *TransportError) Error() string {
	return fmt.Sprintf("statsd: transport failure: op=%s err=%v", e.Op, e.Err)
}

// Unwrap exposes the underlying network error.
func (e *TransportError) Unwrap() error {
	return e.Err
}
