// Package statsd implements a minimal client for the statsd plaintext protocol, supporting
// counter and gauge submission over UDP or TCP.
//
// The client deliberately avoids the buffering and connection reuse found in general purpose
// statsd libraries: every submission acquires a socket, writes a single line, and releases
// the socket before returning. UDP submissions are fire-and-forget single datagrams with a
// hard payload size cap; TCP submissions are short-lived connections bounded by a timeout.
// This makes each submission independent and best-effort, so a failed metric never holds
// state that could affect the next one.
package statsd
