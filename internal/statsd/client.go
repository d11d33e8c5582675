//go:generate go run golang.org/x/tools/cmd/stringer@latest -type=Transport -linecomment=true

package statsd

import (
	"fmt"
	"net"
	"strings"
	"time"
)

const (
	// DefaultMaxPacketSize is the default cap on the serialized size of a single UDP
	// datagram, chosen to stay under the conventional safe statsd payload size.
	DefaultMaxPacketSize = 512

	// DefaultTimeout is the default bound on TCP connection establishment and writes.
	DefaultTimeout = 1 * time.Second
)

// Transport describes the network transport used to reach the statsd server.
type Transport int

const (
	// UDP submits each line as a single fire-and-forget datagram.
	UDP Transport = iota // udp
	// TCP submits each line over a short-lived, timeout-bound connection.
	TCP // tcp
)

// ParseTransport looks up a Transport constant by its stringified (case-insensitive)
// representation.
func ParseTransport(transport string) (Transport, bool) {
	knownTransports := []Transport{UDP, TCP}

	for _, knownTransport := range knownTransports {
		if strings.EqualFold(transport, knownTransport.String()) {
			return knownTransport, true
		}
	}

	return UDP, false
}

// Client submits individual metric lines to a statsd server.
type Client interface {
	// Send submits one metric line. Each submission is independent: a socket is acquired,
	// used, and released before return, including on failure paths.
	Send(line Line) error
}

// ClientOpts formalizes client configuration options shared across transports.
type ClientOpts struct {
	// Prefix is prepended, dot-delimited, to the name of every submitted metric. An empty
	// prefix leaves names untouched.
	Prefix string
	// Timeout bounds connection establishment and writes. It is only consulted by the TCP
	// transport; UDP submissions are connectionless.
	Timeout time.Duration
	// MaxPacketSize caps the serialized size of a single UDP datagram. Lines exceeding the
	// cap are rejected with a PayloadSizeError.
	MaxPacketSize int
}

// UDPClient writes each metric line as a single datagram on a fresh socket.
type UDPClient struct {
	addr string
	opts ClientOpts
}

// TCPClient opens a short-lived connection per metric line, bounded by the configured
// timeout.
type TCPClient struct {
	addr string
	opts ClientOpts
}

// NopClient implements Client but discards every line.
type NopClient struct{}

// NewUDPClient creates a UDP client pointed at the specified server address.
func NewUDPClient(addr string, opts ClientOpts) *UDPClient {
	if opts.MaxPacketSize <= 0 {
		opts.MaxPacketSize = DefaultMaxPacketSize
	}

	return &UDPClient{addr: addr, opts: opts}
}

// Send serializes the line and ships it as one datagram. Oversized payloads are rejected
// with a PayloadSizeError before any socket is opened.
func (c *UDPClient) Send(line Line) error {
	payload := []byte(line.Serialize(c.opts.Prefix))
	if len(payload) > c.opts.MaxPacketSize {
		return &PayloadSizeError{Size: len(payload), Max: c.opts.MaxPacketSize}
	}

	conn, err := net.Dial("udp", c.addr)
	if err != nil {
		return &TransportError{Op: "dial", Err: err}
	}
	defer conn.Close()

	if _, err := conn.Write(payload); err != nil {
		return &TransportError{Op: "write", Err: err}
	}

	return nil
}

// NewTCPClient creates a TCP client pointed at the specified server address.
func NewTCPClient(addr string, opts ClientOpts) *TCPClient {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	return &TCPClient{addr: addr, opts: opts}
}

// Send serializes the line and writes it over a connection established for this submission
// alone. Both the connect and the write are bounded by the configured timeout.
func (c *TCPClient) Send(line Line) error {
	payload := []byte(line.Serialize(c.opts.Prefix))

	conn, err := net.DialTimeout("tcp", c.addr, c.opts.Timeout)
	if err != nil {
		return &TransportError{Op: "dial", Err: err}
	}
	defer conn.Close()

	return writeConn(conn, payload, c.opts.Timeout)
}

// writeConn writes one payload to an established connection, bounded by the timeout. The
// returned TransportError names the phase that actually failed.
func writeConn(conn net.Conn, payload []byte, timeout time.Duration) error {
	if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return &TransportError{Op: "deadline", Err: err}
	}

	if _, err := conn.Write(payload); err != nil {
		return &TransportError{Op: "write", Err: err}
	}

	return nil
}

// NewNopClient creates a client that silently drops all submissions. It backs the disabled
// configuration path.
func NewNopClient() *NopClient {
	return &NopClient{}
}

// Send noops.
func (c *NopClient) Send(line Line) error {
	return nil
}

// NewClient creates a client for the given transport, pointed at the specified server
// address.
func NewClient(transport Transport, addr string, opts ClientOpts) (Client, error) {
	switch transport {
	case UDP:
		return NewUDPClient(addr, opts), nil
	case TCP:
		return NewTCPClient(addr, opts), nil
	default:
		return nil, fmt.Errorf("statsd: unknown transport: transport=%d", transport)
	}
}
