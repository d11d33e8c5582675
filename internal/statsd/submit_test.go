package statsd

import (
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSubmission_Do(t *testing.T) {
	server, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer server.Close()

	_, portStr, err := net.SplitHostPort(server.LocalAddr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	submission := Submission{
		Host:      "127.0.0.1",
		Port:      port,
		Transport: UDP,
		Metric:    "deploys.total",
		Type:      Counter,
		Value:     3,
	}
	require.NoError(t, submission.Do())

	require.NoError(t, server.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 1024)
	n, _, err := server.ReadFrom(buf)
	require.NoError(t, err)
	require.Equal(t, "deploys.total:3|c", string(buf[:n]))
}

func TestSubmission_DoGaugeDelta(t *testing.T) {
	server, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer server.Close()

	_, portStr, err := net.SplitHostPort(server.LocalAddr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	submission := Submission{
		Host:      "127.0.0.1",
		Port:      port,
		Transport: UDP,
		Metric:    "pool.size",
		Type:      Gauge,
		Prefix:    "prod",
		Value:     -2,
		Delta:     true,
	}
	require.NoError(t, submission.Do())

	require.NoError(t, server.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 1024)
	n, _, err := server.ReadFrom(buf)
	require.NoError(t, err)
	require.Equal(t, "prod.pool.size:-2|g|-", string(buf[:n]))
}

func TestSubmission_DoValidation(t *testing.T) {
	require.Error(t, Submission{Port: 8125, Metric: "m"}.Do())
	require.Error(t, Submission{Host: "localhost", Metric: "m"}.Do())
	require.Error(t, Submission{Host: "localhost", Port: 70000, Metric: "m"}.Do())
	require.Error(t, Submission{Host: "localhost", Port: 8125}.Do())
}

func TestSubmission_DoSurfacesTransportFailure(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	_, portStr, err := net.SplitHostPort(listener.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	require.NoError(t, listener.Close())

	submission := Submission{
		Host:      "127.0.0.1",
		Port:      port,
		Transport: TCP,
		Timeout:   500 * time.Millisecond,
		Metric:    "deploys.total",
		Type:      Counter,
		Value:     1,
	}

	var transportErr *TransportError
	require.ErrorAs(t, submission.Do(), &transportErr)
}
