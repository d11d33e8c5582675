package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"playstatsd/internal/callback"
	"playstatsd/internal/event"
	"playstatsd/internal/log"
	"playstatsd/internal/meta"
	"playstatsd/internal/statsd"

	"github.com/getsentry/raven-go"
)

func main() {
	// The send subcommand performs a single context-free metric submission; every other
	// invocation relays a lifecycle event stream from standard input.
	if len(os.Args) > 1 && os.Args[1] == "send" {
		os.Exit(sendMain(os.Args[2:]))
	}

	os.Exit(relayMain(os.Args[1:]))
}

// relayMain reads newline-delimited JSON lifecycle events from standard input until EOF and
// dispatches each into statsd metric submissions. The exit code is nonzero if any event
// could not be decoded or handled; transport failures alone do not fail the process.
func relayMain(args []string) int {
	flags := flag.NewFlagSet("playstatsd", flag.ExitOnError)
	configPath := flags.String(
		"config",
		os.Getenv("PLAYSTATSD_CONFIG"),
		"path to the configuration file on disk",
	)
	version := flags.Bool(
		"version",
		false,
		"print the compiled playstatsd version SHA",
	)
	verbosity := flags.String(
		"verbosity",
		"warn",
		"desired logging verbosity: one of error, warn, info, debug",
	)
	flags.Parse(args)

	// Report the compiled version and exit
	if *version {
		fmt.Printf("playstatsd/%s\n", meta.VersionSHA)
		return 0
	}

	level, _ := log.ParseLevel(*verbosity)
	logger := log.NewConsoleLogger(level)
	logger.Debug("main: initialized logger: level=%v", level)

	logger.Debug("main: reading and parsing config: path=%s", *configPath)
	config, err := meta.ParseConfig(*configPath)
	if err != nil {
		panic(err)
	}

	// Configure error reporting
	if config.Application != nil && config.Application.SentryDSN != "" {
		raven.SetDSN(config.Application.SentryDSN)
		raven.SetRelease(meta.VersionSHA)
	}

	// Configure metric emission; an absent statsd endpoint makes the relay inert rather
	// than fatal.
	client := statsd.Client(statsd.NewNopClient())

	if config.Statsd == nil {
		logger.Warn("main: statsd host and port not configured; metric emission disabled")
	} else {
		transport, _ := statsd.ParseTransport(config.Statsd.Protocol)
		addr := net.JoinHostPort(config.Statsd.Host, strconv.Itoa(config.Statsd.Port))

		client, err = statsd.NewClient(transport, addr, statsd.ClientOpts{
			Prefix:        config.Statsd.MetricPrefix,
			Timeout:       config.Statsd.Timeout,
			MaxPacketSize: config.Statsd.MaxPacketSize,
		})
		if err != nil {
			panic(err)
		}

		logger.Info(
			"main: configured statsd metric emission: addr=%s protocol=%s prefix=%s",
			addr, transport, config.Statsd.MetricPrefix,
		)
	}

	dispatcher := callback.NewDispatcher(client, logger)

	exit := 0
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		e, err := event.Decode(line)
		if err != nil {
			logger.Error("main: dropping undecodable event: err=%v", err)
			exit = 1
			continue
		}

		// Ordering violations are reported and counted against the exit code, but the
		// stream keeps draining: one upstream bug should not silence every later metric.
		if err := dispatcher.HandleEvent(e); err != nil {
			logger.Error("main: event handling failed: err=%v", err)
			raven.CaptureError(err, nil)
			exit = 1
		}
	}

	if err := scanner.Err(); err != nil {
		logger.Error("main: error reading event stream: err=%v", err)
		exit = 1
	}

	return exit
}

// sendMain performs exactly one counter or gauge submission described entirely by flags,
// surfacing any failure as the process outcome.
func sendMain(args []string) int {
	flags := flag.NewFlagSet("playstatsd send", flag.ExitOnError)
	host := flags.String("host", "localhost", "statsd hostname or IP to submit to")
	port := flags.Int("port", 8125, "statsd port")
	protocol := flags.String("protocol", "udp", "statsd transport protocol: udp or tcp")
	timeout := flags.Duration("timeout", 1*time.Second, "connect and write timeout; tcp only")
	metric := flags.String("metric", "", "metric name to submit")
	metricType := flags.String("type", "counter", "metric type: counter or gauge")
	prefix := flags.String("prefix", "", "optional metric name prefix")
	value := flags.Float64("value", 1, "metric value")
	delta := flags.Bool("delta", false, "submit the gauge value as a relative adjustment")
	verbosity := flags.String("verbosity", "warn", "desired logging verbosity: one of error, warn, info, debug")
	flags.Parse(args)

	level, _ := log.ParseLevel(*verbosity)
	logger := log.NewConsoleLogger(level)

	transport, ok := statsd.ParseTransport(*protocol)
	if !ok {
		logger.Error("send: unknown transport protocol: protocol=%s", *protocol)
		return 2
	}

	mtype, ok := statsd.ParseMetricType(*metricType)
	if !ok {
		logger.Error("send: unknown metric type: type=%s", *metricType)
		return 2
	}

	submission := statsd.Submission{
		Host:      *host,
		Port:      *port,
		Transport: transport,
		Timeout:   *timeout,
		Metric:    *metric,
		Type:      mtype,
		Prefix:    *prefix,
		Value:     *value,
		Delta:     *delta,
	}

	if err := submission.Do(); err != nil {
		logger.Error("send: metric submission failed: err=%v", err)
		return 1
	}

	logger.Info(
		"send: submitted metric: metric=%s type=%s value=%v",
		*metric, mtype, *value,
	)

	return 0
}
