package meta

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"playstatsd/internal/statsd"
)

const (
	// DefaultStatsdHost is the statsd host assumed when the block is present but the host
	// is unset.
	DefaultStatsdHost = "127.0.0.1"

	// DefaultStatsdPort is the statsd port assumed when the block is present but the port
	// is unset. It matches the conventional statsd exporter ingestion port.
	DefaultStatsdPort = 9125
)

// ApplicationConfig is a top-level block for application-level meta configuration.
type ApplicationConfig struct {
	SentryDSN string `yaml:"sentry_dsn"`
}

// StatsdConfig is a top-level block describing the statsd endpoint that metrics are
// submitted to. Omitting the block entirely (and setting neither STATSD_HOST nor
// STATSD_PORT in the environment) disables metric emission without being an error.
type StatsdConfig struct {
	Host          string        `yaml:"host"`
	Port          int           `yaml:"port"`
	Protocol      string        `yaml:"protocol"`
	Timeout       time.Duration `yaml:"timeout"`
	MaxPacketSize int           `yaml:"max_packet_size"`
	MetricPrefix  string        `yaml:"metric_prefix"`
}

// Config describes all recognized configuration options.
type Config struct {
	Application *ApplicationConfig `yaml:"application"`
	Statsd      *StatsdConfig      `yaml:"statsd"`
}

// ParseConfig parses a Config from a file specified as a path on disk, then overlays
// environment variables and fills defaults. An empty path skips the file and builds the
// configuration from the environment alone.
func ParseConfig(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: error reading config: err=%v", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: error parsing config: err=%v", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.fillDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overlays STATSD_HOST and STATSD_PORT from the environment. Either variable
// materializes the statsd block when the config file omits it.
func (c *Config) applyEnv() error {
	host, hostSet := os.LookupEnv("STATSD_HOST")
	port, portSet := os.LookupEnv("STATSD_PORT")

	if !hostSet && !portSet {
		return nil
	}

	if c.Statsd == nil {
		c.Statsd = &StatsdConfig{}
	}

	if hostSet {
		c.Statsd.Host = host
	}

	if portSet {
		parsed, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("config: invalid STATSD_PORT value: value=%s", port)
		}
		c.Statsd.Port = parsed
	}

	return nil
}

// fillDefaults populates unset statsd fields, leaving an absent block absent.
func (c *Config) fillDefaults() {
	if c.Statsd == nil {
		return
	}

	if c.Statsd.Host == "" {
		c.Statsd.Host = DefaultStatsdHost
	}

	if c.Statsd.Port == 0 {
		c.Statsd.Port = DefaultStatsdPort
	}

	if c.Statsd.Protocol == "" {
		c.Statsd.Protocol = statsd.UDP.String()
	}

	if c.Statsd.Timeout == 0 {
		c.Statsd.Timeout = statsd.DefaultTimeout
	}

	if c.Statsd.MaxPacketSize == 0 {
		c.Statsd.MaxPacketSize = statsd.DefaultMaxPacketSize
	}
}

// validate the contents of the configuration. Returns an error if validation failed; nil
// otherwise.
func (c *Config) validate() error {
	// Users can omit the statsd block entirely to disable metric emission.
	if c.Statsd == nil {
		return nil
	}

	if c.Statsd.Port < 0 || c.Statsd.Port > 65535 {
		return fmt.Errorf("config: statsd port out of range: port=%d", c.Statsd.Port)
	}

	if _, ok := statsd.ParseTransport(c.Statsd.Protocol); !ok {
		return fmt.Errorf("config: unknown statsd protocol: protocol=%s", c.Statsd.Protocol)
	}

	if c.Statsd.Timeout < 0 {
		return fmt.Errorf("config: statsd timeout must not be negative: timeout=%v", c.Statsd.Timeout)
	}

	if c.Statsd.MaxPacketSize < 0 {
		return fmt.Errorf("config: statsd max packet size must not be negative: size=%d", c.Statsd.MaxPacketSize)
	}

	return nil
}
