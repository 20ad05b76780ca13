package config

import (
	"net"
	"os"
	"time"
)

// HostEnvVar names the auth server host. In Docker it is set to the service
// name; without it the prober targets [::0].
const HostEnvVar = "AUTH_SERVICE_HOST_NAME"

const (
	defaultHost = "::0"
	defaultPort = "50051"
)

// Config holds runtime settings for the health-check prober.
//
// Fields:
//   - ServerEndpointAddr: host:port of the auth gRPC endpoint.
//   - ProbeInterval: pause between two probe rounds.
//   - ConnectTimeout: how long to wait for the server to report SERVING.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerEndpointAddr string
	ProbeInterval      time.Duration
	ConnectTimeout     time.Duration
	LogLevel           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	host := os.Getenv(HostEnvVar)
	if host == "" {
		host = defaultHost
	}

	c.ServerEndpointAddr = net.JoinHostPort(host, defaultPort)
	c.ProbeInterval = 3 * time.Second
	c.ConnectTimeout = 30 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
