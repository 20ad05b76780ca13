// Package config loads runtime configuration for the gophauth health-check
// prober.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults), including the
//     AUTH_SERVICE_HOST_NAME environment variable for the server host.
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the auth gRPC endpoint
//	-i int      probe interval (seconds)
//	-t int      how long to wait for the server to become ready (seconds)
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "auth:50051",
//	  "probe_interval": "3s",
//	  "connect_timeout": "30s",
//	  "log_level": "info"
//	}
package config
