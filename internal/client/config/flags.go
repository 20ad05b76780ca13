package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address and port of the auth server (default from Config)
//	-i int      probe interval in seconds (default from Config)
//	-t int      ready timeout in seconds (default from Config)
//	-l string   log level
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	probeInterval := fs.Int("i", int(cfg.ProbeInterval.Seconds()), "probe interval (in seconds)")
	connectTimeout := fs.Int("t", int(cfg.ConnectTimeout.Seconds()), "ready timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.ProbeInterval = time.Duration(*probeInterval) * time.Second
	cfg.ConnectTimeout = time.Duration(*connectTimeout) * time.Second
}
