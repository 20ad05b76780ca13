package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string      gRPC bind address (e.g., ":50051")
//	-m string      metrics bind address, "" disables (e.g., ":9090")
//	-s string      admin JWT HMAC secret key
//	-alg string    hash algorithm: pbkdf2-sha256 or argon2id
//	-i uint        hash iterations (PBKDF2 rounds or Argon2id time cost), 0 for the algorithm default
//	-mem uint      Argon2id memory in KiB, 0 for the default
//	-salt uint     salt length in bytes
//	-key uint      derived key length in bytes
//	-l string      log level
//
// os.Args is first filtered to only these flags with flagx.FilterArgs, so
// flags owned by other layers (like -c) do not break parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-m", "-s", "-alg", "-i", "-mem", "-salt", "-key", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.MetricsAddr, "m", config.MetricsAddr, "address and port for the metrics endpoint")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.HashAlgorithm, "alg", config.HashAlgorithm, "password hash algorithm")
	fs.UintVar(&config.HashIterations, "i", config.HashIterations, "password hash iterations")
	fs.UintVar(&config.HashMemoryKiB, "mem", config.HashMemoryKiB, "argon2id memory (KiB)")
	fs.UintVar(&config.HashSaltLength, "salt", config.HashSaltLength, "salt length (bytes)")
	fs.UintVar(&config.HashKeyLength, "key", config.HashKeyLength, "derived key length (bytes)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
