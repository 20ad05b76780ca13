// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"fmt"
	"math"

	"github.com/dmitrijs2005/gophauth/internal/cryptox"
)

// Config holds runtime settings for the gophauth server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the gRPC endpoint.
//   - MetricsAddr: bind address for the Prometheus /metrics endpoint; empty disables it.
//   - SecretKey: HMAC secret for admin JWTs (HS256). Do not use test defaults in prod.
//   - HashAlgorithm, HashIterations, HashMemoryKiB, HashSaltLength, HashKeyLength:
//     work factor for newly stored credentials (see cryptox.Params). Zero
//     means the default of HashAlgorithm.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrGRPC string
	MetricsAddr      string
	SecretKey        string
	HashAlgorithm    string
	HashIterations   uint
	HashMemoryKiB    uint
	HashSaltLength   uint
	HashKeyLength    uint
	LogLevel         string
}

// LoadDefaults populates Config with sensible development defaults.
// HashIterations and HashMemoryKiB stay zero so the chosen algorithm's own
// defaults apply.
// NOTE: SecretKey is insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	p := cryptox.DefaultParams()

	c.EndpointAddrGRPC = ":50051"
	c.MetricsAddr = ":9090"
	c.SecretKey = "secretKey"
	c.HashAlgorithm = p.Algorithm
	c.HashIterations = 0
	c.HashMemoryKiB = 0
	c.HashSaltLength = uint(p.SaltLength)
	c.HashKeyLength = uint(p.KeyLength)
	c.LogLevel = "info"
}

// HashParams converts the hashing settings into cryptox.Params, starting from
// the defaults of HashAlgorithm and overriding every non-zero field.
func (c *Config) HashParams() (cryptox.Params, error) {
	p := cryptox.DefaultParamsFor(c.HashAlgorithm)

	fields := []struct {
		name string
		src  uint
		dst  *uint32
	}{
		{"hash iterations", c.HashIterations, &p.Iterations},
		{"hash memory", c.HashMemoryKiB, &p.MemoryKiB},
		{"hash salt length", c.HashSaltLength, &p.SaltLength},
		{"hash key length", c.HashKeyLength, &p.KeyLength},
	}
	for _, f := range fields {
		if f.src == 0 {
			continue
		}
		if uint64(f.src) > math.MaxUint32 {
			return cryptox.Params{}, fmt.Errorf("%s %d out of range", f.name, f.src)
		}
		*f.dst = uint32(f.src)
	}

	return p, nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
