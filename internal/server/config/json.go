package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

// JsonConfig is the on-disk shape of the server configuration. Fields left
// out of the file keep their previous value.
type JsonConfig struct {
	EndpointAddrGRPC string  `json:"endpoint_addr_grpc"`
	MetricsAddr      *string `json:"metrics_addr"`
	SecretKey        string  `json:"secret_key"`
	HashAlgorithm    string  `json:"hash_algorithm"`
	HashIterations   uint    `json:"hash_iterations"`
	HashMemoryKiB    uint    `json:"hash_memory_kib"`
	HashSaltLength   uint    `json:"hash_salt_length"`
	HashKeyLength    uint    `json:"hash_key_length"`
	LogLevel         string  `json:"log_level"`
}

// parseJson overlays values from the file named by -c / -config onto config.
// Nothing happens when neither flag is given. An unreadable file or invalid
// JSON panics.
//
// metrics_addr is a pointer so that an explicit "" can disable the metrics
// endpoint.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	if c.MetricsAddr != nil {
		config.MetricsAddr = *c.MetricsAddr
	}
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.HashAlgorithm, c.HashAlgorithm)
	setUint(&config.HashIterations, c.HashIterations)
	setUint(&config.HashMemoryKiB, c.HashMemoryKiB)
	setUint(&config.HashSaltLength, c.HashSaltLength)
	setUint(&config.HashKeyLength, c.HashKeyLength)
	setString(&config.LogLevel, c.LogLevel)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setUint(dst *uint, v uint) {
	if v != 0 {
		*dst = v
	}
}
