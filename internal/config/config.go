// Package config loads the quote service configuration from the environment.
package config

import "os"

type Config struct {
	// Addr is the listen address for the HTTP quote API.
	Addr string
	// RPCEndpoint is the Ethereum JSON-RPC URL pool state is read from.
	RPCEndpoint string
	LogLevel    string
}

func FromEnv() (*Config, error) {
	rpcURL := os.Getenv("ETH_RPC_URL")
	if rpcURL == "" {
		return nil, ErrMissingRPCEndpoint
	}

	return &Config{
		Addr:        getenv("ADDR", ":1337"),
		RPCEndpoint: rpcURL,
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
