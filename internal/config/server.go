package config

import (
	"fmt"
	"strconv"
)

// ServerConfig holds configuration for the fixture travel site
type ServerConfig struct {
	Port string
}

// LoadServerConfig loads server configuration from environment variables
func LoadServerConfig(getenv func(string) string) (ServerConfig, error) {
	port := getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		return ServerConfig{}, fmt.Errorf("PORT must be a port number, got %q", port)
	}

	return ServerConfig{
		Port: port,
	}, nil
}

// Addr returns the listen address for the server
func (c ServerConfig) Addr() string {
	return ":" + c.Port
}
