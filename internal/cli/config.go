package cli

import (
	"os"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Output    string
	Timeout   string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("PLAYERCTL_SERVER", "http://localhost:8080"),
		Output:    getEnvOrDefault("PLAYERCTL_OUTPUT", "text"),
		Timeout:   getEnvOrDefault("PLAYERCTL_TIMEOUT", "30s"),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
