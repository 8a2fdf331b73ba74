package env

import (
	"os"
	"strings"
)

// Get returns the trimmed value of the given environment variable or a fallback.
func Get(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

// IsConsoleFormat reports whether LOG_FORMAT asks for human readable output.
func IsConsoleFormat() bool {
	return strings.EqualFold(Get("LOG_FORMAT", "json"), "console")
}
