package api

import (
	"os"
	"strings"
)

// DefaultBaseURL is used when no backend address is configured.
const DefaultBaseURL = "http://localhost:3001"

// Environment variables consulted by BaseURLFromEnv, in order of preference.
const (
	EnvAPIBase    = "RETROCHESS_API_BASE"
	EnvBackendURL = "RETROCHESS_BACKEND_URL"
)

// BaseURLFromEnv resolves the backend address from the environment with
// trailing slashes removed.
func BaseURLFromEnv() string {
	return resolveBaseURL(os.Getenv)
}

func resolveBaseURL(getenv func(string) string) string {
	raw := DefaultBaseURL
	for _, key := range []string{EnvAPIBase, EnvBackendURL} {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			raw = v
			break
		}
	}
	return strings.TrimRight(raw, "/")
}
