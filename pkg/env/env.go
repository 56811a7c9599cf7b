// Package env reads process environment variables with fallbacks, for the
// few settings resolved outside the envconfig block.
package env

import "os"

// Get returns the value of key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
