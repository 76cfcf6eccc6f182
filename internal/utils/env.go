package utils

import "os"

// SafeEnv returns the value of the named environment variable, or fallback
// when it is unset or empty.
func SafeEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
