/* utils.go
 * Utility functions used across the application
 * Authors: Zachary Bower
 */

package main

import (
	"os"
	"strings"
)

// envOr reads an environment variable with a fallback
// Preconditions: Receives an environment variable name and a fallback value
// Postconditions: Returns the variable's value, or the fallback when unset or empty
func envOr(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// splitOrigins parses a comma separated origin list for the CORS config
// Preconditions: Receives a comma separated list of origins, possibly empty
// Postconditions: Returns the trimmed non-empty origins, or nil when there are none
func splitOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
