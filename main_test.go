/* main_test.go
 * Contains unit tests for main.go helper functions
 * Authors: Zachary Bower
 */

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestEnvOr_ReturnsValue tests reading a set environment variable
func TestEnvOr_ReturnsValue(t *testing.T) {
	t.Setenv("PUTTING_LEAGUE_TEST_KEY", "value")

	result := envOr("PUTTING_LEAGUE_TEST_KEY", "fallback")

	assert.Equal(t, "value", result)
}

// TestEnvOr_ReturnsFallbackWhenUnset tests the fallback for a missing variable
func TestEnvOr_ReturnsFallbackWhenUnset(t *testing.T) {
	result := envOr("PUTTING_LEAGUE_MISSING_KEY", "fallback")

	assert.Equal(t, "fallback", result)
}

// TestEnvOr_ReturnsFallbackWhenEmpty tests the fallback for an empty variable
func TestEnvOr_ReturnsFallbackWhenEmpty(t *testing.T) {
	t.Setenv("PUTTING_LEAGUE_TEST_KEY", "")

	result := envOr("PUTTING_LEAGUE_TEST_KEY", "fallback")

	assert.Equal(t, "fallback", result)
}

// TestSplitOrigins_SingleOrigin tests parsing a single origin
func TestSplitOrigins_SingleOrigin(t *testing.T) {
	result := splitOrigins("https://league.example.com")

	assert.Equal(t, []string{"https://league.example.com"}, result)
}

// TestSplitOrigins_MultipleOrigins tests parsing a comma separated list
func TestSplitOrigins_MultipleOrigins(t *testing.T) {
	result := splitOrigins("https://league.example.com, http://localhost:5173")

	assert.Equal(t, []string{"https://league.example.com", "http://localhost:5173"}, result)
}

// TestSplitOrigins_TrimsWhitespace tests that whitespace around origins is removed
func TestSplitOrigins_TrimsWhitespace(t *testing.T) {
	result := splitOrigins("  https://league.example.com  ")

	assert.Equal(t, []string{"https://league.example.com"}, result)
}

// TestSplitOrigins_EmptyInput tests that an empty value yields no origins
func TestSplitOrigins_EmptyInput(t *testing.T) {
	result := splitOrigins("")

	assert.Nil(t, result)
}

// TestSplitOrigins_DropsEmptyEntries tests that stray commas are ignored
func TestSplitOrigins_DropsEmptyEntries(t *testing.T) {
	result := splitOrigins(",https://league.example.com,,")

	assert.Equal(t, []string{"https://league.example.com"}, result)
}
