package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	got := sanitizeKVs([]interface{}{"email", "a@mensa.de", "Password", "hunter22", "token", "abc", "dangling"})
	assert.Equal(t, []interface{}{"email", "a@mensa.de", "Password", "[REDACTED]", "token", "[REDACTED]", "dangling"}, got)
}

func TestNopLoggerDoesNotPanic(t *testing.T) {
	log := Nop()
	log.With("service", "test").Info("hello", "k", 1)
	log.Sync()
}
