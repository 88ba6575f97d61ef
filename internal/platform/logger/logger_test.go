package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKVsRedactsCredentialKeys(t *testing.T) {
	got := sanitizeKVs([]interface{}{"worker_url", "http://w", "Authorization", "Bearer abc", "dangling"})

	assert.Equal(t, []interface{}{"worker_url", "http://w", "Authorization", "[REDACTED]", "dangling"}, got)
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"development", "prod", ""} {
		log, err := New(mode)
		assert.NoError(t, err, mode)
		assert.NotNil(t, log.SugaredLogger, mode)
	}
}
