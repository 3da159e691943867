package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_IsValid(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, (&Session{ExpiresAt: now.Add(time.Second)}).IsValid(now))
	assert.False(t, (&Session{ExpiresAt: now}).IsValid(now))
	assert.False(t, (&Session{ExpiresAt: now.Add(-time.Second)}).IsValid(now))
}
