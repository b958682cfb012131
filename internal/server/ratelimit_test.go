package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.IsAllowed("alice"))
	}
	assert.False(t, rl.IsAllowed("alice"))
}

func TestRateLimiter_UsersAreIndependent(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, time.Minute)

	assert.True(t, rl.IsAllowed("alice"))
	assert.False(t, rl.IsAllowed("alice"))
	assert.True(t, rl.IsAllowed("bob"))
}

func TestRateLimiter_WindowExpires(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, 10*time.Millisecond)

	assert.True(t, rl.IsAllowed("alice"))
	assert.False(t, rl.IsAllowed("alice"))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, rl.IsAllowed("alice"))
}
