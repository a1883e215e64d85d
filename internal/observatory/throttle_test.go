package observatory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestThrottleSlidingWindow(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	th := NewThrottle(2, time.Minute)

	assert.True(t, th.allowAt(base))
	assert.True(t, th.allowAt(base.Add(time.Second)))
	assert.False(t, th.allowAt(base.Add(2*time.Second)))

	// Once the first timestamp ages out, a slot frees up.
	assert.True(t, th.allowAt(base.Add(61*time.Second)))
	assert.False(t, th.allowAt(base.Add(62*time.Second)))
}

func TestThrottleWindowBoundary(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	th := NewThrottle(1, time.Minute)

	assert.True(t, th.allowAt(base))
	// A timestamp exactly one window old is no longer counted.
	assert.True(t, th.allowAt(base.Add(time.Minute)))
}

func TestThrottleRemaining(t *testing.T) {
	th := NewThrottle(3, time.Minute)
	assert.Equal(t, 3, th.Remaining())

	assert.True(t, th.Allow())
	assert.Equal(t, 2, th.Remaining())

	assert.True(t, th.Allow())
	assert.True(t, th.Allow())
	assert.Equal(t, 0, th.Remaining())
	assert.False(t, th.Allow())
}
