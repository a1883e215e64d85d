package observatory

import (
	"sync"
	"time"
)

// Throttle bounds archive calls with a sliding window. The window holds the
// timestamps of recent calls; a call is admitted while fewer than limit
// timestamps remain inside the window.
type Throttle struct {
	mu         sync.Mutex
	timestamps []time.Time
	limit      int
	window     time.Duration
}

// NewThrottle builds a throttle admitting limit calls per window.
func NewThrottle(limit int, window time.Duration) *Throttle {
	return &Throttle{limit: limit, window: window}
}

// Allow reports whether a call is admitted now, recording it if so.
func (t *Throttle) Allow() bool {
	return t.allowAt(time.Now())
}

func (t *Throttle) allowAt(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cleanup(now)
	if len(t.timestamps) >= t.limit {
		return false
	}
	t.timestamps = append(t.timestamps, now)
	return true
}

// Remaining returns how many calls the window still admits.
func (t *Throttle) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cleanup(time.Now())
	if r := t.limit - len(t.timestamps); r > 0 {
		return r
	}
	return 0
}

func (t *Throttle) cleanup(now time.Time) {
	cutoff := now.Add(-t.window)
	keep := t.timestamps[:0]
	for _, ts := range t.timestamps {
		if ts.After(cutoff) {
			keep = append(keep, ts)
		}
	}
	t.timestamps = keep
}
