package blink

import "time"

// throttle enforces the minimum wall-clock interval between full
// refresh cycles. force bypasses the interval check; a skipped cycle is
// a successful no-op, never an error.
type throttle struct {
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

func newThrottle(interval time.Duration) *throttle {
	return &throttle{interval: interval, now: time.Now}
}

func (t *throttle) ready(force bool) bool {
	if force || t.last.IsZero() {
		return true
	}
	return t.now().Sub(t.last) >= t.interval
}

func (t *throttle) mark() {
	t.last = t.now()
}
