package job

import (
	"time"

	"golang.org/x/time/rate"
)

// throttle limits how often progress is published. The first update and the final one always get through; an
// interval of 0 lets everything through.
type throttle struct {
	interval  time.Duration
	sometimes *rate.Sometimes
}

func newThrottle(interval time.Duration) *throttle {
	return &throttle{
		interval:  interval,
		sometimes: &rate.Sometimes{First: 1, Interval: interval},
	}
}

func (t *throttle) Allow(final bool) bool {
	if final || t.interval <= 0 {
		return true
	}
	allowed := false
	t.sometimes.Do(func() { allowed = true })
	return allowed
}
