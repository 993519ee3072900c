package clock

import "time"

// Clock abstracts the system clock so time-windowed state (rate limits,
// leaderboard timestamps) is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// DefaultClock implements Clock using the system clock.
type DefaultClock struct{}

// Now returns the current time.
func (c *DefaultClock) Now() time.Time {
	return time.Now()
}
