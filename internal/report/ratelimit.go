package report

import (
	"context"
	"strings"
	"sync"
	"time"

	"carboquiz/internal/common/clock"
)

// DefaultWindow is the fixed rate-limit window per email address.
const DefaultWindow = 60 * time.Second

// RateLimiter enforces a fixed window per email address. State is
// process-scoped, created at startup and cleared by the time-based sweeper.
type RateLimiter struct {
	clock  clock.Clock
	window time.Duration

	mu       sync.Mutex
	lastSent map[string]time.Time
}

func NewRateLimiter(clk clock.Clock, window time.Duration) *RateLimiter {
	if window <= 0 {
		window = DefaultWindow
	}
	return &RateLimiter{
		clock:    clk,
		window:   window,
		lastSent: make(map[string]time.Time),
	}
}

// Allow reports whether the email may send now. When refused, remaining is
// the time until the window resets. An allowed call marks the window used.
func (l *RateLimiter) Allow(email string) (bool, time.Duration) {
	key := strings.ToLower(strings.TrimSpace(email))
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if last, ok := l.lastSent[key]; ok {
		elapsed := now.Sub(last)
		if elapsed < l.window {
			return false, l.window - elapsed
		}
	}
	l.lastSent[key] = now
	return true, 0
}

// Sweep drops entries whose window has passed.
func (l *RateLimiter) Sweep() {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, last := range l.lastSent {
		if now.Sub(last) >= l.window {
			delete(l.lastSent, key)
		}
	}
}

// StartSweeper runs Sweep on the given interval until ctx is cancelled.
func (l *RateLimiter) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = l.window
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.Sweep()
			case <-ctx.Done():
				return
			}
		}
	}()
}
