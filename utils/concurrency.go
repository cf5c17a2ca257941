package utils

import (
	"sync"

	"golang.org/x/time/rate"
)

// IssueLimiter throttles how often each officer may issue fines.
// A nil *IssueLimiter allows everything.
type IssueLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	limiters map[string]*rate.Limiter
}

// NewIssueLimiter returns a limiter allowing perMinute fines per officer, or nil when perMinute <= 0.
func NewIssueLimiter(perMinute float64) *IssueLimiter {
	if perMinute <= 0 {
		return nil
	}
	return &IssueLimiter{
		limit:    rate.Limit(perMinute / 60),
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether userID may issue a fine now, consuming a token if so.
func (l *IssueLimiter) Allow(userID string) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	lim, ok := l.limiters[userID]
	if !ok {
		lim = rate.NewLimiter(l.limit, 1)
		l.limiters[userID] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}
