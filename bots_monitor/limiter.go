package bot

import (
	"sync"

	"golang.org/x/time/rate"
)

// searchLimiter enforces a per-chat search quota. Each chat gets its
// own token bucket so one heavy user cannot starve the rest.
type searchLimiter struct {
	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newSearchLimiter(searchesPerMinute int) *searchLimiter {
	if searchesPerMinute < 1 {
		searchesPerMinute = 1
	}
	return &searchLimiter{
		limiters: make(map[int64]*rate.Limiter),
		limit:    rate.Limit(float64(searchesPerMinute) / 60.0),
		burst:    searchesPerMinute,
	}
}

// Allow reports whether the chat may run another search right now.
func (l *searchLimiter) Allow(chatID int64) bool {
	l.mu.Lock()
	lim, ok := l.limiters[chatID]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[chatID] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}
