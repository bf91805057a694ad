package middleware

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v3"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps a token bucket per sender
type Limiter struct {
	mu      sync.Mutex
	entries map[int64]*limiterEntry
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

// NewLimiter allows perSecond events per sender with the given burst
func NewLimiter(perSecond float64, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		entries: make(map[int64]*limiterEntry),
		limit:   rate.Limit(perSecond),
		burst:   burst,
		now:     time.Now,
	}
}

// Allow reports whether the sender may send another event now
func (l *Limiter) Allow(senderID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[senderID]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[senderID] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// Prune forgets senders idle for longer than idle
func (l *Limiter) Prune(idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-idle)
	removed := 0
	for id, e := range l.entries {
		if e.lastSeen.Before(cutoff) {
			delete(l.entries, id)
			removed++
		}
	}
	return removed
}

// RateLimit drops updates from senders above their budget
func RateLimit(limiter *Limiter, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return next(c)
			}

			if !limiter.Allow(sender.ID) {
				logger.Debug("Rate limited", zap.Int64("user_id", sender.ID))
				return nil
			}
			return next(c)
		}
	}
}
