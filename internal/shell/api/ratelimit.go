package api

import (
	"net"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// Per-IP Rate Limiting
// =============================================================================

// ipLimiter applies a token bucket per client IP and evicts idle entries.
// A nil limiter allows everything, so handlers never branch on config.
type ipLimiter struct {
	limit   rate.Limit
	burst   int
	mu      sync.Mutex
	byIP    map[string]*limiterEntry
	idleTTL time.Duration
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// newIPLimiter creates a per-IP limiter; returns nil when limiting is off.
func newIPLimiter(rps float64, burst int) *ipLimiter {
	if rps <= 0 || burst <= 0 {
		return nil
	}
	return &ipLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		byIP:    make(map[string]*limiterEntry),
		idleTTL: 10 * time.Minute,
	}
}

// allow reports whether one token can be consumed for the remote address.
func (l *ipLimiter) allow(remoteAddr string) bool {
	if l == nil {
		return true
	}

	ip, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		ip = remoteAddr
	}

	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.byIP[ip]
	if !ok {
		e = &limiterEntry{
			limiter:  rate.NewLimiter(l.limit, l.burst),
			lastSeen: now,
		}
		l.byIP[ip] = e
		l.evictIdleLocked(now)
	}
	e.lastSeen = now
	return e.limiter.Allow()
}

// evictIdleLocked drops buckets that have not been seen within the idle TTL.
// Called with the mutex held.
func (l *ipLimiter) evictIdleLocked(now time.Time) {
	for ip, e := range l.byIP {
		if now.Sub(e.lastSeen) > l.idleTTL {
			delete(l.byIP, ip)
		}
	}
}
