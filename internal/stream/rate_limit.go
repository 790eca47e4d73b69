package stream

import (
	"sync"
)

// defaultMaxTotal bounds the whole process when no global cap is configured.
const defaultMaxTotal = 1000

// streamLimiter bounds concurrent SSE connections twice over: per client IP,
// so one browser cannot hold a session hostage with tab spam, and globally,
// so a flood of distinct clients cannot exhaust the engine snapshot path.
type streamLimiter struct {
	mu       sync.Mutex
	perIP    map[string]int
	total    int
	maxPerIP int
	maxTotal int
}

func newStreamLimiter(maxPerIP, maxTotal int) *streamLimiter {
	if maxTotal <= 0 {
		maxTotal = defaultMaxTotal
	}
	return &streamLimiter{
		perIP:    make(map[string]int),
		maxPerIP: maxPerIP,
		maxTotal: maxTotal,
	}
}

// acquire registers a connection for ip. It fails when either the global
// cap or the per-IP cap is already met.
func (l *streamLimiter) acquire(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.total >= l.maxTotal {
		return false
	}
	if l.perIP[ip] >= l.maxPerIP {
		return false
	}

	l.perIP[ip]++
	l.total++
	return true
}

// release unregisters a connection for ip.
func (l *streamLimiter) release(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.perIP[ip]--
	l.total--
	if l.perIP[ip] <= 0 {
		delete(l.perIP, ip)
	}
}

// count returns the number of active connections for ip.
func (l *streamLimiter) count(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.perIP[ip]
}

// totalCount returns the number of active connections across all IPs.
func (l *streamLimiter) totalCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}
