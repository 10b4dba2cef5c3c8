package httpclient

import (
	"fmt"
	"sync"
	"time"
)

const (
	idleEvictionAfter = 90 * time.Second
	perOriginCap      = 10
)

// poolKey identifies one logical connection pool, per spec.md §4.1:
// "(scheme, host, port, alpn)".
type poolKey struct {
	scheme, host, port, alpn string
}

func (k poolKey) String() string {
	return fmt.Sprintf("%s://%s:%s#%s", k.scheme, k.host, k.port, k.alpn)
}

// pool tracks last-use times per origin so idle connections can be reasoned
// about independently of whatever the underlying transport (stdlib
// http.Transport, or quic-go's) does internally for the actual socket
// reuse. The hot path (acquire/use/return) only holds the mutex briefly to
// update per-key counters, never blocking on I/O.
type pool struct {
	connectTimeout time.Duration

	mu       sync.RWMutex
	lastUsed map[poolKey]time.Time
	inUse    map[poolKey]int
}

func newPool(connectTimeout time.Duration) *pool {
	return &pool{
		connectTimeout: connectTimeout,
		lastUsed:       make(map[poolKey]time.Time),
		inUse:          make(map[poolKey]int),
	}
}

// acquire reserves a slot for key, refusing if the per-origin cap would be
// exceeded. release must be called exactly once for every successful
// acquire (including on cancellation).
func (p *pool) acquire(key poolKey) (release func(), ok bool) {
	p.mu.Lock()
	if p.inUse[key] >= perOriginCap {
		p.mu.Unlock()
		return nil, false
	}
	p.inUse[key]++
	p.mu.Unlock()
	return func() {
		p.mu.Lock()
		p.inUse[key]--
		p.lastUsed[key] = time.Now()
		p.mu.Unlock()
	}, true
}

// evictIdle drops bookkeeping for origins that have been idle past
// idleEvictionAfter; the underlying transport's own idle-conn eviction
// (IdleConnTimeout / quic-go's conn GC) does the actual socket teardown,
// this just keeps the pool's key-space from growing unbounded.
func (p *pool) evictIdle() {
	cutoff := time.Now().Add(-idleEvictionAfter)
	p.mu.Lock()
	defer p.mu.Unlock()
	for k, t := range p.lastUsed {
		if p.inUse[k] == 0 && t.Before(cutoff) {
			delete(p.lastUsed, k)
			delete(p.inUse, k)
		}
	}
}
