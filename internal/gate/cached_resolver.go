package gate

import (
	"context"
	"sync"
	"time"
)

// CachedResolver wraps a RoleResolver with TTL-based caching so the
// database is not hit on every permission check.
type CachedResolver struct {
	inner RoleResolver
	ttl   time.Duration

	mu    sync.RWMutex
	cache map[uint]cacheEntry
}

type cacheEntry struct {
	role      Role
	expiresAt time.Time
}

// NewCachedResolver wraps inner, caching resolved roles for ttl.
func NewCachedResolver(inner RoleResolver, ttl time.Duration) *CachedResolver {
	return &CachedResolver{
		inner: inner,
		ttl:   ttl,
		cache: make(map[uint]cacheEntry),
	}
}

// Resolve returns the cached role when fresh, otherwise re-resolves.
func (r *CachedResolver) Resolve(ctx context.Context, employeeID uint) (Role, error) {
	r.mu.RLock()
	entry, ok := r.cache[employeeID]
	r.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.role, nil
	}

	role, err := r.inner.Resolve(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[employeeID] = cacheEntry{role: role, expiresAt: time.Now().Add(r.ttl)}
	r.mu.Unlock()
	return role, nil
}

// Invalidate drops one employee from the cache; call when their role
// assignment changes.
func (r *CachedResolver) Invalidate(employeeID uint) {
	r.mu.Lock()
	delete(r.cache, employeeID)
	r.mu.Unlock()
}

// InvalidateAll drops the whole cache; call when role permissions change.
func (r *CachedResolver) InvalidateAll() {
	r.mu.Lock()
	r.cache = make(map[uint]cacheEntry)
	r.mu.Unlock()
}
