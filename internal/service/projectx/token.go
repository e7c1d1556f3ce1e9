package projectx

import (
	"sync"
	"time"
)

// TokenCache guards one session token with its expiry. The upstream token
// is valid for about 24h; the cache refreshes it slightly early.
type TokenCache struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time
	ttl       time.Duration
	now       func() time.Time
}

// NewTokenCache creates a token cache with the given freshness TTL.
func NewTokenCache(ttl time.Duration) *TokenCache {
	if ttl <= 0 {
		ttl = 23*time.Hour + 30*time.Minute
	}
	return &TokenCache{ttl: ttl, now: time.Now}
}

// Get returns the cached token and whether it is still fresh.
func (c *TokenCache) Get() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token == "" || !c.now().Before(c.expiresAt) {
		return "", false
	}
	return c.token, true
}

// Put stores a freshly issued token.
func (c *TokenCache) Put(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = token
	c.expiresAt = c.now().Add(c.ttl)
}

// Invalidate drops the cached token, forcing re-auth on the next request.
func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = ""
	c.expiresAt = time.Time{}
}
