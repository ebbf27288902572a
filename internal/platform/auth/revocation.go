package auth

import (
	"sync"
	"time"
)

// TokenRevocationStore keeps revoked token ids in memory until the tokens
// would have expired anyway. Safe for concurrent use.
type TokenRevocationStore struct {
	mu       sync.RWMutex
	entries  map[string]time.Time
	interval time.Duration
	done     chan struct{}
	once     sync.Once
}

// NewTokenRevocationStore starts a store that purges expired entries every
// interval. A non-positive interval defaults to five minutes.
func NewTokenRevocationStore(interval time.Duration) *TokenRevocationStore {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	s := &TokenRevocationStore{
		entries:  make(map[string]time.Time),
		interval: interval,
		done:     make(chan struct{}),
	}
	go s.cleanupLoop()
	return s
}

// Revoke records jti as revoked until expiresAt.
func (s *TokenRevocationStore) Revoke(jti string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[jti] = expiresAt
}

func (s *TokenRevocationStore) IsRevoked(jti string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.entries[jti]
	return ok
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (s *TokenRevocationStore) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *TokenRevocationStore) cleanupLoop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.purge(now)
		}
	}
}

// purge drops entries whose tokens expired before now.
func (s *TokenRevocationStore) purge(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for jti, expiresAt := range s.entries {
		if now.After(expiresAt) {
			delete(s.entries, jti)
		}
	}
}
