package service

import "time"

// SetClock replaces the limiter clock for tests.
func (tb *TokenBucket) SetClock(now func() time.Time) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.now = now
}

// Prune exposes stale-bucket removal for tests.
func (tb *TokenBucket) Prune(maxIdle time.Duration) {
	tb.prune(maxIdle)
}

// SetAdminClock replaces the admin service clock for tests.
func (s *AdminService) SetAdminClock(now func() time.Time) {
	s.now = now
}
