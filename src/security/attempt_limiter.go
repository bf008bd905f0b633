package security

import (
	"context"
	"sync"
	"time"
)

// AttemptStatus describes the lockout state of one client
type AttemptStatus struct {
	Failures   int           `json:"failures"`
	Remaining  int           `json:"remaining"`
	Locked     bool          `json:"locked"`
	RetryAfter time.Duration `json:"-"`
}

// AttemptLimiter counts failed password attempts per client. Each failure
// restarts Window; after Limit failures the client stays locked until Window
// has passed since the last one.
type AttemptLimiter interface {
	Status(ctx context.Context, key string) (AttemptStatus, error)
	RegisterFailure(ctx context.Context, key string) (AttemptStatus, error)
	Reset(ctx context.Context, key string) error
}

type attemptBucket struct {
	failures int
	resetAt  time.Time
}

// MemoryAttemptLimiter keeps the counters in process memory
type MemoryAttemptLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	buckets map[string]*attemptBucket
	now     func() time.Time
}

// NewMemoryAttemptLimiter creates an in-memory limiter
func NewMemoryAttemptLimiter(limit int, window time.Duration) *MemoryAttemptLimiter {
	return &MemoryAttemptLimiter{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*attemptBucket),
		now:     time.Now,
	}
}

// WithClock replaces the time source
func (m *MemoryAttemptLimiter) WithClock(now func() time.Time) *MemoryAttemptLimiter {
	m.now = now
	return m
}

func (m *MemoryAttemptLimiter) Status(_ context.Context, key string) (AttemptStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statusLocked(key), nil
}

func (m *MemoryAttemptLimiter) RegisterFailure(_ context.Context, key string) (AttemptStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	b, ok := m.buckets[key]
	if !ok || !now.Before(b.resetAt) {
		b = &attemptBucket{}
		m.buckets[key] = b
	}
	// ウィンドウは最後の失敗から数え直す
	b.failures++
	b.resetAt = now.Add(m.window)
	return m.statusLocked(key), nil
}

func (m *MemoryAttemptLimiter) Reset(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.buckets, key)
	return nil
}

func (m *MemoryAttemptLimiter) statusLocked(key string) AttemptStatus {
	now := m.now()
	b, ok := m.buckets[key]
	if !ok || !now.Before(b.resetAt) {
		delete(m.buckets, key)
		return newStatus(0, m.limit, 0)
	}
	return newStatus(b.failures, m.limit, b.resetAt.Sub(now))
}

func newStatus(failures, limit int, ttl time.Duration) AttemptStatus {
	remaining := limit - failures
	if remaining < 0 {
		remaining = 0
	}
	status := AttemptStatus{Failures: failures, Remaining: remaining}
	if failures >= limit {
		status.Locked = true
		status.RetryAfter = ttl
	}
	return status
}
