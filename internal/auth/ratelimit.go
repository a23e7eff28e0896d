package auth

import (
	"strings"
	"sync"
	"time"
)

// LoginLimiter locks out an IP+email pair after repeated failed logins.
type LoginLimiter struct {
	mu              sync.Mutex
	attempts        map[string]*attemptRecord
	maxAttempts     int
	window          time.Duration
	lockout         time.Duration
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	stopOnce        sync.Once
	now             func() time.Time
}

type attemptRecord struct {
	count        int
	firstAttempt time.Time
	lockedUntil  time.Time
}

// LoginLimitConfig contains configuration for the login limiter.
type LoginLimitConfig struct {
	MaxAttempts     int           // failures before lockout (default: 5)
	Window          time.Duration // window for counting failures (default: 15m)
	Lockout         time.Duration // lockout length (default: 15m)
	CleanupInterval time.Duration // default: 5m
}

// NewLoginLimiter starts a limiter with a background cleanup goroutine.
// Call Stop to release it.
func NewLoginLimiter(cfg LoginLimitConfig) *LoginLimiter {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.Window <= 0 {
		cfg.Window = 15 * time.Minute
	}
	if cfg.Lockout <= 0 {
		cfg.Lockout = 15 * time.Minute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 5 * time.Minute
	}

	l := &LoginLimiter{
		attempts:        make(map[string]*attemptRecord),
		maxAttempts:     cfg.MaxAttempts,
		window:          cfg.Window,
		lockout:         cfg.Lockout,
		cleanupInterval: cfg.CleanupInterval,
		stopCleanup:     make(chan struct{}),
		now:             time.Now,
	}
	go l.cleanupLoop()
	return l
}

// Stop stops the background cleanup goroutine. Safe to call more than once.
func (l *LoginLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCleanup) })
}

func makeKey(ip, email string) string {
	return ip + "|" + strings.ToLower(strings.TrimSpace(email))
}

// Allow reports whether a login attempt may proceed. When it may not,
// retryAfter is the remaining lockout.
func (l *LoginLimiter) Allow(ip, email string) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	record, exists := l.attempts[makeKey(ip, email)]
	if !exists {
		return true, 0
	}
	if !record.lockedUntil.IsZero() && now.Before(record.lockedUntil) {
		return false, record.lockedUntil.Sub(now)
	}
	return true, 0
}

// RecordFailure counts a failed attempt and reports whether it triggered a lockout.
func (l *LoginLimiter) RecordFailure(ip, email string) (bool, time.Duration) {
	key := makeKey(ip, email)
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	record, exists := l.attempts[key]
	if !exists || now.Sub(record.firstAttempt) > l.window {
		record = &attemptRecord{firstAttempt: now}
		l.attempts[key] = record
	}

	record.count++
	if record.count >= l.maxAttempts {
		record.lockedUntil = now.Add(l.lockout)
		return true, l.lockout
	}
	return false, 0
}

// RecordSuccess clears the failure record for a successful login.
func (l *LoginLimiter) RecordSuccess(ip, email string) {
	l.mu.Lock()
	delete(l.attempts, makeKey(ip, email))
	l.mu.Unlock()
}

func (l *LoginLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stopCleanup:
			return
		}
	}
}

func (l *LoginLimiter) cleanup() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, record := range l.attempts {
		windowExpired := now.Sub(record.firstAttempt) > l.window
		lockoutExpired := record.lockedUntil.IsZero() || now.After(record.lockedUntil)
		if windowExpired && lockoutExpired {
			delete(l.attempts, key)
		}
	}
}
