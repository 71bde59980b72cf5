// Package ratelimiter provides in-memory rate limiting for endpoints that
// are reachable without an operator session, like shared preview links.
package ratelimiter

import (
	"strings"
	"sync"
	"time"
)

// RatePolicy defines the rate limit for a namespace.
type RatePolicy struct {
	MaxAttempts int
	Window      time.Duration
}

// RateLimiter tracks attempts per namespace:key pair. Namespaces carry
// independent policies, so preview opens and import uploads can be limited
// differently.
type RateLimiter struct {
	mu          sync.Mutex
	attempts    map[string][]time.Time
	policies    map[string]RatePolicy
	stopCleanup chan struct{}
	stopped     bool
}

// NewRateLimiter creates a rate limiter and starts its cleanup goroutine.
// Configure namespaces with SetPolicy before calling Allow.
func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{
		attempts:    make(map[string][]time.Time),
		policies:    make(map[string]RatePolicy),
		stopCleanup: make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// SetPolicy configures the rate limit for a namespace.
func (rl *RateLimiter) SetPolicy(namespace string, maxAttempts int, window time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.policies[namespace] = RatePolicy{
		MaxAttempts: maxAttempts,
		Window:      window,
	}
}

// Allow records an attempt and reports whether it is within the namespace
// policy. Namespaces with no policy fail closed.
func (rl *RateLimiter) Allow(namespace, key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	policy, ok := rl.policies[namespace]
	if !ok {
		return false
	}

	id := namespace + ":" + key
	cutoff := time.Now().Add(-policy.Window)

	recent := rl.attempts[id][:0]
	for _, at := range rl.attempts[id] {
		if at.After(cutoff) {
			recent = append(recent, at)
		}
	}

	if len(recent) >= policy.MaxAttempts {
		rl.attempts[id] = recent
		return false
	}

	rl.attempts[id] = append(recent, time.Now())
	return true
}

// Stop terminates the cleanup goroutine. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if !rl.stopped {
		rl.stopped = true
		close(rl.stopCleanup)
	}
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCleanup:
			return
		case <-ticker.C:
			rl.removeExpired()
		}
	}
}

func (rl *RateLimiter) removeExpired() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for id, times := range rl.attempts {
		namespace := id
		if i := strings.IndexByte(id, ':'); i >= 0 {
			namespace = id[:i]
		}
		policy, ok := rl.policies[namespace]
		if !ok {
			delete(rl.attempts, id)
			continue
		}

		cutoff := time.Now().Add(-policy.Window)
		recent := times[:0]
		for _, at := range times {
			if at.After(cutoff) {
				recent = append(recent, at)
			}
		}
		if len(recent) == 0 {
			delete(rl.attempts, id)
		} else {
			rl.attempts[id] = recent
		}
	}
}
