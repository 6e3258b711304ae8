package zepp

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// The API publishes no quota. Requests are spaced by a minimum interval and
// a 429 response pauses the limiter for the advertised Retry-After.

// RateLimiter paces requests to the Zepp API
type RateLimiter struct {
	mu sync.Mutex

	minInterval time.Duration
	lastRequest time.Time

	// set from Retry-After on throttled responses
	pausedUntil time.Time

	requests int
}

// NewRateLimiter creates a limiter that spaces requests by minInterval
func NewRateLimiter(minInterval time.Duration) *RateLimiter {
	return &RateLimiter{minInterval: minInterval}
}

// Wait blocks until a request can be made. Each caller reserves the next
// free slot before sleeping, so concurrent callers stay spaced.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	next := time.Now()
	if slot := r.lastRequest.Add(r.minInterval); slot.After(next) {
		next = slot
	}
	if r.pausedUntil.After(next) {
		next = r.pausedUntil
	}
	r.lastRequest = next
	r.mu.Unlock()

	if wait := time.Until(next); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	r.mu.Lock()
	r.requests++
	r.mu.Unlock()
	return nil
}

// UpdateFromResponse pauses the limiter when the server throttles us
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp.StatusCode != http.StatusTooManyRequests {
		return
	}

	pause := 30 * time.Second
	if ra := resp.Header.Get("Retry-After"); ra != "" {
		if secs, err := strconv.Atoi(ra); err == nil && secs >= 0 {
			pause = time.Duration(secs) * time.Second
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.pausedUntil = time.Now().Add(pause)
}

// Requests returns how many requests have been let through
func (r *RateLimiter) Requests() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests
}
