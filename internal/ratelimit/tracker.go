/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package ratelimit implements the process-wide reconcile tracker of §5: a
// global token bucket shared across every resource kind, plus a per-instance
// cool-down that excludes recently-touched instances from a zone's working
// set (§4.3 step 3).
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Tracker bounds reconcile work process-wide. Its state is deliberately not
// crash-safe (§9): losing it on restart costs at most one extra attempt per
// endpoint, which the idempotent sidecar API tolerates.
type Tracker struct {
	bucket *rate.Limiter

	mu       sync.Mutex
	cooldown time.Duration
	lastSeen map[string]time.Time
}

// NewTracker builds a tracker with the given global rate (reconciles/sec),
// burst, and per-instance cool-down.
func NewTracker(ratePerSecond float64, burst int, cooldown time.Duration) *Tracker {
	return &Tracker{
		bucket:   rate.NewLimiter(rate.Limit(ratePerSecond), burst),
		cooldown: cooldown,
		lastSeen: make(map[string]time.Time),
	}
}

// Allow consumes one token from the global bucket, reporting whether the
// caller may proceed immediately.
func (t *Tracker) Allow() bool {
	return t.bucket.Allow()
}

// Reserve returns the duration the caller should wait before the global
// bucket will admit one more reconcile, for requeue scheduling under
// saturation.
func (t *Tracker) Reserve() time.Duration {
	r := t.bucket.Reserve()
	if !r.OK() {
		return t.cooldown
	}
	return r.Delay()
}

// Partition splits instance keys into a working set (eligible now) and a
// held-back set (touched within the cool-down window), along with the
// shortest remaining wait among the held-back instances.
func (t *Tracker) Partition(keys []string, now time.Time) (working, heldBack []string, nextExpiry time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	nextExpiry = t.cooldown
	for _, key := range keys {
		last, seen := t.lastSeen[key]
		if !seen {
			working = append(working, key)
			continue
		}
		elapsed := now.Sub(last)
		if elapsed >= t.cooldown {
			working = append(working, key)
			continue
		}
		heldBack = append(heldBack, key)
		if remaining := t.cooldown - elapsed; remaining < nextExpiry {
			nextExpiry = remaining
		}
	}
	return working, heldBack, nextExpiry
}

// MarkTouched records that an instance was just reconciled, starting its
// cool-down window.
func (t *Tracker) MarkTouched(key string, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastSeen[key] = now
}
