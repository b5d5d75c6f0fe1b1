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

// Package circuitbreaker maintains one sony/gobreaker circuit breaker per
// sidecar endpoint, so a single unreachable BIND9 pod fails fast instead of
// blocking reconciles of the others (§5).
package circuitbreaker

import (
	"sync"
	"time"

	"github.com/sony/gobreaker"
)

// Table is a concurrent map of endpoint address to its own breaker.
type Table struct {
	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker

	window        uint32
	failWithin    time.Duration
	openCooldown  time.Duration
	onStateChange func(endpoint string, from, to gobreaker.State)
}

// NewTable builds a table whose breakers open after window consecutive
// failures observed within failWithin, then stay open for openCooldown
// before permitting a single half-open probe.
func NewTable(window uint32, failWithin, openCooldown time.Duration, onStateChange func(endpoint string, from, to gobreaker.State)) *Table {
	return &Table{
		breakers:      make(map[string]*gobreaker.CircuitBreaker),
		window:        window,
		failWithin:    failWithin,
		openCooldown:  openCooldown,
		onStateChange: onStateChange,
	}
}

func (t *Table) breakerFor(endpoint string) *gobreaker.CircuitBreaker {
	t.mu.Lock()
	defer t.mu.Unlock()

	if b, ok := t.breakers[endpoint]; ok {
		return b
	}

	b := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        endpoint,
		MaxRequests: 1,
		Interval:    t.failWithin,
		Timeout:     t.openCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= t.window
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if t.onStateChange != nil {
				t.onStateChange(name, from, to)
			}
		},
	})
	t.breakers[endpoint] = b
	return b
}

// Execute runs fn through the endpoint's breaker, failing fast with
// gobreaker.ErrOpenState while the breaker is open.
func (t *Table) Execute(endpoint string, fn func() (any, error)) (any, error) {
	return t.breakerFor(endpoint).Execute(fn)
}

// State reports the current breaker state for an endpoint, exposed as a
// metric though never written to CRD status (§5).
func (t *Table) State(endpoint string) gobreaker.State {
	return t.breakerFor(endpoint).State()
}
