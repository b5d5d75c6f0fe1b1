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

package ratelimit

import (
	"testing"
	"time"
)

func TestPartitionHoldsBackRecentlyTouched(t *testing.T) {
	tracker := NewTracker(10, 50, 5*time.Second)
	now := time.Now()

	tracker.MarkTouched("c1-0", now.Add(-1*time.Second))
	tracker.MarkTouched("c1-1", now.Add(-10*time.Second))

	working, heldBack, nextExpiry := tracker.Partition([]string{"c1-0", "c1-1", "c1-2"}, now)

	if len(working) != 2 {
		t.Fatalf("expected c1-1 (cooldown expired) and c1-2 (never touched) in working set, got %v", working)
	}
	if len(heldBack) != 1 || heldBack[0] != "c1-0" {
		t.Fatalf("expected c1-0 held back, got %v", heldBack)
	}
	if nextExpiry <= 0 || nextExpiry > 5*time.Second {
		t.Errorf("nextExpiry out of expected range: %v", nextExpiry)
	}
}

func TestPartitionAllFreshWhenNeverTouched(t *testing.T) {
	tracker := NewTracker(10, 50, 5*time.Second)
	now := time.Now()

	working, heldBack, _ := tracker.Partition([]string{"c1-0", "c1-1"}, now)
	if len(working) != 2 || len(heldBack) != 0 {
		t.Errorf("expected both instances in working set, got working=%v heldBack=%v", working, heldBack)
	}
}

func TestAllowRespectsBurst(t *testing.T) {
	tracker := NewTracker(1, 2, time.Second)

	if !tracker.Allow() || !tracker.Allow() {
		t.Fatal("expected first two calls within burst to be allowed")
	}
	if tracker.Allow() {
		t.Error("expected third immediate call to exceed burst and be denied")
	}
}
