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

package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func TestTableOpensAfterConsecutiveFailures(t *testing.T) {
	var transitions []gobreaker.State
	table := NewTable(3, time.Minute, time.Minute, func(_ string, _, to gobreaker.State) {
		transitions = append(transitions, to)
	})

	failing := func() (any, error) { return nil, errors.New("upstream unreachable") }

	for i := 0; i < 3; i++ {
		if _, err := table.Execute("endpoint-a", failing); err == nil {
			t.Fatalf("call %d should have returned the underlying error", i)
		}
	}

	if state := table.State("endpoint-a"); state != gobreaker.StateOpen {
		t.Errorf("expected breaker to be open after 3 consecutive failures, got %v", state)
	}

	if _, err := table.Execute("endpoint-a", func() (any, error) { return "ok", nil }); !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected ErrOpenState while breaker is open, got %v", err)
	}
}

func TestTableTracksEndpointsIndependently(t *testing.T) {
	table := NewTable(2, time.Minute, time.Minute, nil)

	failing := func() (any, error) { return nil, errors.New("down") }
	for i := 0; i < 2; i++ {
		_, _ = table.Execute("endpoint-a", failing)
	}

	if table.State("endpoint-a") != gobreaker.StateOpen {
		t.Error("endpoint-a should be open")
	}
	if table.State("endpoint-b") != gobreaker.StateClosed {
		t.Error("endpoint-b should be unaffected by endpoint-a's failures")
	}
}
