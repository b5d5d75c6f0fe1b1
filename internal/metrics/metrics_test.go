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

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveReconcileIncrementsCounter(t *testing.T) {
	before := testutil.ToFloat64(ReconcileTotal.WithLabelValues("DNSZone", "success"))
	ObserveReconcile("DNSZone", "success", 0.25)
	after := testutil.ToFloat64(ReconcileTotal.WithLabelValues("DNSZone", "success"))

	if after != before+1 {
		t.Errorf("expected counter to increment by 1, before=%v after=%v", before, after)
	}
}

func TestCircuitBreakerStateGaugeSettable(t *testing.T) {
	CircuitBreakerState.WithLabelValues("instance-0:8080").Set(2)
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("instance-0:8080")); got != 2 {
		t.Errorf("expected gauge value 2, got %v", got)
	}
}
