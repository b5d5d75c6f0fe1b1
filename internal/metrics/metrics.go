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

// Package metrics registers the Prometheus collectors exposed by the
// manager's metrics endpoint: per-kind reconcile counts and durations, plus
// a per-endpoint circuit breaker state gauge (§5, §6).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

const (
	metricNamespace = "bindy"
	metricSubsystem = "controller"
)

// ReconcileTotal counts reconciles per resource kind and outcome.
var ReconcileTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: metricNamespace,
		Subsystem: metricSubsystem,
		Name:      "reconcile_total",
		Help:      "Total reconciles per resource kind, partitioned by result.",
	},
	[]string{"kind", "result"},
)

// ReconcileDuration observes reconcile latency per resource kind.
var ReconcileDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: metricNamespace,
		Subsystem: metricSubsystem,
		Name:      "reconcile_duration_seconds",
		Help:      "Reconcile latency per resource kind.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)

// CircuitBreakerState reports the current breaker state per sidecar
// endpoint: 0=closed, 1=half-open, 2=open, matching gobreaker.State's
// ordering.
var CircuitBreakerState = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: metricNamespace,
		Subsystem: metricSubsystem,
		Name:      "circuit_breaker_state",
		Help:      "Current circuit breaker state per sidecar endpoint (0=closed, 1=half-open, 2=open).",
	},
	[]string{"endpoint"},
)

// RateLimiterHeldBack counts instances excluded from a zone's working set
// by the per-instance cool-down, per zone (§4.3 step 3).
var RateLimiterHeldBack = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: metricNamespace,
		Subsystem: metricSubsystem,
		Name:      "rate_limiter_held_back",
		Help:      "Number of instances currently held back from a zone's working set by the cool-down.",
	},
	[]string{"zone"},
)

func init() {
	metrics.Registry.MustRegister(
		ReconcileTotal,
		ReconcileDuration,
		CircuitBreakerState,
		RateLimiterHeldBack,
	)
}

// ObserveReconcile records one reconcile's outcome and duration.
func ObserveReconcile(kind, result string, seconds float64) {
	ReconcileTotal.WithLabelValues(kind, result).Inc()
	ReconcileDuration.WithLabelValues(kind).Observe(seconds)
}
