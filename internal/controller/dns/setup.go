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

package dns

import (
	"time"

	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/firestoned/bindy/internal/circuitbreaker"
	"github.com/firestoned/bindy/internal/ratelimit"
)

// NewRecordEngine builds the shared engine embedded by all eight per-kind
// record reconcilers, so every kind's Tracker, Breakers, Recorder and
// timeouts come from one place (§9). tracker is the same process-wide
// Tracker instance passed to the DNSZoneReconciler, since the global token
// bucket is shared across kinds (§5).
func NewRecordEngine(c client.Client, tracker *ratelimit.Tracker, breakers *circuitbreaker.Table, recorder record.EventRecorder, bearerToken string, sidecarTimeout, forceDropWindow, requeueInterval time.Duration) *recordEngine {
	return &recordEngine{
		Client:          c,
		Tracker:         tracker,
		Breakers:        breakers,
		Recorder:        recorder,
		BearerToken:     bearerToken,
		SidecarTimeout:  sidecarTimeout,
		ForceDropWindow: forceDropWindow,
		RequeueInterval: requeueInterval,
	}
}

// SetupRecordControllers registers all eight record kind controllers with
// the manager, each sharing the same engine instance.
func SetupRecordControllers(mgr ctrl.Manager, engine *recordEngine) error {
	setups := []interface{ SetupWithManager(ctrl.Manager) error }{
		&ARecordReconciler{engine},
		&AAAARecordReconciler{engine},
		&CNAMERecordReconciler{engine},
		&MXRecordReconciler{engine},
		&TXTRecordReconciler{engine},
		&NSRecordReconciler{engine},
		&SRVRecordReconciler{engine},
		&CAARecordReconciler{engine},
	}
	for _, s := range setups {
		if err := s.SetupWithManager(mgr); err != nil {
			return err
		}
	}
	return nil
}
