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
	"context"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/handler"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	dnsv1alpha1 "github.com/firestoned/bindy/api/dns/v1alpha1"
)

// AAAARecordReconciler reconciles a AAAARecord object. Reconcile is a thin
// fetch-adapt-delegate shim; the eight-step contract itself lives in
// recordEngine, shared across all eight record kinds (§4.2, §9).
type AAAARecordReconciler struct {
	*recordEngine
}

//+kubebuilder:rbac:groups=dns.bindy.firestoned.io,resources=aaaarecords,verbs=get;list;watch;update;patch
//+kubebuilder:rbac:groups=dns.bindy.firestoned.io,resources=aaaarecords/status,verbs=get;update;patch
//+kubebuilder:rbac:groups=dns.bindy.firestoned.io,resources=dnszones,verbs=get;list;watch

func (r *AAAARecordReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	var record dnsv1alpha1.AAAARecord
	if err := r.Get(ctx, req.NamespacedName, &record); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, err
	}
	return r.reconcile(ctx, &record, &aaaaRecordAdapter{obj: &record})
}

// mapZoneToAAAARecords enqueues every AAAARecord in the zone's namespace that
// references it, so an AAAARecord applied before its zone converges is
// re-reconciled the moment the zone flips Ready instead of waiting out a
// blind poll (§2, §9).
func (r *AAAARecordReconciler) mapZoneToAAAARecords(ctx context.Context, obj client.Object) []reconcile.Request {
	zone := obj.(*dnsv1alpha1.DNSZone)

	var records dnsv1alpha1.AAAARecordList
	if err := r.List(ctx, &records, client.InNamespace(zone.Namespace)); err != nil {
		return nil
	}

	var requests []reconcile.Request
	for _, record := range records.Items {
		if record.Spec.ZoneRef != zone.Name {
			continue
		}
		requests = append(requests, reconcile.Request{
			NamespacedName: types.NamespacedName{Name: record.Name, Namespace: record.Namespace},
		})
	}
	return requests
}

// SetupWithManager registers the controller with the manager.
func (r *AAAARecordReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&dnsv1alpha1.AAAARecord{}).
		Watches(
			&dnsv1alpha1.DNSZone{},
			handler.EnqueueRequestsFromMapFunc(r.mapZoneToAAAARecords),
		).
		Complete(r)
}
