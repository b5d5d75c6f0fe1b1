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
	"fmt"
	"time"

	"go.uber.org/multierr"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
	"sigs.k8s.io/controller-runtime/pkg/log"

	dnsv1alpha1 "github.com/firestoned/bindy/api/dns/v1alpha1"
	"github.com/firestoned/bindy/internal/circuitbreaker"
	"github.com/firestoned/bindy/internal/condition"
	"github.com/firestoned/bindy/internal/instancecache"
	"github.com/firestoned/bindy/internal/metrics"
	"github.com/firestoned/bindy/internal/providerresolve"
	"github.com/firestoned/bindy/internal/ratelimit"
	"github.com/firestoned/bindy/internal/selector"
	"github.com/firestoned/bindy/internal/sidecarclient"
	"github.com/firestoned/bindy/pkg/consts"
)

// deletionFailingSinceAnnotation tracks when a record's deletion first hit a
// transient sidecar failure, so the forced-drop window (§4.2 "Deletion")
// can be measured across reconciles without a dedicated status field.
const deletionFailingSinceAnnotation = "bindy.firestoned.io/deletion-failing-since"

// recordEngine implements the eight-step reconcile contract of §4.2, shared
// by all eight record kind controllers through the recordAdapter interface.
// Each per-kind controller owns its own Reconcile/SetupWithManager but
// delegates the actual contract to engine.reconcile/engine.finalize.
type recordEngine struct {
	client.Client
	Tracker         *ratelimit.Tracker
	Breakers        *circuitbreaker.Table
	Recorder        record.EventRecorder
	BearerToken     string
	SidecarTimeout  time.Duration
	ForceDropWindow time.Duration
	RequeueInterval time.Duration

	// NewSidecarClient builds a sidecarclient.Client for an endpoint
	// address; overridable so tests can substitute a fake transport
	// without touching the real HTTP stack. Defaults to sidecarclient.NewClient.
	NewSidecarClient func(endpoint, bearerToken string, timeout time.Duration) *sidecarclient.Client
}

func (e *recordEngine) sidecarFor(endpoint string) *sidecarclient.Client {
	if e.NewSidecarClient != nil {
		return e.NewSidecarClient(endpoint, e.BearerToken, e.SidecarTimeout)
	}
	return sidecarclient.NewClient(endpoint, e.BearerToken, e.SidecarTimeout)
}

func (e *recordEngine) requeueInterval() time.Duration {
	if e.RequeueInterval > 0 {
		return e.RequeueInterval
	}
	return consts.DefaultRecordRequeueInterval
}

// reconcile drives one pass of the record contract for obj/adapter, timing
// the whole pass (including the deletion path) for the per-kind reconcile
// metrics.
func (e *recordEngine) reconcile(ctx context.Context, obj client.Object, adapter recordAdapter) (ctrl.Result, error) {
	start := time.Now()
	result, err := e.doReconcile(ctx, obj, adapter)
	metrics.ObserveReconcile(adapter.recordKind(), reconcileResultLabel(err), time.Since(start).Seconds())
	return result, err
}

func reconcileResultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (e *recordEngine) doReconcile(ctx context.Context, obj client.Object, adapter recordAdapter) (ctrl.Result, error) {
	logger := log.FromContext(ctx)

	if !obj.GetDeletionTimestamp().IsZero() {
		return e.finalize(ctx, obj, adapter)
	}

	if !controllerutil.ContainsFinalizer(obj, consts.FinalizerRecord) {
		controllerutil.AddFinalizer(obj, consts.FinalizerRecord)
		if err := e.Update(ctx, obj); err != nil {
			return ctrl.Result{}, err
		}
		return ctrl.Result{}, nil
	}

	// Global reconcile governor (§5): shared across every kind, so a burst
	// of record churn can't starve the zone controller or other kinds.
	if e.Tracker != nil && !e.Tracker.Allow() {
		result, err := e.setStatus(ctx, obj, adapter, metav1.ConditionFalse, consts.ReasonRateLimited,
			"process-wide reconcile rate limit reached")
		if err != nil || result.Requeue {
			return result, err
		}
		return ctrl.Result{RequeueAfter: e.Tracker.Reserve()}, nil
	}

	var zone dnsv1alpha1.DNSZone
	if err := e.Get(ctx, types.NamespacedName{Namespace: obj.GetNamespace(), Name: adapter.zoneRef()}, &zone); err != nil {
		if apierrors.IsNotFound(err) {
			result, err := e.setStatus(ctx, obj, adapter, metav1.ConditionFalse, consts.ReasonZoneNotFound,
				fmt.Sprintf("zone %q not found", adapter.zoneRef()))
			if err != nil || result.Requeue {
				return result, err
			}
			return ctrl.Result{RequeueAfter: e.requeueInterval()}, nil
		}
		return ctrl.Result{}, err
	}

	endpoints, err := e.resolvePrimaryEndpoints(ctx, &zone)
	if err != nil {
		return ctrl.Result{}, err
	}
	if len(endpoints) == 0 {
		result, err := e.setStatus(ctx, obj, adapter, metav1.ConditionFalse, consts.ReasonNotReady,
			fmt.Sprintf("zone %q has no ready primary instances selected", adapter.zoneRef()))
		if err != nil || result.Requeue {
			return result, err
		}
		return ctrl.Result{RequeueAfter: e.requeueInterval()}, nil
	}

	if _, err := e.setStatus(ctx, obj, adapter, metav1.ConditionFalse, consts.ReasonRecordReconciling,
		"validating and projecting record payload"); err != nil {
		return ctrl.Result{}, err
	}

	payload, err := adapter.project(zone.Spec.DefaultTTL)
	if err != nil {
		logger.Info("record payload rejected by validation", "record", adapter.recordName(), "error", err.Error())
		return e.setStatus(ctx, obj, adapter, metav1.ConditionFalse, consts.ReasonInvalidRecordPayload, err.Error())
	}

	var upsertErr error
	for _, endpoint := range endpoints {
		sidecar := e.sidecarFor(endpoint)
		_, callErr := e.Breakers.Execute(endpoint, func() (any, error) {
			return nil, sidecar.PutRecord(ctx, zone.Spec.FQDN, adapter.wireType(), adapter.recordName(), payload)
		})
		if callErr != nil {
			upsertErr = multierr.Append(upsertErr, fmt.Errorf("endpoint %s: %w", endpoint, callErr))
		}
	}

	if upsertErr == nil {
		now := time.Now().UTC().Format(time.RFC3339)
		annotations := obj.GetAnnotations()
		if annotations == nil {
			annotations = map[string]string{}
		}
		annotations[consts.AnnotationLastReconciled] = now
		delete(annotations, deletionFailingSinceAnnotation)
		obj.SetAnnotations(annotations)
		if err := e.Update(ctx, obj); err != nil {
			return ctrl.Result{}, err
		}

		adapter.status().EndpointCount = len(endpoints)
		if e.Recorder != nil {
			e.Recorder.Eventf(obj, "Normal", consts.ReasonReconcileSucceeded, "record %s reconciled against %d primary endpoint(s)", adapter.recordName(), len(endpoints))
		}
		return e.writeStatusForce(ctx, obj, adapter, metav1.ConditionTrue, consts.ReasonReconcileSucceeded,
			fmt.Sprintf("reconciled against %d primary endpoint(s)", len(endpoints)))
	}

	if sidecarclient.IsRetryable(unwrapSidecarError(upsertErr)) {
		if e.Recorder != nil {
			e.Recorder.Eventf(obj, "Warning", consts.ReasonRecordFailed, "transient failure reconciling record %s: %s", adapter.recordName(), upsertErr.Error())
		}
		if _, err := e.setStatus(ctx, obj, adapter, metav1.ConditionFalse, consts.ReasonRecordFailed, upsertErr.Error()); err != nil {
			return ctrl.Result{}, err
		}
		return ctrl.Result{}, upsertErr
	}

	reason := consts.ReasonConfigurationInvalid
	if sidecarErr, ok := asSidecarError(upsertErr); ok {
		reason = sidecarErr.Reason()
	}
	if e.Recorder != nil {
		e.Recorder.Eventf(obj, "Warning", reason, "permanent failure reconciling record %s: %s", adapter.recordName(), upsertErr.Error())
	}
	return e.setStatus(ctx, obj, adapter, metav1.ConditionFalse, reason, upsertErr.Error())
}

// finalize drives the deletion path: delete the record from every primary
// endpoint the zone currently selects, tolerate 404s, and remove the finalizer once every
// endpoint confirms deletion or the force-drop window has elapsed (§4.2).
func (e *recordEngine) finalize(ctx context.Context, obj client.Object, adapter recordAdapter) (ctrl.Result, error) {
	if !controllerutil.ContainsFinalizer(obj, consts.FinalizerRecord) {
		return ctrl.Result{}, nil
	}

	var zone dnsv1alpha1.DNSZone
	zoneErr := e.Get(ctx, types.NamespacedName{Namespace: obj.GetNamespace(), Name: adapter.zoneRef()}, &zone)
	zoneGone := apierrors.IsNotFound(zoneErr)
	if zoneErr != nil && !zoneGone {
		return ctrl.Result{}, zoneErr
	}

	var endpoints []string
	if !zoneGone {
		var err error
		endpoints, err = e.resolvePrimaryEndpoints(ctx, &zone)
		if err != nil {
			return ctrl.Result{}, err
		}
	}

	var deleteErr error
	for _, endpoint := range endpoints {
		sidecar := e.sidecarFor(endpoint)
		_, callErr := e.Breakers.Execute(endpoint, func() (any, error) {
			return nil, sidecar.DeleteRecord(ctx, zone.Spec.FQDN, adapter.wireType(), adapter.recordName())
		})
		if callErr != nil && !sidecarclient.IsNotFound(callErr) {
			deleteErr = multierr.Append(deleteErr, fmt.Errorf("endpoint %s: %w", endpoint, callErr))
		}
	}

	if deleteErr == nil {
		controllerutil.RemoveFinalizer(obj, consts.FinalizerRecord)
		return ctrl.Result{}, e.Update(ctx, obj)
	}

	if e.forceDropEligible(obj, zoneGone) {
		if e.Recorder != nil {
			e.Recorder.Eventf(obj, "Warning", consts.ReasonForcedFinalizerDrop,
				"dropping finalizer after %s of continuous deletion failure: %s", e.forceDropWindow(), deleteErr.Error())
		}
		controllerutil.RemoveFinalizer(obj, consts.FinalizerRecord)
		annotations := obj.GetAnnotations()
		delete(annotations, deletionFailingSinceAnnotation)
		obj.SetAnnotations(annotations)
		return ctrl.Result{}, e.Update(ctx, obj)
	}

	if err := e.markDeletionFailing(ctx, obj); err != nil {
		return ctrl.Result{}, err
	}
	return ctrl.Result{}, deleteErr
}

// forceDropEligible reports whether the configured grace window has elapsed
// since deletion first started failing, and the parent zone is also gone
// (the only circumstance §4.2 permits a forced drop under).
func (e *recordEngine) forceDropEligible(obj client.Object, zoneGone bool) bool {
	if !zoneGone {
		return false
	}
	since, ok := obj.GetAnnotations()[deletionFailingSinceAnnotation]
	if !ok {
		return false
	}
	startedAt, err := time.Parse(time.RFC3339, since)
	if err != nil {
		return false
	}
	return time.Since(startedAt) >= e.forceDropWindow()
}

func (e *recordEngine) forceDropWindow() time.Duration {
	if e.ForceDropWindow > 0 {
		return e.ForceDropWindow
	}
	return consts.DefaultForceDropWindow
}

func (e *recordEngine) markDeletionFailing(ctx context.Context, obj client.Object) error {
	annotations := obj.GetAnnotations()
	if annotations == nil {
		annotations = map[string]string{}
	}
	if _, exists := annotations[deletionFailingSinceAnnotation]; exists {
		return nil
	}
	annotations[deletionFailingSinceAnnotation] = time.Now().UTC().Format(time.RFC3339)
	obj.SetAnnotations(annotations)
	return e.Update(ctx, obj)
}

// resolvePrimaryEndpoints resolves the zone's working endpoint set: primary
// role instances of the zone's cluster, filtered by the zone's selector,
// via the cache-first instancecache lookup (§4.2 step 3). The cluster is
// located with the same ClusterRef/ProviderRef precedence the zone
// controller's own refetch-and-validate phase uses (§4.3 step 1), so a
// record resolves to the same cluster its owning zone does regardless of
// which ref the zone was authored with.
func (e *recordEngine) resolvePrimaryEndpoints(ctx context.Context, zone *dnsv1alpha1.DNSZone) ([]string, error) {
	if zone.Spec.ClusterRef == "" && zone.Spec.ProviderRef == "" {
		return nil, nil
	}
	target, err := providerresolve.Resolve(ctx, e.Client, zone.Namespace, zone.Spec.ClusterRef, zone.Spec.ProviderRef)
	if err != nil {
		return nil, err
	}
	instances, err := instancecache.Fetch(ctx, e.Client, target.Namespace, target.Name)
	if err != nil {
		return nil, err
	}

	endpoints := make([]string, 0, len(instances))
	for _, inst := range instances {
		if inst.Role != consts.RolePrimary || !inst.Ready || inst.Endpoint == "" {
			continue
		}
		matched, err := selector.Match(zone.Spec.Selector, inst.Labels)
		if err != nil {
			return nil, err
		}
		if matched {
			endpoints = append(endpoints, inst.Endpoint)
		}
	}
	return endpoints, nil
}

// setStatus writes the record's single Ready condition and persists it,
// skipping the status write entirely when the writer reports no change.
func (e *recordEngine) setStatus(ctx context.Context, obj client.Object, adapter recordAdapter, status metav1.ConditionStatus, reason, message string) (ctrl.Result, error) {
	return e.writeStatus(ctx, obj, adapter, status, reason, message, false)
}

// writeStatusForce behaves like setStatus but always persists, used when a
// non-condition status field (e.g. EndpointCount) also changed.
func (e *recordEngine) writeStatusForce(ctx context.Context, obj client.Object, adapter recordAdapter, status metav1.ConditionStatus, reason, message string) (ctrl.Result, error) {
	return e.writeStatus(ctx, obj, adapter, status, reason, message, true)
}

func (e *recordEngine) writeStatus(ctx context.Context, obj client.Object, adapter recordAdapter, status metav1.ConditionStatus, reason, message string, force bool) (ctrl.Result, error) {
	var writer condition.Writer
	writer.SetReady(&adapter.status().Conditions, status, obj.GetGeneration(), reason, message)
	adapter.status().ObservedGeneration = obj.GetGeneration()
	if !writer.Changed() && !force {
		return ctrl.Result{}, nil
	}
	if err := e.Status().Update(ctx, obj); err != nil {
		if apierrors.IsConflict(err) {
			return ctrl.Result{Requeue: true}, nil
		}
		return ctrl.Result{}, err
	}
	return ctrl.Result{}, nil
}

func unwrapSidecarError(err error) error {
	if sidecarErr, ok := asSidecarError(err); ok {
		return sidecarErr
	}
	return err
}

func asSidecarError(err error) (*sidecarclient.Error, bool) {
	for _, e := range multierr.Errors(err) {
		if sidecarErr, ok := e.(*sidecarclient.Error); ok {
			return sidecarErr, true
		}
	}
	if sidecarErr, ok := err.(*sidecarclient.Error); ok {
		return sidecarErr, true
	}
	return nil, false
}
