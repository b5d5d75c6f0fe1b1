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
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/multierr"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
	"sigs.k8s.io/controller-runtime/pkg/log"

	clusterv1alpha1 "github.com/firestoned/bindy/api/cluster/v1alpha1"
	dnsv1alpha1 "github.com/firestoned/bindy/api/dns/v1alpha1"
	"github.com/firestoned/bindy/internal/circuitbreaker"
	"github.com/firestoned/bindy/internal/condition"
	"github.com/firestoned/bindy/internal/instancecache"
	"github.com/firestoned/bindy/internal/metrics"
	"github.com/firestoned/bindy/internal/providerresolve"
	"github.com/firestoned/bindy/internal/ratelimit"
	"github.com/firestoned/bindy/internal/rndc"
	"github.com/firestoned/bindy/internal/selector"
	"github.com/firestoned/bindy/internal/sidecarclient"
	"github.com/firestoned/bindy/pkg/consts"
)

// DNSZoneReconciler drives a zone through the ten phases of §4.3: the
// hardest reconciler in the system because primary configuration must
// succeed before secondaries transfer, and duplicate FQDNs on overlapping
// instance sets must be caught before either zone mutates an endpoint.
type DNSZoneReconciler struct {
	client.Client
	Tracker         *ratelimit.Tracker
	Breakers        *circuitbreaker.Table
	Recorder        record.EventRecorder
	BearerToken     string
	SidecarTimeout  time.Duration
	RequeueInterval time.Duration

	// NewSidecarClient builds a sidecarclient.Client for an endpoint
	// address; overridable in tests. Defaults to sidecarclient.NewClient.
	NewSidecarClient func(endpoint, bearerToken string, timeout time.Duration) *sidecarclient.Client

	// NewRNDCClient builds the rndc.Client used for post-primary-phase
	// notify; overridable in tests. Defaults to rndc.NewClient("").
	NewRNDCClient func() *rndc.Client
}

//+kubebuilder:rbac:groups=dns.bindy.firestoned.io,resources=dnszones,verbs=get;list;watch;update;patch
//+kubebuilder:rbac:groups=dns.bindy.firestoned.io,resources=dnszones/status,verbs=get;update;patch
//+kubebuilder:rbac:groups=dns.bindy.firestoned.io,resources=arecords;aaaarecords;cnamerecords;mxrecords;txtrecords;nsrecords;srvrecords;caarecords,verbs=get;list;watch
//+kubebuilder:rbac:groups=cluster.bindy.firestoned.io,resources=bind9clusters;bind9providers,verbs=get;list;watch

func (r *DNSZoneReconciler) sidecarFor(endpoint string) *sidecarclient.Client {
	if r.NewSidecarClient != nil {
		return r.NewSidecarClient(endpoint, r.BearerToken, r.SidecarTimeout)
	}
	return sidecarclient.NewClient(endpoint, r.BearerToken, r.SidecarTimeout)
}

func (r *DNSZoneReconciler) requeueInterval() time.Duration {
	if r.RequeueInterval > 0 {
		return r.RequeueInterval
	}
	return consts.DefaultZoneRequeueInterval
}

// Reconcile implements phases 1-10 of §4.3 plus the deletion finalizer path.
func (r *DNSZoneReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	start := time.Now()
	result, err := r.doReconcile(ctx, req)
	metrics.ObserveReconcile("DNSZone", reconcileResultLabel(err), time.Since(start).Seconds())
	return result, err
}

func (r *DNSZoneReconciler) doReconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	logger := log.FromContext(ctx)

	var zone dnsv1alpha1.DNSZone
	if err := r.Get(ctx, req.NamespacedName, &zone); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, err
	}

	if !zone.DeletionTimestamp.IsZero() {
		return r.finalizeZone(ctx, &zone)
	}

	if !controllerutil.ContainsFinalizer(&zone, consts.FinalizerZone) {
		controllerutil.AddFinalizer(&zone, consts.FinalizerZone)
		if err := r.Update(ctx, &zone); err != nil {
			return ctrl.Result{}, err
		}
		return ctrl.Result{}, nil
	}

	// Global reconcile governor (§5): the token bucket is shared across
	// every kind, so a zone storm can't starve record reconciles or vice
	// versa. Throttled passes requeue at the bucket's own pace rather than
	// the steady-state requeue interval.
	if r.Tracker != nil && !r.Tracker.Allow() {
		result, err := r.writeReady(ctx, &zone, metav1.ConditionFalse, consts.ReasonRateLimited,
			"process-wide reconcile rate limit reached")
		if err != nil || result.Requeue {
			return result, err
		}
		return ctrl.Result{RequeueAfter: r.Tracker.Reserve()}, nil
	}

	// No-op short-circuit: a zone whose spec hash matches its last
	// recorded hash and whose Ready condition is already true has no work
	// to do until something watched changes and requeues it explicitly.
	hash, err := specHash(zone.Spec)
	if err != nil {
		return ctrl.Result{}, err
	}
	readyCond := meta.FindStatusCondition(zone.Status.Conditions, consts.ConditionTypeReady)
	if zone.Annotations[consts.AnnotationSpecHash] == hash && readyCond != nil && readyCond.Status == metav1.ConditionTrue {
		return ctrl.Result{RequeueAfter: r.requeueInterval()}, nil
	}

	// Phase 1: refetch & validate. The Get above is the refetch; validate
	// the referenced cluster/provider resolves to a real Bind9Cluster.
	target, err := providerresolve.Resolve(ctx, r.Client, zone.Namespace, zone.Spec.ClusterRef, zone.Spec.ProviderRef)
	if err != nil {
		return r.writeReady(ctx, &zone, metav1.ConditionFalse, consts.ReasonClusterNotFound, err.Error())
	}
	var cluster clusterv1alpha1.Bind9Cluster
	if err := r.Get(ctx, types.NamespacedName{Namespace: target.Namespace, Name: target.Name}, &cluster); err != nil {
		if apierrors.IsNotFound(err) {
			return r.writeReady(ctx, &zone, metav1.ConditionFalse, consts.ReasonClusterNotFound,
				fmt.Sprintf("cluster %s/%s not found", target.Namespace, target.Name))
		}
		return ctrl.Result{}, err
	}

	instances, err := instancecache.Fetch(ctx, r.Client, target.Namespace, target.Name)
	if err != nil {
		return ctrl.Result{}, err
	}
	instanceLabels := make(map[string]map[string]string, len(instances))
	byKey := make(map[string]instancecache.Instance, len(instances))
	for _, inst := range instances {
		key := instancecache.Key(inst.Namespace, inst.Name)
		instanceLabels[key] = inst.Labels
		byKey[key] = inst
	}

	// Phase 2: duplicate detection.
	duplicate, err := r.detectDuplicate(ctx, &zone, target, instanceLabels)
	if err != nil {
		return ctrl.Result{}, err
	}
	if duplicate {
		logger.Info("zone FQDN overlaps another zone's instance set", "fqdn", zone.Spec.FQDN)
		return r.writeReady(ctx, &zone, metav1.ConditionFalse, consts.ReasonDuplicateZone,
			fmt.Sprintf("FQDN %s overlaps another zone's selected instances", zone.Spec.FQDN))
	}

	// Phase 3: instance filtering & rate limiting.
	selectedKeys, err := selector.FilterKeys(zone.Spec.Selector, instanceLabels)
	if err != nil {
		return r.writeReady(ctx, &zone, metav1.ConditionFalse, consts.ReasonConfigurationInvalid, err.Error())
	}
	working, heldBack, nextExpiry := r.Tracker.Partition(selectedKeys, time.Now())
	metrics.RateLimiterHeldBack.WithLabelValues(zone.Name).Set(float64(len(heldBack)))

	var primaries, secondaries []instancecache.Instance
	for _, key := range working {
		inst := byKey[key]
		if inst.Endpoint == "" {
			continue
		}
		if inst.Role == consts.RolePrimary {
			primaries = append(primaries, inst)
		} else {
			secondaries = append(secondaries, inst)
		}
	}

	// Phase 4: cleanup of deselected instances.
	workingEndpoints := make(map[string]bool, len(primaries)+len(secondaries))
	for _, inst := range primaries {
		workingEndpoints[inst.Endpoint] = true
	}
	for _, inst := range secondaries {
		workingEndpoints[inst.Endpoint] = true
	}
	if err := r.cleanupDeselected(ctx, &zone, workingEndpoints); err != nil {
		return ctrl.Result{}, err
	}

	now := time.Now()
	for _, key := range working {
		r.Tracker.MarkTouched(key, now)
	}

	// Phase 5: primary phase.
	primaryEndpoints := endpointsOf(primaries)
	secondaryEndpoints := endpointsOf(secondaries)
	if _, err := r.writeProgressing(ctx, &zone, consts.ReasonPrimaryReconciling, "configuring primary endpoints"); err != nil {
		return ctrl.Result{}, err
	}

	if err := r.configurePrimaries(ctx, &zone, primaryEndpoints, secondaryEndpoints); err != nil {
		if r.Recorder != nil {
			r.Recorder.Eventf(&zone, "Warning", consts.ReasonPrimaryFailed, "primary phase failed: %s", err.Error())
		}
		return r.writeDegraded(ctx, &zone, consts.ReasonPrimaryFailed, err.Error())
	}
	zone.Status.ConfiguredPrimaries = primaryEndpoints
	r.notifyPrimaries(ctx, &cluster, &zone, primaryEndpoints)

	// Phase 6: primary-complete transition.
	if _, err := r.writeProgressing(ctx, &zone, consts.ReasonPrimaryReconciled,
		fmt.Sprintf("%d primary endpoint(s) configured", len(primaryEndpoints))); err != nil {
		return ctrl.Result{}, err
	}

	// Phase 7: secondary phase.
	var secondaryErr error
	if _, err := r.writeProgressing(ctx, &zone, consts.ReasonSecondaryReconciling, "configuring secondary endpoints"); err != nil {
		return ctrl.Result{}, err
	}
	failedSecondaries := r.configureSecondaries(ctx, &zone, secondaryEndpoints, primaryEndpoints)
	if len(failedSecondaries) > 0 {
		secondaryErr = fmt.Errorf("secondary endpoints failed: %v", failedSecondaries)
		if r.Recorder != nil {
			r.Recorder.Eventf(&zone, "Warning", consts.ReasonSecondaryFailed, "%s", secondaryErr.Error())
		}
		if _, err := r.writeDegraded(ctx, &zone, consts.ReasonSecondaryFailed, secondaryErr.Error()); err != nil {
			return ctrl.Result{}, err
		}
	}
	zone.Status.ConfiguredSecondaries = endpointsExcluding(secondaryEndpoints, failedSecondaries)

	// Phase 8: record discovery.
	recordRefs, err := r.discoverRecords(ctx, &zone)
	if err != nil {
		return ctrl.Result{}, err
	}
	zone.Status.Records = recordRefs

	// Phase 9: convergence check.
	requireConvergence := zone.Spec.RequireRecordConvergence == nil || *zone.Spec.RequireRecordConvergence
	if requireConvergence {
		converged := r.recordsConverged(&zone)
		if !converged {
			result, err := r.writeReady(ctx, &zone, metav1.ConditionFalse, consts.ReasonProgressing, "waiting for record convergence")
			if err != nil || result.Requeue {
				return result, err
			}
			return ctrl.Result{RequeueAfter: r.requeueInterval()}, nil
		}
	}

	// Phase 10: finalization.
	result, err := r.writeReady(ctx, &zone, metav1.ConditionTrue, consts.ReasonReconcileSucceeded,
		fmt.Sprintf("configured on %d primary server(s) and %d secondary server(s), %d record(s) discovered",
			len(primaryEndpoints), len(zone.Status.ConfiguredSecondaries), len(recordRefs)))
	if err != nil || result.Requeue {
		return result, err
	}

	if zone.Annotations[consts.AnnotationSpecHash] != hash {
		if zone.Annotations == nil {
			zone.Annotations = map[string]string{}
		}
		zone.Annotations[consts.AnnotationSpecHash] = hash
		if err := r.Update(ctx, &zone); err != nil {
			return ctrl.Result{}, err
		}
	}

	if len(heldBack) > 0 {
		return ctrl.Result{RequeueAfter: nextExpiry}, nil
	}
	if secondaryErr != nil {
		return ctrl.Result{}, secondaryErr
	}
	return ctrl.Result{RequeueAfter: r.requeueInterval()}, nil
}

func endpointsOf(instances []instancecache.Instance) []string {
	out := make([]string, 0, len(instances))
	for _, inst := range instances {
		out = append(out, inst.Endpoint)
	}
	sort.Strings(out)
	return out
}

func endpointsExcluding(all []string, excluded []string) []string {
	drop := make(map[string]bool, len(excluded))
	for _, e := range excluded {
		drop[e] = true
	}
	out := make([]string, 0, len(all))
	for _, e := range all {
		if !drop[e] {
			out = append(out, e)
		}
	}
	return out
}

// detectDuplicate implements §4.3 phase 2: any other zone in the same
// resolved cluster with the same FQDN whose selector overlaps this zone's
// selector, evaluated over the cluster's instance labels, makes both
// zones DuplicateZone.
func (r *DNSZoneReconciler) detectDuplicate(ctx context.Context, zone *dnsv1alpha1.DNSZone, target providerresolve.Target, instanceLabels map[string]map[string]string) (bool, error) {
	var all dnsv1alpha1.DNSZoneList
	if err := r.List(ctx, &all); err != nil {
		return false, err
	}
	for i := range all.Items {
		other := &all.Items[i]
		if other.Namespace == zone.Namespace && other.Name == zone.Name {
			continue
		}
		if other.Spec.FQDN != zone.Spec.FQDN {
			continue
		}
		otherTarget, err := providerresolve.Resolve(ctx, r.Client, other.Namespace, other.Spec.ClusterRef, other.Spec.ProviderRef)
		if err != nil {
			continue
		}
		if otherTarget != target {
			continue
		}
		overlap, err := selector.Overlaps(zone.Spec.Selector, other.Spec.Selector, instanceLabels)
		if err != nil {
			return false, err
		}
		if overlap {
			return true, nil
		}
	}
	return false, nil
}

// cleanupDeselected deletes zone config from any endpoint previously
// recorded in status that is no longer in the current working set (§4.3
// phase 4).
func (r *DNSZoneReconciler) cleanupDeselected(ctx context.Context, zone *dnsv1alpha1.DNSZone, working map[string]bool) error {
	previous := append(append([]string{}, zone.Status.ConfiguredPrimaries...), zone.Status.ConfiguredSecondaries...)
	var errs error
	for _, endpoint := range previous {
		if working[endpoint] {
			continue
		}
		sidecar := r.sidecarFor(endpoint)
		_, err := r.Breakers.Execute(endpoint, func() (any, error) {
			return nil, sidecar.DeleteZone(ctx, zone.Spec.FQDN)
		})
		if err != nil && !sidecarclient.IsNotFound(err) {
			errs = multierr.Append(errs, fmt.Errorf("endpoint %s: %w", endpoint, err))
		}
	}
	return errs
}

// configurePrimaries implements §4.3 phase 5. A single failure is fatal.
func (r *DNSZoneReconciler) configurePrimaries(ctx context.Context, zone *dnsv1alpha1.DNSZone, primaries, secondaries []string) error {
	payload := sidecarclient.ZonePayload{
		FQDN:          zone.Spec.FQDN,
		MName:         zone.Spec.SOA.MName,
		RName:         zone.Spec.SOA.RName,
		Refresh:       zone.Spec.SOA.Refresh,
		Retry:         zone.Spec.SOA.Retry,
		Expire:        zone.Spec.SOA.Expire,
		MinimumTTL:    zone.Spec.SOA.MinimumTTL,
		DefaultTTL:    zone.Spec.DefaultTTL,
		Role:          consts.RolePrimary,
		AllowTransfer: secondaries,
	}
	for _, endpoint := range primaries {
		sidecar := r.sidecarFor(endpoint)
		_, err := r.Breakers.Execute(endpoint, func() (any, error) {
			return nil, sidecar.PutZone(ctx, zone.Spec.FQDN, payload)
		})
		if err != nil && !sidecarclient.IsAlreadyExists(err) {
			return fmt.Errorf("endpoint %s: %w", endpoint, err)
		}
	}
	return nil
}

// configureSecondaries implements §4.3 phase 7. Failures are non-fatal;
// the names of failed endpoints are returned for the Degraded message.
func (r *DNSZoneReconciler) configureSecondaries(ctx context.Context, zone *dnsv1alpha1.DNSZone, secondaries, primaries []string) []string {
	payload := sidecarclient.ZonePayload{
		FQDN:       zone.Spec.FQDN,
		MName:      zone.Spec.SOA.MName,
		RName:      zone.Spec.SOA.RName,
		Refresh:    zone.Spec.SOA.Refresh,
		Retry:      zone.Spec.SOA.Retry,
		Expire:     zone.Spec.SOA.Expire,
		MinimumTTL: zone.Spec.SOA.MinimumTTL,
		DefaultTTL: zone.Spec.DefaultTTL,
		Role:       consts.RoleSecondary,
		Primaries:  primaries,
	}
	var failed []string
	for _, endpoint := range secondaries {
		sidecar := r.sidecarFor(endpoint)
		_, err := r.Breakers.Execute(endpoint, func() (any, error) {
			return nil, sidecar.PutZone(ctx, zone.Spec.FQDN, payload)
		})
		if err != nil && !sidecarclient.IsAlreadyExists(err) {
			failed = append(failed, endpoint)
		}
	}
	return failed
}

// discoverRecords implements §4.3 phase 8: one listing per record kind,
// run concurrently since the result is a set with no observable ordering.
func (r *DNSZoneReconciler) discoverRecords(ctx context.Context, zone *dnsv1alpha1.DNSZone) ([]dnsv1alpha1.RecordRef, error) {
	type listing struct {
		kind string
		list client.ObjectList
	}
	listings := []listing{
		{"ARecord", &dnsv1alpha1.ARecordList{}},
		{"AAAARecord", &dnsv1alpha1.AAAARecordList{}},
		{"CNAMERecord", &dnsv1alpha1.CNAMERecordList{}},
		{"MXRecord", &dnsv1alpha1.MXRecordList{}},
		{"TXTRecord", &dnsv1alpha1.TXTRecordList{}},
		{"NSRecord", &dnsv1alpha1.NSRecordList{}},
		{"SRVRecord", &dnsv1alpha1.SRVRecordList{}},
		{"CAARecord", &dnsv1alpha1.CAARecordList{}},
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		refs    []dnsv1alpha1.RecordRef
		listErr error
	)
	for _, l := range listings {
		wg.Add(1)
		go func(l listing) {
			defer wg.Done()
			if err := r.List(ctx, l.list, client.InNamespace(zone.Namespace)); err != nil {
				mu.Lock()
				listErr = multierr.Append(listErr, err)
				mu.Unlock()
				return
			}
			kindRefs := refsForKind(l.kind, l.list, zone)
			mu.Lock()
			refs = append(refs, kindRefs...)
			mu.Unlock()
		}(l)
	}
	wg.Wait()
	if listErr != nil {
		return nil, listErr
	}

	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Kind != refs[j].Kind {
			return refs[i].Kind < refs[j].Kind
		}
		return refs[i].Name < refs[j].Name
	})
	return refs, nil
}

// refsForKind extracts matching RecordRef entries from one kind's list,
// matching by RecordSelector label match when set, else by ZoneRef field.
func refsForKind(kind string, list client.ObjectList, zone *dnsv1alpha1.DNSZone) []dnsv1alpha1.RecordRef {
	var refs []dnsv1alpha1.RecordRef
	appendRef := func(obj metav1.Object, zoneRef string) {
		matched := false
		var err error
		if zone.Spec.RecordSelector != nil {
			matched, err = selector.Match(zone.Spec.RecordSelector, obj.GetLabels())
			if err != nil {
				return
			}
		} else {
			matched = zoneRef == zone.Name
		}
		if !matched {
			return
		}
		var lastReconciled *metav1.Time
		if ts, ok := obj.GetAnnotations()[consts.AnnotationLastReconciled]; ok {
			if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
				lastReconciled = &metav1.Time{Time: parsed}
			}
		}
		refs = append(refs, dnsv1alpha1.RecordRef{
			Kind:             kind,
			Name:             obj.GetName(),
			Namespace:        obj.GetNamespace(),
			LastReconciledAt: lastReconciled,
		})
	}

	switch typed := list.(type) {
	case *dnsv1alpha1.ARecordList:
		for i := range typed.Items {
			appendRef(&typed.Items[i], typed.Items[i].Spec.ZoneRef)
		}
	case *dnsv1alpha1.AAAARecordList:
		for i := range typed.Items {
			appendRef(&typed.Items[i], typed.Items[i].Spec.ZoneRef)
		}
	case *dnsv1alpha1.CNAMERecordList:
		for i := range typed.Items {
			appendRef(&typed.Items[i], typed.Items[i].Spec.ZoneRef)
		}
	case *dnsv1alpha1.MXRecordList:
		for i := range typed.Items {
			appendRef(&typed.Items[i], typed.Items[i].Spec.ZoneRef)
		}
	case *dnsv1alpha1.TXTRecordList:
		for i := range typed.Items {
			appendRef(&typed.Items[i], typed.Items[i].Spec.ZoneRef)
		}
	case *dnsv1alpha1.NSRecordList:
		for i := range typed.Items {
			appendRef(&typed.Items[i], typed.Items[i].Spec.ZoneRef)
		}
	case *dnsv1alpha1.SRVRecordList:
		for i := range typed.Items {
			appendRef(&typed.Items[i], typed.Items[i].Spec.ZoneRef)
		}
	case *dnsv1alpha1.CAARecordList:
		for i := range typed.Items {
			appendRef(&typed.Items[i], typed.Items[i].Spec.ZoneRef)
		}
	}
	return refs
}

// recordsConverged implements §4.3 phase 9: every discovered record's
// last-reconciled timestamp must be non-nil and not older than the zone's
// own Ready condition's lastTransitionTime.
func (r *DNSZoneReconciler) recordsConverged(zone *dnsv1alpha1.DNSZone) bool {
	readyCond := meta.FindStatusCondition(zone.Status.Conditions, consts.ConditionTypeReady)
	var since time.Time
	if readyCond != nil {
		since = readyCond.LastTransitionTime.Time
	}
	for _, ref := range zone.Status.Records {
		if ref.LastReconciledAt == nil {
			return false
		}
		if ref.LastReconciledAt.Time.Before(since) {
			return false
		}
	}
	return true
}

// finalizeZone implements the deletion finalizer path: delete the zone
// from every endpoint ever recorded in status, tolerating 404.
func (r *DNSZoneReconciler) finalizeZone(ctx context.Context, zone *dnsv1alpha1.DNSZone) (ctrl.Result, error) {
	if !controllerutil.ContainsFinalizer(zone, consts.FinalizerZone) {
		return ctrl.Result{}, nil
	}

	endpoints := append(append([]string{}, zone.Status.ConfiguredPrimaries...), zone.Status.ConfiguredSecondaries...)
	var errs error
	for _, endpoint := range endpoints {
		sidecar := r.sidecarFor(endpoint)
		_, err := r.Breakers.Execute(endpoint, func() (any, error) {
			return nil, sidecar.DeleteZone(ctx, zone.Spec.FQDN)
		})
		if err != nil && !sidecarclient.IsNotFound(err) {
			errs = multierr.Append(errs, fmt.Errorf("endpoint %s: %w", endpoint, err))
		}
	}
	if errs != nil {
		return ctrl.Result{}, errs
	}

	controllerutil.RemoveFinalizer(zone, consts.FinalizerZone)
	return ctrl.Result{}, r.Update(ctx, zone)
}

// writeReady sets the Ready condition, plus Degraded=False when Ready is
// True; ConfiguredPrimaries/
// ConfiguredSecondaries/Records are non-condition fields that phases 4-8
// may have mutated directly on zone.Status, so any write that follows one
// of those phases must force the update through regardless of whether the
// condition list itself changed.
func (r *DNSZoneReconciler) writeReady(ctx context.Context, zone *dnsv1alpha1.DNSZone, status metav1.ConditionStatus, reason, message string) (ctrl.Result, error) {
	var writer condition.Writer
	writer.SetReady(&zone.Status.Conditions, status, zone.Generation, reason, message)
	if status == metav1.ConditionTrue {
		// A successful reconcile supersedes any earlier Degraded verdict;
		// otherwise a zone that recovered from a failed secondary phase
		// would carry Ready=True and Degraded=True forever.
		writer.SetDegraded(&zone.Status.Conditions, metav1.ConditionFalse, zone.Generation, consts.ReasonReconcileSucceeded, message)
	}
	zone.Status.ObservedGeneration = zone.Generation
	return r.persistStatus(ctx, zone, &writer, true)
}

func (r *DNSZoneReconciler) writeProgressing(ctx context.Context, zone *dnsv1alpha1.DNSZone, reason, message string) (ctrl.Result, error) {
	var writer condition.Writer
	writer.SetProgressing(&zone.Status.Conditions, metav1.ConditionTrue, zone.Generation, reason, message)
	return r.persistStatus(ctx, zone, &writer, false)
}

func (r *DNSZoneReconciler) writeDegraded(ctx context.Context, zone *dnsv1alpha1.DNSZone, reason, message string) (ctrl.Result, error) {
	var writer condition.Writer
	writer.SetDegraded(&zone.Status.Conditions, metav1.ConditionTrue, zone.Generation, reason, message)
	writer.SetReady(&zone.Status.Conditions, metav1.ConditionFalse, zone.Generation, reason, message)
	return r.persistStatus(ctx, zone, &writer, true)
}

func (r *DNSZoneReconciler) persistStatus(ctx context.Context, zone *dnsv1alpha1.DNSZone, writer *condition.Writer, force bool) (ctrl.Result, error) {
	if !force && !writer.Changed() {
		return ctrl.Result{}, nil
	}
	if err := r.Status().Update(ctx, zone); err != nil {
		if apierrors.IsConflict(err) {
			return ctrl.Result{Requeue: true}, nil
		}
		return ctrl.Result{}, err
	}
	return ctrl.Result{}, nil
}

// specHash implements the no-op short-circuit supplement: a sha256 of the
// zone's spec, stored as an annotation, gates re-running the expensive
// phases when neither the spec nor any watched child has changed.
func specHash(spec dnsv1alpha1.DNSZoneSpec) (string, error) {
	encoded, err := json.Marshal(spec)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:]), nil
}

// SetupWithManager registers the controller with the manager.
func (r *DNSZoneReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&dnsv1alpha1.DNSZone{}).
		Complete(r)
}
