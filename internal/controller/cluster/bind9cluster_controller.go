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

package cluster

import (
	"context"
	"fmt"
	"sort"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/handler"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	clusterv1alpha1 "github.com/firestoned/bindy/api/cluster/v1alpha1"
	"github.com/firestoned/bindy/internal/builders"
	"github.com/firestoned/bindy/internal/condition"
	"github.com/firestoned/bindy/pkg/consts"
)

// Bind9ClusterReconciler reconciles a Bind9Cluster object
type Bind9ClusterReconciler struct {
	client.Client
	Scheme   *runtime.Scheme
	Recorder record.EventRecorder
}

//+kubebuilder:rbac:groups=cluster.bindy.firestoned.io,resources=bind9clusters,verbs=get;list;watch;create;update;patch;delete
//+kubebuilder:rbac:groups=cluster.bindy.firestoned.io,resources=bind9clusters/status,verbs=get;update;patch
//+kubebuilder:rbac:groups=cluster.bindy.firestoned.io,resources=bind9instances,verbs=get;list;watch;create;update;patch;delete

// Reconcile materializes the Bind9Instance set declared by a Bind9Cluster's
// spec.instances (§4.5: create missing instances, update drifted ones,
// delete instances no longer declared), then aggregates each instance's
// Ready condition into the cluster's own hierarchical status (§4.4).
func (r *Bind9ClusterReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	logger := log.FromContext(ctx)

	var cluster clusterv1alpha1.Bind9Cluster
	if err := r.Get(ctx, req.NamespacedName, &cluster); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, err
	}

	if cluster.Spec.TSIGKey != nil && r.Recorder != nil {
		r.Recorder.Eventf(&cluster, "Warning", consts.ReasonInlineTSIGKeyDeprecated,
			"spec.tsigKey is deprecated; set spec.rndcSecretRef instead")
	}

	desiredNames := make(map[string]bool, len(cluster.Spec.Instances))
	for _, tmpl := range cluster.Spec.Instances {
		desiredNames[instanceChildName(&cluster, tmpl)] = true
	}

	for _, tmpl := range cluster.Spec.Instances {
		if err := r.reconcileInstance(ctx, &cluster, tmpl); err != nil {
			logger.Error(err, "failed to reconcile Bind9Instance child", "instance", instanceChildName(&cluster, tmpl))
			return r.updateStatusDegraded(ctx, &cluster, consts.ReasonConfigurationInvalid, err.Error())
		}
	}

	if err := r.pruneUndeclaredInstances(ctx, &cluster, desiredNames); err != nil {
		return ctrl.Result{}, err
	}

	return r.updateAggregatedStatus(ctx, &cluster)
}

// instanceChildName derives the owned Bind9Instance's name by suffixing the
// cluster name, per the InstanceTemplate.Name doc comment.
func instanceChildName(cluster *clusterv1alpha1.Bind9Cluster, tmpl clusterv1alpha1.InstanceTemplate) string {
	return fmt.Sprintf("%s-%s", cluster.Name, tmpl.Name)
}

func (r *Bind9ClusterReconciler) reconcileInstance(ctx context.Context, cluster *clusterv1alpha1.Bind9Cluster, tmpl clusterv1alpha1.InstanceTemplate) error {
	name := instanceChildName(cluster, tmpl)

	var existing clusterv1alpha1.Bind9Instance
	err := r.Get(ctx, types.NamespacedName{Namespace: cluster.Namespace, Name: name}, &existing)
	if apierrors.IsNotFound(err) {
		instance := &clusterv1alpha1.Bind9Instance{
			ObjectMeta: metav1.ObjectMeta{
				Name:      name,
				Namespace: cluster.Namespace,
				Labels:    builders.ChildLabels(cluster.Name, name, "bind9"),
				OwnerReferences: []metav1.OwnerReference{
					*metav1.NewControllerRef(cluster, clusterv1alpha1.GroupVersion.WithKind("Bind9Cluster")),
				},
			},
			Spec: clusterv1alpha1.Bind9InstanceSpec{
				ClusterRef:           cluster.Name,
				Role:                 tmpl.Role,
				Replicas:             tmpl.Replicas,
				PrimaryEndpoints:     tmpl.PrimaryEndpoints,
				AutoIssueCredentials: tmpl.AutoIssueCredentials,
			},
		}
		return r.Create(ctx, instance)
	}
	if err != nil {
		return err
	}

	if instanceSpecNeedsUpdate(&existing.Spec, tmpl) {
		existing.Spec.Role = tmpl.Role
		existing.Spec.Replicas = tmpl.Replicas
		existing.Spec.PrimaryEndpoints = tmpl.PrimaryEndpoints
		existing.Spec.AutoIssueCredentials = tmpl.AutoIssueCredentials
		return r.Update(ctx, &existing)
	}
	return nil
}

func instanceSpecNeedsUpdate(existing *clusterv1alpha1.Bind9InstanceSpec, tmpl clusterv1alpha1.InstanceTemplate) bool {
	if existing.Role != tmpl.Role || existing.Replicas != tmpl.Replicas || existing.AutoIssueCredentials != tmpl.AutoIssueCredentials {
		return true
	}
	if len(existing.PrimaryEndpoints) != len(tmpl.PrimaryEndpoints) {
		return true
	}
	for i := range existing.PrimaryEndpoints {
		if existing.PrimaryEndpoints[i] != tmpl.PrimaryEndpoints[i] {
			return true
		}
	}
	return false
}

// pruneUndeclaredInstances deletes any owned Bind9Instance no longer named
// by spec.instances, e.g. after an entry is removed from the cluster spec.
func (r *Bind9ClusterReconciler) pruneUndeclaredInstances(ctx context.Context, cluster *clusterv1alpha1.Bind9Cluster, desiredNames map[string]bool) error {
	var owned clusterv1alpha1.Bind9InstanceList
	if err := r.List(ctx, &owned, client.InNamespace(cluster.Namespace), client.MatchingLabels{consts.LabelPartOf: cluster.Name}); err != nil {
		return err
	}
	for i := range owned.Items {
		instance := &owned.Items[i]
		if !metav1.IsControlledBy(instance, cluster) {
			continue
		}
		if desiredNames[instance.Name] {
			continue
		}
		if err := r.Delete(ctx, instance); err != nil && !apierrors.IsNotFound(err) {
			return err
		}
	}
	return nil
}

// updateAggregatedStatus lists the cluster's owned instances, writes one
// Bind9Instance-<i> condition per child keyed by sorted ordinal, and
// aggregates them into the cluster's Ready condition.
func (r *Bind9ClusterReconciler) updateAggregatedStatus(ctx context.Context, cluster *clusterv1alpha1.Bind9Cluster) (ctrl.Result, error) {
	var owned clusterv1alpha1.Bind9InstanceList
	if err := r.List(ctx, &owned, client.InNamespace(cluster.Namespace), client.MatchingLabels{consts.LabelPartOf: cluster.Name}); err != nil {
		return ctrl.Result{}, err
	}

	children := make([]clusterv1alpha1.Bind9Instance, 0, len(owned.Items))
	for _, instance := range owned.Items {
		if metav1.IsControlledBy(&instance, cluster) {
			children = append(children, instance)
		}
	}
	sort.Slice(children, func(i, j int) bool { return children[i].Name < children[j].Name })

	var writer condition.Writer
	keep := map[string]bool{}
	childReady := make([]bool, 0, len(children))

	for i, instance := range children {
		childType := condition.ChildType("Bind9Instance", i)
		keep[childType] = true

		readyCond := meta.FindStatusCondition(instance.Status.Conditions, consts.ConditionTypeReady)
		ready := readyCond != nil && readyCond.Status == metav1.ConditionTrue
		childReady = append(childReady, ready)

		status := metav1.ConditionFalse
		reason := consts.ReasonNotReady
		message := fmt.Sprintf("instance %s not ready", instance.Name)
		if readyCond != nil {
			status = readyCond.Status
			reason = readyCond.Reason
			message = fmt.Sprintf("instance %s: %s", instance.Name, readyCond.Message)
		}
		writer.SetChild(&cluster.Status.Conditions, childType, status, cluster.Generation, reason, message)
	}
	writer.PruneChildren(&cluster.Status.Conditions, keep)

	status, reason := condition.Aggregate(childReady)
	writer.SetReady(&cluster.Status.Conditions, status, cluster.Generation, reason, fmt.Sprintf("%d/%d instances ready", countTrue(childReady), len(children)))

	cluster.Status.InstanceCount = len(children)
	cluster.Status.ObservedGeneration = cluster.Generation

	if err := r.Status().Update(ctx, cluster); err != nil {
		if apierrors.IsConflict(err) {
			return ctrl.Result{Requeue: true}, nil
		}
		return ctrl.Result{}, err
	}
	return ctrl.Result{}, nil
}

func countTrue(bs []bool) int {
	n := 0
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}

func (r *Bind9ClusterReconciler) updateStatusDegraded(ctx context.Context, cluster *clusterv1alpha1.Bind9Cluster, reason, message string) (ctrl.Result, error) {
	var writer condition.Writer
	writer.SetReady(&cluster.Status.Conditions, metav1.ConditionFalse, cluster.Generation, reason, message)
	if err := r.Status().Update(ctx, cluster); err != nil {
		if apierrors.IsConflict(err) {
			return ctrl.Result{Requeue: true}, nil
		}
		return ctrl.Result{}, err
	}
	return ctrl.Result{}, nil
}

// mapInstanceToCluster re-enqueues the owning Bind9Cluster when one of its
// Bind9Instance children changes status.
func (r *Bind9ClusterReconciler) mapInstanceToCluster(_ context.Context, obj client.Object) []reconcile.Request {
	clusterName, ok := obj.GetLabels()[consts.LabelPartOf]
	if !ok {
		return nil
	}
	return []reconcile.Request{{NamespacedName: types.NamespacedName{Namespace: obj.GetNamespace(), Name: clusterName}}}
}

// SetupWithManager wires a watch on owned Bind9Instance children so status
// changes there (e.g. pods becoming ready) are reflected in the cluster's
// aggregated condition without waiting for the cluster's own resync.
func (r *Bind9ClusterReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&clusterv1alpha1.Bind9Cluster{}).
		Watches(
			&clusterv1alpha1.Bind9Instance{},
			handler.EnqueueRequestsFromMapFunc(r.mapInstanceToCluster),
		).
		Complete(r)
}
