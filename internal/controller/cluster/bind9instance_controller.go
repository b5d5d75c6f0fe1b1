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

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/handler"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	clusterv1alpha1 "github.com/firestoned/bindy/api/cluster/v1alpha1"
	"github.com/firestoned/bindy/internal/builders"
	"github.com/firestoned/bindy/internal/condition"
	"github.com/firestoned/bindy/internal/instancecache"
	"github.com/firestoned/bindy/pkg/consts"
)

// Bind9InstanceReconciler reconciles a Bind9Instance object
type Bind9InstanceReconciler struct {
	client.Client
	Scheme *runtime.Scheme
	Images builders.Images
}

//+kubebuilder:rbac:groups=cluster.bindy.firestoned.io,resources=bind9instances,verbs=get;list;watch;create;update;patch;delete
//+kubebuilder:rbac:groups=cluster.bindy.firestoned.io,resources=bind9instances/status,verbs=get;update;patch
//+kubebuilder:rbac:groups=cluster.bindy.firestoned.io,resources=bind9clusters,verbs=get;list;watch
//+kubebuilder:rbac:groups=apps,resources=deployments,verbs=get;list;watch;create;update;patch;delete
//+kubebuilder:rbac:groups="",resources=services;configmaps;secrets,verbs=get;list;watch;create;update;patch;delete
//+kubebuilder:rbac:groups="",resources=pods,verbs=get;list;watch

// Reconcile materializes the workload, service, configmap and (optionally)
// secret owned by one Bind9Instance, then aggregates pod readiness into the
// hierarchical status condition set (§4.4).
func (r *Bind9InstanceReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	logger := log.FromContext(ctx)

	var instance clusterv1alpha1.Bind9Instance
	if err := r.Get(ctx, req.NamespacedName, &instance); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, err
	}

	var owningCluster clusterv1alpha1.Bind9Cluster
	if err := r.Get(ctx, types.NamespacedName{Namespace: instance.Namespace, Name: instance.Spec.ClusterRef}, &owningCluster); err != nil {
		if apierrors.IsNotFound(err) {
			logger.Info("owning Bind9Cluster not found", "clusterRef", instance.Spec.ClusterRef)
			return r.updateStatusDegraded(ctx, &instance, consts.ReasonClusterNotFound, fmt.Sprintf("cluster %q not found", instance.Spec.ClusterRef))
		}
		return ctrl.Result{}, err
	}

	if err := r.reconcileConfigMap(ctx, &owningCluster, &instance); err != nil {
		return r.updateStatusDegraded(ctx, &instance, consts.ReasonConfigurationInvalid, err.Error())
	}

	if instance.Spec.AutoIssueCredentials {
		if err := r.reconcileSecret(ctx, &owningCluster, &instance); err != nil {
			return r.updateStatusDegraded(ctx, &instance, consts.ReasonConfigurationInvalid, err.Error())
		}
	}

	if err := r.reconcileDeployment(ctx, &owningCluster, &instance); err != nil {
		return r.updateStatusDegraded(ctx, &instance, consts.ReasonConfigurationInvalid, err.Error())
	}

	svc, err := r.reconcileService(ctx, &owningCluster, &instance)
	if err != nil {
		return r.updateStatusDegraded(ctx, &instance, consts.ReasonConfigurationInvalid, err.Error())
	}
	instance.Status.Endpoint = fmt.Sprintf("http://%s.%s.svc:8080", svc.Name, svc.Namespace)

	return r.updatePodConditions(ctx, &instance)
}

func (r *Bind9InstanceReconciler) reconcileConfigMap(ctx context.Context, cluster *clusterv1alpha1.Bind9Cluster, instance *clusterv1alpha1.Bind9Instance) error {
	desired, err := builders.ConfigMap(cluster, instance)
	if err != nil {
		return err
	}

	var existing corev1.ConfigMap
	err = r.Get(ctx, client.ObjectKeyFromObject(desired), &existing)
	if apierrors.IsNotFound(err) {
		return r.Create(ctx, desired)
	}
	if err != nil {
		return err
	}
	if existing.Data["named.conf.options"] != desired.Data["named.conf.options"] {
		existing.Data = desired.Data
		return r.Update(ctx, &existing)
	}
	return nil
}

func (r *Bind9InstanceReconciler) reconcileSecret(ctx context.Context, cluster *clusterv1alpha1.Bind9Cluster, instance *clusterv1alpha1.Bind9Instance) error {
	var existing corev1.Secret
	err := r.Get(ctx, types.NamespacedName{Namespace: instance.Namespace, Name: builders.SecretName(instance.Name)}, &existing)
	if err == nil {
		return nil
	}
	if !apierrors.IsNotFound(err) {
		return err
	}

	desired, err := builders.Secret(cluster, instance)
	if err != nil {
		return err
	}
	return r.Create(ctx, desired)
}

func (r *Bind9InstanceReconciler) reconcileDeployment(ctx context.Context, cluster *clusterv1alpha1.Bind9Cluster, instance *clusterv1alpha1.Bind9Instance) error {
	desired := builders.Deployment(cluster, instance, r.Images)

	var existing appsv1.Deployment
	err := r.Get(ctx, client.ObjectKeyFromObject(desired), &existing)
	if apierrors.IsNotFound(err) {
		return r.Create(ctx, desired)
	}
	if err != nil {
		return err
	}
	if builders.DeploymentNeedsUpdate(&existing, desired) {
		existing.Spec.Replicas = desired.Spec.Replicas
		existing.Spec.Template = desired.Spec.Template
		return r.Update(ctx, &existing)
	}
	return nil
}

func (r *Bind9InstanceReconciler) reconcileService(ctx context.Context, cluster *clusterv1alpha1.Bind9Cluster, instance *clusterv1alpha1.Bind9Instance) (*corev1.Service, error) {
	desired := builders.Service(cluster, instance)

	var existing corev1.Service
	err := r.Get(ctx, client.ObjectKeyFromObject(desired), &existing)
	if apierrors.IsNotFound(err) {
		if err := r.Create(ctx, desired); err != nil {
			return nil, err
		}
		return desired, nil
	}
	if err != nil {
		return nil, err
	}
	if builders.ServiceNeedsUpdate(&existing, desired) {
		existing.Spec.Ports = desired.Spec.Ports
		existing.Spec.Selector = desired.Spec.Selector
		if err := r.Update(ctx, &existing); err != nil {
			return nil, err
		}
	}
	return &existing, nil
}

// updatePodConditions lists the instance's pods, writes one Pod-<i>
// condition per replica keyed by ordinal, and aggregates them into Ready.
func (r *Bind9InstanceReconciler) updatePodConditions(ctx context.Context, instance *clusterv1alpha1.Bind9Instance) (ctrl.Result, error) {
	var pods corev1.PodList
	if err := r.List(ctx, &pods, client.InNamespace(instance.Namespace), client.MatchingLabels(builders.SelectorLabels(instance.Spec.ClusterRef, instance.Name))); err != nil {
		return ctrl.Result{}, err
	}

	sort.Slice(pods.Items, func(i, j int) bool { return pods.Items[i].Name < pods.Items[j].Name })

	var writer condition.Writer
	keep := map[string]bool{}
	readyCount := int32(0)
	childReady := make([]bool, 0, len(pods.Items))

	for i, pod := range pods.Items {
		childType := condition.ChildType("Pod", i)
		keep[childType] = true

		ready := isPodReady(&pod)
		childReady = append(childReady, ready)
		if ready {
			readyCount++
		}

		status := metav1.ConditionFalse
		reason := consts.ReasonPodsPending
		message := fmt.Sprintf("pod %s not ready", pod.Name)
		if ready {
			status = metav1.ConditionTrue
			reason = consts.ReasonReady
			message = fmt.Sprintf("pod %s ready", pod.Name)
		} else if isPodCrashLooping(&pod) {
			reason = consts.ReasonPodsCrashing
		}
		writer.SetChild(&instance.Status.Conditions, childType, status, instance.Generation, reason, message)
	}
	writer.PruneChildren(&instance.Status.Conditions, keep)

	status, reason := condition.Aggregate(childReady)
	writer.SetReady(&instance.Status.Conditions, status, instance.Generation, reason, fmt.Sprintf("%d/%d pods ready", readyCount, len(pods.Items)))

	instance.Status.ReadyReplicas = readyCount
	instance.Status.ObservedGeneration = instance.Generation

	if err := r.Status().Update(ctx, instance); err != nil {
		if apierrors.IsConflict(err) {
			return ctrl.Result{Requeue: true}, nil
		}
		return ctrl.Result{}, err
	}

	if _, err := instancecache.Refresh(ctx, r.Client, instance.Namespace, instance.Spec.ClusterRef); err != nil {
		logger := log.FromContext(ctx)
		logger.Error(err, "failed to refresh instance cache", "clusterRef", instance.Spec.ClusterRef)
	}

	return ctrl.Result{}, nil
}

func (r *Bind9InstanceReconciler) updateStatusDegraded(ctx context.Context, instance *clusterv1alpha1.Bind9Instance, reason, message string) (ctrl.Result, error) {
	var writer condition.Writer
	writer.SetReady(&instance.Status.Conditions, metav1.ConditionFalse, instance.Generation, reason, message)
	if err := r.Status().Update(ctx, instance); err != nil {
		if apierrors.IsConflict(err) {
			return ctrl.Result{Requeue: true}, nil
		}
		return ctrl.Result{}, err
	}
	return ctrl.Result{}, nil
}

func isPodReady(pod *corev1.Pod) bool {
	for _, cond := range pod.Status.Conditions {
		if cond.Type == corev1.PodReady {
			return cond.Status == corev1.ConditionTrue
		}
	}
	return false
}

func isPodCrashLooping(pod *corev1.Pod) bool {
	for _, cs := range pod.Status.ContainerStatuses {
		if cs.RestartCount > 0 && cs.State.Waiting != nil && cs.State.Waiting.Reason == "CrashLoopBackOff" {
			return true
		}
	}
	return false
}

// mapPodToInstance re-enqueues the owning Bind9Instance when one of its
// pods changes readiness.
func (r *Bind9InstanceReconciler) mapPodToInstance(_ context.Context, obj client.Object) []reconcile.Request {
	instanceName, ok := obj.GetLabels()[consts.LabelInstance]
	if !ok {
		return nil
	}
	return []reconcile.Request{{NamespacedName: types.NamespacedName{Namespace: obj.GetNamespace(), Name: instanceName}}}
}

// SetupWithManager wires watches for the instance's owned children plus its
// pods, whose readiness transitions don't otherwise trigger a reconcile.
func (r *Bind9InstanceReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&clusterv1alpha1.Bind9Instance{}).
		Owns(&appsv1.Deployment{}).
		Owns(&corev1.Service{}).
		Owns(&corev1.ConfigMap{}).
		Watches(
			&corev1.Pod{},
			handler.EnqueueRequestsFromMapFunc(r.mapPodToInstance),
		).
		Complete(r)
}
