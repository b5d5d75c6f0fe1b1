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

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"

	clusterv1alpha1 "github.com/firestoned/bindy/api/cluster/v1alpha1"
	"github.com/firestoned/bindy/internal/condition"
	"github.com/firestoned/bindy/internal/providerresolve"
	"github.com/firestoned/bindy/pkg/consts"
)

// Bind9ProviderReconciler reconciles a Bind9Provider object
type Bind9ProviderReconciler struct {
	client.Client
	Scheme *runtime.Scheme
}

//+kubebuilder:rbac:groups=cluster.bindy.firestoned.io,resources=bind9providers,verbs=get;list;watch
//+kubebuilder:rbac:groups=cluster.bindy.firestoned.io,resources=bind9providers/status,verbs=get;update;patch
//+kubebuilder:rbac:groups=cluster.bindy.firestoned.io,resources=bind9clusters,verbs=get;list;watch

// Reconcile validates that a Bind9Provider's referenced Bind9Cluster exists
// and publishes the redirection into providerresolve's cache so zone
// reconcilers can resolve providerRef without a live Get on every pass
// (§4.6).
func (r *Bind9ProviderReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	logger := log.FromContext(ctx)

	var provider clusterv1alpha1.Bind9Provider
	if err := r.Get(ctx, req.NamespacedName, &provider); err != nil {
		if apierrors.IsNotFound(err) {
			providerresolve.Clear(req.Name)
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, err
	}

	var target clusterv1alpha1.Bind9Cluster
	if err := r.Get(ctx, types.NamespacedName{Namespace: provider.Spec.ClusterNamespace, Name: provider.Spec.ClusterName}, &target); err != nil {
		if apierrors.IsNotFound(err) {
			logger.Info("referenced Bind9Cluster not found", "cluster", provider.Spec.ClusterName, "namespace", provider.Spec.ClusterNamespace)
			providerresolve.Clear(provider.Name)
			return r.updateStatus(ctx, &provider, metav1.ConditionFalse, consts.ReasonClusterNotFound,
				fmt.Sprintf("cluster %s/%s not found", provider.Spec.ClusterNamespace, provider.Spec.ClusterName))
		}
		return ctrl.Result{}, err
	}

	providerresolve.Set(provider.Name, providerresolve.Provider{
		ClusterName:      provider.Spec.ClusterName,
		ClusterNamespace: provider.Spec.ClusterNamespace,
	})

	return r.updateStatus(ctx, &provider, metav1.ConditionTrue, consts.ReasonReady,
		fmt.Sprintf("resolves to cluster %s/%s", provider.Spec.ClusterNamespace, provider.Spec.ClusterName))
}

func (r *Bind9ProviderReconciler) updateStatus(ctx context.Context, provider *clusterv1alpha1.Bind9Provider, status metav1.ConditionStatus, reason, message string) (ctrl.Result, error) {
	var writer condition.Writer
	writer.SetReady(&provider.Status.Conditions, status, provider.Generation, reason, message)
	provider.Status.ObservedGeneration = provider.Generation
	if err := r.Status().Update(ctx, provider); err != nil {
		if apierrors.IsConflict(err) {
			return ctrl.Result{Requeue: true}, nil
		}
		return ctrl.Result{}, err
	}
	return ctrl.Result{}, nil
}

// SetupWithManager registers the controller with the manager.
func (r *Bind9ProviderReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&clusterv1alpha1.Bind9Provider{}).
		Complete(r)
}
