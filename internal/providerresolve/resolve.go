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

package providerresolve

import (
	"context"
	"fmt"

	"sigs.k8s.io/controller-runtime/pkg/client"

	clusterv1alpha1 "github.com/firestoned/bindy/api/cluster/v1alpha1"
)

// Target identifies the concrete namespace/name of the Bind9Cluster a zone
// should reconcile against.
type Target struct {
	Namespace string
	Name      string
}

// Resolve implements the cluster-reference precedence rule of §4.6:
// a namespaced ClusterRef always wins when set; ProviderRef, a cluster-scoped
// Bind9Provider name, is consulted only when ClusterRef is empty.
func Resolve(ctx context.Context, c client.Client, zoneNamespace, clusterRef, providerRef string) (Target, error) {
	if clusterRef != "" {
		return Target{Namespace: zoneNamespace, Name: clusterRef}, nil
	}
	if providerRef == "" {
		return Target{}, fmt.Errorf("zone declares neither clusterRef nor providerRef")
	}

	if cached, ok := Get(providerRef); ok {
		return Target{Namespace: cached.ClusterNamespace, Name: cached.ClusterName}, nil
	}

	var provider clusterv1alpha1.Bind9Provider
	if err := c.Get(ctx, client.ObjectKey{Name: providerRef}, &provider); err != nil {
		return Target{}, err
	}

	resolved := Provider{ClusterName: provider.Spec.ClusterName, ClusterNamespace: provider.Spec.ClusterNamespace}
	Set(providerRef, resolved)
	return Target{Namespace: resolved.ClusterNamespace, Name: resolved.ClusterName}, nil
}
