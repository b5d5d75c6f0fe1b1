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

package instancecache

import (
	"context"

	"k8s.io/apimachinery/pkg/api/meta"
	"sigs.k8s.io/controller-runtime/pkg/client"

	clusterv1alpha1 "github.com/firestoned/bindy/api/cluster/v1alpha1"
	"github.com/firestoned/bindy/pkg/consts"
)

// Fetch resolves the instance set for a cluster using a cache-first
// approach, falling back to a live List against the Bind9Instance CRD when
// the cache has not yet been populated for this key (e.g. right after
// operator startup, before any watch event has landed). The result of the
// fallback is cached, but the cache is otherwise only kept fresh by
// Refresh, called from the Bind9Instance reconciler after each successful
// pod-condition status write (§4.4),
// so a zone or record reconciler racing an in-flight instance status change
// reads at most one reconcile interval stale.
func Fetch(ctx context.Context, c client.Client, namespace, clusterName string) ([]Instance, error) {
	key := Key(namespace, clusterName)
	if cached := Get(key); cached != nil {
		return cached, nil
	}
	return Refresh(ctx, c, namespace, clusterName)
}

// Refresh lists the cluster's instances live and replaces the cached entry,
// returning the freshly listed set.
func Refresh(ctx context.Context, c client.Client, namespace, clusterName string) ([]Instance, error) {
	var list clusterv1alpha1.Bind9InstanceList
	if err := c.List(ctx, &list, client.InNamespace(namespace)); err != nil {
		return nil, err
	}

	instances := make([]Instance, 0, len(list.Items))
	for _, item := range list.Items {
		if item.Spec.ClusterRef != clusterName {
			continue
		}
		instances = append(instances, Instance{
			Name:      item.Name,
			Namespace: item.Namespace,
			Role:      item.Spec.Role,
			Endpoint:  item.Status.Endpoint,
			Ready:     meta.IsStatusConditionTrue(item.Status.Conditions, consts.ConditionTypeReady),
			Labels:    item.Labels,
		})
	}

	Set(Key(namespace, clusterName), instances)
	return instances, nil
}
