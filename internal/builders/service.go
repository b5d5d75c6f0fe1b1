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

package builders

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	clusterv1alpha1 "github.com/firestoned/bindy/api/cluster/v1alpha1"
	"github.com/firestoned/bindy/pkg/consts"
)

// Service derives the Service exposing one Bind9Instance's DNS ports and
// the sidecar's HTTP control port (§4.4).
func Service(cluster *clusterv1alpha1.Bind9Cluster, instance *clusterv1alpha1.Bind9Instance) *corev1.Service {
	selector := SelectorLabels(cluster.Name, instance.Name)
	labels := ChildLabels(cluster.Name, instance.Name, consts.ComponentBind9Value)

	return &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{
			Name:      instance.Name,
			Namespace: instance.Namespace,
			Labels:    labels,
			OwnerReferences: []metav1.OwnerReference{
				*metav1.NewControllerRef(instance, clusterv1alpha1.GroupVersion.WithKind("Bind9Instance")),
			},
		},
		Spec: corev1.ServiceSpec{
			Selector: selector,
			Ports: []corev1.ServicePort{
				{Name: "dns-udp", Port: 53, Protocol: corev1.ProtocolUDP, TargetPort: intstr.FromInt32(53)},
				{Name: "dns-tcp", Port: 53, Protocol: corev1.ProtocolTCP, TargetPort: intstr.FromInt32(53)},
				{Name: "http", Port: 8080, Protocol: corev1.ProtocolTCP, TargetPort: intstr.FromInt32(8080)},
			},
		},
	}
}

// ServiceNeedsUpdate reports whether the live Service's ports or selector
// drifted from desired.
func ServiceNeedsUpdate(existing, desired *corev1.Service) bool {
	if len(existing.Spec.Ports) != len(desired.Spec.Ports) {
		return true
	}
	for i := range desired.Spec.Ports {
		if existing.Spec.Ports[i] != desired.Spec.Ports[i] {
			return true
		}
	}
	if len(existing.Spec.Selector) != len(desired.Spec.Selector) {
		return true
	}
	for k, v := range desired.Spec.Selector {
		if existing.Spec.Selector[k] != v {
			return true
		}
	}
	return false
}
