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
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	clusterv1alpha1 "github.com/firestoned/bindy/api/cluster/v1alpha1"
	"github.com/firestoned/bindy/pkg/consts"
)

// Images names the container images used for the BIND9 and bindcar sidecar
// containers, resolved once at manager start from flags (§9). Bind9 is a
// repository without a tag; the tag is each cluster's spec.version.
type Images struct {
	Bind9   string
	Bindcar string
}

// Deployment derives the workload that runs one Bind9Instance's replicas.
// Scaling replicas triggers an in-place update, never a recreate (§4.4).
func Deployment(cluster *clusterv1alpha1.Bind9Cluster, instance *clusterv1alpha1.Bind9Instance, images Images) *appsv1.Deployment {
	replicas := instance.Spec.Replicas
	selector := SelectorLabels(cluster.Name, instance.Name)
	labels := ChildLabels(cluster.Name, instance.Name, consts.ComponentBind9Value)

	configMapName := ConfigMapName(instance.Name)

	resources := instance.Spec.Resources

	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{
			Name:      instance.Name,
			Namespace: instance.Namespace,
			Labels:    labels,
			OwnerReferences: []metav1.OwnerReference{
				*metav1.NewControllerRef(instance, clusterv1alpha1.GroupVersion.WithKind("Bind9Instance")),
			},
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: &replicas,
			Selector: &metav1.LabelSelector{MatchLabels: selector},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: labels},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{
						{
							Name:  consts.ComponentBind9Value,
							Image: fmt.Sprintf("%s:%s", images.Bind9, cluster.Spec.Version),
							Ports: []corev1.ContainerPort{
								{Name: "dns-udp", ContainerPort: 53, Protocol: corev1.ProtocolUDP},
								{Name: "dns-tcp", ContainerPort: 53, Protocol: corev1.ProtocolTCP},
								{Name: "rndc", ContainerPort: 953, Protocol: corev1.ProtocolTCP},
							},
							Resources: resources,
							VolumeMounts: []corev1.VolumeMount{
								{Name: "config", MountPath: "/etc/bind"},
							},
							ReadinessProbe: &corev1.Probe{
								ProbeHandler: corev1.ProbeHandler{
									TCPSocket: &corev1.TCPSocketAction{Port: intstr.FromInt32(53)},
								},
							},
						},
						{
							Name:  consts.ComponentBindcar,
							Image: images.Bindcar,
							Ports: []corev1.ContainerPort{
								{Name: "http", ContainerPort: 8080, Protocol: corev1.ProtocolTCP},
							},
							VolumeMounts: []corev1.VolumeMount{
								{Name: "config", MountPath: "/etc/bind"},
							},
							ReadinessProbe: &corev1.Probe{
								ProbeHandler: corev1.ProbeHandler{
									HTTPGet: &corev1.HTTPGetAction{Path: "/healthz", Port: intstr.FromInt32(8080)},
								},
							},
						},
					},
					Volumes: []corev1.Volume{
						{
							Name: "config",
							VolumeSource: corev1.VolumeSource{
								ConfigMap: &corev1.ConfigMapVolumeSource{
									LocalObjectReference: corev1.LocalObjectReference{Name: configMapName},
								},
							},
						},
					},
				},
			},
		},
	}
}

// DeploymentNeedsUpdate reports whether the live Deployment's
// reconciler-owned fields drifted from desired. Pod template labels,
// replica count and both container images are compared; unrelated
// fields (resource defaulting, scheduler-assigned fields) are ignored.
func DeploymentNeedsUpdate(existing, desired *appsv1.Deployment) bool {
	if existing.Spec.Replicas == nil || desired.Spec.Replicas == nil {
		return true
	}
	if *existing.Spec.Replicas != *desired.Spec.Replicas {
		return true
	}
	if len(existing.Spec.Template.Labels) != len(desired.Spec.Template.Labels) {
		return true
	}
	for k, v := range desired.Spec.Template.Labels {
		if existing.Spec.Template.Labels[k] != v {
			return true
		}
	}
	if len(existing.Spec.Template.Spec.Containers) != len(desired.Spec.Template.Spec.Containers) {
		return true
	}
	for i := range desired.Spec.Template.Spec.Containers {
		if existing.Spec.Template.Spec.Containers[i].Image != desired.Spec.Template.Spec.Containers[i].Image {
			return true
		}
	}
	return false
}
