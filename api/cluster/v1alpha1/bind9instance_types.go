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

package v1alpha1

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// PrimaryEndpoint names a primary server a secondary instance transfers from.
type PrimaryEndpoint struct {
	// Host is the DNS name or IP address of the primary endpoint.
	// +kubebuilder:validation:Required
	Host string `json:"host"`

	// Port is the DNS transfer port, typically 53.
	// +kubebuilder:default=53
	Port int32 `json:"port,omitempty"`
}

// Bind9InstanceSpec defines the desired state of Bind9Instance
type Bind9InstanceSpec struct {
	// ClusterRef names the owning Bind9Cluster in the same namespace.
	// +kubebuilder:validation:Required
	ClusterRef string `json:"clusterRef"`

	// Role is either "primary" or "secondary".
	// +kubebuilder:validation:Enum=primary;secondary
	// +kubebuilder:validation:Required
	Role string `json:"role"`

	// Replicas is the desired pod count for this instance's workload.
	// +kubebuilder:validation:Minimum=0
	// +kubebuilder:default=1
	Replicas int32 `json:"replicas,omitempty"`

	// PrimaryEndpoints lists the primaries a secondary instance transfers
	// from. Ignored for role=primary.
	// +optional
	PrimaryEndpoints []PrimaryEndpoint `json:"primaryEndpoints,omitempty"`

	// Resources are applied to the bind9 and bindcar containers.
	// +optional
	Resources corev1.ResourceRequirements `json:"resources,omitempty"`

	// AutoIssueCredentials requests a generated secret carrying RNDC
	// credentials when the owning cluster has no explicit key material.
	// +optional
	AutoIssueCredentials bool `json:"autoIssueCredentials,omitempty"`
}

// Bind9InstanceStatus defines the observed state of Bind9Instance
type Bind9InstanceStatus struct {
	// ObservedGeneration is the spec generation last seen by the reconciler.
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// ReadyReplicas is the number of pods currently reporting ready.
	// +optional
	ReadyReplicas int32 `json:"readyReplicas,omitempty"`

	// Endpoint is the in-cluster sidecar HTTP address used by zone/record
	// reconcilers once the service exists.
	// +optional
	Endpoint string `json:"endpoint,omitempty"`

	// Conditions holds the encompassing Ready condition plus one Pod-<i>
	// condition per replica.
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

//+kubebuilder:object:root=true
//+kubebuilder:subresource:status
//+kubebuilder:resource:scope=Namespaced,shortName=b9i
//+kubebuilder:storageversion
//+kubebuilder:printcolumn:name="Role",type=string,JSONPath=`.spec.role`
//+kubebuilder:printcolumn:name="Replicas",type=integer,JSONPath=`.spec.replicas`
//+kubebuilder:printcolumn:name="Ready",type=string,JSONPath=`.status.conditions[?(@.type=="Ready")].status`

// Bind9Instance is the Schema for the bind9instances API
type Bind9Instance struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   Bind9InstanceSpec   `json:"spec,omitempty"`
	Status Bind9InstanceStatus `json:"status,omitempty"`
}

//+kubebuilder:object:root=true

// Bind9InstanceList contains a list of Bind9Instance
type Bind9InstanceList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Bind9Instance `json:"items"`
}

func init() {
	SchemeBuilder.Register(&Bind9Instance{}, &Bind9InstanceList{})
}
