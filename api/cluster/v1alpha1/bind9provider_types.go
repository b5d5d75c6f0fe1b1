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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Bind9ProviderSpec defines the desired state of Bind9Provider. It is
// cluster-scoped so that zones in any namespace may reference a single
// shared BIND9 cluster without duplicating cluster configuration.
type Bind9ProviderSpec struct {
	// ClusterName is the Bind9Cluster this provider exposes.
	// +kubebuilder:validation:Required
	ClusterName string `json:"clusterName"`

	// ClusterNamespace is the namespace owning the referenced Bind9Cluster.
	// +kubebuilder:validation:Required
	ClusterNamespace string `json:"clusterNamespace"`
}

// Bind9ProviderStatus defines the observed state of Bind9Provider
type Bind9ProviderStatus struct {
	// ObservedGeneration is the spec generation last seen by the reconciler.
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// Conditions holds the encompassing Ready condition.
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

//+kubebuilder:object:root=true
//+kubebuilder:subresource:status
//+kubebuilder:resource:scope=Cluster,shortName=b9p
//+kubebuilder:storageversion
//+kubebuilder:printcolumn:name="Cluster",type=string,JSONPath=`.spec.clusterName`
//+kubebuilder:printcolumn:name="Namespace",type=string,JSONPath=`.spec.clusterNamespace`

// Bind9Provider is the Schema for the bind9providers API
type Bind9Provider struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   Bind9ProviderSpec   `json:"spec,omitempty"`
	Status Bind9ProviderStatus `json:"status,omitempty"`
}

//+kubebuilder:object:root=true

// Bind9ProviderList contains a list of Bind9Provider
type Bind9ProviderList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Bind9Provider `json:"items"`
}

func init() {
	SchemeBuilder.Register(&Bind9Provider{}, &Bind9ProviderList{})
}
