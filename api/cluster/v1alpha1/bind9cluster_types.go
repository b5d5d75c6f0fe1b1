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

// EDIT THIS FILE!  THIS IS SCAFFOLDING FOR YOU TO OWN!
// NOTE: json tags are required.  Any new fields you add must have json tags for the fields to be serialized.

// GlobalOptions carries BIND9 `options {}` block settings shared by every
// instance in the cluster.
type GlobalOptions struct {
	// Recursion enables recursive resolution on instances in this cluster.
	// +optional
	Recursion bool `json:"recursion,omitempty"`

	// DNSSECValidation enables DNSSEC validation of upstream answers.
	// +optional
	DNSSECValidation bool `json:"dnssecValidation,omitempty"`

	// AllowQuery is a list of ACL names or CIDRs permitted to query.
	// +optional
	AllowQuery []string `json:"allowQuery,omitempty"`
}

// ACL names a BIND9 `acl {}` block.
type ACL struct {
	// Name is the ACL identifier referenced from GlobalOptions or zones.
	// +kubebuilder:validation:Required
	Name string `json:"name"`

	// CIDRs lists the network ranges belonging to this ACL.
	// +kubebuilder:validation:Required
	// +kubebuilder:validation:MinItems=1
	CIDRs []string `json:"cidrs"`
}

// TSIGKey is the deprecated inline representation of a TSIG shared secret.
// Prefer RNDCSecretRef; an inline key in use emits a deprecation event.
type TSIGKey struct {
	// Name is the TSIG key name as BIND9 knows it.
	// +kubebuilder:validation:Required
	Name string `json:"name"`

	// Algorithm restricts to the FIPS-approved HMAC family; MD5 is rejected.
	// +kubebuilder:validation:Enum=hmac-sha256;hmac-sha384;hmac-sha512
	Algorithm string `json:"algorithm"`

	// SecretValue is the base64 HMAC secret, inline. Deprecated: use RNDCSecretRef.
	// +kubebuilder:validation:Required
	SecretValue string `json:"secretValue"`
}

// RNDCSecretRef points at a Kubernetes Secret carrying RNDC/TSIG credentials.
// This is the preferred representation for new clusters (§9 open question).
type RNDCSecretRef struct {
	// Name is the Secret name, in the same namespace as the Bind9Cluster.
	// +kubebuilder:validation:Required
	Name string `json:"name"`

	// AlgorithmKey is the key within the Secret holding the HMAC algorithm name.
	// +kubebuilder:default=algorithm
	AlgorithmKey string `json:"algorithmKey,omitempty"`

	// SecretKey is the key within the Secret holding the base64 HMAC secret.
	// +kubebuilder:default=secret
	SecretKey string `json:"secretKey,omitempty"`
}

// InstanceTemplate declares one Bind9Instance the cluster reconciler
// materializes and keeps in sync (§4.5).
type InstanceTemplate struct {
	// Name suffixes the cluster name to form the Bind9Instance's name.
	// +kubebuilder:validation:Required
	Name string `json:"name"`

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

	// AutoIssueCredentials requests a generated secret carrying RNDC
	// credentials when the cluster has no explicit key material.
	// +optional
	AutoIssueCredentials bool `json:"autoIssueCredentials,omitempty"`
}

// Bind9ClusterSpec defines the desired state of Bind9Cluster
type Bind9ClusterSpec struct {
	// Version is the BIND9 image tag shared by every instance (e.g. "9.18").
	// +kubebuilder:validation:Required
	// +kubebuilder:validation:MinLength=1
	Version string `json:"version"`

	// GlobalOptions carries options {} settings shared by every instance.
	// +optional
	GlobalOptions GlobalOptions `json:"globalOptions,omitempty"`

	// ACLs declares named address-match-lists available to zones and options.
	// +optional
	ACLs []ACL `json:"acls,omitempty"`

	// TSIGKey is the deprecated inline TSIG representation.
	// +optional
	TSIGKey *TSIGKey `json:"tsigKey,omitempty"`

	// RNDCSecretRef is the preferred TSIG/RNDC credential source.
	// +optional
	RNDCSecretRef *RNDCSecretRef `json:"rndcSecretRef,omitempty"`

	// Instances declares the Bind9Instance children this cluster owns.
	// +optional
	Instances []InstanceTemplate `json:"instances,omitempty"`
}

// Bind9ClusterStatus defines the observed state of Bind9Cluster
type Bind9ClusterStatus struct {
	// ObservedGeneration is the spec generation last seen by the reconciler.
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// InstanceCount is the number of Bind9Instance children currently materialized.
	// +optional
	InstanceCount int `json:"instanceCount,omitempty"`

	// Conditions holds the encompassing Ready condition plus one
	// Bind9Instance-<i> condition per child instance.
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

//+kubebuilder:object:root=true
//+kubebuilder:subresource:status
//+kubebuilder:resource:scope=Namespaced,shortName=b9c
//+kubebuilder:storageversion
//+kubebuilder:printcolumn:name="Version",type=string,JSONPath=`.spec.version`
//+kubebuilder:printcolumn:name="Ready",type=string,JSONPath=`.status.conditions[?(@.type=="Ready")].status`

// Bind9Cluster is the Schema for the bind9clusters API
type Bind9Cluster struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   Bind9ClusterSpec   `json:"spec,omitempty"`
	Status Bind9ClusterStatus `json:"status,omitempty"`
}

//+kubebuilder:object:root=true

// Bind9ClusterList contains a list of Bind9Cluster
type Bind9ClusterList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Bind9Cluster `json:"items"`
}

func init() {
	SchemeBuilder.Register(&Bind9Cluster{}, &Bind9ClusterList{})
}
