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

// SOAConfig mirrors the fields of a BIND9 SOA record.
type SOAConfig struct {
	// MName is the primary master nameserver for the zone, an FQDN.
	// +kubebuilder:validation:Required
	MName string `json:"mname"`

	// RName is the responsible-party mailbox, dot-encoded (e.g. "hostmaster.example.com.").
	// +kubebuilder:validation:Required
	RName string `json:"rname"`

	// Refresh is the secondary refresh interval in seconds.
	// +kubebuilder:default=3600
	Refresh int32 `json:"refresh,omitempty"`

	// Retry is the secondary retry interval in seconds.
	// +kubebuilder:default=900
	Retry int32 `json:"retry,omitempty"`

	// Expire is the secondary expire interval in seconds.
	// +kubebuilder:default=1209600
	Expire int32 `json:"expire,omitempty"`

	// MinimumTTL is the negative-caching TTL in seconds.
	// +kubebuilder:default=300
	MinimumTTL int32 `json:"minimumTTL,omitempty"`
}

// DNSZoneSpec defines the desired state of DNSZone
type DNSZoneSpec struct {
	// FQDN is the fully qualified zone name, terminating in a dot.
	// +kubebuilder:validation:Required
	// +kubebuilder:validation:Pattern=`^([a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?\.)+$`
	FQDN string `json:"fqdn"`

	// ClusterRef names a Bind9Cluster in this same namespace. Preferred
	// over ProviderRef when both are set.
	// +optional
	ClusterRef string `json:"clusterRef,omitempty"`

	// ProviderRef names a cluster-scoped Bind9Provider for cross-tenant
	// cluster sharing. Used only when ClusterRef is empty.
	// +optional
	ProviderRef string `json:"providerRef,omitempty"`

	// Selector chooses which instances of the resolved cluster carry this
	// zone.
	// +optional
	Selector *metav1.LabelSelector `json:"selector,omitempty"`

	// RecordSelector chooses which record objects in this namespace belong
	// to this zone for discovery purposes. When unset, all record objects
	// referencing this zone by name are discovered.
	// +optional
	RecordSelector *metav1.LabelSelector `json:"recordSelector,omitempty"`

	// SOA carries the zone's start-of-authority fields.
	// +kubebuilder:validation:Required
	SOA SOAConfig `json:"soa"`

	// DefaultTTL applies to records that don't specify their own.
	// +kubebuilder:default=3600
	DefaultTTL int32 `json:"defaultTTL,omitempty"`

	// RequireRecordConvergence gates zone readiness on every discovered
	// record reporting a fresh last-reconciled timestamp. Defaults to true.
	// +optional
	RequireRecordConvergence *bool `json:"requireRecordConvergence,omitempty"`
}

// RecordRef identifies one discovered record belonging to this zone.
type RecordRef struct {
	// Kind is the record CRD kind, e.g. "ARecord".
	Kind string `json:"kind"`

	// Name is the record object's name.
	Name string `json:"name"`

	// Namespace is the record object's namespace (always this zone's own).
	Namespace string `json:"namespace"`

	// LastReconciledAt mirrors the record's own last-reconciled annotation,
	// used by the zone controller to detect convergence.
	// +optional
	LastReconciledAt *metav1.Time `json:"lastReconciledAt,omitempty"`
}

// DNSZoneStatus defines the observed state of DNSZone
type DNSZoneStatus struct {
	// ObservedGeneration is the spec generation last seen by the reconciler.
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// ConfiguredPrimaries lists the primary endpoints this zone is
	// currently configured on.
	// +optional
	ConfiguredPrimaries []string `json:"configuredPrimaries,omitempty"`

	// ConfiguredSecondaries lists the secondary endpoints this zone is
	// currently configured on.
	// +optional
	ConfiguredSecondaries []string `json:"configuredSecondaries,omitempty"`

	// Records is the set of discovered records belonging to this zone.
	// +optional
	Records []RecordRef `json:"records,omitempty"`

	// Conditions holds the encompassing Ready condition plus Progressing
	// and Degraded when applicable.
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

//+kubebuilder:object:root=true
//+kubebuilder:subresource:status
//+kubebuilder:resource:scope=Namespaced,shortName=zone
//+kubebuilder:storageversion
//+kubebuilder:printcolumn:name="FQDN",type=string,JSONPath=`.spec.fqdn`
//+kubebuilder:printcolumn:name="Ready",type=string,JSONPath=`.status.conditions[?(@.type=="Ready")].status`

// DNSZone is the Schema for the dnszones API
type DNSZone struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   DNSZoneSpec   `json:"spec,omitempty"`
	Status DNSZoneStatus `json:"status,omitempty"`
}

//+kubebuilder:object:root=true

// DNSZoneList contains a list of DNSZone
type DNSZoneList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []DNSZone `json:"items"`
}

func init() {
	SchemeBuilder.Register(&DNSZone{}, &DNSZoneList{})
}
