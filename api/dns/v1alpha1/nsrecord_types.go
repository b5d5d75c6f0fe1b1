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

// NSRecordSpec defines the desired state of NSRecord
type NSRecordSpec struct {
	// ZoneRef names the parent DNSZone in this namespace.
	// +kubebuilder:validation:Required
	ZoneRef string `json:"zoneRef"`

	// Name is the owner name relative to the zone apex, typically a
	// delegated subdomain.
	// +kubebuilder:validation:Required
	Name string `json:"name"`

	// Nameserver is the FQDN of the delegated nameserver.
	// +kubebuilder:validation:Required
	Nameserver string `json:"nameserver"`

	// TTL overrides the zone's default TTL when set.
	// +optional
	TTL *int32 `json:"ttl,omitempty"`
}

//+kubebuilder:object:root=true
//+kubebuilder:subresource:status
//+kubebuilder:resource:scope=Namespaced
//+kubebuilder:storageversion
//+kubebuilder:printcolumn:name="Zone",type=string,JSONPath=`.spec.zoneRef`
//+kubebuilder:printcolumn:name="Nameserver",type=string,JSONPath=`.spec.nameserver`
//+kubebuilder:printcolumn:name="Ready",type=string,JSONPath=`.status.conditions[?(@.type=="Ready")].status`

// NSRecord is the Schema for the nsrecords API
type NSRecord struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   NSRecordSpec `json:"spec,omitempty"`
	Status RecordStatus `json:"status,omitempty"`
}

//+kubebuilder:object:root=true

// NSRecordList contains a list of NSRecord
type NSRecordList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []NSRecord `json:"items"`
}

func init() {
	SchemeBuilder.Register(&NSRecord{}, &NSRecordList{})
}
