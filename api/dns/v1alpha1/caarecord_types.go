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

// CAARecordSpec defines the desired state of CAARecord
type CAARecordSpec struct {
	// ZoneRef names the parent DNSZone in this namespace.
	// +kubebuilder:validation:Required
	ZoneRef string `json:"zoneRef"`

	// Name is the owner name relative to the zone apex.
	// +kubebuilder:validation:Required
	Name string `json:"name"`

	// Flags is the CAA flags octet; only bit 0 (issuer critical) is defined.
	// +kubebuilder:validation:Minimum=0
	// +kubebuilder:validation:Maximum=255
	Flags int32 `json:"flags,omitempty"`

	// Tag is one of "issue", "issuewild", or "iodef".
	// +kubebuilder:validation:Enum=issue;issuewild;iodef
	// +kubebuilder:validation:Required
	Tag string `json:"tag"`

	// Value is the property value associated with Tag.
	// +kubebuilder:validation:Required
	Value string `json:"value"`

	// TTL overrides the zone's default TTL when set.
	// +optional
	TTL *int32 `json:"ttl,omitempty"`
}

//+kubebuilder:object:root=true
//+kubebuilder:subresource:status
//+kubebuilder:resource:scope=Namespaced
//+kubebuilder:storageversion
//+kubebuilder:printcolumn:name="Zone",type=string,JSONPath=`.spec.zoneRef`
//+kubebuilder:printcolumn:name="Tag",type=string,JSONPath=`.spec.tag`
//+kubebuilder:printcolumn:name="Ready",type=string,JSONPath=`.status.conditions[?(@.type=="Ready")].status`

// CAARecord is the Schema for the caarecords API
type CAARecord struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   CAARecordSpec `json:"spec,omitempty"`
	Status RecordStatus  `json:"status,omitempty"`
}

//+kubebuilder:object:root=true

// CAARecordList contains a list of CAARecord
type CAARecordList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []CAARecord `json:"items"`
}

func init() {
	SchemeBuilder.Register(&CAARecord{}, &CAARecordList{})
}
