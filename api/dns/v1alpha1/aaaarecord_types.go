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

// AAAARecordSpec defines the desired state of AAAARecord
type AAAARecordSpec struct {
	// ZoneRef names the parent DNSZone in this namespace.
	// +kubebuilder:validation:Required
	ZoneRef string `json:"zoneRef"`

	// Name is the owner name relative to the zone apex.
	// +kubebuilder:validation:Required
	Name string `json:"name"`

	// Address is the IPv6 literal this record resolves to.
	// +kubebuilder:validation:Required
	Address string `json:"address"`

	// TTL overrides the zone's default TTL when set.
	// +optional
	TTL *int32 `json:"ttl,omitempty"`
}

//+kubebuilder:object:root=true
//+kubebuilder:subresource:status
//+kubebuilder:resource:scope=Namespaced
//+kubebuilder:storageversion
//+kubebuilder:printcolumn:name="Zone",type=string,JSONPath=`.spec.zoneRef`
//+kubebuilder:printcolumn:name="Address",type=string,JSONPath=`.spec.address`
//+kubebuilder:printcolumn:name="Ready",type=string,JSONPath=`.status.conditions[?(@.type=="Ready")].status`

// AAAARecord is the Schema for the aaaarecords API
type AAAARecord struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   AAAARecordSpec `json:"spec,omitempty"`
	Status RecordStatus   `json:"status,omitempty"`
}

//+kubebuilder:object:root=true

// AAAARecordList contains a list of AAAARecord
type AAAARecordList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []AAAARecord `json:"items"`
}

func init() {
	SchemeBuilder.Register(&AAAARecord{}, &AAAARecordList{})
}
