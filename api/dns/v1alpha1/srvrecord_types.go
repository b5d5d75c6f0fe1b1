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

// SRVRecordSpec defines the desired state of SRVRecord
type SRVRecordSpec struct {
	// ZoneRef names the parent DNSZone in this namespace.
	// +kubebuilder:validation:Required
	ZoneRef string `json:"zoneRef"`

	// Name is the owner name, conventionally "_service._proto.name".
	// +kubebuilder:validation:Required
	Name string `json:"name"`

	// Priority orders candidate targets; lower values are preferred.
	// +kubebuilder:default=10
	Priority int32 `json:"priority,omitempty"`

	// Weight breaks ties among equal-priority targets.
	// +kubebuilder:default=10
	Weight int32 `json:"weight,omitempty"`

	// Port is the TCP/UDP port the service listens on.
	// +kubebuilder:validation:Required
	Port int32 `json:"port"`

	// Target is the FQDN of the host providing the service.
	// +kubebuilder:validation:Required
	Target string `json:"target"`

	// TTL overrides the zone's default TTL when set.
	// +optional
	TTL *int32 `json:"ttl,omitempty"`
}

//+kubebuilder:object:root=true
//+kubebuilder:subresource:status
//+kubebuilder:resource:scope=Namespaced
//+kubebuilder:storageversion
//+kubebuilder:printcolumn:name="Zone",type=string,JSONPath=`.spec.zoneRef`
//+kubebuilder:printcolumn:name="Target",type=string,JSONPath=`.spec.target`
//+kubebuilder:printcolumn:name="Ready",type=string,JSONPath=`.status.conditions[?(@.type=="Ready")].status`

// SRVRecord is the Schema for the srvrecords API
type SRVRecord struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   SRVRecordSpec `json:"spec,omitempty"`
	Status RecordStatus  `json:"status,omitempty"`
}

//+kubebuilder:object:root=true

// SRVRecordList contains a list of SRVRecord
type SRVRecordList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []SRVRecord `json:"items"`
}

func init() {
	SchemeBuilder.Register(&SRVRecord{}, &SRVRecordList{})
}
