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

// RecordStatus is the observed state shared by all eight record kinds.
type RecordStatus struct {
	// ObservedGeneration is the spec generation last seen by the reconciler.
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// EndpointCount is the number of primary endpoints this record was last
	// configured on.
	// +optional
	EndpointCount int `json:"endpointCount,omitempty"`

	// Conditions holds the single Ready condition.
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}
