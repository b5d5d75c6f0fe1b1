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

// Package builders derives the Kubernetes workloads owned by a
// Bind9Instance: a Deployment, a Service, a ConfigMap carrying base BIND9
// configuration and, when auto-issuance is requested, a Secret carrying
// RNDC credentials (§4.4). Every function here is pure: it takes the owning
// objects and returns the desired child, leaving the create/patch/delete
// decision to the controller.
package builders

import (
	"github.com/firestoned/bindy/pkg/consts"
)

// ChildLabels returns the standard label set applied to every object owned
// by instanceName within clusterName, per §6.
func ChildLabels(clusterName, instanceName, component string) map[string]string {
	return map[string]string{
		consts.LabelManagedBy: consts.ManagedByValue,
		consts.LabelPartOf:    clusterName,
		consts.LabelComponent: component,
		consts.LabelInstance:  instanceName,
	}
}

// SelectorLabels returns the subset of ChildLabels stable across spec
// changes, suitable for a Deployment's pod selector (which is immutable
// once set).
func SelectorLabels(clusterName, instanceName string) map[string]string {
	return map[string]string{
		consts.LabelPartOf:   clusterName,
		consts.LabelInstance: instanceName,
	}
}
