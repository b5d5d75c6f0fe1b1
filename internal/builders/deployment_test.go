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

package builders

import (
	"strings"
	"testing"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	clusterv1alpha1 "github.com/firestoned/bindy/api/cluster/v1alpha1"
)

func testCluster() *clusterv1alpha1.Bind9Cluster {
	return &clusterv1alpha1.Bind9Cluster{
		ObjectMeta: metav1.ObjectMeta{Name: "prod", Namespace: "dns-system"},
		Spec: clusterv1alpha1.Bind9ClusterSpec{
			Version: "9.18",
			GlobalOptions: clusterv1alpha1.GlobalOptions{
				Recursion:  true,
				AllowQuery: []string{"trusted"},
			},
			ACLs: []clusterv1alpha1.ACL{
				{Name: "trusted", CIDRs: []string{"10.0.0.0/8"}},
			},
		},
	}
}

func testInstance(role string, replicas int32) *clusterv1alpha1.Bind9Instance {
	return &clusterv1alpha1.Bind9Instance{
		ObjectMeta: metav1.ObjectMeta{Name: "prod-primary", Namespace: "dns-system"},
		Spec: clusterv1alpha1.Bind9InstanceSpec{
			ClusterRef: "prod",
			Role:       role,
			Replicas:   replicas,
		},
	}
}

func TestDeploymentHasBothContainers(t *testing.T) {
	cluster := testCluster()
	instance := testInstance("primary", 3)

	dep := Deployment(cluster, instance, Images{Bind9: "example.io/bind9", Bindcar: "example.io/bindcar:latest"})

	if *dep.Spec.Replicas != 3 {
		t.Errorf("expected 3 replicas, got %d", *dep.Spec.Replicas)
	}
	if len(dep.Spec.Template.Spec.Containers) != 2 {
		t.Fatalf("expected 2 containers, got %d", len(dep.Spec.Template.Spec.Containers))
	}
	if dep.Spec.Template.Spec.Containers[0].Image != "example.io/bind9:9.18" {
		t.Errorf("unexpected bind9 image: %s", dep.Spec.Template.Spec.Containers[0].Image)
	}
	if dep.OwnerReferences[0].Kind != "Bind9Instance" {
		t.Errorf("expected owner reference to Bind9Instance, got %s", dep.OwnerReferences[0].Kind)
	}
}

func TestDeploymentNeedsUpdateDetectsReplicaChange(t *testing.T) {
	cluster := testCluster()
	images := Images{Bind9: "example.io/bind9", Bindcar: "example.io/bindcar"}

	existing := Deployment(cluster, testInstance("primary", 2), images)
	desired := Deployment(cluster, testInstance("primary", 3), images)

	if !DeploymentNeedsUpdate(existing, desired) {
		t.Error("expected a replica count change to require an update")
	}
}

func TestDeploymentNeedsUpdateFalseWhenUnchanged(t *testing.T) {
	cluster := testCluster()
	images := Images{Bind9: "example.io/bind9", Bindcar: "example.io/bindcar"}
	instance := testInstance("primary", 2)

	a := Deployment(cluster, instance, images)
	b := Deployment(cluster, instance, images)

	if DeploymentNeedsUpdate(a, b) {
		t.Error("expected identical deployments to require no update")
	}
}

func TestRenderNamedConfOptionsIncludesACLsAndAllowQuery(t *testing.T) {
	rendered, err := RenderNamedConfOptions(testCluster())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rendered, `recursion yes;`) {
		t.Errorf("expected recursion yes, got: %s", rendered)
	}
	if !strings.Contains(rendered, `acl "trusted"`) {
		t.Errorf("expected trusted acl stanza, got: %s", rendered)
	}
	if !strings.Contains(rendered, "10.0.0.0/8") {
		t.Errorf("expected acl CIDR in rendered config, got: %s", rendered)
	}
}
