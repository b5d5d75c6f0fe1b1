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
	"crypto/rand"
	"encoding/base64"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	clusterv1alpha1 "github.com/firestoned/bindy/api/cluster/v1alpha1"
	"github.com/firestoned/bindy/internal/rndc"
	"github.com/firestoned/bindy/pkg/consts"
)

// rndcSecretBytes is the size of a freshly generated HMAC secret, matching
// BIND9's own rndc-confgen default.
const rndcSecretBytes = 32

// SecretName returns the name of the Secret carrying one instance's
// auto-issued RNDC credentials.
func SecretName(instanceName string) string {
	return fmt.Sprintf("%s-rndc", instanceName)
}

// Secret derives the auto-issued RNDC credential Secret for an instance
// whose spec requests AutoIssueCredentials (§4.4). The caller is
// responsible for only creating this once per instance; re-invoking this
// builder on every reconcile would rotate the secret and break existing
// sessions, so controllers must treat an existing Secret as authoritative.
func Secret(cluster *clusterv1alpha1.Bind9Cluster, instance *clusterv1alpha1.Bind9Instance) (*corev1.Secret, error) {
	secretValue := make([]byte, rndcSecretBytes)
	if _, err := rand.Read(secretValue); err != nil {
		return nil, fmt.Errorf("generating RNDC secret material: %w", err)
	}

	return &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      SecretName(instance.Name),
			Namespace: instance.Namespace,
			Labels:    ChildLabels(cluster.Name, instance.Name, consts.ComponentBind9Value),
			OwnerReferences: []metav1.OwnerReference{
				*metav1.NewControllerRef(instance, clusterv1alpha1.GroupVersion.WithKind("Bind9Instance")),
			},
		},
		Type: corev1.SecretTypeOpaque,
		StringData: map[string]string{
			"algorithm": string(rndc.AlgorithmHMACSHA256),
			"secret":    base64.StdEncoding.EncodeToString(secretValue),
		},
	}, nil
}
