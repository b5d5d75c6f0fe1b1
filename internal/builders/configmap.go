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
	"bytes"
	"fmt"
	"text/template"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	clusterv1alpha1 "github.com/firestoned/bindy/api/cluster/v1alpha1"
	"github.com/firestoned/bindy/pkg/consts"
)

// ConfigMapName returns the name of the ConfigMap carrying one instance's
// base BIND9 configuration.
func ConfigMapName(instanceName string) string {
	return fmt.Sprintf("%s-config", instanceName)
}

var namedConfOptionsTemplate = template.Must(template.New("named.conf.options").Parse(`options {
	directory "/var/cache/bind";
	recursion {{if .Recursion}}yes{{else}}no{{end}};
	dnssec-validation {{if .DNSSECValidation}}auto{{else}}no{{end}};
{{- if .AllowQuery}}
	allow-query { {{range .AllowQuery}}{{.}}; {{end}}};
{{- end}}
};
{{range .ACLs}}
acl "{{.Name}}" { {{range .CIDRs}}{{.}}; {{end}}};
{{end}}`))

type namedConfOptionsData struct {
	Recursion        bool
	DNSSECValidation bool
	AllowQuery       []string
	ACLs             []clusterv1alpha1.ACL
}

// RenderNamedConfOptions renders the BIND9 options {} and acl {} stanzas
// shared by every instance in a cluster.
func RenderNamedConfOptions(cluster *clusterv1alpha1.Bind9Cluster) (string, error) {
	var buf bytes.Buffer
	data := namedConfOptionsData{
		Recursion:        cluster.Spec.GlobalOptions.Recursion,
		DNSSECValidation: cluster.Spec.GlobalOptions.DNSSECValidation,
		AllowQuery:       cluster.Spec.GlobalOptions.AllowQuery,
		ACLs:             cluster.Spec.ACLs,
	}
	if err := namedConfOptionsTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering named.conf.options: %w", err)
	}
	return buf.String(), nil
}

// ConfigMap derives the ConfigMap mounted into both the BIND9 and bindcar
// containers, carrying the rendered base configuration. Zone-level config
// is pushed at runtime through the sidecar's HTTP API, not baked in here.
func ConfigMap(cluster *clusterv1alpha1.Bind9Cluster, instance *clusterv1alpha1.Bind9Instance) (*corev1.ConfigMap, error) {
	rendered, err := RenderNamedConfOptions(cluster)
	if err != nil {
		return nil, err
	}

	return &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:      ConfigMapName(instance.Name),
			Namespace: instance.Namespace,
			Labels:    ChildLabels(cluster.Name, instance.Name, consts.ComponentBind9Value),
			OwnerReferences: []metav1.OwnerReference{
				*metav1.NewControllerRef(instance, clusterv1alpha1.GroupVersion.WithKind("Bind9Instance")),
			},
		},
		Data: map[string]string{
			"named.conf.options": rendered,
		},
	}, nil
}
