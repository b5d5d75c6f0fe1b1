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

package dns

import (
	"context"
	"fmt"
	"net/url"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/log"

	clusterv1alpha1 "github.com/firestoned/bindy/api/cluster/v1alpha1"
	dnsv1alpha1 "github.com/firestoned/bindy/api/dns/v1alpha1"
	"github.com/firestoned/bindy/internal/rndc"
	"github.com/firestoned/bindy/pkg/consts"
)

// notifyPrimaries issues an RNDC notify for the zone against every primary
// endpoint once the primary phase has configured them (§4.3 phase 5, §6),
// so secondaries pick up the transfer immediately instead of waiting out
// the zone's SOA refresh timer. A missing or unreadable key, or a failed
// notify, is logged and never fails the reconcile: the sidecar-pushed zone
// configuration is already correct, notify only shaves the convergence
// delay.
func (r *DNSZoneReconciler) notifyPrimaries(ctx context.Context, cluster *clusterv1alpha1.Bind9Cluster, zone *dnsv1alpha1.DNSZone, primaries []string) {
	logger := log.FromContext(ctx)

	key, err := r.resolveRNDCKey(ctx, cluster)
	if err != nil {
		logger.V(1).Info("skipping rndc notify: no usable key material", "cluster", cluster.Name, "error", err.Error())
		return
	}

	client := r.rndcClient()
	for _, endpoint := range primaries {
		host, err := endpointHost(endpoint)
		if err != nil {
			logger.V(1).Info("skipping rndc notify: unparsable endpoint", "endpoint", endpoint, "error", err.Error())
			continue
		}
		if err := client.Notify(ctx, host, consts.RNDCPort, key, zone.Spec.FQDN); err != nil {
			logger.V(1).Info("rndc notify failed", "endpoint", endpoint, "zone", zone.Spec.FQDN, "error", err.Error())
		}
	}
}

func (r *DNSZoneReconciler) rndcClient() *rndc.Client {
	if r.NewRNDCClient != nil {
		return r.NewRNDCClient()
	}
	return rndc.NewClient("")
}

// resolveRNDCKey resolves the cluster's control-channel key material,
// preferring RNDCSecretRef over the deprecated inline TSIGKey (§9 open
// question).
func (r *DNSZoneReconciler) resolveRNDCKey(ctx context.Context, cluster *clusterv1alpha1.Bind9Cluster) (rndc.Key, error) {
	if ref := cluster.Spec.RNDCSecretRef; ref != nil {
		var secret corev1.Secret
		if err := r.Get(ctx, types.NamespacedName{Namespace: cluster.Namespace, Name: ref.Name}, &secret); err != nil {
			return rndc.Key{}, fmt.Errorf("fetching rndc secret %s: %w", ref.Name, err)
		}
		algorithmKey := ref.AlgorithmKey
		if algorithmKey == "" {
			algorithmKey = "algorithm"
		}
		secretKey := ref.SecretKey
		if secretKey == "" {
			secretKey = "secret"
		}
		return rndc.Key{
			Name:      fmt.Sprintf("%s-rndc-key", cluster.Name),
			Secret:    string(secret.Data[secretKey]),
			Algorithm: rndc.Algorithm(secret.Data[algorithmKey]),
		}, nil
	}

	if tsig := cluster.Spec.TSIGKey; tsig != nil {
		return rndc.Key{
			Name:      tsig.Name,
			Secret:    tsig.SecretValue,
			Algorithm: rndc.Algorithm(tsig.Algorithm),
		}, nil
	}

	return rndc.Key{}, fmt.Errorf("cluster %s has no rndcSecretRef or tsigKey configured", cluster.Name)
}

// endpointHost extracts the bare hostname from a sidecar endpoint URL
// (e.g. "http://c1-primary.ns.svc:8080" -> "c1-primary.ns.svc"); the RNDC
// control channel listens on the same pod at consts.RNDCPort, not the
// sidecar's HTTP port.
func endpointHost(endpoint string) (string, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	if parsed.Hostname() == "" {
		return "", fmt.Errorf("endpoint %q has no host", endpoint)
	}
	return parsed.Hostname(), nil
}
