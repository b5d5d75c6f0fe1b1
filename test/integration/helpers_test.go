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

package integration

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	clusterv1alpha1 "github.com/firestoned/bindy/api/cluster/v1alpha1"
	dnsv1alpha1 "github.com/firestoned/bindy/api/dns/v1alpha1"
	"github.com/firestoned/bindy/pkg/consts"
)

const (
	timeout  = time.Second * 20
	interval = time.Millisecond * 250
)

// CreateNamespace creates a new namespace.
func CreateNamespace(name string) {
	ns := &corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: name}}
	Expect(k8sClient.Create(ctx, ns)).To(Succeed())
}

// GetObject returns a function suitable for Eventually that fetches obj.
func GetObject(key types.NamespacedName, obj client.Object) func() error {
	return func() error {
		return k8sClient.Get(ctx, key, obj)
	}
}

// WaitForCondition polls until obj reports conditionType=status.
func WaitForCondition(obj client.Object, conditionType string, status metav1.ConditionStatus) {
	Eventually(func() bool {
		if err := k8sClient.Get(ctx, client.ObjectKeyFromObject(obj), obj); err != nil {
			return false
		}
		for _, cond := range conditionsOf(obj) {
			if cond.Type == conditionType && cond.Status == status {
				return true
			}
		}
		return false
	}, timeout, interval).Should(BeTrue())
}

// WaitForReason polls until obj's Ready condition reports reason.
func WaitForReason(obj client.Object, reason string) {
	Eventually(func() string {
		if err := k8sClient.Get(ctx, client.ObjectKeyFromObject(obj), obj); err != nil {
			return ""
		}
		for _, cond := range conditionsOf(obj) {
			if cond.Type == consts.ConditionTypeReady {
				return cond.Reason
			}
		}
		return ""
	}, timeout, interval).Should(Equal(reason))
}

func conditionsOf(obj client.Object) []metav1.Condition {
	switch typed := obj.(type) {
	case *clusterv1alpha1.Bind9Cluster:
		return typed.Status.Conditions
	case *clusterv1alpha1.Bind9Instance:
		return typed.Status.Conditions
	case *dnsv1alpha1.DNSZone:
		return typed.Status.Conditions
	case *dnsv1alpha1.ARecord:
		return typed.Status.Conditions
	default:
		return nil
	}
}

// fakeSidecar is a minimal stand-in for a bindcar sidecar's HTTP control
// API, recording every zone and record PUT it receives so scenarios can
// assert on mutation counts without a real BIND9 process.
type fakeSidecar struct {
	server *httptest.Server

	mu         sync.Mutex
	zonePuts   int
	recordPuts int
	failZone   bool
}

func newFakeSidecar() *fakeSidecar {
	f := &fakeSidecar{}
	mux := http.NewServeMux()
	mux.HandleFunc("/zones/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		isRecord := strings.Contains(r.URL.Path, "/records/")
		switch r.Method {
		case http.MethodPut:
			if f.failZone && !isRecord {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			if isRecord {
				f.recordPuts++
			} else {
				f.zonePuts++
			}
			w.WriteHeader(http.StatusOK)
		case http.MethodDelete:
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	f.server = httptest.NewServer(mux)
	return f
}

func (f *fakeSidecar) endpoint() string { return f.server.URL }

func (f *fakeSidecar) zonePutCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.zonePuts
}

func (f *fakeSidecar) recordPutCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recordPuts
}

func (f *fakeSidecar) setFailZone(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failZone = fail
}

func (f *fakeSidecar) Close() { f.server.Close() }

// readyCluster creates a minimal Bind9Cluster, satisfying the zone
// reconciler's phase-1 existence check without exercising the
// Bind9Cluster/Bind9Instance child-materialization path.
func readyCluster(namespace, name string) *clusterv1alpha1.Bind9Cluster {
	cluster := &clusterv1alpha1.Bind9Cluster{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		Spec:       clusterv1alpha1.Bind9ClusterSpec{Version: "9.18"},
	}
	Expect(k8sClient.Create(ctx, cluster)).To(Succeed())
	return cluster
}

// readyInstance creates a Bind9Instance directly with its status patched to
// report ready against fake's endpoint, bypassing the instance controller's
// own child-Pod machinery (envtest runs no kubelet, so pods never go Ready).
func readyInstance(namespace, cluster, name, role, endpoint string) *clusterv1alpha1.Bind9Instance {
	inst := &clusterv1alpha1.Bind9Instance{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels:    map[string]string{consts.LabelPartOf: cluster},
		},
		Spec: clusterv1alpha1.Bind9InstanceSpec{
			ClusterRef: cluster,
			Role:       role,
			Replicas:   1,
		},
	}
	Expect(k8sClient.Create(ctx, inst)).To(Succeed())

	inst.Status.Endpoint = endpoint
	inst.Status.Conditions = []metav1.Condition{{
		Type:               consts.ConditionTypeReady,
		Status:             metav1.ConditionTrue,
		Reason:             "Ready",
		Message:            "test-ready",
		LastTransitionTime: metav1.Now(),
	}}
	Expect(k8sClient.Status().Update(ctx, inst)).To(Succeed())
	return inst
}
