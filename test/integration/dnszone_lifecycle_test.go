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
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"

	dnsv1alpha1 "github.com/firestoned/bindy/api/dns/v1alpha1"
	"github.com/firestoned/bindy/pkg/consts"
)

var _ = Describe("DNSZone lifecycle", func() {
	var (
		namespace string
		sidecar   *fakeSidecar
		noConverg = false
	)

	BeforeEach(func() {
		timestamp := time.Now().UnixNano()
		namespace = fmt.Sprintf("test-zone-%d", timestamp)
		CreateNamespace(namespace)
		sidecar = newFakeSidecar()
	})

	AfterEach(func() {
		sidecar.Close()
	})

	// S1 — happy path: a zone selecting one ready primary instance
	// converges to Ready=True and configures the primary exactly once;
	// its ARecord then converges to Ready=True against the same endpoint.
	It("converges a zone and its record against a single ready primary", func() {
		readyCluster(namespace, "c1")
		readyInstance(namespace, "c1", "c1-primary", consts.RolePrimary, sidecar.endpoint())

		zone := &dnsv1alpha1.DNSZone{
			ObjectMeta: metav1.ObjectMeta{Name: "ex-com", Namespace: namespace},
			Spec: dnsv1alpha1.DNSZoneSpec{
				FQDN:       "ex.com.",
				ClusterRef: "c1",
				SOA: dnsv1alpha1.SOAConfig{
					MName: "ns1.ex.com.",
					RName: "hostmaster.ex.com.",
				},
				RequireRecordConvergence: &noConverg,
			},
		}
		Expect(k8sClient.Create(ctx, zone)).To(Succeed())
		WaitForReason(zone, consts.ReasonReconcileSucceeded)
		Expect(sidecar.zonePutCount()).To(Equal(1))

		record := &dnsv1alpha1.ARecord{
			ObjectMeta: metav1.ObjectMeta{Name: "www", Namespace: namespace},
			Spec: dnsv1alpha1.ARecordSpec{
				ZoneRef: "ex-com",
				Name:    "www",
				Address: "192.0.2.1",
			},
		}
		Expect(k8sClient.Create(ctx, record)).To(Succeed())
		WaitForCondition(record, consts.ConditionTypeReady, metav1.ConditionTrue)
		Expect(sidecar.recordPutCount()).To(BeNumerically(">=", 1))
	})

	// S3 — duplicate zone: two DNSZones with the same FQDN and an empty
	// (match-all) selector over the same cluster both converge to
	// Ready=False/DuplicateZone, and neither ever calls the sidecar.
	It("rejects two zones with the same FQDN and overlapping selector", func() {
		readyCluster(namespace, "c2")
		readyInstance(namespace, "c2", "c2-primary", consts.RolePrimary, sidecar.endpoint())

		first := &dnsv1alpha1.DNSZone{
			ObjectMeta: metav1.ObjectMeta{Name: "dup-a", Namespace: namespace},
			Spec: dnsv1alpha1.DNSZoneSpec{
				FQDN:       "dup.example.",
				ClusterRef: "c2",
				SOA: dnsv1alpha1.SOAConfig{
					MName: "ns1.dup.example.",
					RName: "hostmaster.dup.example.",
				},
			},
		}
		Expect(k8sClient.Create(ctx, first)).To(Succeed())

		second := first.DeepCopy()
		second.ObjectMeta = metav1.ObjectMeta{Name: "dup-b", Namespace: namespace}
		Expect(k8sClient.Create(ctx, second)).To(Succeed())

		WaitForReason(first, consts.ReasonDuplicateZone)
		WaitForReason(second, consts.ReasonDuplicateZone)
		Expect(sidecar.zonePutCount()).To(Equal(0))
	})

	// S5 — spec no-op: re-applying a zone's unchanged spec after it has
	// converged must not issue a second PUT /zones call against the
	// primary, since the spec-hash annotation gates the expensive phases.
	It("performs no further endpoint mutation on an unchanged re-apply", func() {
		readyCluster(namespace, "c3")
		readyInstance(namespace, "c3", "c3-primary", consts.RolePrimary, sidecar.endpoint())

		zone := &dnsv1alpha1.DNSZone{
			ObjectMeta: metav1.ObjectMeta{Name: "noop-com", Namespace: namespace},
			Spec: dnsv1alpha1.DNSZoneSpec{
				FQDN:       "noop.example.",
				ClusterRef: "c3",
				SOA: dnsv1alpha1.SOAConfig{
					MName: "ns1.noop.example.",
					RName: "hostmaster.noop.example.",
				},
				RequireRecordConvergence: &noConverg,
			},
		}
		Expect(k8sClient.Create(ctx, zone)).To(Succeed())
		WaitForReason(zone, consts.ReasonReconcileSucceeded)
		Expect(sidecar.zonePutCount()).To(Equal(1))

		// Touch an unrelated annotation to force a new reconcile without
		// changing spec, then confirm the PUT count never grows.
		Expect(k8sClient.Get(ctx, client.ObjectKeyFromObject(zone), zone)).To(Succeed())
		if zone.Annotations == nil {
			zone.Annotations = map[string]string{}
		}
		zone.Annotations["test.bindy.firestoned.io/touch"] = "1"
		Expect(k8sClient.Update(ctx, zone)).To(Succeed())

		Consistently(func() int {
			return sidecar.zonePutCount()
		}, 3*time.Second, 500*time.Millisecond).Should(Equal(1))
	})
})

