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
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sony/gobreaker"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/envtest"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"

	clusterv1alpha1 "github.com/firestoned/bindy/api/cluster/v1alpha1"
	dnsv1alpha1 "github.com/firestoned/bindy/api/dns/v1alpha1"
	"github.com/firestoned/bindy/internal/builders"
	"github.com/firestoned/bindy/internal/circuitbreaker"
	clustercontroller "github.com/firestoned/bindy/internal/controller/cluster"
	dnscontroller "github.com/firestoned/bindy/internal/controller/dns"
	"github.com/firestoned/bindy/internal/ratelimit"
	"github.com/firestoned/bindy/pkg/consts"
)

var (
	cfg        *rest.Config
	k8sClient  client.Client
	k8sManager ctrl.Manager
	testEnv    *envtest.Environment
	ctx        context.Context
)

func TestIntegration(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Integration Suite")
}

var _ = BeforeSuite(func() {
	logf.SetLogger(zap.New(zap.WriteTo(GinkgoWriter), zap.UseDevMode(true)))

	ctx = context.Background()

	By("bootstrapping test environment")
	testEnv = &envtest.Environment{
		CRDDirectoryPaths:     []string{filepath.Join("..", "..", "config", "crd", "bases")},
		ErrorIfCRDPathMissing: true,
	}

	var err error
	cfg, err = testEnv.Start()
	Expect(err).NotTo(HaveOccurred())
	Expect(cfg).NotTo(BeNil())

	Expect(clusterv1alpha1.AddToScheme(scheme.Scheme)).To(Succeed())
	Expect(dnsv1alpha1.AddToScheme(scheme.Scheme)).To(Succeed())

	k8sClient, err = client.New(cfg, client.Options{Scheme: scheme.Scheme})
	Expect(err).NotTo(HaveOccurred())
	Expect(k8sClient).NotTo(BeNil())

	k8sManager, err = ctrl.NewManager(cfg, ctrl.Options{
		Scheme:  scheme.Scheme,
		Metrics: metricsserver.Options{BindAddress: "0"}, // avoid port conflicts between parallel suite runs
	})
	Expect(err).ToNot(HaveOccurred())

	tracker := ratelimit.NewTracker(consts.DefaultGlobalRatePerSecond, consts.DefaultGlobalBurst, consts.DefaultInstanceCooldown)
	breakers := circuitbreaker.NewTable(
		consts.CircuitBreakerWindow,
		consts.CircuitBreakerFailWithin,
		consts.CircuitBreakerOpenCooldown,
		func(string, gobreaker.State, gobreaker.State) {},
	)

	err = (&clustercontroller.Bind9ClusterReconciler{
		Client:   k8sManager.GetClient(),
		Scheme:   k8sManager.GetScheme(),
		Recorder: k8sManager.GetEventRecorderFor("bind9cluster-controller"),
	}).SetupWithManager(k8sManager)
	Expect(err).ToNot(HaveOccurred())

	err = (&clustercontroller.Bind9InstanceReconciler{
		Client: k8sManager.GetClient(),
		Scheme: k8sManager.GetScheme(),
		Images: builders.Images{Bind9: "internetsystemsconsortium/bind9", Bindcar: "firestoned/bindcar:latest"},
	}).SetupWithManager(k8sManager)
	Expect(err).ToNot(HaveOccurred())

	err = (&clustercontroller.Bind9ProviderReconciler{
		Client: k8sManager.GetClient(),
		Scheme: k8sManager.GetScheme(),
	}).SetupWithManager(k8sManager)
	Expect(err).ToNot(HaveOccurred())

	err = (&dnscontroller.DNSZoneReconciler{
		Client:          k8sManager.GetClient(),
		Tracker:         tracker,
		Breakers:        breakers,
		Recorder:        k8sManager.GetEventRecorderFor("dnszone-controller"),
		SidecarTimeout:  consts.DefaultSidecarTimeout,
		RequeueInterval: consts.DefaultZoneRequeueInterval,
	}).SetupWithManager(k8sManager)
	Expect(err).ToNot(HaveOccurred())

	recordEngine := dnscontroller.NewRecordEngine(
		k8sManager.GetClient(),
		tracker,
		breakers,
		k8sManager.GetEventRecorderFor("record-controller"),
		"",
		consts.DefaultSidecarTimeout,
		consts.DefaultForceDropWindow,
		consts.DefaultRecordRequeueInterval,
	)
	Expect(dnscontroller.SetupRecordControllers(k8sManager, recordEngine)).To(Succeed())

	go func() {
		defer GinkgoRecover()
		err = k8sManager.Start(ctrl.SetupSignalHandler())
		Expect(err).ToNot(HaveOccurred(), "failed to run manager")
	}()
})

var _ = AfterSuite(func() {
	By("tearing down the test environment")
	err := testEnv.Stop()
	// envtest's etcd/apiserver teardown frequently reports a timeout on the
	// first Stop call; this is a known envtest quirk, not a test failure.
	if err != nil && !strings.Contains(err.Error(), "timeout waiting for process") {
		Expect(err).NotTo(HaveOccurred())
	}
})
