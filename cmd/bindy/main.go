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

package main

import (
	"crypto/tls"
	"flag"
	"os"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap/zapcore"
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"
	"sigs.k8s.io/controller-runtime/pkg/webhook"

	clusterv1alpha1 "github.com/firestoned/bindy/api/cluster/v1alpha1"
	dnsv1alpha1 "github.com/firestoned/bindy/api/dns/v1alpha1"
	clustercontroller "github.com/firestoned/bindy/internal/controller/cluster"
	dnscontroller "github.com/firestoned/bindy/internal/controller/dns"
	"github.com/firestoned/bindy/internal/builders"
	"github.com/firestoned/bindy/internal/circuitbreaker"
	"github.com/firestoned/bindy/internal/metrics"
	"github.com/firestoned/bindy/internal/ratelimit"
	"github.com/firestoned/bindy/pkg/consts"
)

var (
	scheme   = runtime.NewScheme()
	setupLog = ctrl.Log.WithName("setup")
)

func init() {
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(clusterv1alpha1.AddToScheme(scheme))
	utilruntime.Must(dnsv1alpha1.AddToScheme(scheme))
}

func main() {
	var (
		metricsAddr          string
		probeAddr            string
		enableLeaderElection bool
		secureMetrics        bool
		bind9Image           string
		bindcarImage         string
		bearerToken          string
		sidecarTimeout       time.Duration
		globalRatePerSecond  float64
		globalBurst          int
		instanceCooldown     time.Duration
		forceDropWindow      time.Duration
		zoneRequeueInterval  time.Duration
		recordRequeueInterval time.Duration
	)

	flag.StringVar(&metricsAddr, "metrics-bind-address", ":8443", "The address the metrics endpoint binds to.")
	flag.StringVar(&probeAddr, "health-probe-bind-address", ":8081", "The address the probe endpoint binds to.")
	flag.BoolVar(&enableLeaderElection, "leader-elect", false, "Enable leader election for controller manager.")
	flag.BoolVar(&secureMetrics, "metrics-secure", true, "Serve metrics via HTTPS.")
	flag.StringVar(&bind9Image, "bind9-image", "internetsystemsconsortium/bind9", "Image repository (without tag) for the bind9 container of every managed instance; the tag is the cluster's spec.version.")
	flag.StringVar(&bindcarImage, "bindcar-image", "firestoned/bindcar:latest", "Image used for the bindcar sidecar container of every managed instance.")
	flag.StringVar(&bearerToken, "sidecar-bearer-token", "", "Bearer token presented to every bindcar sidecar (§6).")
	flag.DurationVar(&sidecarTimeout, "sidecar-timeout", consts.DefaultSidecarTimeout, "Per-call timeout for bindcar sidecar HTTP requests.")
	flag.Float64Var(&globalRatePerSecond, "global-rate-per-second", consts.DefaultGlobalRatePerSecond, "Process-wide reconcile token bucket rate.")
	flag.IntVar(&globalBurst, "global-burst", consts.DefaultGlobalBurst, "Process-wide reconcile token bucket burst.")
	flag.DurationVar(&instanceCooldown, "instance-cooldown", consts.DefaultInstanceCooldown, "Per-instance cool-down between successive zone reconciles against the same endpoint.")
	flag.DurationVar(&forceDropWindow, "force-drop-window", consts.DefaultForceDropWindow, "How long a record's deletion may keep failing against a gone zone before the finalizer is force-dropped (§4.2).")
	flag.DurationVar(&zoneRequeueInterval, "zone-requeue-interval", consts.DefaultZoneRequeueInterval, "Default requeue interval for a converged DNSZone.")
	flag.DurationVar(&recordRequeueInterval, "record-requeue-interval", consts.DefaultRecordRequeueInterval, "Default requeue interval for a converged record.")

	opts := zap.Options{Development: true}
	opts.BindFlags(flag.CommandLine)
	flag.Parse()

	// LOG_LEVEL (debug, info, warn, error) applies when -zap-log-level is not given.
	if opts.Level == nil {
		if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
			var level zapcore.Level
			if err := level.UnmarshalText([]byte(envLevel)); err == nil {
				opts.Level = level
			}
		}
	}

	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts)))

	// Disable HTTP/2 on the metrics server per the controller-runtime
	// scaffold's standard mitigation for CVE-2023-44487.
	disableHTTP2 := func(c *tls.Config) {
		setupLog.Info("disabling http/2")
		c.NextProtos = []string{"http/1.1"}
	}

	mgr, err := ctrl.NewManager(ctrl.GetConfigOrDie(), ctrl.Options{
		Scheme: scheme,
		Metrics: metricsserver.Options{
			BindAddress:   metricsAddr,
			SecureServing: secureMetrics,
			TLSOpts:       []func(*tls.Config){disableHTTP2},
		},
		WebhookServer:          webhook.NewServer(webhook.Options{TLSOpts: []func(*tls.Config){disableHTTP2}}),
		HealthProbeBindAddress: probeAddr,
		LeaderElection:         enableLeaderElection,
		LeaderElectionID:       "bindy-controller-leader.bindy.firestoned.io",
	})
	if err != nil {
		setupLog.Error(err, "unable to start manager")
		os.Exit(1)
	}

	tracker := ratelimit.NewTracker(globalRatePerSecond, globalBurst, instanceCooldown)
	breakers := circuitbreaker.NewTable(
		consts.CircuitBreakerWindow,
		consts.CircuitBreakerFailWithin,
		consts.CircuitBreakerOpenCooldown,
		func(endpoint string, _, to gobreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(endpoint).Set(float64(to))
		},
	)

	if err := (&clustercontroller.Bind9ClusterReconciler{
		Client:   mgr.GetClient(),
		Scheme:   mgr.GetScheme(),
		Recorder: mgr.GetEventRecorderFor("bind9cluster-controller"),
	}).SetupWithManager(mgr); err != nil {
		setupLog.Error(err, "unable to create controller", "controller", "Bind9Cluster")
		os.Exit(1)
	}

	if err := (&clustercontroller.Bind9InstanceReconciler{
		Client: mgr.GetClient(),
		Scheme: mgr.GetScheme(),
		Images: builders.Images{Bind9: bind9Image, Bindcar: bindcarImage},
	}).SetupWithManager(mgr); err != nil {
		setupLog.Error(err, "unable to create controller", "controller", "Bind9Instance")
		os.Exit(1)
	}

	if err := (&clustercontroller.Bind9ProviderReconciler{
		Client: mgr.GetClient(),
		Scheme: mgr.GetScheme(),
	}).SetupWithManager(mgr); err != nil {
		setupLog.Error(err, "unable to create controller", "controller", "Bind9Provider")
		os.Exit(1)
	}

	if err := (&dnscontroller.DNSZoneReconciler{
		Client:          mgr.GetClient(),
		Tracker:         tracker,
		Breakers:        breakers,
		Recorder:        mgr.GetEventRecorderFor("dnszone-controller"),
		BearerToken:     bearerToken,
		SidecarTimeout:  sidecarTimeout,
		RequeueInterval: zoneRequeueInterval,
	}).SetupWithManager(mgr); err != nil {
		setupLog.Error(err, "unable to create controller", "controller", "DNSZone")
		os.Exit(1)
	}

	recordEngine := dnscontroller.NewRecordEngine(
		mgr.GetClient(),
		tracker,
		breakers,
		mgr.GetEventRecorderFor("record-controller"),
		bearerToken,
		sidecarTimeout,
		forceDropWindow,
		recordRequeueInterval,
	)

	if err := dnscontroller.SetupRecordControllers(mgr, recordEngine); err != nil {
		setupLog.Error(err, "unable to create record controllers")
		os.Exit(1)
	}

	if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		setupLog.Error(err, "unable to set up health check")
		os.Exit(1)
	}
	if err := mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
		setupLog.Error(err, "unable to set up ready check")
		os.Exit(1)
	}

	setupLog.Info("starting manager")
	if err := mgr.Start(ctrl.SetupSignalHandler()); err != nil {
		setupLog.Error(err, "problem running manager")
		os.Exit(1)
	}
}
