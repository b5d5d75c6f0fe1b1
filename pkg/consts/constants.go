// Package consts centralizes condition types, reasons, labels and
// defaults shared across reconcilers so the string literals never drift
// between packages.
package consts

import "time"

const (
	// Condition types. Every resource carries exactly one Ready condition;
	// the zone additionally carries Progressing/Degraded; children carry
	// one condition per child keyed by a type string that encodes identity
	// (see the condition package's ChildType).
	ConditionTypeReady       = "Ready"
	ConditionTypeProgressing = "Progressing"
	ConditionTypeDegraded    = "Degraded"

	// Ready reasons (cross-resource).
	ReasonAllReady       = "AllReady"
	ReasonReady          = "Ready"
	ReasonPartiallyReady = "PartiallyReady"
	ReasonNotReady       = "NotReady"
	ReasonNoChildren     = "NoChildren"
	ReasonProgressing    = "Progressing"

	ReasonConfigurationInvalid = "ConfigurationInvalid"
	ReasonDuplicateZone        = "DuplicateZone"
	ReasonReconcileSucceeded   = "ReconcileSucceeded"

	ReasonPrimaryReconciling = "PrimaryReconciling"
	ReasonPrimaryReconciled  = "PrimaryReconciled"
	ReasonPrimaryFailed      = "PrimaryFailed"

	ReasonSecondaryReconciling = "SecondaryReconciling"
	ReasonSecondaryReconciled  = "SecondaryReconciled"
	ReasonSecondaryFailed      = "SecondaryFailed"

	ReasonRecordReconciling = "RecordReconciling"
	ReasonRecordFailed      = "RecordFailed"

	ReasonBindcarUnreachable    = "BindcarUnreachable"
	ReasonBindcarAuthFailed     = "BindcarAuthFailed"
	ReasonBindcarBadRequest     = "BindcarBadRequest"
	ReasonBindcarInternalError  = "BindcarInternalError"
	ReasonBindcarNotImplemented = "BindcarNotImplemented"
	ReasonGatewayError          = "GatewayError"
	ReasonZoneNotFound          = "ZoneNotFound"
	ReasonZoneAlreadyExists     = "ZoneAlreadyExists"
	ReasonZoneTransferComplete  = "ZoneTransferComplete"
	ReasonZoneTransferFailed    = "ZoneTransferFailed"

	ReasonPodsPending              = "PodsPending"
	ReasonPodsCrashing             = "PodsCrashing"
	ReasonRNDCAuthenticationFailed = "RNDCAuthenticationFailed"
	ReasonMinimumReplicasAvailable = "MinimumReplicasAvailable"
	ReasonInlineTSIGKeyDeprecated  = "InlineTSIGKeyDeprecated"
	ReasonForcedFinalizerDrop      = "ForcedFinalizerDrop"
	ReasonClusterNotFound          = "ClusterNotFound"
	ReasonProviderNotFound         = "ProviderNotFound"
	ReasonInvalidRecordPayload     = "InvalidRecordPayload"
	ReasonRateLimited              = "RateLimited"
)

// Instance roles.
const (
	RolePrimary   = "primary"
	RoleSecondary = "secondary"
)

// Labels applied to every managed child object, per spec §6.
const (
	LabelManagedBy = "app.kubernetes.io/managed-by"
	LabelPartOf    = "app.kubernetes.io/part-of"
	LabelComponent = "app.kubernetes.io/component"
	LabelInstance  = "bindy.firestoned.io/instance"

	ManagedByValue      = "bindy"
	ComponentBind9Value = "bind9"
	ComponentBindcar    = "bindcar"
)

// Annotations.
const (
	AnnotationSpecHash       = "bindy.firestoned.io/spec-hash"
	AnnotationLastReconciled = "bindy.firestoned.io/last-reconciled-at"
)

// Finalizers, one per kind that performs side effects on a running server.
const (
	FinalizerZone   = "bindy.firestoned.io/zone-cleanup"
	FinalizerRecord = "bindy.firestoned.io/record-cleanup"
)

// RNDCPort is the control-channel port every managed BIND9 container listens
// on (see the instance deployment builder's "rndc" container port).
const RNDCPort = 953

// Tunable defaults, overridable by flags on the manager (§5, §9); the
// CircuitBreaker* values are fixed and have no flag.
const (
	DefaultInstanceCooldown      = 5 * time.Second
	DefaultGlobalRatePerSecond   = 10
	DefaultGlobalBurst           = 50
	DefaultZoneRequeueInterval   = 15 * time.Second
	DefaultRecordRequeueInterval = 10 * time.Second
	DefaultForceDropWindow       = 5 * time.Minute
	DefaultSidecarTimeout        = 10 * time.Second

	CircuitBreakerWindow       = 5
	CircuitBreakerFailWithin   = 60 * time.Second
	CircuitBreakerOpenCooldown = 60 * time.Second
)
