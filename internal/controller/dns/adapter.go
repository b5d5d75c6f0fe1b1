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
	dnsv1alpha1 "github.com/firestoned/bindy/api/dns/v1alpha1"
	"github.com/firestoned/bindy/internal/recordkind"
	"github.com/firestoned/bindy/internal/sidecarclient"
)

// recordAdapter lets the generic reconcile engine in record_engine.go
// operate over any of the eight record kinds without knowing their
// concrete spec shape, per §9's "payload projector + validator" capability
// sets. The engine also needs the wrapped client.Object itself (for Get/
// Update calls); callers hold that separately since it's identical to the
// obj field the adapter closes over.
type recordAdapter interface {
	// recordKind names the CRD kind, e.g. "ARecord", for logging, events,
	// metrics and the zone's discovered RecordRef.Kind.
	recordKind() string

	// wireType names the sidecar API's record "type" path segment, e.g.
	// "A" (recordkind.Kind), distinct from recordKind's CRD kind string.
	wireType() string

	// zoneRef names the parent DNSZone in the adapter's namespace.
	zoneRef() string

	// recordName is the owner name the projected payload is keyed by.
	recordName() string

	// status returns a pointer into the wrapped object's shared RecordStatus.
	status() *dnsv1alpha1.RecordStatus

	// project validates and projects this record's spec onto the sidecar
	// wire format, given the parent zone's default TTL.
	project(zoneDefaultTTL int32) (sidecarclient.RecordPayload, error)
}

type aRecordAdapter struct{ obj *dnsv1alpha1.ARecord }

func (a *aRecordAdapter) recordKind() string                { return "ARecord" }
func (a *aRecordAdapter) wireType() string                { return string(recordkind.KindA) }
func (a *aRecordAdapter) zoneRef() string                    { return a.obj.Spec.ZoneRef }
func (a *aRecordAdapter) recordName() string                 { return a.obj.Spec.Name }
func (a *aRecordAdapter) status() *dnsv1alpha1.RecordStatus  { return &a.obj.Status }
func (a *aRecordAdapter) project(zoneDefaultTTL int32) (sidecarclient.RecordPayload, error) {
	return recordkind.ProjectARecord(a.obj.Spec, zoneDefaultTTL)
}

type aaaaRecordAdapter struct{ obj *dnsv1alpha1.AAAARecord }

func (a *aaaaRecordAdapter) recordKind() string               { return "AAAARecord" }
func (a *aaaaRecordAdapter) wireType() string                { return string(recordkind.KindAAAA) }
func (a *aaaaRecordAdapter) zoneRef() string                   { return a.obj.Spec.ZoneRef }
func (a *aaaaRecordAdapter) recordName() string                { return a.obj.Spec.Name }
func (a *aaaaRecordAdapter) status() *dnsv1alpha1.RecordStatus { return &a.obj.Status }
func (a *aaaaRecordAdapter) project(zoneDefaultTTL int32) (sidecarclient.RecordPayload, error) {
	return recordkind.ProjectAAAARecord(a.obj.Spec, zoneDefaultTTL)
}

type cnameRecordAdapter struct{ obj *dnsv1alpha1.CNAMERecord }

func (a *cnameRecordAdapter) recordKind() string               { return "CNAMERecord" }
func (a *cnameRecordAdapter) wireType() string                { return string(recordkind.KindCNAME) }
func (a *cnameRecordAdapter) zoneRef() string                   { return a.obj.Spec.ZoneRef }
func (a *cnameRecordAdapter) recordName() string                { return a.obj.Spec.Name }
func (a *cnameRecordAdapter) status() *dnsv1alpha1.RecordStatus { return &a.obj.Status }
func (a *cnameRecordAdapter) project(zoneDefaultTTL int32) (sidecarclient.RecordPayload, error) {
	return recordkind.ProjectCNAMERecord(a.obj.Spec, zoneDefaultTTL)
}

type mxRecordAdapter struct{ obj *dnsv1alpha1.MXRecord }

func (a *mxRecordAdapter) recordKind() string               { return "MXRecord" }
func (a *mxRecordAdapter) wireType() string                { return string(recordkind.KindMX) }
func (a *mxRecordAdapter) zoneRef() string                   { return a.obj.Spec.ZoneRef }
func (a *mxRecordAdapter) recordName() string                { return a.obj.Spec.Name }
func (a *mxRecordAdapter) status() *dnsv1alpha1.RecordStatus { return &a.obj.Status }
func (a *mxRecordAdapter) project(zoneDefaultTTL int32) (sidecarclient.RecordPayload, error) {
	return recordkind.ProjectMXRecord(a.obj.Spec, zoneDefaultTTL)
}

type txtRecordAdapter struct{ obj *dnsv1alpha1.TXTRecord }

func (a *txtRecordAdapter) recordKind() string               { return "TXTRecord" }
func (a *txtRecordAdapter) wireType() string                { return string(recordkind.KindTXT) }
func (a *txtRecordAdapter) zoneRef() string                   { return a.obj.Spec.ZoneRef }
func (a *txtRecordAdapter) recordName() string                { return a.obj.Spec.Name }
func (a *txtRecordAdapter) status() *dnsv1alpha1.RecordStatus { return &a.obj.Status }
func (a *txtRecordAdapter) project(zoneDefaultTTL int32) (sidecarclient.RecordPayload, error) {
	return recordkind.ProjectTXTRecord(a.obj.Spec, zoneDefaultTTL)
}

type nsRecordAdapter struct{ obj *dnsv1alpha1.NSRecord }

func (a *nsRecordAdapter) recordKind() string               { return "NSRecord" }
func (a *nsRecordAdapter) wireType() string                { return string(recordkind.KindNS) }
func (a *nsRecordAdapter) zoneRef() string                   { return a.obj.Spec.ZoneRef }
func (a *nsRecordAdapter) recordName() string                { return a.obj.Spec.Name }
func (a *nsRecordAdapter) status() *dnsv1alpha1.RecordStatus { return &a.obj.Status }
func (a *nsRecordAdapter) project(zoneDefaultTTL int32) (sidecarclient.RecordPayload, error) {
	return recordkind.ProjectNSRecord(a.obj.Spec, zoneDefaultTTL)
}

type srvRecordAdapter struct{ obj *dnsv1alpha1.SRVRecord }

func (a *srvRecordAdapter) recordKind() string               { return "SRVRecord" }
func (a *srvRecordAdapter) wireType() string                { return string(recordkind.KindSRV) }
func (a *srvRecordAdapter) zoneRef() string                   { return a.obj.Spec.ZoneRef }
func (a *srvRecordAdapter) recordName() string                { return a.obj.Spec.Name }
func (a *srvRecordAdapter) status() *dnsv1alpha1.RecordStatus { return &a.obj.Status }
func (a *srvRecordAdapter) project(zoneDefaultTTL int32) (sidecarclient.RecordPayload, error) {
	return recordkind.ProjectSRVRecord(a.obj.Spec, zoneDefaultTTL)
}

type caaRecordAdapter struct{ obj *dnsv1alpha1.CAARecord }

func (a *caaRecordAdapter) recordKind() string               { return "CAARecord" }
func (a *caaRecordAdapter) wireType() string                { return string(recordkind.KindCAA) }
func (a *caaRecordAdapter) zoneRef() string                   { return a.obj.Spec.ZoneRef }
func (a *caaRecordAdapter) recordName() string                { return a.obj.Spec.Name }
func (a *caaRecordAdapter) status() *dnsv1alpha1.RecordStatus { return &a.obj.Status }
func (a *caaRecordAdapter) project(zoneDefaultTTL int32) (sidecarclient.RecordPayload, error) {
	return recordkind.ProjectCAARecord(a.obj.Spec, zoneDefaultTTL)
}
