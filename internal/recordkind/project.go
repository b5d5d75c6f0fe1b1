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

package recordkind

import (
	"fmt"

	dnsv1alpha1 "github.com/firestoned/bindy/api/dns/v1alpha1"
	"github.com/firestoned/bindy/internal/sidecarclient"
)

// effectiveTTL resolves a record's TTL override against the zone default.
func effectiveTTL(override *int32, zoneDefault int32) int32 {
	if override != nil {
		return *override
	}
	return zoneDefault
}

// ProjectARecord validates and projects an ARecordSpec onto the sidecar
// wire format.
func ProjectARecord(spec dnsv1alpha1.ARecordSpec, zoneDefaultTTL int32) (sidecarclient.RecordPayload, error) {
	if err := validateIPv4(spec.Address); err != nil {
		return sidecarclient.RecordPayload{}, fmt.Errorf("address: %w", err)
	}
	return sidecarclient.RecordPayload{
		Type: string(KindA),
		Name: spec.Name,
		TTL:  effectiveTTL(spec.TTL, zoneDefaultTTL),
		Data: map[string]any{"address": spec.Address},
	}, nil
}

// ProjectAAAARecord validates and projects an AAAARecordSpec.
func ProjectAAAARecord(spec dnsv1alpha1.AAAARecordSpec, zoneDefaultTTL int32) (sidecarclient.RecordPayload, error) {
	if err := validateIPv6(spec.Address); err != nil {
		return sidecarclient.RecordPayload{}, fmt.Errorf("address: %w", err)
	}
	return sidecarclient.RecordPayload{
		Type: string(KindAAAA),
		Name: spec.Name,
		TTL:  effectiveTTL(spec.TTL, zoneDefaultTTL),
		Data: map[string]any{"address": spec.Address},
	}, nil
}

// ProjectCNAMERecord validates and projects a CNAMERecordSpec.
func ProjectCNAMERecord(spec dnsv1alpha1.CNAMERecordSpec, zoneDefaultTTL int32) (sidecarclient.RecordPayload, error) {
	if err := validateFQDN(spec.Target); err != nil {
		return sidecarclient.RecordPayload{}, fmt.Errorf("target: %w", err)
	}
	return sidecarclient.RecordPayload{
		Type: string(KindCNAME),
		Name: spec.Name,
		TTL:  effectiveTTL(spec.TTL, zoneDefaultTTL),
		Data: map[string]any{"target": spec.Target},
	}, nil
}

// ProjectMXRecord validates and projects an MXRecordSpec.
func ProjectMXRecord(spec dnsv1alpha1.MXRecordSpec, zoneDefaultTTL int32) (sidecarclient.RecordPayload, error) {
	if err := validateFQDN(spec.Exchange); err != nil {
		return sidecarclient.RecordPayload{}, fmt.Errorf("exchange: %w", err)
	}
	return sidecarclient.RecordPayload{
		Type: string(KindMX),
		Name: spec.Name,
		TTL:  effectiveTTL(spec.TTL, zoneDefaultTTL),
		Data: map[string]any{
			"exchange":   spec.Exchange,
			"preference": spec.Preference,
		},
	}, nil
}

// ProjectTXTRecord validates and projects a TXTRecordSpec.
func ProjectTXTRecord(spec dnsv1alpha1.TXTRecordSpec, zoneDefaultTTL int32) (sidecarclient.RecordPayload, error) {
	if err := validateNonEmptyStrings(spec.Values); err != nil {
		return sidecarclient.RecordPayload{}, fmt.Errorf("values: %w", err)
	}
	return sidecarclient.RecordPayload{
		Type: string(KindTXT),
		Name: spec.Name,
		TTL:  effectiveTTL(spec.TTL, zoneDefaultTTL),
		Data: map[string]any{"values": spec.Values},
	}, nil
}

// ProjectNSRecord validates and projects an NSRecordSpec.
func ProjectNSRecord(spec dnsv1alpha1.NSRecordSpec, zoneDefaultTTL int32) (sidecarclient.RecordPayload, error) {
	if err := validateFQDN(spec.Nameserver); err != nil {
		return sidecarclient.RecordPayload{}, fmt.Errorf("nameserver: %w", err)
	}
	return sidecarclient.RecordPayload{
		Type: string(KindNS),
		Name: spec.Name,
		TTL:  effectiveTTL(spec.TTL, zoneDefaultTTL),
		Data: map[string]any{"nameserver": spec.Nameserver},
	}, nil
}

// ProjectSRVRecord validates and projects an SRVRecordSpec.
func ProjectSRVRecord(spec dnsv1alpha1.SRVRecordSpec, zoneDefaultTTL int32) (sidecarclient.RecordPayload, error) {
	if err := validateFQDN(spec.Target); err != nil {
		return sidecarclient.RecordPayload{}, fmt.Errorf("target: %w", err)
	}
	if err := validatePort(spec.Port); err != nil {
		return sidecarclient.RecordPayload{}, fmt.Errorf("port: %w", err)
	}
	return sidecarclient.RecordPayload{
		Type: string(KindSRV),
		Name: spec.Name,
		TTL:  effectiveTTL(spec.TTL, zoneDefaultTTL),
		Data: map[string]any{
			"priority": spec.Priority,
			"weight":   spec.Weight,
			"port":     spec.Port,
			"target":   spec.Target,
		},
	}, nil
}

// ProjectCAARecord validates and projects a CAARecordSpec.
func ProjectCAARecord(spec dnsv1alpha1.CAARecordSpec, zoneDefaultTTL int32) (sidecarclient.RecordPayload, error) {
	if err := validateCAATag(spec.Tag); err != nil {
		return sidecarclient.RecordPayload{}, fmt.Errorf("tag: %w", err)
	}
	return sidecarclient.RecordPayload{
		Type: string(KindCAA),
		Name: spec.Name,
		TTL:  effectiveTTL(spec.TTL, zoneDefaultTTL),
		Data: map[string]any{
			"flags": spec.Flags,
			"tag":   spec.Tag,
			"value": spec.Value,
		},
	}, nil
}
