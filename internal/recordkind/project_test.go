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
	"testing"

	dnsv1alpha1 "github.com/firestoned/bindy/api/dns/v1alpha1"
)

func TestProjectARecordRejectsInvalidIPv4(t *testing.T) {
	_, err := ProjectARecord(dnsv1alpha1.ARecordSpec{Name: "www", Address: "not-an-ip"}, 3600)
	if err == nil {
		t.Fatal("expected an error for an invalid IPv4 address")
	}
}

func TestProjectARecordSuccess(t *testing.T) {
	payload, err := ProjectARecord(dnsv1alpha1.ARecordSpec{Name: "www", Address: "10.0.0.5"}, 3600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Type != "A" || payload.TTL != 3600 || payload.Data["address"] != "10.0.0.5" {
		t.Errorf("unexpected payload: %+v", payload)
	}
}

func TestProjectARecordUsesTTLOverride(t *testing.T) {
	override := int32(60)
	payload, err := ProjectARecord(dnsv1alpha1.ARecordSpec{Name: "www", Address: "10.0.0.5", TTL: &override}, 3600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.TTL != 60 {
		t.Errorf("expected TTL override to apply, got %d", payload.TTL)
	}
}

func TestProjectAAAARecordRejectsIPv4Address(t *testing.T) {
	_, err := ProjectAAAARecord(dnsv1alpha1.AAAARecordSpec{Name: "www", Address: "10.0.0.5"}, 3600)
	if err == nil {
		t.Fatal("expected rejection of an IPv4 literal in an AAAA record")
	}
}

func TestProjectCNAMERecordRejectsMalformedTarget(t *testing.T) {
	_, err := ProjectCNAMERecord(dnsv1alpha1.CNAMERecordSpec{Name: "alias", Target: "not a fqdn"}, 3600)
	if err == nil {
		t.Fatal("expected rejection of a malformed CNAME target")
	}
}

func TestProjectMXRecordIncludesPreference(t *testing.T) {
	payload, err := ProjectMXRecord(dnsv1alpha1.MXRecordSpec{Name: "@", Exchange: "mail.example.com.", Preference: 20}, 3600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Data["preference"] != int32(20) {
		t.Errorf("expected preference 20, got %v", payload.Data["preference"])
	}
}

func TestProjectTXTRecordRejectsEmptyValues(t *testing.T) {
	_, err := ProjectTXTRecord(dnsv1alpha1.TXTRecordSpec{Name: "txt", Values: nil}, 3600)
	if err == nil {
		t.Fatal("expected rejection of an empty Values list")
	}
}

func TestProjectSRVRecordRejectsInvalidPort(t *testing.T) {
	_, err := ProjectSRVRecord(dnsv1alpha1.SRVRecordSpec{Name: "_sip._tcp", Target: "sip.example.com.", Port: 0}, 3600)
	if err == nil {
		t.Fatal("expected rejection of port 0")
	}
}

func TestProjectCAARecordRejectsUnknownTag(t *testing.T) {
	_, err := ProjectCAARecord(dnsv1alpha1.CAARecordSpec{Name: "@", Tag: "bogus", Value: "letsencrypt.org"}, 3600)
	if err == nil {
		t.Fatal("expected rejection of an unknown CAA tag")
	}
}

func TestProjectNSRecordSuccess(t *testing.T) {
	payload, err := ProjectNSRecord(dnsv1alpha1.NSRecordSpec{Name: "delegated", Nameserver: "ns1.example.com."}, 3600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Data["nameserver"] != "ns1.example.com." {
		t.Errorf("unexpected payload: %+v", payload)
	}
}
