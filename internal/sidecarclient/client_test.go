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

package sidecarclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPutZoneSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/zones/example.com." {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Errorf("expected bearer token header, got %q", got)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewClient(server.URL, "tok123", time.Second)
	if err := c.PutZone(context.Background(), "example.com.", ZonePayload{FQDN: "example.com."}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPutZoneAlreadyExistsIsNonFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"already_exists":true}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "", time.Second)
	err := c.PutZone(context.Background(), "example.com.", ZonePayload{FQDN: "example.com."})
	if err == nil {
		t.Fatal("expected an AlreadyExists error")
	}
	if !IsAlreadyExists(err) {
		t.Errorf("expected IsAlreadyExists, got %v", err)
	}
	if IsRetryable(err) {
		t.Error("ZoneAlreadyExists should not be retryable")
	}
}

func TestStatusCodeMapping(t *testing.T) {
	cases := []struct {
		status   int
		wantKind Kind
	}{
		{http.StatusBadRequest, KindBadRequest},
		{http.StatusUnauthorized, KindAuthFailed},
		{http.StatusForbidden, KindAuthFailed},
		{http.StatusNotFound, KindZoneNotFound},
		{http.StatusInternalServerError, KindInternalError},
		{http.StatusNotImplemented, KindNotImplemented},
		{http.StatusBadGateway, KindGatewayError},
		{http.StatusServiceUnavailable, KindGatewayError},
		{http.StatusGatewayTimeout, KindGatewayError},
		{http.StatusTeapot, KindUnreachable},
	}

	for _, tc := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))
		c := NewClient(server.URL, "", time.Second)
		err := c.DeleteZone(context.Background(), "example.com.")
		server.Close()

		sidecarErr, ok := err.(*Error)
		if !ok {
			t.Fatalf("status %d: expected *Error, got %T", tc.status, err)
		}
		if sidecarErr.Kind != tc.wantKind {
			t.Errorf("status %d: expected kind %v, got %v", tc.status, tc.wantKind, sidecarErr.Kind)
		}
	}
}

func TestDeleteZoneNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient(server.URL, "", time.Second)
	err := c.DeleteZone(context.Background(), "example.com.")
	if !IsNotFound(err) {
		t.Errorf("expected IsNotFound, got %v", err)
	}
}

func TestUnreachableEndpoint(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "", 50*time.Millisecond)
	err := c.Healthz(context.Background())
	if err == nil {
		t.Fatal("expected a transport error against a closed port")
	}
	sidecarErr, ok := err.(*Error)
	if !ok || sidecarErr.Kind != KindUnreachable {
		t.Errorf("expected KindUnreachable, got %v", err)
	}
	if !IsRetryable(err) {
		t.Error("unreachable errors should be retryable")
	}
}

func TestGetRecordDecodesPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/zones/example.com./records/A/www" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"type":"A","name":"www","ttl":300,"data":{"address":"10.0.0.1"}}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "", time.Second)
	record, err := c.GetRecord(context.Background(), "example.com.", "A", "www")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.TTL != 300 || record.Data["address"] != "10.0.0.1" {
		t.Errorf("unexpected record payload: %+v", record)
	}
}
