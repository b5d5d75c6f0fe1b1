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

// Package sidecarclient is a typed HTTP client for the bindcar sidecar's
// zone and record control API (§6). It never retries internally; the
// caller's reconciler decides whether a returned error is transient or
// permanent and requeues accordingly.
package sidecarclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client talks to a single bindcar sidecar endpoint.
type Client struct {
	baseURL     string
	bearerToken string
	httpClient  *http.Client
}

// NewClient builds a client for one endpoint address, e.g.
// "http://instance-0.svc.cluster.local:8080".
func NewClient(endpoint, bearerToken string, timeout time.Duration) *Client {
	return &Client{
		baseURL:     endpoint,
		bearerToken: bearerToken,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// ZonePayload is the wire representation of a zone's control-plane config.
type ZonePayload struct {
	FQDN          string   `json:"fqdn"`
	MName         string   `json:"mname"`
	RName         string   `json:"rname"`
	Refresh       int32    `json:"refresh"`
	Retry         int32    `json:"retry"`
	Expire        int32    `json:"expire"`
	MinimumTTL    int32    `json:"minimum_ttl"`
	DefaultTTL    int32    `json:"default_ttl"`
	Role          string   `json:"role"`
	AllowTransfer []string `json:"allow_transfer,omitempty"`
	Primaries     []string `json:"primaries,omitempty"`
	TSIGKeyName   string   `json:"tsig_key_name,omitempty"`
}

// RecordPayload is the wire representation of one DNS record.
type RecordPayload struct {
	Type string         `json:"type"`
	Name string         `json:"name"`
	TTL  int32          `json:"ttl,omitempty"`
	Data map[string]any `json:"data"`
}

// PutZone creates or updates a zone's configuration. Idempotent per §6.
func (c *Client) PutZone(ctx context.Context, fqdn string, payload ZonePayload) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/zones/%s", url.PathEscape(fqdn)), payload, nil)
}

// DeleteZone removes a zone. A 404 response is tolerated as success by the
// caller via IsNotFound, not swallowed here, so reconcilers can still log it.
func (c *Client) DeleteZone(ctx context.Context, fqdn string) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/zones/%s", url.PathEscape(fqdn)), nil, nil)
}

// GetRecord queries one record's current state.
func (c *Client) GetRecord(ctx context.Context, fqdn, recordType, name string) (*RecordPayload, error) {
	var out RecordPayload
	path := fmt.Sprintf("/zones/%s/records/%s/%s", url.PathEscape(fqdn), url.PathEscape(recordType), url.PathEscape(name))
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PutRecord upserts one record.
func (c *Client) PutRecord(ctx context.Context, fqdn, recordType, name string, payload RecordPayload) error {
	path := fmt.Sprintf("/zones/%s/records/%s/%s", url.PathEscape(fqdn), url.PathEscape(recordType), url.PathEscape(name))
	return c.do(ctx, http.MethodPut, path, payload, nil)
}

// DeleteRecord removes one record. 404 tolerated by the caller.
func (c *Client) DeleteRecord(ctx context.Context, fqdn, recordType, name string) error {
	path := fmt.Sprintf("/zones/%s/records/%s/%s", url.PathEscape(fqdn), url.PathEscape(recordType), url.PathEscape(name))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// Reload triggers a BIND9 reload for one zone.
func (c *Client) Reload(ctx context.Context, fqdn string) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/zones/%s:reload", url.PathEscape(fqdn)), nil, nil)
}

// Healthz checks sidecar readiness.
func (c *Client) Healthz(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindUnreachable, Message: err.Error()}
	}
	defer resp.Body.Close()

	if classified := classifyStatus(resp.StatusCode); classified != nil {
		data, _ := io.ReadAll(resp.Body)
		classified.Message = string(data)
		classified.StatusCode = resp.StatusCode
		return classified
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if len(data) > 0 {
		var envelope struct {
			AlreadyExists bool `json:"already_exists"`
		}
		if json.Unmarshal(data, &envelope) == nil && envelope.AlreadyExists {
			return &Error{Kind: KindAlreadyExists, StatusCode: resp.StatusCode, Message: "zone already configured"}
		}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response body: %w", err)
		}
	}
	return nil
}

// classifyStatus maps an HTTP status code to a structured error kind per
// §4.1's HTTP status mapping. Returns nil for any successful 2xx.
func classifyStatus(code int) *Error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusBadRequest:
		return &Error{Kind: KindBadRequest}
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return &Error{Kind: KindAuthFailed}
	case code == http.StatusNotFound:
		return &Error{Kind: KindZoneNotFound}
	case code == http.StatusInternalServerError:
		return &Error{Kind: KindInternalError}
	case code == http.StatusNotImplemented:
		return &Error{Kind: KindNotImplemented}
	case code == http.StatusBadGateway, code == http.StatusServiceUnavailable, code == http.StatusGatewayTimeout:
		return &Error{Kind: KindGatewayError}
	default:
		return &Error{Kind: KindUnreachable, Message: fmt.Sprintf("unexpected status code %d", code)}
	}
}
