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

// Package rndc encodes control-channel commands (reload, freeze, thaw,
// notify) against BIND9's RNDC protocol. The wire encoding itself is
// treated as a black box: commands are delegated to the rndc binary,
// authenticated with the TSIG key material resolved from the cluster's
// referenced secret. This package's job is restricting algorithm choice to
// the FIPS-approved HMAC family and building well-formed invocations, not
// reimplementing RNDC's framing.
package rndc

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/miekg/dns"
)

// Algorithm is a TSIG HMAC algorithm name, restricted to the FIPS-approved
// family per the cluster-level control channel requirement.
type Algorithm string

const (
	AlgorithmHMACSHA256 Algorithm = dns.HmacSHA256
	AlgorithmHMACSHA384 Algorithm = dns.HmacSHA384
	AlgorithmHMACSHA512 Algorithm = dns.HmacSHA512
)

// ErrAlgorithmRejected is returned for any algorithm outside the
// FIPS-approved HMAC family, notably HMAC-MD5.
var ErrAlgorithmRejected = fmt.Errorf("rndc: algorithm not FIPS-approved")

// ValidateAlgorithm rejects any HMAC algorithm outside SHA-256/384/512.
// Names are accepted with or without the trailing dot.
func ValidateAlgorithm(alg Algorithm) error {
	switch Algorithm(dns.Fqdn(string(alg))) {
	case AlgorithmHMACSHA256, AlgorithmHMACSHA384, AlgorithmHMACSHA512:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrAlgorithmRejected, alg)
	}
}

// Key is the TSIG key material used to authenticate one RNDC session.
type Key struct {
	Name      string
	Secret    string
	Algorithm Algorithm
}

// Command is one RNDC control-channel verb.
type Command string

const (
	CommandReload Command = "reload"
	CommandFreeze Command = "freeze"
	CommandThaw   Command = "thaw"
	CommandNotify Command = "notify"
)

// Runner executes one rndc invocation. The default implementation shells
// out to the rndc binary; tests substitute a fake.
type Runner interface {
	Run(ctx context.Context, keyConfigPath string, args []string) ([]byte, error)
}

// execRunner invokes the real rndc binary found on PATH (or at a
// configured absolute path).
type execRunner struct {
	binary string
}

func (r execRunner) Run(ctx context.Context, keyConfigPath string, args []string) ([]byte, error) {
	fullArgs := append([]string{"-k", keyConfigPath}, args...)
	cmd := exec.CommandContext(ctx, r.binary, fullArgs...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rndc %v: %w: %s", args, err, stderr.String())
	}
	return stdout.Bytes(), nil
}

// Client issues RNDC commands against one BIND9 control-channel endpoint.
type Client struct {
	runner Runner
}

// NewClient builds a client that shells out to the named rndc binary
// ("rndc" resolved from PATH if empty).
func NewClient(binary string) *Client {
	if binary == "" {
		binary = "rndc"
	}
	return &Client{runner: execRunner{binary: binary}}
}

// NewClientWithRunner builds a client around a caller-supplied Runner, for
// tests.
func NewClientWithRunner(runner Runner) *Client {
	return &Client{runner: runner}
}

// Do issues one command against server:port, authenticated with key, and
// scoped to zone when non-empty (freeze/thaw/notify/reload all accept an
// optional zone argument in RNDC).
func (c *Client) Do(ctx context.Context, server string, port int, key Key, command Command, zone string) error {
	if err := ValidateAlgorithm(key.Algorithm); err != nil {
		return err
	}

	keyConfigPath, cleanup, err := writeKeyConfig(key)
	if err != nil {
		return fmt.Errorf("writing rndc key config: %w", err)
	}
	defer cleanup()

	args := []string{"-s", server, "-p", strconv.Itoa(port), string(command)}
	if zone != "" {
		args = append(args, zone)
	}

	if _, err := c.runner.Run(ctx, keyConfigPath, args); err != nil {
		return fmt.Errorf("rndc %s against %s:%d: %w", command, server, port, err)
	}
	return nil
}

// Reload triggers a zone (or full-server, if zone is empty) reload.
func (c *Client) Reload(ctx context.Context, server string, port int, key Key, zone string) error {
	return c.Do(ctx, server, port, key, CommandReload, zone)
}

// Freeze suspends dynamic updates to a zone ahead of a manual edit.
func (c *Client) Freeze(ctx context.Context, server string, port int, key Key, zone string) error {
	return c.Do(ctx, server, port, key, CommandFreeze, zone)
}

// Thaw resumes dynamic updates previously suspended by Freeze.
func (c *Client) Thaw(ctx context.Context, server string, port int, key Key, zone string) error {
	return c.Do(ctx, server, port, key, CommandThaw, zone)
}

// Notify forces an immediate NOTIFY to a zone's secondaries.
func (c *Client) Notify(ctx context.Context, server string, port int, key Key, zone string) error {
	return c.Do(ctx, server, port, key, CommandNotify, zone)
}

// writeKeyConfig renders a minimal rndc.conf-style key clause to a
// private temp file so the secret never appears on the process command
// line or in logs.
func writeKeyConfig(key Key) (path string, cleanup func(), err error) {
	file, err := os.CreateTemp("", "rndc-key-*.conf")
	if err != nil {
		return "", nil, err
	}
	content := fmt.Sprintf("key %q {\n\talgorithm %s;\n\tsecret %q;\n};\n", key.Name, key.Algorithm, key.Secret)
	if _, err := file.WriteString(content); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", nil, err
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", nil, err
	}
	return file.Name(), func() { os.Remove(file.Name()) }, nil
}
