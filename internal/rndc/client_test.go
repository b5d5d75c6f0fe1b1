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

package rndc

import (
	"context"
	"errors"
	"os"
	"testing"
)

func TestValidateAlgorithmRejectsMD5(t *testing.T) {
	if err := ValidateAlgorithm("hmac-md5"); !errors.Is(err, ErrAlgorithmRejected) {
		t.Errorf("expected MD5 to be rejected, got %v", err)
	}
}

func TestValidateAlgorithmAcceptsApprovedFamily(t *testing.T) {
	for _, alg := range []Algorithm{AlgorithmHMACSHA256, AlgorithmHMACSHA384, AlgorithmHMACSHA512} {
		if err := ValidateAlgorithm(alg); err != nil {
			t.Errorf("expected %s to be accepted, got %v", alg, err)
		}
	}
}

type fakeRunner struct {
	lastKeyConfigPath string
	lastArgs          []string
	err               error
}

func (f *fakeRunner) Run(_ context.Context, keyConfigPath string, args []string) ([]byte, error) {
	f.lastKeyConfigPath = keyConfigPath
	f.lastArgs = args
	return nil, f.err
}

func TestDoRejectsDisallowedAlgorithmBeforeRunning(t *testing.T) {
	runner := &fakeRunner{}
	client := NewClientWithRunner(runner)

	err := client.Do(context.Background(), "10.0.0.1", 953, Key{Name: "k1", Secret: "s", Algorithm: "hmac-md5"}, CommandReload, "example.com.")
	if !errors.Is(err, ErrAlgorithmRejected) {
		t.Fatalf("expected rejection, got %v", err)
	}
	if runner.lastArgs != nil {
		t.Error("runner should never have been invoked for a rejected algorithm")
	}
}

func TestReloadBuildsExpectedArgsAndCleansUpKeyFile(t *testing.T) {
	runner := &fakeRunner{}
	client := NewClientWithRunner(runner)

	err := client.Reload(context.Background(), "10.0.0.1", 953, Key{Name: "k1", Secret: "topsecret", Algorithm: AlgorithmHMACSHA256}, "example.com.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"-s", "10.0.0.1", "-p", "953", "reload", "example.com."}
	if len(runner.lastArgs) != len(want) {
		t.Fatalf("unexpected args: %v", runner.lastArgs)
	}
	for i := range want {
		if runner.lastArgs[i] != want[i] {
			t.Errorf("arg %d: expected %q, got %q", i, want[i], runner.lastArgs[i])
		}
	}

	if _, err := os.Stat(runner.lastKeyConfigPath); !os.IsNotExist(err) {
		t.Error("expected key config temp file to be removed after the call")
	}
}

func TestNotifyWithoutZoneOmitsZoneArg(t *testing.T) {
	runner := &fakeRunner{}
	client := NewClientWithRunner(runner)

	if err := client.Notify(context.Background(), "10.0.0.1", 953, Key{Name: "k1", Secret: "s", Algorithm: AlgorithmHMACSHA512}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runner.lastArgs[len(runner.lastArgs)-1] != "notify" {
		t.Errorf("expected no trailing zone argument, got %v", runner.lastArgs)
	}
}

func TestDoPropagatesRunnerError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("connection refused")}
	client := NewClientWithRunner(runner)

	err := client.Freeze(context.Background(), "10.0.0.1", 953, Key{Name: "k1", Secret: "s", Algorithm: AlgorithmHMACSHA256}, "example.com.")
	if err == nil {
		t.Fatal("expected the runner's error to propagate")
	}
}
