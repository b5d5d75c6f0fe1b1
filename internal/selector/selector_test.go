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

package selector

import (
	"testing"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func TestMatchNilSelectorMatchesEverything(t *testing.T) {
	ok, err := Match(nil, map[string]string{"role": "primary"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("nil selector should match any label set")
	}
}

func TestMatchByLabel(t *testing.T) {
	sel := &metav1.LabelSelector{MatchLabels: map[string]string{"role": "primary"}}

	ok, err := Match(sel, map[string]string{"role": "primary"})
	if err != nil || !ok {
		t.Errorf("expected match, got ok=%v err=%v", ok, err)
	}

	ok, err = Match(sel, map[string]string{"role": "secondary"})
	if err != nil || ok {
		t.Errorf("expected no match, got ok=%v err=%v", ok, err)
	}
}

func TestFilterKeysSortedOutput(t *testing.T) {
	items := map[string]map[string]string{
		"c1-1": {"role": "primary"},
		"c1-0": {"role": "primary"},
		"c1-2": {"role": "secondary"},
	}
	sel := &metav1.LabelSelector{MatchLabels: map[string]string{"role": "primary"}}

	got, err := FilterKeys(sel, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"c1-0", "c1-1"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("FilterKeys = %v, want %v", got, want)
	}
}

func TestOverlapsDetectsSharedInstance(t *testing.T) {
	items := map[string]map[string]string{
		"c1-0": {"role": "primary"},
		"c1-1": {"role": "secondary"},
	}
	all := &metav1.LabelSelector{}
	primaryOnly := &metav1.LabelSelector{MatchLabels: map[string]string{"role": "primary"}}

	overlap, err := Overlaps(all, primaryOnly, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !overlap {
		t.Error("expected overlap between a selector matching everything and a narrower one")
	}
}

func TestOverlapsFalseForDisjointSelectors(t *testing.T) {
	items := map[string]map[string]string{
		"c1-0": {"role": "primary"},
		"c1-1": {"role": "secondary"},
	}
	primaryOnly := &metav1.LabelSelector{MatchLabels: map[string]string{"role": "primary"}}
	secondaryOnly := &metav1.LabelSelector{MatchLabels: map[string]string{"role": "secondary"}}

	overlap, err := Overlaps(primaryOnly, secondaryOnly, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overlap {
		t.Error("disjoint selectors should not overlap")
	}
}
