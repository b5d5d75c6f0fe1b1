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

// Package selector evaluates label selectors against instance and record
// label sets, used by the zone reconciler to resolve its working set and
// to detect overlapping zones (§3 invariant 1, §4.3 step 2).
package selector

import (
	"sort"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
)

// Match reports whether lbls satisfies selector. A nil selector matches
// everything, consistent with an empty `selector: {}` in a zone spec
// selecting every instance in its cluster.
func Match(selector *metav1.LabelSelector, lbls map[string]string) (bool, error) {
	if selector == nil {
		return true, nil
	}
	sel, err := metav1.LabelSelectorAsSelector(selector)
	if err != nil {
		return false, err
	}
	return sel.Matches(labels.Set(lbls)), nil
}

// FilterKeys returns, in sorted order, the keys of items whose labels
// satisfy selector.
func FilterKeys(selector *metav1.LabelSelector, items map[string]map[string]string) ([]string, error) {
	var matched []string
	for key, lbls := range items {
		ok, err := Match(selector, lbls)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, key)
		}
	}
	sort.Strings(matched)
	return matched, nil
}

// Overlaps reports whether two selectors, evaluated over the same item set,
// match at least one common key — the non-empty instance-set overlap that
// triggers DuplicateZone per §4.3 step 2.
func Overlaps(a, b *metav1.LabelSelector, items map[string]map[string]string) (bool, error) {
	matchedA, err := FilterKeys(a, items)
	if err != nil {
		return false, err
	}
	if len(matchedA) == 0 {
		return false, nil
	}
	setA := make(map[string]bool, len(matchedA))
	for _, k := range matchedA {
		setA[k] = true
	}

	matchedB, err := FilterKeys(b, items)
	if err != nil {
		return false, err
	}
	for _, k := range matchedB {
		if setA[k] {
			return true, nil
		}
	}
	return false, nil
}
