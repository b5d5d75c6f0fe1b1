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

// Package condition implements the hierarchical status condition engine
// shared by every reconciler: one encompassing Ready condition plus zero or
// more child conditions whose type string encodes the child's identity.
package condition

import (
	"fmt"

	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/firestoned/bindy/pkg/consts"
)

// Writer accumulates condition mutations across one reconcile and reports
// whether any of them actually changed the list, so callers can skip the
// status Update call entirely when nothing moved (invariant 2: unchanged
// hash, no status write).
type Writer struct {
	changed bool
}

// ChildType builds the type string for a child condition, e.g. "Pod-3" or
// "Bind9Instance-0".
func ChildType(kind string, index int) string {
	return fmt.Sprintf("%s-%d", kind, index)
}

// SetReady sets the single encompassing Ready condition.
func (w *Writer) SetReady(conditions *[]metav1.Condition, status metav1.ConditionStatus, generation int64, reason, message string) {
	if meta.SetStatusCondition(conditions, metav1.Condition{
		Type:               consts.ConditionTypeReady,
		Status:             status,
		ObservedGeneration: generation,
		Reason:             reason,
		Message:            message,
	}) {
		w.changed = true
	}
}

// SetProgressing sets the Progressing condition used by the zone reconciler
// while primaries/secondaries are still being driven.
func (w *Writer) SetProgressing(conditions *[]metav1.Condition, status metav1.ConditionStatus, generation int64, reason, message string) {
	if meta.SetStatusCondition(conditions, metav1.Condition{
		Type:               consts.ConditionTypeProgressing,
		Status:             status,
		ObservedGeneration: generation,
		Reason:             reason,
		Message:            message,
	}) {
		w.changed = true
	}
}

// SetDegraded sets the Degraded condition used by the zone reconciler when
// a primary or secondary phase partially or fully fails.
func (w *Writer) SetDegraded(conditions *[]metav1.Condition, status metav1.ConditionStatus, generation int64, reason, message string) {
	if meta.SetStatusCondition(conditions, metav1.Condition{
		Type:               consts.ConditionTypeDegraded,
		Status:             status,
		ObservedGeneration: generation,
		Reason:             reason,
		Message:            message,
	}) {
		w.changed = true
	}
}

// SetChild sets one child condition keyed by an identity-encoding type
// string, e.g. the Pod-<i> conditions on Bind9Instance or the
// Bind9Instance-<i> conditions on Bind9Cluster.
func (w *Writer) SetChild(conditions *[]metav1.Condition, childType string, status metav1.ConditionStatus, generation int64, reason, message string) {
	if meta.SetStatusCondition(conditions, metav1.Condition{
		Type:               childType,
		Status:             status,
		ObservedGeneration: generation,
		Reason:             reason,
		Message:            message,
	}) {
		w.changed = true
	}
}

// PruneChildren removes any condition whose type is not Ready/Progressing/
// Degraded and not present in keep, so that e.g. a scaled-down instance's
// stale Pod-2 condition disappears instead of lingering forever (boundary
// case: instance scaled 3 -> 0 leaves only Ready).
func (w *Writer) PruneChildren(conditions *[]metav1.Condition, keep map[string]bool) {
	reserved := map[string]bool{
		consts.ConditionTypeReady:       true,
		consts.ConditionTypeProgressing: true,
		consts.ConditionTypeDegraded:    true,
	}
	kept := (*conditions)[:0]
	for _, c := range *conditions {
		if reserved[c.Type] || keep[c.Type] {
			kept = append(kept, c)
			continue
		}
		w.changed = true
	}
	*conditions = kept
}

// Changed reports whether any Set*/Prune call actually mutated the
// condition list.
func (w *Writer) Changed() bool {
	return w.changed
}

// Aggregate derives the encompassing Ready status/reason from a set of
// child readiness booleans, per §4.1's reason vocabulary.
func Aggregate(childReady []bool) (metav1.ConditionStatus, string) {
	if len(childReady) == 0 {
		return metav1.ConditionFalse, consts.ReasonNoChildren
	}
	allReady := true
	anyReady := false
	for _, ready := range childReady {
		if ready {
			anyReady = true
		} else {
			allReady = false
		}
	}
	switch {
	case allReady:
		return metav1.ConditionTrue, consts.ReasonAllReady
	case anyReady:
		return metav1.ConditionFalse, consts.ReasonPartiallyReady
	default:
		return metav1.ConditionFalse, consts.ReasonNotReady
	}
}
