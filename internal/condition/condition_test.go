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

package condition

import (
	"testing"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/firestoned/bindy/pkg/consts"
)

func TestSetReadyFirstWriteChanges(t *testing.T) {
	var conditions []metav1.Condition
	w := &Writer{}

	w.SetReady(&conditions, metav1.ConditionTrue, 1, consts.ReasonAllReady, "all ready")

	if !w.Changed() {
		t.Fatal("first SetReady on an empty list should report Changed")
	}
	if len(conditions) != 1 || conditions[0].Type != consts.ConditionTypeReady {
		t.Fatalf("expected a single Ready condition, got %+v", conditions)
	}
}

func TestSetReadyRepeatedCallIsNoop(t *testing.T) {
	var conditions []metav1.Condition
	w1 := &Writer{}
	w1.SetReady(&conditions, metav1.ConditionTrue, 1, consts.ReasonAllReady, "all ready")

	w2 := &Writer{}
	w2.SetReady(&conditions, metav1.ConditionTrue, 1, consts.ReasonAllReady, "all ready")

	if w2.Changed() {
		t.Error("repeating an identical SetReady call should not report Changed")
	}
}

func TestSetReadyReasonChangeIsDetected(t *testing.T) {
	var conditions []metav1.Condition
	w1 := &Writer{}
	w1.SetReady(&conditions, metav1.ConditionFalse, 1, consts.ReasonProgressing, "working")

	w2 := &Writer{}
	w2.SetReady(&conditions, metav1.ConditionFalse, 1, consts.ReasonNotReady, "still working")

	if !w2.Changed() {
		t.Error("a reason/message change should report Changed even when status is unchanged")
	}
}

func TestChildTypeEncoding(t *testing.T) {
	if got := ChildType("Pod", 3); got != "Pod-3" {
		t.Errorf("ChildType(Pod, 3) = %s, want Pod-3", got)
	}
	if got := ChildType("Bind9Instance", 0); got != "Bind9Instance-0" {
		t.Errorf("ChildType(Bind9Instance, 0) = %s, want Bind9Instance-0", got)
	}
}

func TestPruneChildrenDropsStaleScaleDownEntries(t *testing.T) {
	conditions := []metav1.Condition{
		{Type: consts.ConditionTypeReady, Status: metav1.ConditionTrue},
		{Type: "Pod-0", Status: metav1.ConditionTrue},
		{Type: "Pod-1", Status: metav1.ConditionTrue},
		{Type: "Pod-2", Status: metav1.ConditionTrue},
	}

	w := &Writer{}
	w.PruneChildren(&conditions, map[string]bool{"Pod-0": true})

	if len(conditions) != 2 {
		t.Fatalf("expected Ready + Pod-0 to survive, got %+v", conditions)
	}
	if !w.Changed() {
		t.Error("pruning stale children should report Changed")
	}
}

func TestAggregate(t *testing.T) {
	cases := []struct {
		name       string
		childReady []bool
		wantStatus metav1.ConditionStatus
		wantReason string
	}{
		{"no children", nil, metav1.ConditionFalse, consts.ReasonNoChildren},
		{"all ready", []bool{true, true}, metav1.ConditionTrue, consts.ReasonAllReady},
		{"partially ready", []bool{true, false}, metav1.ConditionFalse, consts.ReasonPartiallyReady},
		{"none ready", []bool{false, false}, metav1.ConditionFalse, consts.ReasonNotReady},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, reason := Aggregate(tc.childReady)
			if status != tc.wantStatus || reason != tc.wantReason {
				t.Errorf("Aggregate(%v) = (%s, %s), want (%s, %s)", tc.childReady, status, reason, tc.wantStatus, tc.wantReason)
			}
		})
	}
}
