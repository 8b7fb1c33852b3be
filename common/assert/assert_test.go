// Copyright (c) 2025 The Propeller Project Authors
//
// Use of this software is governed by the MIT License included in the
// LICENSE file.

package assert

import (
	"strings"
	"testing"
)

func TestThat_HoldingConditionDoesNotPanic(t *testing.T) {
	That(true, "must not be reported")
}

func TestThat_ViolationPanics(t *testing.T) {
	if !Enabled {
		t.Skip("contract checks are disabled in this build")
	}
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("violated contract did not panic")
		}
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("unexpected panic value: %v", r)
		}
		if !strings.Contains(msg, "contract violation") {
			t.Errorf("panic message lacks classification: %s", msg)
		}
		if !strings.Contains(msg, "index 12 out of range [0,10)") {
			t.Errorf("panic message lacks details: %s", msg)
		}
	}()
	That(false, "index %d out of range [0,%d)", 12, 10)
}
