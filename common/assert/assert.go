// Copyright (c) 2025 The Propeller Project Authors
//
// Use of this software is governed by the MIT License included in the
// LICENSE file.

// Package assert provides the contract-checking layer used throughout the
// support packages. Precondition violations like out-of-bounds accesses or
// the use of released handles are programming errors, not recoverable
// runtime conditions. They are detected by the checks in this package and
// reported by panicking.
//
// Checks are active by default and compiled out by building with the
// `nochecks` tag, restoring the unchecked performance contract for release
// builds. Code must not rely on checks being present.
package assert

import "fmt"

// That panics with a formatted message if the given contract condition does
// not hold. In builds with the `nochecks` tag the call is a no-op.
func That(condition bool, format string, args ...any) {
	if Enabled && !condition {
		panic(fmt.Sprintf("contract violation: "+format, args...))
	}
}
