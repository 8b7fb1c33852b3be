// Copyright (c) 2025 The Propeller Project Authors
//
// Use of this software is governed by the MIT License included in the
// LICENSE file.

//go:build !nochecks

package assert

// Enabled reports whether contract checks are active in this build.
const Enabled = true
