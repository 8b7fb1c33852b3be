// Copyright (c) 2025 The Propeller Project Authors
//
// Use of this software is governed by the MIT License included in the
// LICENSE file.

package common

// ConstError is an error type that can be used to define immutable
// error constants.
type ConstError string

func (e ConstError) Error() string {
	return string(e)
}
