// Copyright (c) 2025 The Propeller Project Authors
//
// Use of this software is governed by the MIT License included in the
// LICENSE file.

package common

// Releaser is an interface for types owning resources that have to be
// released after use to facilitate resource re-utilization.
type Releaser interface {
	// Release releases bound resources for re-use. The object this function
	// is called on becomes invalid for any future operation afterwards.
	Release()
}

// MemoryFootprintProvider is implemented by solver structures capable of
// reporting their memory usage.
type MemoryFootprintProvider interface {
	GetMemoryFootprint() *MemoryFootprint
}
