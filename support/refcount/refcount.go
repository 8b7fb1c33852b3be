// Copyright (c) 2025 The Propeller Project Authors
//
// Use of this software is governed by the MIT License included in the
// LICENSE file.

// Package refcount provides the shared-ownership protocol used by the
// solver's copy-on-demand data structures. An Object is owned collectively
// by a group of Handles; the object is destroyed when the last handle of
// the group is released. Sharing never duplicates the object -- independent
// copies are only produced on explicit request through CloneDeep.
//
// Reference counts are plain integers. All handles of a group must be
// cloned and released within a single logical thread of control, or under
// synchronization supplied by the host.
package refcount

import (
	"github.com/propeller-solver/propeller/common/assert"
)

//go:generate mockgen -source refcount.go -destination refcount_mocks.go -package refcount

// Object is implemented by values whose lifetime is managed through
// reference counting.
type Object interface {
	// Copy produces a deep, independent copy of the object. It is invoked
	// when a handle requests an unshared instance.
	Copy() (Object, error)

	// Destroy releases all resources held by the object. It is invoked
	// exactly once, when the last handle referencing the object is
	// released. The object must not be used afterwards.
	Destroy()
}

// counted couples an object with the number of handles referencing it.
type counted struct {
	object Object
	count  int
}

// Handle is a value-like reference to a reference-counted Object. The zero
// value is an unbound handle; it can be turned into a bound one exactly
// once, either through Bind or by cloning a bound handle. A bound handle
// never becomes unbound again -- releasing it merely ends its ownership.
type Handle struct {
	ref *counted
}

// MakeHandle creates a handle bound to the given object, forming a new
// ownership group with a reference count of one.
func MakeHandle(object Object) Handle {
	assert.That(object != nil, "handle must not be bound to a nil object")
	return Handle{ref: &counted{object: object, count: 1}}
}

// Valid returns true if this handle is bound to an object.
func (h Handle) Valid() bool {
	return h.ref != nil
}

// Bind performs the one-time initialization of an unbound handle. Binding
// an already-bound handle is a programming error; it is rejected by a
// panic in all build configurations since silently replacing a binding
// would corrupt the reference count of the current group.
func (h *Handle) Bind(object Object) {
	if h.ref != nil {
		panic("refcount: handle is already bound")
	}
	assert.That(object != nil, "handle must not be bound to a nil object")
	h.ref = &counted{object: object, count: 1}
}

// Clone creates a handle sharing this handle's object, incrementing the
// group's reference count. Cloning an unbound handle yields an unbound
// handle.
func (h Handle) Clone() Handle {
	if h.ref == nil {
		return Handle{}
	}
	h.ref.count++
	return Handle{ref: h.ref}
}

// CloneDeep creates a handle bound to an independent copy of this handle's
// object, obtained through the object's Copy hook. The resulting handle
// forms a new ownership group. The handle must be bound.
func (h Handle) CloneDeep() (Handle, error) {
	assert.That(h.ref != nil, "deep copy of an unbound handle")
	object, err := h.ref.object.Copy()
	if err != nil {
		return Handle{}, err
	}
	return MakeHandle(object), nil
}

// Object returns the bound object. The handle must be bound.
func (h Handle) Object() Object {
	assert.That(h.ref != nil, "access to an unbound handle")
	return h.ref.object
}

// Release ends this handle's ownership, decrementing the group's reference
// count. When the count reaches zero the object's Destroy hook is invoked
// and its storage abandoned. Releasing an unbound handle is a no-op. The
// handle is unbound afterwards and must not be used again.
func (h *Handle) Release() {
	if h.ref == nil {
		return
	}
	assert.That(h.ref.count > 0, "release of a handle in a destroyed group")
	h.ref.count--
	if h.ref.count == 0 {
		h.ref.object.Destroy()
		h.ref.object = nil
	}
	h.ref = nil
}
