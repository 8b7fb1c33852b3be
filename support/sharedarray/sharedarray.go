// Copyright (c) 2025 The Propeller Project Authors
//
// Use of this software is governed by the MIT License included in the
// LICENSE file.

// Package sharedarray provides a fixed-length array whose storage can be
// shared among several owners. Sharing is implemented by reference
// counting: cloning an Array yields a second view on the same elements,
// and the storage is released once the last view is gone. Mutations are
// visible through every view sharing the storage. Views needing values of
// their own must request an independent copy explicitly through Copy --
// there is no automatic copy-on-write, callers may rely on observing
// shared mutations.
//
// Arrays follow the single-threaded ownership model of the solver kernel:
// no locking, no atomic counting. Hosts running multiple threads must
// supply their own synchronization.
package sharedarray

import (
	"unsafe"

	"github.com/propeller-solver/propeller/common"
	"github.com/propeller-solver/propeller/common/assert"
	"github.com/propeller-solver/propeller/support/alloc"
	"github.com/propeller-solver/propeller/support/refcount"
)

// storage is the reference-counted backing store of an Array: a buffer of
// exactly length-many elements plus the allocator needed to return it.
// The buffer length is fixed for the storage's entire lifetime.
type storage[T any] struct {
	elements  []T
	allocator alloc.Allocator[T]
}

func newStorage[T any](allocator alloc.Allocator[T], n int) (*storage[T], error) {
	assert.That(n >= 0, "invalid element count %d", n)
	var elements []T
	if n > 0 {
		var err error
		elements, err = allocator.Allocate(n)
		if err != nil {
			return nil, err
		}
	}
	return &storage[T]{elements: elements, allocator: allocator}, nil
}

// Copy produces an independent storage of identical length with every
// element value-copied from this one.
func (s *storage[T]) Copy() (refcount.Object, error) {
	res, err := newStorage[T](s.allocator, len(s.elements))
	if err != nil {
		return nil, err
	}
	for i := len(s.elements) - 1; i >= 0; i-- {
		res.elements[i] = s.elements[i]
	}
	return res, nil
}

// Destroy clears all element slots and returns the buffer to the
// allocator. Slots are cleared so recycled buffers do not retain
// references to the elements they once held.
func (s *storage[T]) Destroy() {
	if len(s.elements) == 0 {
		return
	}
	var zero T
	for i := len(s.elements) - 1; i >= 0; i-- {
		s.elements[i] = zero
	}
	s.allocator.Free(s.elements)
	s.elements = nil
}

func (s *storage[T]) at(i int) *T {
	assert.That(0 <= i && i < len(s.elements), "index %d out of range [0,%d)", i, len(s.elements))
	return &s.elements[i]
}

func (s *storage[T]) length() int {
	return len(s.elements)
}

func (s *storage[T]) GetMemoryFootprint() *common.MemoryFootprint {
	var value T
	size := unsafe.Sizeof(*s) + uintptr(len(s.elements))*unsafe.Sizeof(value)
	return common.NewMemoryFootprint(size)
}

// Array is a view on a reference-counted, fixed-length element buffer.
// The zero value is an uninitialized array supporting only Init (once) and
// cloning-from; all other operations require an initialized array. Arrays
// are cheap to pass by value, but each copy that is Clone()d or Release()d
// counts as an owner of its own.
type Array[T any] struct {
	handle refcount.Handle
}

// New creates an array of n elements backed by the Go heap. The element
// values are unspecified; callers must assign before reading.
func New[T any](n int) (Array[T], error) {
	return NewUsing(alloc.NewHeap[T](), n)
}

// NewUsing creates an array of n elements drawing its storage from the
// given allocator. Allocation failures are passed through; the failed
// array must not be used.
func NewUsing[T any](allocator alloc.Allocator[T], n int) (Array[T], error) {
	store, err := newStorage(allocator, n)
	if err != nil {
		return Array[T]{}, err
	}
	return Array[T]{handle: refcount.MakeHandle(store)}, nil
}

// Valid returns true if this array has been initialized.
func (a Array[T]) Valid() bool {
	return a.handle.Valid()
}

// Init performs the one-time initialization of an uninitialized array,
// binding it to a fresh heap-backed storage of n elements.
func (a *Array[T]) Init(n int) error {
	return a.InitUsing(alloc.NewHeap[T](), n)
}

// InitUsing performs the one-time initialization of an uninitialized
// array, drawing storage from the given allocator. Initializing an
// already-initialized array is a programming error, rejected by a panic in
// all build configurations; the existing binding is left untouched. On
// allocation failure the array remains uninitialized.
func (a *Array[T]) InitUsing(allocator alloc.Allocator[T], n int) error {
	if a.handle.Valid() {
		panic("sharedarray: array has already been initialized")
	}
	store, err := newStorage(allocator, n)
	if err != nil {
		return err
	}
	a.handle.Bind(store)
	return nil
}

// Clone creates an array sharing this array's storage. No elements are
// copied; mutations through either array are visible through the other.
// Cloning an uninitialized array yields an uninitialized array.
func (a Array[T]) Clone() Array[T] {
	return Array[T]{handle: a.handle.Clone()}
}

// Copy creates an array backed by an independent, value-copied duplicate
// of this array's storage, drawn from the same allocator. This is the only
// way to break sharing. The array must be initialized.
func (a Array[T]) Copy() (Array[T], error) {
	handle, err := a.handle.CloneDeep()
	if err != nil {
		return Array[T]{}, err
	}
	return Array[T]{handle: handle}, nil
}

// Get returns the value of the element at position i.
func (a Array[T]) Get(i int) T {
	return *a.storage().at(i)
}

// Ref returns a pointer to the element at position i, valid as long as the
// storage is alive. Writes through the pointer are visible through every
// array sharing the storage.
func (a Array[T]) Ref(i int) *T {
	return a.storage().at(i)
}

// Set assigns the value of the element at position i.
func (a Array[T]) Set(i int, value T) {
	*a.storage().at(i) = value
}

// Length returns the number of elements, fixed since initialization.
func (a Array[T]) Length() int {
	return a.storage().length()
}

// Release ends this array's ownership of its storage. The storage of an
// ownership group is destroyed and returned to its allocator when the last
// array of the group is released. Releasing an uninitialized array is a
// no-op. The array must not be used after its release.
func (a *Array[T]) Release() {
	a.handle.Release()
}

// GetMemoryFootprint provides the memory consumed by this array view and
// its storage. Storage shared by several views is included in the report
// of each of them.
func (a Array[T]) GetMemoryFootprint() *common.MemoryFootprint {
	res := common.NewMemoryFootprint(unsafe.Sizeof(a))
	if a.handle.Valid() {
		res.AddChild("storage", a.storage().GetMemoryFootprint())
	}
	return res
}

func (a Array[T]) storage() *storage[T] {
	return a.handle.Object().(*storage[T])
}

var (
	_ refcount.Object                = (*storage[int])(nil)
	_ common.Releaser                = (*Array[int])(nil)
	_ common.MemoryFootprintProvider = Array[int]{}
)
