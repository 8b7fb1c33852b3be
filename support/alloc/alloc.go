// Copyright (c) 2025 The Propeller Project Authors
//
// Use of this software is governed by the MIT License included in the
// LICENSE file.

// Package alloc defines the memory-allocation boundary between the solver's
// low-level data structures and their host. Structures obtain fixed-length
// element buffers through an Allocator and return them through the same
// instance, enabling hosts to substitute their own memory management for
// the default Go heap.
package alloc

import (
	"fmt"
	"unsafe"

	"github.com/propeller-solver/propeller/common"
	"github.com/propeller-solver/propeller/common/assert"
)

// ErrOutOfMemory is returned by allocators unable to satisfy a request.
// Data structures in this module treat it as fatal: the failed operation is
// aborted and the error is propagated to the host unmodified, without
// retries or partial allocations.
const ErrOutOfMemory = common.ConstError("out of memory")

// Allocator hands out buffers of exactly the requested number of element
// slots. The content of a fresh buffer is unspecified; implementations are
// free to recycle previously freed buffers without clearing them. Callers
// must assign every slot before reading it and must return each buffer
// through Free of the allocator that produced it, exactly once.
//
// Allocators are not required to be safe for concurrent use.
type Allocator[T any] interface {
	// Allocate provides a buffer of n slots, n >= 0. A request for zero
	// slots performs no allocation and yields a nil buffer.
	Allocate(n int) ([]T, error)

	// Free returns a buffer obtained from this allocator. Freeing a nil
	// buffer is a no-op.
	Free(buffer []T)
}

// NewHeap creates an allocator backed by the Go heap. It never fails and
// its Free is a no-op, leaving reclamation to the garbage collector.
func NewHeap[T any]() Allocator[T] {
	return heapAllocator[T]{}
}

type heapAllocator[T any] struct{}

func (heapAllocator[T]) Allocate(n int) ([]T, error) {
	assert.That(n >= 0, "invalid buffer size %d", n)
	if n == 0 {
		return nil, nil
	}
	return make([]T, n), nil
}

func (heapAllocator[T]) Free(buffer []T) {}

// NewLimited creates an allocator enforcing an upper limit on the total
// number of live bytes handed out. Requests exceeding the remaining budget
// fail with ErrOutOfMemory; freed buffers return their bytes to the budget.
func NewLimited[T any](inner Allocator[T], limit uintptr) Allocator[T] {
	return &limitedAllocator[T]{inner: inner, limit: limit}
}

type limitedAllocator[T any] struct {
	inner Allocator[T]
	limit uintptr
	used  uintptr
}

func (a *limitedAllocator[T]) Allocate(n int) ([]T, error) {
	assert.That(n >= 0, "invalid buffer size %d", n)
	size := uintptr(n) * sizeOf[T]()
	if a.used+size > a.limit {
		return nil, fmt.Errorf("%w: requested %d bytes, %d of %d in use", ErrOutOfMemory, size, a.used, a.limit)
	}
	buffer, err := a.inner.Allocate(n)
	if err != nil {
		return nil, err
	}
	a.used += size
	return buffer, nil
}

func (a *limitedAllocator[T]) Free(buffer []T) {
	a.inner.Free(buffer)
	a.used -= uintptr(len(buffer)) * sizeOf[T]()
}

// NewCounting creates an allocator tracking the number of live buffers and
// slots handed out by the wrapped allocator. It is used by tests to verify
// allocation discipline and can serve hosts for accounting purposes.
func NewCounting[T any](inner Allocator[T]) *CountingAllocator[T] {
	return &CountingAllocator[T]{inner: inner}
}

// CountingAllocator wraps an allocator and counts live buffers and slots.
type CountingAllocator[T any] struct {
	inner       Allocator[T]
	liveBuffers int
	liveSlots   int
}

func (a *CountingAllocator[T]) Allocate(n int) ([]T, error) {
	buffer, err := a.inner.Allocate(n)
	if err == nil && buffer != nil {
		a.liveBuffers++
		a.liveSlots += len(buffer)
	}
	return buffer, err
}

func (a *CountingAllocator[T]) Free(buffer []T) {
	a.inner.Free(buffer)
	if buffer != nil {
		a.liveBuffers--
		a.liveSlots -= len(buffer)
	}
}

// LiveBuffers returns the number of allocated and not yet freed buffers.
func (a *CountingAllocator[T]) LiveBuffers() int {
	return a.liveBuffers
}

// LiveSlots returns the total number of element slots in live buffers.
func (a *CountingAllocator[T]) LiveSlots() int {
	return a.liveSlots
}

func sizeOf[T any]() uintptr {
	var value T
	return unsafe.Sizeof(value)
}
