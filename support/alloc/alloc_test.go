// Copyright (c) 2025 The Propeller Project Authors
//
// Use of this software is governed by the MIT License included in the
// LICENSE file.

package alloc

import (
	"errors"
	"testing"
	"unsafe"
)

func TestHeapAllocator_ProvidesRequestedNumberOfSlots(t *testing.T) {
	allocator := NewHeap[int]()
	for _, n := range []int{1, 2, 17, 1024} {
		buffer, err := allocator.Allocate(n)
		if err != nil {
			t.Fatalf("failed to allocate buffer of %d slots: %v", n, err)
		}
		if got, want := len(buffer), n; got != want {
			t.Errorf("invalid buffer size, got %d, wanted %d", got, want)
		}
		allocator.Free(buffer)
	}
}

func TestHeapAllocator_ZeroSizedRequestYieldsNoBuffer(t *testing.T) {
	allocator := NewHeap[int]()
	buffer, err := allocator.Allocate(0)
	if err != nil {
		t.Fatalf("zero-sized request failed: %v", err)
	}
	if buffer != nil {
		t.Errorf("zero-sized request produced a buffer of %d slots", len(buffer))
	}
	allocator.Free(buffer)
}

func TestLimitedAllocator_EnforcesByteBudget(t *testing.T) {
	slotSize := unsafe.Sizeof(int64(0))
	allocator := NewLimited[int64](NewHeap[int64](), 10*slotSize)

	buffer, err := allocator.Allocate(8)
	if err != nil {
		t.Fatalf("allocation within budget failed: %v", err)
	}
	if _, err := allocator.Allocate(8); !errors.Is(err, ErrOutOfMemory) {
		t.Errorf("allocation beyond budget should fail with %v, got %v", ErrOutOfMemory, err)
	}
	allocator.Free(buffer)
}

func TestLimitedAllocator_FreeingReturnsBudget(t *testing.T) {
	slotSize := unsafe.Sizeof(int64(0))
	allocator := NewLimited[int64](NewHeap[int64](), 8*slotSize)

	buffer, err := allocator.Allocate(8)
	if err != nil {
		t.Fatalf("allocation within budget failed: %v", err)
	}
	allocator.Free(buffer)
	if _, err := allocator.Allocate(8); err != nil {
		t.Errorf("budget was not returned after free: %v", err)
	}
}

func TestLimitedAllocator_ZeroSizedRequestsAreFree(t *testing.T) {
	allocator := NewLimited[int64](NewHeap[int64](), 0)
	if _, err := allocator.Allocate(0); err != nil {
		t.Errorf("zero-sized request should not consume budget: %v", err)
	}
}

func TestCountingAllocator_TracksLiveBuffersAndSlots(t *testing.T) {
	allocator := NewCounting[int](NewHeap[int]())

	first, _ := allocator.Allocate(3)
	second, _ := allocator.Allocate(5)
	if got, want := allocator.LiveBuffers(), 2; got != want {
		t.Errorf("invalid number of live buffers, got %d, wanted %d", got, want)
	}
	if got, want := allocator.LiveSlots(), 8; got != want {
		t.Errorf("invalid number of live slots, got %d, wanted %d", got, want)
	}

	allocator.Free(first)
	allocator.Free(second)
	if got, want := allocator.LiveBuffers(), 0; got != want {
		t.Errorf("invalid number of live buffers, got %d, wanted %d", got, want)
	}
	if got, want := allocator.LiveSlots(), 0; got != want {
		t.Errorf("invalid number of live slots, got %d, wanted %d", got, want)
	}
}

func TestCountingAllocator_ZeroSizedRequestsAreNotCounted(t *testing.T) {
	allocator := NewCounting[int](NewHeap[int]())
	buffer, _ := allocator.Allocate(0)
	if got, want := allocator.LiveBuffers(), 0; got != want {
		t.Errorf("invalid number of live buffers, got %d, wanted %d", got, want)
	}
	allocator.Free(buffer)
	if got, want := allocator.LiveBuffers(), 0; got != want {
		t.Errorf("invalid number of live buffers, got %d, wanted %d", got, want)
	}
}
