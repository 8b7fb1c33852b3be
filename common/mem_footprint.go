// Copyright (c) 2025 The Propeller Project Authors
//
// Use of this software is governed by the MIT License included in the
// LICENSE file.

package common

import (
	"fmt"
	"sort"
	"strings"
)

// MemoryFootprint describes the memory consumption of a solver structure.
type MemoryFootprint struct {
	value    uintptr
	children map[string]*MemoryFootprint
}

// NewMemoryFootprint creates a new MemoryFootprint instance covering the
// given amount of bytes, not including subcomponents.
func NewMemoryFootprint(value uintptr) *MemoryFootprint {
	return &MemoryFootprint{
		value:    value,
		children: make(map[string]*MemoryFootprint),
	}
}

// AddChild attaches the MemoryFootprint of a subcomponent.
func (mf *MemoryFootprint) AddChild(name string, child *MemoryFootprint) {
	mf.children[name] = child
}

// Value provides the amount of bytes consumed by the structure itself,
// excluding its subcomponents.
func (mf *MemoryFootprint) Value() uintptr {
	return mf.value
}

// Total provides the amount of bytes consumed by the structure including
// all its subcomponents. Structures referenced more than once, for
// instance through shared ownership, are counted only once.
func (mf *MemoryFootprint) Total() uintptr {
	visited := make(map[*MemoryFootprint]bool)
	return mf.total(visited)
}

func (mf *MemoryFootprint) total(visited map[*MemoryFootprint]bool) uintptr {
	if mf == nil || visited[mf] {
		return 0
	}
	visited[mf] = true
	sum := mf.value
	for _, child := range mf.children {
		sum += child.total(visited)
	}
	return sum
}

func (mf *MemoryFootprint) String() string {
	var sb strings.Builder
	mf.describe(&sb, ".")
	return sb.String()
}

func (mf *MemoryFootprint) describe(sb *strings.Builder, path string) {
	if mf == nil {
		return
	}
	sb.WriteString(memoryAmountToString(mf.Total()))
	sb.WriteRune(' ')
	sb.WriteString(path)
	sb.WriteRune('\n')
	names := make([]string, 0, len(mf.children))
	for name := range mf.children {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		mf.children[name].describe(sb, path+"/"+name)
	}
}

func memoryAmountToString(bytes uintptr) string {
	const unit = 1024
	const prefixes = "KMGTPE"
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp+1 < len(prefixes); n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), prefixes[exp])
}
