// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package popcount provides a dense lookup table of population counts
// for fixed-width integers, the innermost layer of the FID rank
// directory.
package popcount

import (
	"fmt"
	"math/bits"

	"go.bitforge.dev/fid/lib/containers"
)

// Table is a dense array from an integer of Width bits to its
// population count.
type Table struct {
	width uint8
	table []uint8
}

// New builds a Table for integers of the given bit width.
//
// Panics if width is not in [1, 32]: a table for wider integers would
// need 2^width entries, which stops being buildable well before 64
// (and a shift of 64 against a uint64 wraps to 0, silently building an
// empty table instead of failing loudly), so the usable range is
// capped at 32 — already far past the widths any block/chunk size in
// this package ever selects.
func New(width uint8) *Table {
	if width < 1 || width > 32 {
		panic(fmt.Sprintf("popcount: width (= %d) must be in [1, 32]", width))
	}
	size := uint64(1) << width
	table := make([]uint8, size)
	for target := uint64(0); target < size; target++ {
		table[target] = uint8(bits.OnesCount64(target))
	}
	return &Table{width: width, table: table}
}

// Width returns the bit width this table was built for.
func (t *Table) Width() uint8 {
	return t.width
}

// Popcount returns the population count of target, interpreted as a
// Width()-bit unsigned integer.
//
// Panics if target >= 2^Width().
func (t *Table) Popcount(target uint64) uint8 {
	limit := uint64(1) << t.width
	if target >= limit {
		panic(fmt.Sprintf("popcount: target = %d must be < 2^%d, while table width = %d",
			target, t.width, t.width))
	}
	return t.table[target]
}

// cache memoizes Table construction by width: many FIDs built at
// varying N end up wanting the same handful of small block widths, and
// rebuilding a 2^16-entry table from scratch each time is wasted work.
var cache = containers.NewLRUCache[uint8, *Table](64)

// Shared returns a Table for width, reusing a previously built table
// of the same width when one is cached.
//
// Panics if width is not in [1, 32].
func Shared(width uint8) *Table {
	if t, ok := cache.Get(width); ok {
		return t
	}
	t := New(width)
	cache.Add(width, t)
	return t
}
