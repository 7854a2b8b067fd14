// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package fid implements a Fully Indexable Dictionary: a succinct bit
// vector supporting constant-time rank and logarithmic-time select
// over a two-level chunk/block rank directory.
package fid

import "math"

// chunkSize returns the chunk size for a bit vector of n bits:
// max(1, floor(log2 n))^2, clamped to at most 2^16.
func chunkSize(n uint64) uint32 {
	lg2 := uint32(math.Log2(float64(n)))
	sz := lg2 * lg2
	if sz == 0 {
		sz = 1
	}
	if sz > 1<<16 {
		sz = 1 << 16
	}
	return sz
}

// chunkCount returns ceil(n / chunkSize(n)).
func chunkCount(n uint64) uint64 {
	sz := uint64(chunkSize(n))
	cnt := n / sz
	if n%sz != 0 {
		cnt++
	}
	return cnt
}

// blockSize returns the block size for a bit vector of n bits:
// max(1, floor(log2 n) / 2), clamped to at most 32 so that a block's
// bits fit in a uint32 popcount extraction.
func blockSize(n uint64) uint8 {
	lg2 := uint32(math.Log2(float64(n)))
	sz := lg2 / 2
	if sz == 0 {
		sz = 1
	}
	if sz > 32 {
		sz = 32
	}
	return uint8(sz)
}
