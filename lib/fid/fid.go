// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package fid

import (
	"fmt"

	"go.bitforge.dev/fid/lib/containers"
	"go.bitforge.dev/fid/lib/popcount"
	"go.bitforge.dev/fid/lib/rawbits"
)

// FID is a Fully Indexable Dictionary: an immutable bit vector
// answering access, rank, and select queries over a two-level
// chunk/block rank directory. Once built, it is safe for concurrent
// read access from multiple goroutines.
type FID struct {
	rbv    *rawbits.RawBitVector
	chunks []Chunk
	table  *popcount.Table
}

// Len returns the number of bits in the vector.
func (f *FID) Len() uint64 {
	return f.rbv.Len()
}

// ChunkCount returns the number of chunks in the rank directory, for
// debug/report tooling that wants to walk the directory structure.
func (f *FID) ChunkCount() uint64 {
	return uint64(len(f.chunks))
}

// Chunk returns the i-th chunk of the rank directory.
//
// Panics if i is out of range.
func (f *FID) Chunk(i uint64) Chunk {
	return f.chunks[i]
}

// Access returns the i-th bit.
//
// Panics if i is out of range.
func (f *FID) Access(i uint64) bool {
	return f.rbv.Access(i)
}

// Rank returns the number of 1-bits in [0, i].
//
// Panics if i is out of range.
func (f *FID) Rank(i uint64) uint64 {
	n := f.rbv.Len()
	if i >= n {
		panic(fmt.Sprintf("fid: Rank(%d) out of range for length %d", i, n))
	}

	cSize := uint64(chunkSize(n))
	bSize := uint64(blockSize(n))

	iChunk := i / cSize
	var rankFromChunk uint64
	if iChunk > 0 {
		rankFromChunk = f.chunks[iChunk-1].value
	}

	chunkRight := f.chunks[iChunk]
	iBlock := (i - iChunk*cSize) / bSize
	var rankFromBlock uint32
	if iBlock > 0 {
		rankFromBlock = chunkRight.blocks[iBlock-1].value
	}

	blockRight := chunkRight.blocks[iBlock]
	blockStart := iChunk*cSize + iBlock*bSize
	blockView := f.rbv.Slice(blockStart, uint64(blockRight.length))
	bitsToUse := i - blockStart + 1
	blockBits := blockView.AsUint32() >> (32 - bitsToUse)
	rankFromTable := f.table.Popcount(uint64(blockBits))

	return rankFromChunk + uint64(rankFromBlock) + uint64(rankFromTable)
}

// Rank0 returns the number of 0-bits in [0, i].
//
// Panics if i is out of range.
func (f *FID) Rank0(i uint64) uint64 {
	return (i + 1) - f.Rank(i)
}

// Select returns the smallest i such that Rank(i) = num, or a
// non-OK Optional if no such i exists.
//
// Panics if num > Len().
func (f *FID) Select(num uint64) containers.Optional[uint64] {
	return f.selectBy(num, f.Rank, f.Access(0))
}

// Select0 returns the smallest i such that Rank0(i) = num, or a
// non-OK Optional if no such i exists.
//
// Panics if num > Len().
func (f *FID) Select0(num uint64) containers.Optional[uint64] {
	return f.selectBy(num, f.Rank0, !f.Access(0))
}

func (f *FID) selectBy(num uint64, rankFn func(uint64) uint64, firstBitMatches bool) containers.Optional[uint64] {
	n := f.rbv.Len()
	if num > n {
		panic(fmt.Sprintf("fid: Select num = %d must be <= length %d", num, n))
	}

	if num == 0 || (num == 1 && firstBitMatches) {
		return containers.Optional[uint64]{OK: true, Val: 0}
	}
	if rankFn(n-1) < num {
		return containers.Optional[uint64]{}
	}

	ng, ok := uint64(0), n-1
	for ok-ng > 1 {
		mid := (ok + ng) / 2
		if rankFn(mid) >= num {
			ok = mid
		} else {
			ng = mid
		}
	}
	return containers.Optional[uint64]{OK: true, Val: ok}
}

// Iterator yields a FID's bits in order, from a fresh starting
// position each time it is constructed.
type Iterator struct {
	f   *FID
	pos uint64
}

// Iterate returns a fresh, restartable Iterator over f.
func (f *FID) Iterate() *Iterator {
	return &Iterator{f: f}
}

// Next returns the next bit and true, or false once the iterator is
// exhausted.
func (it *Iterator) Next() (bool, bool) {
	if it.pos >= it.f.Len() {
		return false, false
	}
	bit := it.f.Access(it.pos)
	it.pos++
	return bit, true
}
