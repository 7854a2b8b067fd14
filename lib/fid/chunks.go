// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package fid

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/datawire/dlib/dgroup"
	"github.com/datawire/dlib/dlog"

	"go.bitforge.dev/fid/lib/containers"
	"go.bitforge.dev/fid/lib/rawbits"
	"go.bitforge.dev/fid/lib/textui"
)

// blockScratchPool lends out []uint64 buffers for the per-block
// popcount sweep in buildBlocks, so concurrent chunk-construction
// goroutines don't each allocate and discard their own scratch slice.
var blockScratchPool containers.SlicePool[uint64]

// Block holds the cumulative 1-count within its enclosing chunk, up
// to and including its last bit.
type Block struct {
	value  uint32
	length uint8
}

// Value returns the cumulative within-chunk 1-count through this
// block's last bit.
func (b Block) Value() uint32 {
	return b.value
}

// Length returns the number of bits covered by this block (equal to
// the directory's block size, except possibly for the last block of
// each chunk).
func (b Block) Length() uint8 {
	return b.length
}

// Chunk holds the cumulative 1-count from index 0 through its last
// bit, plus its own block-level sub-directory.
type Chunk struct {
	value  uint64
	length uint32
	blocks []Block
}

// Value returns the cumulative 1-count through this chunk's last bit.
func (c Chunk) Value() uint64 {
	return c.value
}

// Length returns the number of bits covered by this chunk (equal to
// the directory's chunk size, except possibly for the last chunk).
func (c Chunk) Length() uint32 {
	return c.length
}

// Block returns the j-th block of this chunk.
func (c Chunk) Block(j uint64) Block {
	return c.blocks[j]
}

// buildChunks constructs the two-level rank directory for rbv.
//
// Per-chunk popcount and block construction are independent across
// chunks and run concurrently; the chunk-value prefix sum that
// follows is inherently sequential.
func buildChunks(ctx context.Context, rbv *rawbits.RawBitVector, bSize uint8) []Chunk {
	n := rbv.Len()
	cSize := uint64(chunkSize(n))
	cCount := chunkCount(n)

	chunks := make([]Chunk, cCount)

	progressWriter := textui.NewProgress[textui.Portion[uint64]](ctx, dlog.LogLevelInfo, textui.Tunable(1*time.Second))
	defer progressWriter.Done()
	var chunksDone uint64

	grp := dgroup.NewGroup(ctx, dgroup.GroupConfig{})
	for ic := uint64(0); ic < cCount; ic++ {
		ic := ic
		grp.Go(fmt.Sprintf("chunk-%d", ic), func(ctx context.Context) error {
			start := ic * cSize
			length := cSize
			if ic == cCount-1 {
				if rem := n - start; rem < length {
					length = rem
				}
			}
			chunkView := rbv.Slice(start, length)
			chunks[ic] = Chunk{
				value:  chunkView.Popcount(),
				length: uint32(length),
				blocks: buildBlocks(chunkView, bSize),
			}
			progressWriter.Set(textui.Portion[uint64]{N: atomic.AddUint64(&chunksDone, 1), D: cCount})
			return nil
		})
	}
	// Build errors are impossible here (every task always returns nil);
	// the group exists to bound and parallelize the work, not to
	// surface failures.
	_ = grp.Wait()

	// Sequential prefix sum: chunk[i].value goes from "popcount of
	// chunk i alone" to "cumulative popcount through chunk i".
	for i := 1; i < len(chunks); i++ {
		chunks[i].value += chunks[i-1].value
	}
	return chunks
}

func buildBlocks(chunkView rawbits.RawBitView, bSize uint8) []Block {
	n := chunkView.Len()
	size := uint64(bSize)
	count := n / size
	if n%size != 0 {
		count++
	}

	scratch := blockScratchPool.Get(int(count))
	defer blockScratchPool.Put(scratch)

	lengths := make([]uint8, count)
	for ib := uint64(0); ib < count; ib++ {
		start := ib * size
		length := size
		if rem := n - start; rem < length {
			length = rem
		}
		scratch[ib] = chunkView.Slice(start, length).Popcount()
		lengths[ib] = uint8(length)
	}

	blocks := make([]Block, count)
	var running uint32
	for ib := uint64(0); ib < count; ib++ {
		running += uint32(scratch[ib])
		blocks[ib] = Block{value: running, length: lengths[ib]}
	}
	return blocks
}

