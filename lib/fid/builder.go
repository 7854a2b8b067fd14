// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package fid

import (
	"context"
	"fmt"

	"go.bitforge.dev/fid/lib/bitstring"
	"go.bitforge.dev/fid/lib/containers"
	"go.bitforge.dev/fid/lib/popcount"
	"go.bitforge.dev/fid/lib/rawbits"
)

type seedKind int

const (
	seedLength seedKind = iota
	seedBitString
	seedBools
	seedRawBytes
)

// FidBuilder accumulates a bit source and a sparse set of bits to
// set to 1, then builds an immutable FID in one pass.
//
// Bits set via SetBit are tracked as an index set rather than folded
// into a growing string representation, so that repeated SetBit calls
// stay linear instead of re-materializing the whole source on every
// call.
//
// A FidBuilder is single-owner: SetBit and Build are not safe to call
// concurrently on the same builder.
type FidBuilder struct {
	kind seedKind

	length          uint64
	bitString       bitstring.BitString
	bools           []bool
	rawBytes        []byte
	rawLastByteBits uint8

	bitsSet containers.Set[uint64]
}

// FromLength prepares a bit vector of length bits, all zero.
func FromLength(length uint64) *FidBuilder {
	return &FidBuilder{kind: seedLength, length: length, bitsSet: containers.Set[uint64]{}}
}

// FromBitString prepares a bit vector from a parsed bit string.
func FromBitString(bs bitstring.BitString) *FidBuilder {
	return &FidBuilder{kind: seedBitString, bitString: bs, length: uint64(bs.Len()), bitsSet: containers.Set[uint64]{}}
}

// FromBools prepares a bit vector from an in-memory boolean sequence.
func FromBools(bits []bool) *FidBuilder {
	return &FidBuilder{kind: seedBools, bools: bits, length: uint64(len(bits)), bitsSet: containers.Set[uint64]{}}
}

// FromRawBytes prepares a bit vector from a pre-built byte buffer,
// per the same big-endian, partial-last-byte layout as
// rawbits.FromRawBytes.
func FromRawBytes(buf []byte, lastByteBits uint8) *FidBuilder {
	if len(buf) == 0 {
		panic("fid: FromRawBytes requires a non-empty buffer")
	}
	if lastByteBits < 1 || lastByteBits > 8 {
		panic(fmt.Sprintf("fid: lastByteBits (= %d) must be in [1, 8]", lastByteBits))
	}
	length := uint64(len(buf)-1)*8 + uint64(lastByteBits)
	return &FidBuilder{
		kind:            seedRawBytes,
		rawBytes:        buf,
		rawLastByteBits: lastByteBits,
		length:          length,
		bitsSet:         containers.Set[uint64]{},
	}
}

// SetBit marks bit i to be set to 1 when the FID is built.
//
// Panics if i is out of range for the vector's length.
func (b *FidBuilder) SetBit(i uint64) *FidBuilder {
	if i >= b.length {
		panic(fmt.Sprintf("fid: SetBit(%d) out of range for length %d", i, b.length))
	}
	b.bitsSet.Insert(i)
	return b
}

// Build constructs an immutable FID in O(N) time.
//
// Panics if the builder's length is 0.
func (b *FidBuilder) Build(ctx context.Context) *FID {
	if b.length == 0 {
		panic("fid: length must be > 0")
	}

	var rbv *rawbits.RawBitVector
	switch b.kind {
	case seedLength:
		rbv = rawbits.New(b.length)
	case seedBitString:
		rbv = rawbits.FromBitString(b.bitString)
	case seedBools:
		rbv = rawbits.FromBools(b.bools)
	case seedRawBytes:
		rbv = rawbits.FromRawBytes(b.rawBytes, b.rawLastByteBits)
	default:
		panic("fid: unreachable seed kind")
	}
	for i := range b.bitsSet {
		rbv.SetBit(i)
	}

	bSize := blockSize(rbv.Len())
	chunks := buildChunks(ctx, rbv, bSize)
	table := popcount.Shared(bSize)

	return &FID{rbv: rbv, chunks: chunks, table: table}
}
