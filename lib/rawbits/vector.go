// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package rawbits

import (
	"fmt"

	"go.bitforge.dev/fid/lib/bitstring"
)

// RawBitVector is an owning, packed bit sequence, big-endian within
// each byte. It is mutable only via SetBit, intended for use during
// construction; once built it is treated as immutable.
type RawBitVector struct {
	core
}

var _ fmt.Stringer = RawBitVector{}

// New allocates a zero-filled RawBitVector of bitLen bits.
func New(bitLen uint64) *RawBitVector {
	return &RawBitVector{core: core{
		buf:    make([]byte, bytesForBits(bitLen)),
		offset: 0,
		length: bitLen,
	}}
}

// FromBools packs bits (in order, bits[0] first) into a new
// RawBitVector.
func FromBools(bs []bool) *RawBitVector {
	rbv := New(uint64(len(bs)))
	for i, b := range bs {
		if b {
			rbv.SetBit(uint64(i))
		}
	}
	return rbv
}

// FromBitString packs a bitstring.BitString into a new RawBitVector.
func FromBitString(bs bitstring.BitString) *RawBitVector {
	rbv := New(uint64(bs.Len()))
	for i := 0; i < bs.Len(); i++ {
		if bs.At(i) {
			rbv.SetBit(uint64(i))
		}
	}
	return rbv
}

// FromRawBytes takes ownership of buf as the packed storage for a
// RawBitVector of (len(buf)-1)*8+lastByteBits bits: all bytes but the
// last contribute all 8 bits, the last byte contributes only its
// lastByteBits most-significant bits.
//
// Panics if buf is empty or lastByteBits is not in [1, 8].
func FromRawBytes(buf []byte, lastByteBits uint8) *RawBitVector {
	if len(buf) == 0 {
		panic("rawbits: FromRawBytes requires a non-empty buffer")
	}
	if lastByteBits < 1 || lastByteBits > 8 {
		panic(fmt.Sprintf("rawbits: lastByteBits (= %d) must be in [1, 8]", lastByteBits))
	}
	length := uint64(len(buf)-1)*8 + uint64(lastByteBits)
	return &RawBitVector{core: core{buf: buf, offset: 0, length: length}}
}

// SetBit sets bit i to 1.
//
// Panics if i is out of range.
func (rbv *RawBitVector) SetBit(i uint64) {
	rbv.checkIndex(i)
	abs := rbv.offset + i
	rbv.buf[abs/8] |= 0x80 >> (abs % 8)
}

// Slice returns a zero-copy view of the sub-range [i, i+size).
//
// Panics if size == 0 or i+size > rbv.Len().
func (rbv *RawBitVector) Slice(i, size uint64) RawBitView {
	return RawBitView{core: rbv.core.slice(i, size)}
}

func (rbv RawBitVector) String() string {
	return rbv.core.String()
}
