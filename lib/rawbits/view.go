// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package rawbits

import "fmt"

// RawBitView is a read-only, zero-copy sub-range over a buffer owned
// elsewhere (a RawBitVector, or bytes sourced directly from disk or
// mmap). It shares all bit-extraction logic with RawBitVector via
// core, but exposes no mutator.
type RawBitView struct {
	core
}

var _ fmt.Stringer = RawBitView{}

// NewView wraps an externally-owned byte buffer as a RawBitView of
// length bits starting at bit offset startBit.
//
// Panics if the range [startBit, startBit+length) does not fit
// within buf.
func NewView(buf []byte, startBit, length uint64) RawBitView {
	if length == 0 {
		panic("rawbits: NewView requires length > 0")
	}
	if startBit+length > uint64(len(buf))*8 {
		panic(fmt.Sprintf("rawbits: view range [%d, %d) does not fit in a %d-byte buffer",
			startBit, startBit+length, len(buf)))
	}
	return RawBitView{core: core{buf: buf, offset: startBit, length: length}}
}

// Slice returns a zero-copy view of the sub-range [i, i+size) of v.
//
// Panics if size == 0 or i+size > v.Len().
func (v RawBitView) Slice(i, size uint64) RawBitView {
	return RawBitView{core: v.core.slice(i, size)}
}

func (v RawBitView) String() string {
	return v.core.String()
}
