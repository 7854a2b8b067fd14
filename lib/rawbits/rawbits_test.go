// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package rawbits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.bitforge.dev/fid/lib/bitstring"
)

func TestFromBitStringAccess(t *testing.T) {
	t.Parallel()
	rbv := FromBitString(bitstring.New("01_1010_00"))
	require.EqualValues(t, 8, rbv.Len())
	want := []bool{false, true, true, false, true, false, false, false}
	for i, w := range want {
		assert.Equal(t, w, rbv.Access(uint64(i)), "bit %d", i)
	}
	assert.Equal(t, "01101000", rbv.String())
}

func TestAccessOutOfRange(t *testing.T) {
	t.Parallel()
	rbv := New(4)
	require.Panics(t, func() { rbv.Access(4) })
}

func TestSetBit(t *testing.T) {
	t.Parallel()
	rbv := New(8)
	rbv.SetBit(0)
	rbv.SetBit(7)
	assert.Equal(t, "10000001", rbv.String())
}

func TestPopcountWholeVector(t *testing.T) {
	t.Parallel()
	rbv := FromBitString(bitstring.New("0100_1"))
	assert.EqualValues(t, 2, rbv.Popcount())
}

func TestPopcountAcrossByteBoundary(t *testing.T) {
	t.Parallel()
	// 20 one-bits spanning three bytes, with a view that straddles
	// non-byte-aligned boundaries on both ends.
	rbv := FromBitString(bitstring.New("1111_1111_1111_1111_1111_0000"))
	view := rbv.Slice(2, 20)
	assert.EqualValues(t, 20, view.Len())
	assert.EqualValues(t, 18, view.Popcount())
}

func TestSliceIsZeroCopy(t *testing.T) {
	t.Parallel()
	rbv := FromBitString(bitstring.New("0000_0000"))
	view := rbv.Slice(2, 4)
	assert.False(t, view.Access(0))
	rbv.SetBit(2)
	assert.True(t, view.Access(0), "view over rbv's buffer should observe later SetBit calls")
}

func TestSliceBounds(t *testing.T) {
	t.Parallel()
	rbv := New(8)
	require.Panics(t, func() { rbv.Slice(0, 0) })
	require.Panics(t, func() { rbv.Slice(4, 5) })
	require.NotPanics(t, func() { rbv.Slice(4, 4) })
}

func TestAsUint32(t *testing.T) {
	t.Parallel()
	rbv := FromBitString(bitstring.New("1010_0000_0000_0000_0000_0000_0000_0000"))
	assert.Equal(t, uint32(0xA0000000), rbv.AsUint32())

	short := FromBitString(bitstring.New("101"))
	assert.Equal(t, uint32(0b101)<<29, short.AsUint32())
}

func TestAsUint32TooLong(t *testing.T) {
	t.Parallel()
	rbv := New(33)
	require.Panics(t, func() { rbv.AsUint32() })
}

func TestFromRawBytes(t *testing.T) {
	t.Parallel()
	rbv := FromRawBytes([]byte{0b1010_0000, 0b1100_0000}, 3)
	require.EqualValues(t, 11, rbv.Len())
	assert.Equal(t, "10100000110", rbv.String())
}

func TestFromRawBytesFailure(t *testing.T) {
	t.Parallel()
	require.Panics(t, func() { FromRawBytes(nil, 1) })
	require.Panics(t, func() { FromRawBytes([]byte{0}, 0) })
	require.Panics(t, func() { FromRawBytes([]byte{0}, 9) })
}

func TestNewView(t *testing.T) {
	t.Parallel()
	buf := []byte{0b0110_1100}
	view := NewView(buf, 1, 5)
	assert.Equal(t, "11011", view.String())
	assert.Panics(t, func() { NewView(buf, 4, 5) })
}

func TestViewSliceChaining(t *testing.T) {
	t.Parallel()
	rbv := FromBitString(bitstring.New("1100_1010"))
	v1 := rbv.Slice(1, 6)
	v2 := v1.Slice(1, 3)
	assert.Equal(t, "100101", v1.String())
	assert.Equal(t, "001", v2.String())
}
