// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package fid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.bitforge.dev/fid/lib/bitstring"
)

func build(t *testing.T, s string) *FID {
	t.Helper()
	return FromBitString(bitstring.New(s)).Build(context.Background())
}

func TestAccessRankSelectSeed(t *testing.T) {
	t.Parallel()
	f := build(t, "0100_1")
	require.EqualValues(t, 5, f.Len())

	wantAccess := []bool{false, true, false, false, true}
	for i, want := range wantAccess {
		assert.Equal(t, want, f.Access(uint64(i)), "access(%d)", i)
	}

	wantRank := []uint64{0, 1, 1, 1, 2}
	wantRank0 := []uint64{1, 1, 2, 3, 3}
	for i := range wantRank {
		assert.Equal(t, wantRank[i], f.Rank(uint64(i)), "rank(%d)", i)
		assert.Equal(t, wantRank0[i], f.Rank0(uint64(i)), "rank0(%d)", i)
	}

	wantSelect := []struct {
		ok  bool
		val uint64
	}{
		{true, 0}, {true, 1}, {true, 4}, {false, 0},
	}
	for k, want := range wantSelect {
		got := f.Select(uint64(k))
		assert.Equal(t, want.ok, got.OK, "select(%d).OK", k)
		if want.ok {
			assert.Equal(t, want.val, got.Val, "select(%d).Val", k)
		}
	}

	wantSelect0 := []struct {
		ok  bool
		val uint64
	}{
		{true, 0}, {true, 0}, {true, 2}, {true, 3}, {false, 0},
	}
	for k, want := range wantSelect0 {
		got := f.Select0(uint64(k))
		assert.Equal(t, want.ok, got.OK, "select0(%d).OK", k)
		if want.ok {
			assert.Equal(t, want.val, got.Val, "select0(%d).Val", k)
		}
	}
}

func TestRankBugfixLongVector(t *testing.T) {
	t.Parallel()
	f := build(t, "11110110 11010101 01000101 11101111 10101011 10100101 01100011 00110100 01010101 10010000 01001100 10111111 00110011 00111110 01110101 11011100")
	assert.EqualValues(t, 31, f.Rank(49))
}

func TestRankSelectSeed10010(t *testing.T) {
	t.Parallel()
	f := build(t, "10010")
	assert.EqualValues(t, 2, f.Rank(3))
	got := f.Select(2)
	require.True(t, got.OK)
	assert.EqualValues(t, 3, got.Val)
}

func TestBoundaryFromLength1(t *testing.T) {
	t.Parallel()
	f := FromLength(1).Build(context.Background())
	assert.False(t, f.Access(0))
}

func TestBuildFromEmptyFailure(t *testing.T) {
	t.Parallel()
	require.Panics(t, func() { FromBools(nil).Build(context.Background()) })
	require.Panics(t, func() { FromLength(0).Build(context.Background()) })
}

func TestAccessOutOfRange(t *testing.T) {
	t.Parallel()
	f := FromLength(2).Build(context.Background())
	require.Panics(t, func() { f.Access(2) })
	require.Panics(t, func() { f.Rank(2) })
	require.Panics(t, func() { f.Rank0(2) })
	require.Panics(t, func() { f.Select(3) })
	require.Panics(t, func() { f.Select0(3) })
}

func TestSetBit(t *testing.T) {
	t.Parallel()
	b := FromLength(4)
	b.SetBit(1).SetBit(3)
	f := b.Build(context.Background())
	assert.Equal(t, []bool{false, true, false, true}, collect(f))
}

func TestFromBools(t *testing.T) {
	t.Parallel()
	f := FromBools([]bool{true, false, true, true}).Build(context.Background())
	assert.Equal(t, []bool{true, false, true, true}, collect(f))
}

func TestFromRawBytes(t *testing.T) {
	t.Parallel()
	f := FromRawBytes([]byte{0b1010_0000}, 4).Build(context.Background())
	assert.Equal(t, []bool{true, false, true, false}, collect(f))
}

func TestIteratorFidelity(t *testing.T) {
	t.Parallel()
	f := build(t, "0100_1")
	assert.Equal(t, []bool{false, true, false, false, true}, collect(f))
	// restartable
	assert.Equal(t, []bool{false, true, false, false, true}, collect(f))
}

func TestRankAccessAgreementProperty(t *testing.T) {
	t.Parallel()
	bitsets := []string{
		"1",
		"10010",
		"0100_1",
		"11110110_11010101_01000101_11101111",
		"10100001_01010011_10101100_11100001_10110010_10000110_00010100_01001111",
	}
	for _, s := range bitsets {
		s := s
		t.Run(s, func(t *testing.T) {
			t.Parallel()
			f := build(t, s)
			var want uint64
			for i := uint64(0); i < f.Len(); i++ {
				if f.Access(i) {
					want++
				}
				assert.Equal(t, want, f.Rank(i), "rank(%d)", i)
				assert.Equal(t, i+1-want, f.Rank0(i), "rank0(%d)", i)
			}
		})
	}
}

func TestSelectRankInverseProperty(t *testing.T) {
	t.Parallel()
	f := build(t, "11110110_11010101_01000101_11101111_10101011_10100101")
	for i := uint64(0); i < f.Len(); i++ {
		if f.Access(i) {
			k := f.Rank(i)
			got := f.Select(k)
			require.True(t, got.OK)
			assert.LessOrEqual(t, got.Val, i)
			assert.Equal(t, k, f.Rank(got.Val))
		}
	}
}

func collect(f *FID) []bool {
	var out []bool
	it := f.Iterate()
	for {
		bit, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, bit)
	}
	return out
}
