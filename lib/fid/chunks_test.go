// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package fid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"go.bitforge.dev/fid/lib/bitstring"
	"go.bitforge.dev/fid/lib/rawbits"
)

func TestBuildChunksCumulativeValues(t *testing.T) {
	t.Parallel()
	testcases := map[string]struct {
		in   string
		want []uint64
	}{
		"N=1_zero":   {"0", []uint64{0}},
		"N=1_one":    {"1", []uint64{1}},
		"N=4":        {"0111", []uint64{3}},
		"N=8":        {"0111_1101", []uint64{6}},
		"N=9":        {"0111_1101_1", []uint64{7}},
		"N=10":       {"0111_1101_11", []uint64{7, 8}},
		"N=2_bits11": {"11", []uint64{1, 2}},
	}
	for name, tc := range testcases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			rbv := rawbits.FromBitString(bitstring.New(tc.in))
			chunks := buildChunks(context.Background(), rbv, blockSize(rbv.Len()))
			got := make([]uint64, len(chunks))
			for i, c := range chunks {
				got[i] = c.value
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBuildChunksLongVectorCumulative(t *testing.T) {
	t.Parallel()
	s := "11110110_11010101_01000101_11101111_10101011_10100101_0" +
		"1100011_00110100_01010101_10010000_01001100_10111111_00" +
		"110011_00111110_01110101_11011100"
	rbv := rawbits.FromBitString(bitstring.New(s))
	chunks := buildChunks(context.Background(), rbv, blockSize(rbv.Len()))
	want := []uint64{30, 53, 72}
	got := make([]uint64, len(chunks))
	for i, c := range chunks {
		got[i] = c.value
	}
	assert.Equal(t, want, got)
}
