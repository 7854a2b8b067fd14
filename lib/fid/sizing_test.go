// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package fid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkSize(t *testing.T) {
	t.Parallel()
	testcases := map[string]struct {
		n         uint64
		wantSize  uint32
		wantCount uint64
	}{
		"N=1":   {1, 1, 1},
		"N=4":   {4, 4, 1},
		"N=8":   {8, 9, 1},
		"N=9":   {9, 9, 1},
		"N=10":  {10, 9, 2},
		"N=128": {128, 49, 3},
	}
	for name, tc := range testcases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantSize, chunkSize(tc.n))
			assert.Equal(t, tc.wantCount, chunkCount(tc.n))
		})
	}
}

func TestBlockSize(t *testing.T) {
	t.Parallel()
	testcases := map[string]struct {
		n    uint64
		want uint8
	}{
		"N=1":   {1, 1},
		"N=2":   {2, 1},
		"N=8":   {8, 1},
		"N=128": {128, 3},
	}
	for name, tc := range testcases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, blockSize(tc.n))
		})
	}
}
