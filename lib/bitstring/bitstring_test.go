// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package bitstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSuccess(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		in, expected string
	}{
		"s1": {"0", "0"},
		"s2": {"1", "1"},
		"s3": {"00", "00"},
		"s4": {"01", "01"},
		"s5": {"10", "10"},
		"s6": {"11", "11"},
		"s7": {"01010101_01011100_1000001", "01010101010111001000001"},
	}
	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, New(tc.in).String())
		})
	}
}

func TestNewFailure(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"empty":       "",
		"space":       " ",
		"leadSpace":   " 0",
		"trailSpace":  "0 ",
		"midSpace":    "1 0",
		"fullwidth0":  "０",
		"fullwidth1":  "１",
		"digit2":      "012",
		"kanji":       "01二",
		"onlySeps":    "_____",
	}
	for name, in := range tests {
		in := in
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			require.Panics(t, func() { New(in) })
		})
	}
}

func TestAt(t *testing.T) {
	t.Parallel()
	bs := New("10_010")
	expected := []bool{true, false, false, true, false}
	for i, want := range expected {
		assert.Equal(t, want, bs.At(i), "index %d", i)
	}
	assert.Equal(t, len(expected), bs.Len())
}
