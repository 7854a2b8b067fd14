// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package louds

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.bitforge.dev/fid/lib/bitstring"
)

const elevenNodeLBS = "10_1110_10_0_1110_0_0_10_110_0_0_0"

func build(t *testing.T, s string) *LOUDS {
	t.Helper()
	return FromBitString(bitstring.New(s)).Build(context.Background())
}

func TestNodeNumToIndex(t *testing.T) {
	t.Parallel()
	l := build(t, elevenNodeLBS)
	want := map[LoudsNodeNum]LoudsIndex{
		1: 0, 2: 2, 3: 3, 4: 4, 5: 6, 6: 9, 7: 10, 8: 11, 9: 15, 10: 17, 11: 18,
	}
	for n, idx := range want {
		assert.Equal(t, idx, l.NodeNumToIndex(n), "node %d", n)
	}
}

func TestNodeNumToIndexFailure(t *testing.T) {
	t.Parallel()
	l := build(t, elevenNodeLBS)
	require.Panics(t, func() { l.NodeNumToIndex(0) })
	require.Panics(t, func() { l.NodeNumToIndex(12) })
}

func TestIndexToNodeNum(t *testing.T) {
	t.Parallel()
	l := build(t, elevenNodeLBS)
	assert.EqualValues(t, 6, l.IndexToNodeNum(9))
	assert.EqualValues(t, 5, l.IndexToNodeNum(6))
}

func TestChildToParent(t *testing.T) {
	t.Parallel()
	l := build(t, elevenNodeLBS)
	assert.EqualValues(t, 2, l.ChildToParent(6))
}

func TestChildToParentRootFailure(t *testing.T) {
	t.Parallel()
	l := build(t, elevenNodeLBS)
	require.Panics(t, func() { l.ChildToParent(0) })
}

func TestParentToChildren(t *testing.T) {
	t.Parallel()
	l := build(t, elevenNodeLBS)
	got := l.ParentToChildren(4)
	want := []LoudsIndex{9, 10, 11}
	assert.Equal(t, want, got)
}

func TestParentToChildrenLeaf(t *testing.T) {
	t.Parallel()
	l := build(t, elevenNodeLBS)
	got := l.ParentToChildren(3)
	assert.Empty(t, got)
}

func TestValidateLBSFailures(t *testing.T) {
	t.Parallel()
	testcases := []string{
		"10_1", // final counts not balanced
		"00",   // does not start with "10"
		"0",
	}
	for _, s := range testcases {
		s := s
		t.Run(s, func(t *testing.T) {
			t.Parallel()
			require.Panics(t, func() { FromBitString(bitstring.New(s)) })
		})
	}
}

func TestLoudsRoundTripProperty(t *testing.T) {
	t.Parallel()
	l := build(t, elevenNodeLBS)
	for n := LoudsNodeNum(1); n <= 11; n++ {
		idx := l.NodeNumToIndex(n)
		assert.Equal(t, n, l.IndexToNodeNum(idx), "node %d round trip", n)
	}
}

func TestLoudsTreeConsistencyProperty(t *testing.T) {
	t.Parallel()
	l := build(t, elevenNodeLBS)
	for n := LoudsNodeNum(1); n <= 11; n++ {
		for _, c := range l.ParentToChildren(n) {
			assert.Equal(t, n, l.ChildToParent(c), "child at index %d of node %d", c, n)
		}
	}
}
