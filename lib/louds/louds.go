// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package louds implements LOUDS (Level-Order Unary Degree Sequence)
// tree navigation over an LBS (LOUDS Bit String) encoded as an FID.
//
// An LBS encodes an ordered tree in level order: for each node in
// breadth-first order, emit a '1' for each child followed by a single
// terminating '0'. A virtual super-root prefix "10" is prepended so
// node numbering starts at 1 for the real root, whose own bit sits at
// LBS index 0.
package louds

import (
	"fmt"

	"go.bitforge.dev/fid/lib/fid"
)

// LoudsNodeNum identifies a tree node in level order; the root is 1.
type LoudsNodeNum uint64

// LoudsIndex is the position inside the LBS where a node's own '1'
// bit sits.
type LoudsIndex uint64

// LOUDS is an immutable tree built over an LBS.
type LOUDS struct {
	lbs *fid.FID
}

// NodeNumToIndex returns the LBS position of node n's own bit.
//
// Panics if n is 0 or does not identify a node in this tree.
func (l *LOUDS) NodeNumToIndex(n LoudsNodeNum) LoudsIndex {
	if n == 0 {
		panic("louds: node number must be >= 1")
	}
	idx := l.lbs.Select(uint64(n))
	if !idx.OK {
		panic(fmt.Sprintf("louds: node %d does not exist in this tree", n))
	}
	return LoudsIndex(idx.Val)
}

// IndexToNodeNum returns the node number whose own bit sits at idx.
//
// Panics if lbs[idx] is not '1'.
func (l *LOUDS) IndexToNodeNum(idx LoudsIndex) LoudsNodeNum {
	l.validateIndex(idx)
	return LoudsNodeNum(l.lbs.Rank(uint64(idx)))
}

// ChildToParent returns the node number of idx's parent.
//
// Panics if lbs[idx] is not '1', or idx is 0 (the root has no
// parent).
func (l *LOUDS) ChildToParent(idx LoudsIndex) LoudsNodeNum {
	l.validateIndex(idx)
	if idx == 0 {
		panic("louds: node #1 is the root and has no parent")
	}
	return LoudsNodeNum(l.lbs.Rank0(uint64(idx)))
}

// ParentToChildren returns the indices of n's children, in
// left-to-right order, possibly empty.
//
// Panics if n does not identify a node in this tree.
func (l *LOUDS) ParentToChildren(n LoudsNodeNum) []LoudsIndex {
	if n == 0 {
		panic("louds: node number must be >= 1")
	}
	if nodeIdx := l.lbs.Select(uint64(n)); !nodeIdx.OK {
		panic(fmt.Sprintf("louds: node %d does not exist in this tree", n))
	}
	start := l.lbs.Select0(uint64(n))
	if !start.OK {
		panic(fmt.Sprintf("louds: node %d does not exist in this tree", n))
	}

	var children []LoudsIndex
	for i := start.Val + 1; l.lbs.Access(i); i++ {
		children = append(children, LoudsIndex(i))
	}
	return children
}

func (l *LOUDS) validateIndex(idx LoudsIndex) {
	if uint64(idx) >= l.lbs.Len() || !l.lbs.Access(uint64(idx)) {
		panic(fmt.Sprintf("louds: LBS[%d] must be '1'", idx))
	}
}
