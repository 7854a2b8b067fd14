// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package louds

import (
	"context"
	"fmt"

	"go.bitforge.dev/fid/lib/bitstring"
	"go.bitforge.dev/fid/lib/fid"
)

// LoudsBuilder validates an LBS and builds an immutable LOUDS from
// it in one pass.
type LoudsBuilder struct {
	bs bitstring.BitString
}

// FromBitString validates bs as an LBS and prepares a builder for it.
//
// Panics if bs does not satisfy the LBS invariants (§ package doc):
// it must start with "10"; for every prefix, count('0') must be
// <= count('1')+1; over the whole string, count('0') must equal
// count('1')+1.
func FromBitString(bs bitstring.BitString) *LoudsBuilder {
	validateLBS(bs)
	return &LoudsBuilder{bs: bs}
}

// Build constructs an immutable LOUDS in O(N) time.
func (b *LoudsBuilder) Build(ctx context.Context) *LOUDS {
	lbs := fid.FromBitString(b.bs).Build(ctx)
	return &LOUDS{lbs: lbs}
}

func validateLBS(bs bitstring.BitString) {
	s := bs.String()
	if len(s) < 2 || s[0] != '1' || s[1] != '0' {
		panic(fmt.Sprintf("louds: LBS %q must start with \"10\"", s))
	}

	var cnt0, cnt1 uint64
	for i := 0; i < bs.Len(); i++ {
		if bs.At(i) {
			cnt1++
		} else {
			cnt0++
		}
		if cnt0 > cnt1+1 {
			panic(fmt.Sprintf("louds: LBS %q invalid at index %d: count('0') = %d exceeds count('1') + 1 = %d",
				s, i, cnt0, cnt1+1))
		}
	}
	if cnt0 != cnt1+1 {
		panic(fmt.Sprintf("louds: LBS %q invalid: final count('0') = %d, want count('1') + 1 = %d",
			s, cnt0, cnt1+1))
	}
}
