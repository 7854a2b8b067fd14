// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package bitstring provides a validated textual representation of a
// bit sequence, for tests and for CLI/debug input.
package bitstring

import "fmt"

// BitString is a string known to contain only '0', '1', and visual
// '_' separators, with the separators already stripped.
//
// Bit order follows the text left-to-right: BitString("10") places a
// 1 at index 0.
type BitString struct {
	s string
}

// New parses s, stripping '_' separators and validating that every
// remaining character is '0' or '1'.
//
// Panics if s contains any character other than '0', '1', and '_', or
// if no '0' or '1' remains after stripping separators.
func New(s string) BitString {
	buf := make([]byte, 0, len(s))
	for _, c := range s {
		switch c {
		case '0', '1':
			buf = append(buf, byte(c))
		case '_':
			// visual separator, ignored
		default:
			panic(fmt.Sprintf("bitstring: invalid character %q in %q", c, s))
		}
	}
	if len(buf) == 0 {
		panic(fmt.Sprintf("bitstring: %q contains no '0' or '1'", s))
	}
	return BitString{s: string(buf)}
}

// String returns the stripped, validated "01..." representation.
func (bs BitString) String() string {
	return bs.s
}

// Len returns the number of bits.
func (bs BitString) Len() int {
	return len(bs.s)
}

// At returns whether the bit at index i is set.
//
// Panics if i is out of range.
func (bs BitString) At(i int) bool {
	return bs.s[i] == '1'
}
