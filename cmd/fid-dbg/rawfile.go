// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"fmt"
	"io"
	"os"

	"go.bitforge.dev/fid/lib/binstruct"
	"go.bitforge.dev/fid/lib/diskio"
	"go.bitforge.dev/fid/lib/fid"
)

// rawFileHeader is the tiny container fid-dbg expects for --raw-file:
// a single byte naming how many bits of the payload's final byte are
// significant, followed by the big-endian-packed payload itself to
// EOF. This is an input format for this debug tool, not a persisted
// form of the FID's index.
type rawFileHeader struct {
	LastByteBits  uint8 `bin:"off=0,siz=1"`
	binstruct.End `bin:"off=1"`
}

func decodeRawFileHeader(buf []byte) (rawFileHeader, []byte, error) {
	var hdr rawFileHeader
	n, err := binstruct.Unmarshal(buf, &hdr)
	if err != nil {
		return rawFileHeader{}, nil, err
	}
	if len(buf) <= n {
		return rawFileHeader{}, nil, fmt.Errorf("no payload bytes after %d-byte header", n)
	}
	return hdr, buf[n:], nil
}

// rawFileBuilderStreaming reads the same header-plus-payload layout
// as rawFileBuilder, but through lib/diskio's buffered decorator over
// a plain *os.File instead of an mmap, for inputs (such as files
// under active growth) that don't suit mapping. Reads go through
// os.File.ReadAt, so the input must be seekable; pipes are not
// supported.
func rawFileBuilderStreaming(path string) (*fid.FidBuilder, *rawFileHeader, error) {
	raw, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %q: %w", path, err)
	}
	osFile := &diskio.OSFile[int64]{File: raw}
	buffered := diskio.NewBufferedFile[int64](osFile, 4096, 64)
	sf := diskio.NewStatefulFile[int64](buffered)
	defer func() { _ = sf.Close() }()

	lastByteBits, err := sf.ReadByte()
	if err != nil {
		return nil, nil, fmt.Errorf("reading %q: %w", path, err)
	}
	payload, err := io.ReadAll(sf)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %q: %w", path, err)
	}
	if len(payload) == 0 {
		return nil, nil, fmt.Errorf("reading %q: no payload bytes after 1-byte header", path)
	}

	hdr := rawFileHeader{LastByteBits: lastByteBits}
	return fid.FromRawBytes(payload, lastByteBits), &hdr, nil
}
