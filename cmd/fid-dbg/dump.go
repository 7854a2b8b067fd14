// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"bufio"
	"os"

	"git.lukeshu.com/go/lowmemjson"
	"github.com/davecgh/go-spew/spew"

	"go.bitforge.dev/fid/lib/fid"
	"go.bitforge.dev/fid/lib/jsonutil"
)

type blockStat struct {
	Length uint8  `json:"length"`
	Value  uint32 `json:"cumulative_ones"`
}

type chunkStat struct {
	Length uint32      `json:"length"`
	Value  uint64      `json:"cumulative_ones"`
	Blocks []blockStat `json:"blocks"`
}

type dumpStats struct {
	Length     uint64      `json:"length"`
	ChunkCount uint64      `json:"chunk_count"`
	Chunks     []chunkStat `json:"chunks"`

	// Source echoes the --raw-file header back as a binstruct-marshaled,
	// hex-encoded value, so a dump can be compared against the input
	// that produced it. Unset when the FID was built from --length or
	// --bits.
	Source *jsonutil.Binary[rawFileHeader] `json:"source_header,omitempty"`
}

func collectStats(fd *fid.FID, hdr *rawFileHeader) dumpStats {
	stats := dumpStats{
		Length:     fd.Len(),
		ChunkCount: fd.ChunkCount(),
	}
	for i := uint64(0); i < fd.ChunkCount(); i++ {
		c := fd.Chunk(i)
		stats.Chunks = append(stats.Chunks, chunkStat{
			Length: c.Length(),
			Value:  c.Value(),
			Blocks: collectBlocks(c),
		})
	}
	if hdr != nil {
		stats.Source = &jsonutil.Binary[rawFileHeader]{Val: *hdr}
	}
	return stats
}

// dumpJSON renders fd's chunk/block rank directory, the construction
// parameters an implementer would want when comparing two builds
// (e.g. after a chunk/block-size tuning change).
func dumpJSON(fd *fid.FID, hdr *rawFileHeader) error {
	w := bufio.NewWriter(os.Stdout)
	defer func() { _ = w.Flush() }()
	return lowmemjson.NewEncoder(w).Encode(collectStats(fd, hdr))
}

// dumpSpew is the same directory dump, rendered with spew for a
// terminal rather than a pipeline.
func dumpSpew(fd *fid.FID, hdr *rawFileHeader) error {
	cfg := spew.NewDefaultConfig()
	cfg.DisablePointerAddresses = true
	cfg.Dump(collectStats(fd, hdr))
	return nil
}

func collectBlocks(c fid.Chunk) []blockStat {
	var blocks []blockStat
	remaining := uint64(c.Length())
	for j := uint64(0); remaining > 0; j++ {
		b := c.Block(j)
		blocks = append(blocks, blockStat{Length: b.Length(), Value: b.Value()})
		remaining -= uint64(b.Length())
	}
	return blocks
}
