// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Command fid-dbg builds a FID from a length, a bit string, or a raw
// file, then runs a single access/rank/select query against it or
// dumps its chunk/block directory as JSON.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/datawire/dlib/dgroup"
	"github.com/datawire/dlib/dlog"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"go.bitforge.dev/fid/lib/bitstring"
	"go.bitforge.dev/fid/lib/containers"
	"go.bitforge.dev/fid/lib/diskio"
	"go.bitforge.dev/fid/lib/fid"
	"go.bitforge.dev/fid/lib/profile"
	"go.bitforge.dev/fid/lib/textui"
)

func main() {
	logger := logrus.New()
	ctx := dlog.WithLogger(context.Background(), dlog.WrapLogrus(logger))

	argparser := newCommand()

	grp := dgroup.NewGroup(ctx, dgroup.GroupConfig{
		EnableSignalHandling: true,
	})
	grp.Go("main", func(ctx context.Context) error {
		argparser.SetContext(ctx)
		return argparser.Execute()
	})
	if err := grp.Wait(); err != nil {
		textui.Fprintf(os.Stderr, "%v: error: %v\n", argparser.Name(), err)
		os.Exit(1)
	}
}

type flags struct {
	length  uint64
	bits    string
	rawFile string
	noMmap  bool

	access   int64
	rank     int64
	rank0    int64
	selectN  int64
	select0N int64

	dumpJSON bool
	dumpSpew bool

	sourceHeader *rawFileHeader
}

func newCommand() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "fid-dbg",
		Short: "Build a fully-indexable bit vector and run a query against it",

		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	flagset := cmd.Flags()
	flagset.Uint64Var(&f.length, "length", 0, "build an all-zero vector of `N` bits")
	flagset.StringVar(&f.bits, "bits", "", "build a vector from a `01..._` bit string")
	flagset.StringVar(&f.rawFile, "raw-file", "", "build a vector from the raw payload in `path`")
	_ = cmd.MarkFlagFilename("raw-file")
	flagset.BoolVar(&f.noMmap, "no-mmap", false, "stream --raw-file through a buffered reader instead of mmap (for non-regular files)")

	flagset.Int64Var(&f.access, "access", -1, "query Access(`I`)")
	flagset.Int64Var(&f.rank, "rank", -1, "query Rank(`I`)")
	flagset.Int64Var(&f.rank0, "rank0", -1, "query Rank0(`I`)")
	flagset.Int64Var(&f.selectN, "select", -1, "query Select(`K`)")
	flagset.Int64Var(&f.select0N, "select0", -1, "query Select0(`K`)")
	flagset.BoolVar(&f.dumpJSON, "dump-json", false, "dump chunk/block directory statistics as JSON")
	flagset.BoolVar(&f.dumpSpew, "dump-spew", false, "dump chunk/block directory statistics with go-spew")

	stopProfiling := profile.AddProfileFlags(flagset, "")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		defer func() {
			_ = stopProfiling()
		}()
		return run(cmd.Context(), &f)
	}

	return cmd
}

func run(ctx context.Context, f *flags) error {
	builder, err := seedBuilder(f)
	if err != nil {
		return err
	}
	query, err := queryOp(f)
	if err != nil {
		return err
	}

	dlog.Infof(ctx, "building FID...")
	fd := builder.Build(ctx)
	dlog.Infof(ctx, "built FID of %v bits in %v chunks", textui.Humanized(fd.Len()), textui.Humanized(fd.ChunkCount()))

	return query(fd)
}

func seedBuilder(f *flags) (*fid.FidBuilder, error) {
	n := 0
	if f.length > 0 {
		n++
	}
	if f.bits != "" {
		n++
	}
	if f.rawFile != "" {
		n++
	}
	switch {
	case n == 0:
		return nil, fmt.Errorf("exactly one of --length, --bits, --raw-file is required")
	case n > 1:
		return nil, fmt.Errorf("only one of --length, --bits, --raw-file may be given")
	}

	switch {
	case f.length > 0:
		return fid.FromLength(f.length), nil
	case f.bits != "":
		return fid.FromBitString(bitstring.New(f.bits)), nil
	case f.noMmap:
		builder, hdr, err := rawFileBuilderStreaming(f.rawFile)
		f.sourceHeader = hdr
		return builder, err
	default:
		builder, hdr, err := rawFileBuilder(f.rawFile)
		f.sourceHeader = hdr
		return builder, err
	}
}

func rawFileBuilder(path string) (*fid.FidBuilder, *rawFileHeader, error) {
	mf, err := diskio.OpenMmap[int64](path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer func() { _ = mf.Close() }()

	hdr, payload, err := decodeRawFileHeader(mf.Bytes())
	if err != nil {
		return nil, nil, fmt.Errorf("reading %q: %w", path, err)
	}
	// Copy the payload out before Close() unmaps it; FromRawBytes
	// takes ownership of the buffer it's given.
	owned := make([]byte, len(payload))
	copy(owned, payload)

	return fid.FromRawBytes(owned, hdr.LastByteBits), &hdr, nil
}

func queryOp(f *flags) (func(*fid.FID) error, error) {
	n := 0
	var op func(*fid.FID) error
	set := func(fn func(*fid.FID) error) {
		n++
		op = fn
	}

	if f.access >= 0 {
		i := uint64(f.access)
		set(func(fd *fid.FID) error {
			fmt.Println(fd.Access(i))
			return nil
		})
	}
	if f.rank >= 0 {
		i := uint64(f.rank)
		set(func(fd *fid.FID) error {
			fmt.Println(fd.Rank(i))
			return nil
		})
	}
	if f.rank0 >= 0 {
		i := uint64(f.rank0)
		set(func(fd *fid.FID) error {
			fmt.Println(fd.Rank0(i))
			return nil
		})
	}
	if f.selectN >= 0 {
		k := uint64(f.selectN)
		set(func(fd *fid.FID) error {
			printOptional(fd.Select(k))
			return nil
		})
	}
	if f.select0N >= 0 {
		k := uint64(f.select0N)
		set(func(fd *fid.FID) error {
			printOptional(fd.Select0(k))
			return nil
		})
	}
	if f.dumpJSON {
		set(func(fd *fid.FID) error {
			return dumpJSON(fd, f.sourceHeader)
		})
	}
	if f.dumpSpew {
		set(func(fd *fid.FID) error {
			return dumpSpew(fd, f.sourceHeader)
		})
	}

	switch {
	case n == 0:
		return nil, fmt.Errorf("exactly one of --access, --rank, --rank0, --select, --select0, --dump-json, --dump-spew is required")
	case n > 1:
		return nil, fmt.Errorf("only one query flag may be given at a time")
	default:
		return op, nil
	}
}

func printOptional(opt containers.Optional[uint64]) {
	if !opt.OK {
		fmt.Println("none")
		return
	}
	fmt.Println(opt.Val)
}
