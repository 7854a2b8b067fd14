// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Command fid-mount parses an LBS from a bit-string file and
// FUSE-mounts the resulting LOUDS tree read-only: node n is a
// directory named by its node number (the root, node 1, is the mount
// point itself), and every directory contains a node.json file
// describing that node.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/datawire/dlib/dgroup"
	"github.com/datawire/dlib/dlog"
	"github.com/jacobsa/fuse/fuseutil"
	"github.com/sirupsen/logrus"

	"go.bitforge.dev/fid/lib/bitstring"
	"go.bitforge.dev/fid/lib/louds"
	"go.bitforge.dev/fid/lib/textui"
)

func main() {
	logger := logrus.New()
	ctx := dlog.WithLogger(context.Background(), dlog.WrapLogrus(logger))

	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %v LBS-FILE MOUNTPOINT\n", os.Args[0])
		os.Exit(2)
	}

	grp := dgroup.NewGroup(ctx, dgroup.GroupConfig{
		EnableSignalHandling: true,
	})
	grp.Go("main", func(ctx context.Context) error {
		return Main(ctx, os.Args[1], os.Args[2])
	})
	if err := grp.Wait(); err != nil {
		textui.Fprintf(os.Stderr, "%v: error: %v\n", os.Args[0], err)
		os.Exit(1)
	}
}

func Main(ctx context.Context, lbsFile, mountpoint string) error {
	raw, err := os.ReadFile(lbsFile)
	if err != nil {
		return err
	}
	bs := bitstring.New(string(raw))

	dlog.Infof(ctx, "building LOUDS tree from %q...", lbsFile)
	l := louds.FromBitString(bs).Build(ctx)
	dlog.Infof(ctx, "built")

	fs := &loudsFS{tree: l}
	return Mount(ctx, mountpoint, fuseutil.NewFileSystemServer(fs), fs.mountConfig())
}
