// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strconv"
	"sync/atomic"
	"syscall"

	"git.lukeshu.com/go/lowmemjson"
	"github.com/jacobsa/fuse"
	"github.com/jacobsa/fuse/fuseops"
	"github.com/jacobsa/fuse/fuseutil"

	"go.bitforge.dev/fid/lib/louds"
	"go.bitforge.dev/fid/lib/util"
)

// fileInodeBase separates node.json file inodes from directory
// inodes: directory inodes are LoudsNodeNum values directly (the
// root, node 1, matches fuseops.RootInodeID), file inodes are
// fileInodeBase plus the owning node's number.
const fileInodeBase = fuseops.InodeID(1) << 40

const nodeInfoName = "node.json"

type nodeInfo struct {
	NodeNum    louds.LoudsNodeNum `json:"node_num"`
	Index      louds.LoudsIndex   `json:"index"`
	ParentNum  louds.LoudsNodeNum `json:"parent_num,omitempty"`
	ChildCount int                `json:"child_count"`
	IsRoot     bool               `json:"is_root"`
}

type dirHandle struct {
	node louds.LoudsNodeNum
}

type fileHandle struct {
	data []byte
}

type loudsFS struct {
	fuseutil.NotImplementedFileSystem
	tree *louds.LOUDS

	lastHandle  uint64
	dirHandles  util.SyncMap[fuseops.HandleID, *dirHandle]
	fileHandles util.SyncMap[fuseops.HandleID, *fileHandle]
}

func (fs *loudsFS) mountConfig() *fuse.MountConfig {
	return &fuse.MountConfig{
		FSName:   "fid-mount",
		Subtype:  "louds",
		ReadOnly: true,
	}
}

func (fs *loudsFS) newHandle() fuseops.HandleID {
	return fuseops.HandleID(atomic.AddUint64(&fs.lastHandle, 1))
}

func dirInode(n louds.LoudsNodeNum) fuseops.InodeID  { return fuseops.InodeID(n) }
func fileInode(n louds.LoudsNodeNum) fuseops.InodeID { return fileInodeBase + fuseops.InodeID(n) }

func nodeOfDirInode(inode fuseops.InodeID) louds.LoudsNodeNum {
	if inode == fuseops.RootInodeID {
		return 1
	}
	return louds.LoudsNodeNum(inode)
}

func (fs *loudsFS) StatFS(_ context.Context, op *fuseops.StatFSOp) error {
	return nil
}

func (fs *loudsFS) Destroy() {}

func (fs *loudsFS) LookUpInode(_ context.Context, op *fuseops.LookUpInodeOp) error {
	parent := nodeOfDirInode(op.Parent)

	if op.Name == nodeInfoName {
		info := fs.describe(parent)
		op.Entry = fuseops.ChildInodeEntry{
			Child:      fileInode(parent),
			Attributes: fileAttrs(len(encodeNodeInfo(info))),
		}
		return nil
	}

	want, err := strconv.ParseUint(op.Name, 10, 64)
	if err != nil {
		return syscall.ENOENT
	}
	for _, idx := range fs.tree.ParentToChildren(parent) {
		child := fs.tree.IndexToNodeNum(idx)
		if uint64(child) == want {
			op.Entry = fuseops.ChildInodeEntry{
				Child:      dirInode(child),
				Attributes: dirAttrs(),
			}
			return nil
		}
	}
	return syscall.ENOENT
}

func (fs *loudsFS) GetInodeAttributes(_ context.Context, op *fuseops.GetInodeAttributesOp) error {
	if op.Inode >= fileInodeBase {
		node := louds.LoudsNodeNum(op.Inode - fileInodeBase)
		info := fs.describe(node)
		op.Attributes = fileAttrs(len(encodeNodeInfo(info)))
		return nil
	}
	op.Attributes = dirAttrs()
	return nil
}

func (fs *loudsFS) OpenDir(_ context.Context, op *fuseops.OpenDirOp) error {
	node := nodeOfDirInode(op.Inode)
	handle := fs.newHandle()
	fs.dirHandles.Store(handle, &dirHandle{node: node})
	op.Handle = handle
	return nil
}

func (fs *loudsFS) ReadDir(_ context.Context, op *fuseops.ReadDirOp) error {
	state, ok := fs.dirHandles.Load(op.Handle)
	if !ok {
		return syscall.EBADF
	}

	entries := []fuseutil.Dirent{
		{
			Offset: 1,
			Inode:  fileInode(state.node),
			Name:   nodeInfoName,
			Type:   fuseutil.DT_File,
		},
	}
	for i, idx := range fs.tree.ParentToChildren(state.node) {
		child := fs.tree.IndexToNodeNum(idx)
		entries = append(entries, fuseutil.Dirent{
			Offset: fuseops.DirOffset(i + 2),
			Inode:  dirInode(child),
			Name:   strconv.FormatUint(uint64(child), 10),
			Type:   fuseutil.DT_Directory,
		})
	}

	for i := int(op.Offset); i < len(entries); i++ {
		n := fuseutil.WriteDirent(op.Dst[op.BytesRead:], entries[i])
		if n == 0 {
			break
		}
		op.BytesRead += n
	}
	return nil
}

func (fs *loudsFS) ReleaseDirHandle(_ context.Context, op *fuseops.ReleaseDirHandleOp) error {
	_, ok := fs.dirHandles.LoadAndDelete(op.Handle)
	if !ok {
		return syscall.EBADF
	}
	return nil
}

func (fs *loudsFS) OpenFile(_ context.Context, op *fuseops.OpenFileOp) error {
	if op.Inode < fileInodeBase {
		return syscall.EISDIR
	}
	node := louds.LoudsNodeNum(op.Inode - fileInodeBase)
	handle := fs.newHandle()
	fs.fileHandles.Store(handle, &fileHandle{data: encodeNodeInfo(fs.describe(node))})
	op.Handle = handle
	op.KeepPageCache = true
	return nil
}

func (fs *loudsFS) ReadFile(_ context.Context, op *fuseops.ReadFileOp) error {
	state, ok := fs.fileHandles.Load(op.Handle)
	if !ok {
		return syscall.EBADF
	}
	if op.Offset >= int64(len(state.data)) {
		op.BytesRead = 0
		return nil
	}
	rest := state.data[op.Offset:]
	if op.Dst != nil {
		op.BytesRead = copy(op.Dst, rest)
	} else {
		size := len(rest)
		if int64(size) > op.Size {
			size = int(op.Size)
		}
		op.BytesRead = size
		op.Data = [][]byte{rest[:size]}
	}
	return nil
}

func (fs *loudsFS) ReleaseFileHandle(_ context.Context, op *fuseops.ReleaseFileHandleOp) error {
	_, ok := fs.fileHandles.LoadAndDelete(op.Handle)
	if !ok {
		return syscall.EBADF
	}
	return nil
}

func (fs *loudsFS) describe(n louds.LoudsNodeNum) nodeInfo {
	idx := fs.tree.NodeNumToIndex(n)
	info := nodeInfo{
		NodeNum:    n,
		Index:      idx,
		ChildCount: len(fs.tree.ParentToChildren(n)),
		IsRoot:     n == 1,
	}
	if n != 1 {
		info.ParentNum = fs.tree.ChildToParent(idx)
	}
	return info
}

func encodeNodeInfo(info nodeInfo) []byte {
	var buf bytes.Buffer
	if err := lowmemjson.NewEncoder(&buf).Encode(info); err != nil {
		// info is a plain value type with no cyclic or
		// unencodable fields; encoding it cannot fail.
		panic(fmt.Sprintf("fid-mount: encoding node info: %v", err))
	}
	return buf.Bytes()
}

func dirAttrs() fuseops.InodeAttributes {
	return fuseops.InodeAttributes{
		Nlink: 1,
		Mode:  os.ModeDir | 0o555,
	}
}

func fileAttrs(size int) fuseops.InodeAttributes {
	return fuseops.InodeAttributes{
		Nlink: 1,
		Size:  uint64(size),
		Mode:  0o444,
	}
}
