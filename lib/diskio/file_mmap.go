// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package diskio

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// MmapFile is a read-only File backed by a memory-mapped region of an
// underlying *os.File, for reading large raw bit buffers from disk.
type MmapFile[A ~int64] struct {
	f    *os.File
	data []byte
}

var _ File[assertAddr] = (*MmapFile[assertAddr])(nil)

// OpenMmap opens name and maps its full contents read-only.
func OpenMmap[A ~int64](name string) (*MmapFile[A], error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.Size() == 0 {
		f.Close()
		return nil, fmt.Errorf("diskio: cannot mmap empty file %q", name)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("diskio: mmap %q: %w", name, err)
	}
	return &MmapFile[A]{f: f, data: data}, nil
}

// Bytes returns the mapped region directly, without copying. The
// slice is only valid until Close unmaps it.
func (f *MmapFile[A]) Bytes() []byte {
	return f.data
}

func (f *MmapFile[A]) Name() string {
	return f.f.Name()
}

func (f *MmapFile[A]) Size() A {
	return A(len(f.data))
}

func (f *MmapFile[A]) Close() error {
	if err := unix.Munmap(f.data); err != nil {
		f.f.Close()
		return err
	}
	return f.f.Close()
}

func (f *MmapFile[A]) ReadAt(dat []byte, off A) (int, error) {
	if int64(off) < 0 || int64(off) > int64(len(f.data)) {
		return 0, fmt.Errorf("diskio: ReadAt offset %d out of range for %d-byte mapping", off, len(f.data))
	}
	n := copy(dat, f.data[off:])
	var err error
	if n < len(dat) {
		err = fmt.Errorf("diskio: short read at offset %d", off)
	}
	return n, err
}

func (f *MmapFile[A]) WriteAt(dat []byte, off A) (int, error) {
	return 0, fmt.Errorf("diskio: MmapFile %q is read-only", f.f.Name())
}
