// Copyright 2024 The Memfs Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package inode

import (
	"io"
	"sync"

	"github.com/google/memfs/disk"
	"github.com/google/memfs/internal/clock"
	"github.com/google/memfs/memfserr"
)

// RegularFile presents a seekable byte sequence over blocks lent by a
// disk.Disk (spec §4.2). Reads take fileLock in shared mode, and so does
// TransferTo, only while it copies bytes out of the blocks; writes,
// truncate, and TransferFrom take it exclusive.
type RegularFile struct {
	Metadata

	disk *disk.Disk

	// fileLock. Guards everything below, per spec §5's per-file lock.
	mu sync.RWMutex

	blocks    []disk.Block
	size      int64
	openCount counter
	deleted   bool
}

var _ Inode = (*RegularFile)(nil)

func (f *RegularFile) Kind() Kind    { return KindRegularFile }
func (f *RegularFile) Meta() *Metadata { return &f.Metadata }

// NewRegularFile creates an empty regular file backed by d.
func NewRegularFile(d *disk.Disk, clk clock.Clock) *RegularFile {
	return &RegularFile{Metadata: NewMetadata(clk), disk: d}
}

// Size returns the file's current logical length.
func (f *RegularFile) Size() int64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.size
}

// Read copies min(len(dst), size-p) bytes starting at p into dst,
// returning the count, or -1 if p >= size. It never extends the file.
func (f *RegularFile) Read(p int64, dst []byte) (int, error) {
	if p < 0 {
		return 0, memfserr.New("RegularFile.Read", memfserr.InvalidArgument)
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if p >= f.size {
		return -1, nil
	}

	n := int64(len(dst))
	if p+n > f.size {
		n = f.size - p
	}

	copyBlocks(f.blocks, f.blockSize(), p, dst[:n], false)
	return int(n), nil
}

// Write copies len(src) bytes starting at p from src, allocating blocks
// as needed. If p > size, the gap is logically zero-filled. On
// OutOfSpace, the file is rolled back to its pre-call size and any
// blocks newly allocated by this call are freed (spec §4.2, open
// question (b)).
func (f *RegularFile) Write(p int64, src []byte) (int, error) {
	if p < 0 {
		return 0, memfserr.New("RegularFile.Write", memfserr.InvalidArgument)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	return f.writeLocked(p, src)
}

func (f *RegularFile) writeLocked(p int64, src []byte) (int, error) {
	preSize := f.size

	end := p + int64(len(src))
	neededBlocks := int(ceilDiv(end, int64(f.blockSize())))

	if neededBlocks > len(f.blocks) {
		grown, err := f.disk.Allocate(f.blocks, neededBlocks-len(f.blocks))
		if err != nil {
			return 0, memfserr.Wrap("RegularFile.Write", memfserr.OutOfSpace, "", err)
		}
		f.blocks = grown
	}

	// Zero-fill the whole gap between the old size and p. Blocks the disk
	// hands back from its free cache keep their old bytes, so blocks
	// allocated by this call are cleared too, not only pre-existing ones.
	if p > preSize {
		zeroRange(f.blocks, f.blockSize(), preSize, p, len(f.blocks))
	}

	copyBlocks(f.blocks, f.blockSize(), p, src, true)

	if end > f.size {
		f.size = end
	}
	_ = preSize
	return len(src), nil
}

// Truncate sets size to newSize, returning blocks past the new last block
// to the disk. A no-op if newSize >= size (spec §4.2). Idempotent (spec
// §8 invariant 6).
func (f *RegularFile) Truncate(newSize int64) error {
	if newSize < 0 {
		return memfserr.New("RegularFile.Truncate", memfserr.InvalidArgument)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if newSize >= f.size {
		return nil
	}

	newBlockCount := int(ceilDiv(newSize, int64(f.blockSize())))
	if newBlockCount < len(f.blocks) {
		f.disk.Free(f.blocks, len(f.blocks)-newBlockCount)
		f.blocks = f.blocks[:newBlockCount]
	}

	f.size = newSize
	return nil
}

// TransferFrom reads count bytes from r and writes them starting at p,
// with write's zero-fill semantics (spec §4.2). It streams the transfer
// one block-aligned chunk at a time, committing each chunk via
// writeLocked as soon as it is fully read, instead of buffering the
// whole transfer upfront: an interrupted or short r leaves size
// advanced only up to the last fully copied chunk (spec §5's
// cancellation consistency guarantee), rather than discarding bytes r
// already produced. If the disk runs out of space, every chunk this call
// committed is undone: size returns to its pre-call value, the blocks
// this call allocated are freed, and 0 is returned with the error.
func (f *RegularFile) TransferFrom(r io.Reader, p int64, count int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	preSize := f.size
	preBlockCount := len(f.blocks)
	blockSize := int64(f.blockSize())
	buf := make([]byte, blockSize)

	var transferred int64
	for transferred < count {
		chunk := blockSize
		if remaining := count - transferred; remaining < chunk {
			chunk = remaining
		}

		if _, err := io.ReadFull(r, buf[:chunk]); err != nil {
			return transferred, memfserr.Wrap("RegularFile.TransferFrom", memfserr.InvalidArgument, "", err)
		}
		if _, err := f.writeLocked(p+transferred, buf[:chunk]); err != nil {
			if extra := len(f.blocks) - preBlockCount; extra > 0 {
				f.disk.Free(f.blocks, extra)
				f.blocks = f.blocks[:preBlockCount]
			}
			f.size = preSize
			return 0, err
		}
		transferred += chunk
	}
	return transferred, nil
}

// TransferTo reads count bytes starting at p and writes them to w.
func (f *RegularFile) TransferTo(p int64, count int64, w io.Writer) (int64, error) {
	buf := make([]byte, count)
	n, err := f.Read(p, buf)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, nil
	}
	written, err := w.Write(buf[:n])
	return int64(written), err
}

// Copy returns a new file with independent blocks containing the same
// bytes (spec §4.2; Design Note "Block ownership" — no shared block
// referencing, even during copy).
func (f *RegularFile) Copy(clk clock.Clock) (*RegularFile, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	cp := NewRegularFile(f.disk, clk)
	if len(f.blocks) == 0 {
		return cp, nil
	}

	grown, err := f.disk.Allocate(nil, len(f.blocks))
	if err != nil {
		return nil, memfserr.Wrap("RegularFile.Copy", memfserr.OutOfSpace, "", err)
	}
	for i, b := range f.blocks {
		copy(grown[i], b)
	}
	cp.blocks = grown
	cp.size = f.size
	return cp, nil
}

// Opened registers a new open handle (spec §4.2 "opened()").
func (f *RegularFile) Opened() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.openCount.Inc()
}

// Closed releases an open handle. If the open count reaches zero and the
// file has been unlinked, its blocks are returned to the disk.
func (f *RegularFile) Closed() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.openCount.Dec() && f.deleted {
		f.freeAllBlocksLocked()
	}
}

// Deleted marks the file unlinked (spec §4.2 "deleted()"). If there are
// no open handles, its blocks are returned immediately.
func (f *RegularFile) Deleted() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleted = true
	if f.openCount.Get() == 0 {
		f.freeAllBlocksLocked()
	}
}

func (f *RegularFile) freeAllBlocksLocked() {
	if len(f.blocks) == 0 {
		return
	}
	f.disk.Free(f.blocks, len(f.blocks))
	f.blocks = nil
	f.size = 0
}

func (f *RegularFile) blockSize() int { return f.disk.BlockSize() }

func ceilDiv(a, b int64) int64 {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// zeroRange zero-fills [from, to) within blocks whose index is below
// preBlockCount; writeLocked passes the full block count, so the whole
// range is cleared.
func zeroRange(blocks []disk.Block, blockSize int, from, to int64, preBlockCount int) {
	for pos := from; pos < to; {
		blockIdx := int(pos / int64(blockSize))
		if blockIdx >= preBlockCount {
			break
		}
		within := pos % int64(blockSize)
		n := int64(blockSize) - within
		if pos+n > to {
			n = to - pos
		}
		b := blocks[blockIdx]
		for i := int64(0); i < n; i++ {
			b[within+i] = 0
		}
		pos += n
	}
}

// copyBlocks copies data between buf and the block list starting at
// logical position p. If toBlocks is true, buf is written into the
// blocks; otherwise the blocks are read into buf.
func copyBlocks(blocks []disk.Block, blockSize int, p int64, buf []byte, toBlocks bool) {
	pos := p
	off := 0
	for off < len(buf) {
		blockIdx := int(pos / int64(blockSize))
		within := pos % int64(blockSize)
		n := int64(blockSize) - within
		remaining := int64(len(buf) - off)
		if n > remaining {
			n = remaining
		}

		b := blocks[blockIdx]
		if toBlocks {
			copy(b[within:within+n], buf[off:int64(off)+n])
		} else {
			copy(buf[off:int64(off)+n], b[within:within+n])
		}

		pos += n
		off += int(n)
	}
}
