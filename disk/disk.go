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

// Package disk implements the fixed-size block pool that backs every
// regular file (spec §4.1). A Disk owns every block it ever allocates;
// files only ever hold references handed out by Allocate.
package disk

import (
	"github.com/google/memfs/internal/metrics"
	"github.com/google/memfs/memfserr"
	"github.com/jacobsa/syncutil"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultBlockSize matches spec §3's default.
const DefaultBlockSize = 8192

// Block is a fixed-size byte array lent to exactly one file at a time.
type Block []byte

// Disk is a fixed-size byte-block pool with cache-for-reuse and a hard
// cap on total allocated bytes (spec §3 "Disk").
type Disk struct {
	blockSize      int
	maxTotalBytes  int64
	maxCachedBytes int64

	// mu guards everything below. It is the disk-internal mutex named in
	// spec §5 ("Shared resources"); it is exclusive-only on purpose, in
	// the style of the teacher's jacobsa/syncutil.InvariantMutex — the
	// disk never needs a shared/reader mode the way fsLock/fileLock do.
	mu             syncutil.InvariantMutex
	allocatedBytes int64
	cache          []Block // LIFO: cache[len(cache)-1] is reused first.

	metrics *metrics.DiskHandle
}

// New builds a Disk. reg may be nil, in which case no metrics are
// registered or updated.
func New(blockSize int, maxTotalBytes, maxCachedBytes int64, reg *prometheus.Registry) *Disk {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}

	d := &Disk{
		blockSize:      blockSize,
		maxTotalBytes:  roundDown(maxTotalBytes, blockSize),
		maxCachedBytes: roundDown(maxCachedBytes, blockSize),
		metrics:        metrics.NewDiskHandle(reg),
	}
	d.mu = syncutil.NewInvariantMutex(d.checkInvariants)
	return d
}

func roundDown(n int64, blockSize int) int64 {
	bs := int64(blockSize)
	return (n / bs) * bs
}

// checkInvariants panics if the disk's bookkeeping has drifted from
// spec §3's invariant: allocatedBytes + |cache|*blockSize <= maxTotalBytes.
func (d *Disk) checkInvariants() {
	cached := int64(len(d.cache)) * int64(d.blockSize)
	if d.allocatedBytes+cached > d.maxTotalBytes {
		panic("disk: allocated + cached bytes exceed maxTotalBytes")
	}
	if d.allocatedBytes < 0 {
		panic("disk: negative allocatedBytes")
	}
}

// BlockSize returns the fixed size of every block this disk hands out.
func (d *Disk) BlockSize() int { return d.blockSize }

// TotalSpace reflects the hard cap, not host memory (spec §4.1).
func (d *Disk) TotalSpace() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.maxTotalBytes
}

// UnallocatedSpace is the cap minus bytes currently allocated to files.
// Cached (freed but not yet discarded) blocks still count as unallocated.
func (d *Disk) UnallocatedSpace() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.maxTotalBytes - d.allocatedBytes
}

// Stats is a point-in-time snapshot of disk occupancy.
type Stats struct {
	AllocatedBytes int64
	CachedBytes    int64
	CachedBlocks   int
}

func (d *Disk) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Stats{
		AllocatedBytes: d.allocatedBytes,
		CachedBytes:    int64(len(d.cache)) * int64(d.blockSize),
		CachedBlocks:   len(d.cache),
	}
}

// Allocate appends count blocks to target, returning the new slice.
// Blocks are taken from the free cache first (LIFO) and keep the bytes
// they held when freed; only newly made blocks are zero-initialized.
// It fails with OutOfSpace if the cap
// would be exceeded; on failure target is returned unmodified (no
// partial allocation).
func (d *Disk) Allocate(target []Block, count int) ([]Block, error) {
	if count == 0 {
		return target, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	need := int64(count) * int64(d.blockSize)
	if d.allocatedBytes+need > d.maxTotalBytes {
		return target, memfserr.New("disk.Allocate", memfserr.OutOfSpace)
	}

	out := append([]Block(nil), target...)
	for i := 0; i < count; i++ {
		if n := len(d.cache); n > 0 {
			out = append(out, d.cache[n-1])
			d.cache = d.cache[:n-1]
			continue
		}
		out = append(out, make(Block, d.blockSize))
	}

	d.allocatedBytes += need
	d.publishLocked()
	return out, nil
}

// Free returns the last count blocks of blockList to the disk, pushing
// them onto the free cache if it has room, discarding them (releasing the
// memory) otherwise. Freed blocks are not zeroed; Regular-file reads are
// responsible for never returning bytes past size (spec §4.1).
func (d *Disk) Free(blockList []Block, count int) {
	if count == 0 {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	n := len(blockList)
	freed := blockList[n-count:]

	for _, b := range freed {
		cachedBytes := int64(len(d.cache)+1) * int64(d.blockSize)
		if cachedBytes <= d.maxCachedBytes {
			d.cache = append(d.cache, b)
		}
		// else: discard, releasing the memory to the GC.
	}

	d.allocatedBytes -= int64(count) * int64(d.blockSize)
	if d.allocatedBytes < 0 {
		d.allocatedBytes = 0
	}
	d.publishLocked()
}

// publishLocked updates the optional metrics handle. Caller must hold mu.
func (d *Disk) publishLocked() {
	d.metrics.SetAllocatedBytes(d.allocatedBytes)
	d.metrics.SetCache(int64(len(d.cache))*int64(d.blockSize), len(d.cache))
}
