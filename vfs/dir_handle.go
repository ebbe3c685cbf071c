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

package vfs

import (
	"sync"

	"github.com/google/memfs/memfserr"
	"github.com/google/memfs/name"

	"github.com/google/memfs/inode"
	"github.com/google/uuid"
)

// DirHandle buffers one point-in-time snapshot of a directory's entries
// and an offset cursor over it (spec §4.6 "directory iteration
// snapshot"). Grounded on fs/dir_handle.go's dirHandle: buffered-entries-
// plus-offset struct, adapted from FUSE's fuseutil.Dirent buffering to
// inode.Dir.Snapshot() buffering.
type DirHandle struct {
	id uuid.UUID

	// mu guards entries/offset. GUARDED_BY(mu).
	mu      sync.Mutex
	dir     *inode.Dir
	entries []name.Name
	offset  int
}

var _ Closer = (*DirHandle)(nil)

// OpenDir snapshots dir's current entries and registers the handle with
// fs's resource manager so it is closed by FileSystem.Close.
func (fs *FileSystem) OpenDir(dir *inode.Dir) *DirHandle {
	fs.fsLock.RLock()
	snap := dir.Snapshot()
	fs.fsLock.RUnlock()

	dh := &DirHandle{id: uuid.New(), dir: dir, entries: snap}
	fs.trackHandle(dh.id, dh)
	return dh
}

// Next returns the next buffered entry and advances the cursor, or
// (zero, false) once every entry has been returned.
func (dh *DirHandle) Next() (name.Name, bool) {
	dh.mu.Lock()
	defer dh.mu.Unlock()

	if dh.offset >= len(dh.entries) {
		return name.Name{}, false
	}
	n := dh.entries[dh.offset]
	dh.offset++
	return n, true
}

// Rewind resets the cursor to the beginning of the buffered snapshot
// without re-reading the directory.
func (dh *DirHandle) Rewind() {
	dh.mu.Lock()
	defer dh.mu.Unlock()
	dh.offset = 0
}

// Seek moves the cursor to an absolute offset, failing with
// InvalidArgument if offset is out of range.
func (dh *DirHandle) Seek(offset int) error {
	dh.mu.Lock()
	defer dh.mu.Unlock()

	if offset < 0 || offset > len(dh.entries) {
		return memfserr.New("DirHandle.Seek", memfserr.InvalidArgument)
	}
	dh.offset = offset
	return nil
}

// Close releases the handle. Idempotent, and safe to call directly in
// addition to FileSystem.Close's sweep.
func (dh *DirHandle) Close() error { return nil }
