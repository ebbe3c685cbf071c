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

// Package vfs is the coordination layer over L0-L3 (spec §4.6): the
// public surface that mirrors standard filesystem calls, composing
// name/pathtype, disk, inode, lookup and attr into create/open/link/
// delete/copy/move/symlink/isSameFile. Grounded on fs/fs.go's
// fileSystem struct and ServerConfig/NewServer constructor pattern,
// adapted from a single fs.mu syncutil.InvariantMutex (exclusive-only)
// to fsLock sync.RWMutex, since spec §5 requires shared-mode tree reads
// that syncutil cannot express.
package vfs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/google/memfs/attr"
	"github.com/google/memfs/disk"
	"github.com/google/memfs/inode"
	"github.com/google/memfs/internal/clock"
	"github.com/google/memfs/lookup"
	"github.com/google/memfs/memfserr"
	"github.com/google/memfs/name"
	"github.com/google/memfs/pathtype"
	"github.com/google/memfs/watch"
	"github.com/google/uuid"
)

// Config binds the construction-time choices of a FileSystem (spec §6
// "Configuration surface").
type Config struct {
	PathType pathtype.Type
	Names    name.Options
	Attrs    *attr.Service
	Clock    clock.Clock

	// BlockSize, MaxTotalBytes, MaxCachedBytes configure the backing disk
	// (spec §3 "Disk").
	BlockSize      int
	MaxTotalBytes  int64
	MaxCachedBytes int64

	// ReadOnly rejects every mutating operation with AccessDenied before
	// fsLock is ever taken in exclusive mode (SPEC_FULL.md "Read-only
	// filesystems").
	ReadOnly bool

	// Metrics, if non-nil, receives the disk occupancy gauges registered
	// by disk.New. A nil Registry is fine for short-lived filesystems
	// such as tests; memfsctl passes a fresh registry of its own
	// (prometheus.NewRegistry()).
	Metrics *prometheus.Registry
}

// FileSystem is a single in-memory filesystem instance: one disk, one
// arena of inodes keyed by id, one super-root mapping configured root
// strings to the directory linked under each, and the fsLock/fileLock
// discipline of spec §5.
type FileSystem struct {
	id uuid.UUID

	pathType pathtype.Type
	names    name.Options
	attrs    *attr.Service
	clock    clock.Clock
	readOnly bool

	disk *disk.Disk

	// fsLock guards the directory graph, every directory's entries, and
	// every file's metadata (spec §5 "Filesystem lock"). GUARDED_BY(fsLock):
	// arena, superRoot, and every inode reachable from it.
	fsLock sync.RWMutex

	arena     map[uuid.UUID]inode.Inode
	superRoot *inode.Dir
	resolver  *lookup.Resolver

	// handles tracks every open Closer registered via trackHandle, for
	// Close's resource-manager sweep (spec §5 "Resource manager").
	handles map[uuid.UUID]Closer

	// watchers holds each directory's event fan-out, created lazily by
	// WatchDir (SPEC_FULL.md "Directory watching"). GUARDED_BY(fsLock).
	watchers map[uuid.UUID]*watch.Dir
}

// Closer is anything a FileSystem's resource manager can close on behalf
// of a caller (channel.Channel, DirHandle).
type Closer interface {
	Close() error
}

// New constructs an empty FileSystem: a super-root with one directory
// linked under each of cfg.PathType's configured root strings.
func New(cfg Config) *FileSystem {
	fs := &FileSystem{
		id:        uuid.New(),
		pathType:  cfg.PathType,
		names:     cfg.Names,
		attrs:     cfg.Attrs,
		clock:     cfg.Clock,
		readOnly:  cfg.ReadOnly,
		disk:      disk.New(cfg.BlockSize, cfg.MaxTotalBytes, cfg.MaxCachedBytes, cfg.Metrics),
		arena:     make(map[uuid.UUID]inode.Inode),
		superRoot: inode.NewDir(cfg.Clock),
		handles:   make(map[uuid.UUID]Closer),
		watchers:  make(map[uuid.UUID]*watch.Dir),
	}
	fs.superRoot.MarkRoot()

	for _, root := range cfg.PathType.Roots() {
		rootDir := inode.NewDir(cfg.Clock)
		rootDir.MarkRoot()
		fs.putLocked(rootDir)
		// superRoot is a lookup table from root string to root directory,
		// not a real parent: a root directory is already its own parent
		// (MarkRoot), so PutEntry is used instead of Link to avoid both
		// the already-parented check and an unwanted LinkCount bump.
		if err := fs.superRoot.PutEntry(name.Raw(root), rootDir.ID()); err != nil {
			panic("vfs.New: unexpected duplicate root " + root)
		}
		if fs.attrs != nil {
			fs.attrs.ApplyInitial(rootDir)
		}
	}

	fs.resolver = &lookup.Resolver{
		PathType:  cfg.PathType,
		Names:     cfg.Names,
		Arena:     fs,
		SuperRoot: fs.superRoot,
	}
	return fs
}

// ID returns the filesystem's identity, used by vfs.Registry.
func (fs *FileSystem) ID() uuid.UUID { return fs.id }

// Get implements lookup.Arena. Callers must hold fsLock (shared or
// exclusive) before calling.
func (fs *FileSystem) Get(id uuid.UUID) (inode.Inode, bool) {
	n, ok := fs.arena[id]
	return n, ok
}

func (fs *FileSystem) putLocked(n inode.Inode) { fs.arena[n.ID()] = n }

func (fs *FileSystem) deleteLocked(id uuid.UUID) { delete(fs.arena, id) }

// Root returns the directory linked under root (one of fs.pathType's
// configured Roots()), for use as a caller's initial working directory.
func (fs *FileSystem) Root(root string) (*inode.Dir, error) {
	fs.fsLock.RLock()
	defer fs.fsLock.RUnlock()

	id, ok := fs.superRoot.Get(name.Raw(root))
	if !ok {
		return nil, memfserr.Path("FileSystem.Root", memfserr.NotFound, root)
	}
	d, ok := fs.arena[id]
	if !ok {
		return nil, memfserr.Path("FileSystem.Root", memfserr.NotFound, root)
	}
	dir, ok := d.(*inode.Dir)
	if !ok {
		return nil, memfserr.New("FileSystem.Root", memfserr.NotADirectory)
	}
	return dir, nil
}

func (fs *FileSystem) checkWritable(op string) error {
	if fs.readOnly {
		return memfserr.New(op, memfserr.AccessDenied)
	}
	return nil
}

// trackHandle registers c so Close sweeps it up; id should be a fresh
// uuid identifying the handle instance (not the underlying file).
func (fs *FileSystem) trackHandle(id uuid.UUID, c Closer) {
	fs.fsLock.Lock()
	defer fs.fsLock.Unlock()
	fs.handles[id] = c
}

func (fs *FileSystem) untrackHandle(id uuid.UUID) {
	fs.fsLock.Lock()
	defer fs.fsLock.Unlock()
	delete(fs.handles, id)
}
