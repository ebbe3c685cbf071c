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

// Package inode holds the three file-content variants the rest of memfs
// operates on: RegularFile (L2, a seekable byte sequence over disk
// blocks), Dir (L2, an ordered name-to-child table), and Symlink (L2, an
// immutable target path). Per the "Polymorphic file content" design note,
// these are a tagged sum dispatched by variant, not by interface
// inheritance — callers that need variant-specific behavior type-switch
// on Kind rather than calling virtual methods.
package inode

import (
	"time"

	"github.com/google/memfs/internal/clock"
	"github.com/google/uuid"
)

// Kind identifies which of the three content variants an Inode is.
type Kind int

const (
	KindRegularFile Kind = iota
	KindDirectory
	KindSymlink
)

func (k Kind) String() string {
	switch k {
	case KindRegularFile:
		return "regular file"
	case KindDirectory:
		return "directory"
	case KindSymlink:
		return "symbolic link"
	default:
		return "unknown"
	}
}

// Inode is implemented by *RegularFile, *Dir, and *Symlink. It exposes
// only what every variant has in common; variant-specific operations
// (Read/Write/Truncate, Link/Unlink/Snapshot, Target) live on the
// concrete types.
type Inode interface {
	ID() uuid.UUID
	Kind() Kind
	Meta() *Metadata
}

// Metadata is the file metadata shared by every content variant (spec §3
// "File metadata"): identity, link count, timestamps, and the extended
// attribute bag that attribute providers read and write into, keyed
// "view:attrName" (e.g. "dos:hidden", "user:com.example.tag").
//
// Every field here is guarded by the owning filesystem's fsLock (spec §5)
// — Metadata holds no lock of its own, since the directory-graph mutation
// that changes LinkCount and the attribute mutation that changes Attrs
// are already serialized by fsLock at the vfs layer.
type Metadata struct {
	id               uuid.UUID
	LinkCount        uint64
	CreationTime     time.Time
	LastAccessTime   time.Time
	LastModifiedTime time.Time
	Attrs            map[string]any
}

// NewMetadata stamps CreationTime/LastAccessTime/LastModifiedTime from clk
// and assigns a fresh id.
func NewMetadata(clk clock.Clock) Metadata {
	now := clk.Now()
	return Metadata{
		id:               uuid.New(),
		CreationTime:     now,
		LastAccessTime:   now,
		LastModifiedTime: now,
		Attrs:            make(map[string]any),
	}
}

func (m *Metadata) ID() uuid.UUID { return m.id }

// Touch stamps LastModifiedTime (and, since a write always makes new
// bytes observable, LastAccessTime) from clk. No operation in this module
// calls Touch or TouchAccess: writes, truncates, and directory changes
// leave a file's timestamps at the values NewMetadata gave them.
func (m *Metadata) Touch(clk clock.Clock) {
	now := clk.Now()
	m.LastModifiedTime = now
	m.LastAccessTime = now
}

// TouchAccess stamps only LastAccessTime, for reads.
func (m *Metadata) TouchAccess(clk clock.Clock) {
	m.LastAccessTime = clk.Now()
}
