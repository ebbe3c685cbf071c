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

// Package watch is the in-core publish side of directory-change events
// (SPEC_FULL.md "Directory watching (collaborator-facing)"). It has no
// poll loop and no host-filesystem adaptation — an external collaborator
// drains Dir.Events() and relays it however it chooses (FUSE
// invalidation, a gRPC stream, an fsnotify-shaped facade). Grounded
// directly on spec.md §4.6's watch mention; there is no teacher file for
// user-space directory-watch fan-out, since fs/fs.go never builds one (it
// defers to the kernel's FUSE notifications instead).
package watch

import "github.com/google/memfs/name"

// Op classifies a single directory-table mutation.
type Op int

const (
	Created Op = iota
	Removed
	Renamed
)

func (o Op) String() string {
	switch o {
	case Created:
		return "created"
	case Removed:
		return "removed"
	case Renamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// Event describes one directory-table mutation, published in the same
// fsLock critical section that performed it.
type Event struct {
	Op Op
	// Name is the entry's name (the new name, for Renamed).
	Name name.Name
	// OldName is set only for Renamed, the entry's name before the move.
	OldName name.Name
}

// defaultBacklog bounds the fan-out channel so a watcher that stops
// draining cannot block directory mutation; events beyond the backlog
// are dropped rather than blocking fsLock's holder.
const defaultBacklog = 64

// Dir fans out the change events for one directory. The zero value is
// not usable; construct with New.
type Dir struct {
	events chan Event
}

// New returns a Dir with room for defaultBacklog buffered events.
func New() *Dir {
	return &Dir{events: make(chan Event, defaultBacklog)}
}

// Events returns the channel a collaborator drains. Closed by Close.
func (d *Dir) Events() <-chan Event { return d.events }

// Publish enqueues ev, dropping it silently if the backlog is full
// rather than blocking the caller (which would otherwise hold fsLock
// while waiting on a slow or absent watcher).
func (d *Dir) Publish(ev Event) {
	select {
	case d.events <- ev:
	default:
	}
}

// Close shuts down the fan-out channel. Safe to call once, from the
// directory's owning FileSystem during teardown.
func (d *Dir) Close() { close(d.events) }
