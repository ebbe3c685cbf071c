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
	"github.com/google/memfs/inode"
	"github.com/google/memfs/name"
	"github.com/google/memfs/watch"
	"github.com/google/uuid"
)

// WatchDir returns dir's event fan-out, creating it on first use. The
// returned *watch.Dir stays registered for dir's lifetime; FileSystem.Close
// shuts down every one still outstanding.
func (fs *FileSystem) WatchDir(dir *inode.Dir) *watch.Dir {
	fs.fsLock.Lock()
	defer fs.fsLock.Unlock()

	w, ok := fs.watchers[dir.ID()]
	if !ok {
		w = watch.New()
		fs.watchers[dir.ID()] = w
	}
	return w
}

// publishLocked enqueues ev on dirID's watcher, if anyone has asked for
// one via WatchDir. Called with fsLock already held exclusive, from
// inside the same critical section that performed the directory-table
// mutation (SPEC_FULL.md "Directory watching").
func (fs *FileSystem) publishLocked(dirID uuid.UUID, ev watch.Event) {
	if w, ok := fs.watchers[dirID]; ok {
		w.Publish(ev)
	}
}

func createdEvent(n name.Name) watch.Event { return watch.Event{Op: watch.Created, Name: n} }
func removedEvent(n name.Name) watch.Event { return watch.Event{Op: watch.Removed, Name: n} }
func renamedEvent(oldName, newName name.Name) watch.Event {
	return watch.Event{Op: watch.Renamed, Name: newName, OldName: oldName}
}
