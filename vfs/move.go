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
	"github.com/google/memfs/memfserr"
)

// Move renames/relocates the file at srcPath to dstPath, atomically
// under fsLock (spec §4.6 "Move"; SPEC_FULL.md "Rename" expansion).
// Moving a directory into one of its own descendants is rejected before
// any mutation.
func (fs *FileSystem) Move(srcWorkingDir *inode.Dir, srcPath string, dstWorkingDir *inode.Dir, dstPath string) error {
	if err := fs.checkWritable("FileSystem.Move"); err != nil {
		return err
	}

	fs.fsLock.Lock()
	defer fs.fsLock.Unlock()

	src, err := fs.resolver.Resolve(srcWorkingDir, srcPath, false)
	if err != nil {
		return err
	}
	if src.Child == nil {
		return memfserr.Path("FileSystem.Move", memfserr.NotFound, srcPath)
	}

	dst, err := fs.resolver.Resolve(dstWorkingDir, dstPath, false)
	if err != nil {
		return err
	}
	if dst.Child != nil {
		return memfserr.Path("FileSystem.Move", memfserr.AlreadyExists, dstPath)
	}

	if srcDir, ok := src.Child.(*inode.Dir); ok {
		if fs.isAncestorLocked(srcDir, dst.Parent) {
			return memfserr.Path("FileSystem.Move", memfserr.InvalidArgument, dstPath)
		}
	}

	childID, err := src.Parent.Unlink(src.Name)
	if err != nil {
		return err
	}
	if err := dst.Parent.PutEntry(dst.Name, childID); err != nil {
		// Nothing landed at dst; restore the entry at its original
		// location so the move is atomic even on failure.
		if relinkErr := src.Parent.PutEntry(src.Name, childID); relinkErr != nil {
			panic("vfs.Move: unable to roll back failed move: " + relinkErr.Error())
		}
		return err
	}
	if childDir, ok := src.Child.(*inode.Dir); ok {
		childDir.Reparent(dst.Parent.ID())
	}

	if src.Parent.ID() == dst.Parent.ID() {
		fs.publishLocked(src.Parent.ID(), renamedEvent(src.Name, dst.Name))
	} else {
		fs.publishLocked(src.Parent.ID(), removedEvent(src.Name))
		fs.publishLocked(dst.Parent.ID(), createdEvent(dst.Name))
	}
	return nil
}

// isAncestorLocked reports whether candidate is dir itself or one of
// dir's ancestors, walking ParentID links up to the root. Called with
// fsLock already held.
func (fs *FileSystem) isAncestorLocked(candidate *inode.Dir, dir *inode.Dir) bool {
	cur := dir
	for {
		if cur.ID() == candidate.ID() {
			return true
		}
		if cur.IsRoot() {
			return false
		}
		parent, ok := fs.arena[cur.ParentID()]
		if !ok {
			return false
		}
		parentDir, ok := parent.(*inode.Dir)
		if !ok {
			return false
		}
		cur = parentDir
	}
}
