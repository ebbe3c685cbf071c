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

// OpenOptions mirrors the flag combinations spec §4.6 "Open" describes.
type OpenOptions struct {
	// Create creates the file if it is absent.
	Create bool
	// CreateNew creates the file, failing with AlreadyExists if present.
	CreateNew bool
	// Write indicates the handle is opened for writing; only then does
	// Truncate take effect.
	Write bool
	// Truncate truncates an existing file to 0 bytes, if Write is set.
	Truncate bool
}

// CreateFile creates a new, empty regular file at path's final component,
// failing with AlreadyExists if one is already there (spec §4.6 "Create
// regular file"). The returned file has its attributes set to the
// service's defaults via attr.Service.ApplyInitial, if one is configured.
func (fs *FileSystem) CreateFile(workingDir *inode.Dir, path string) (*inode.RegularFile, error) {
	if err := fs.checkWritable("FileSystem.CreateFile"); err != nil {
		return nil, err
	}

	fs.fsLock.Lock()
	defer fs.fsLock.Unlock()

	entry, err := fs.resolver.Resolve(workingDir, path, true)
	if err != nil {
		return nil, err
	}
	if entry.Child != nil {
		return nil, memfserr.Path("FileSystem.CreateFile", memfserr.AlreadyExists, path)
	}

	rf := inode.NewRegularFile(fs.disk, fs.clock)
	fs.putLocked(rf)
	if err := entry.Parent.Link(entry.Name, rf); err != nil {
		fs.deleteLocked(rf.ID())
		return nil, err
	}
	if fs.attrs != nil {
		fs.attrs.ApplyInitial(rf)
	}
	fs.publishLocked(entry.Parent.ID(), createdEvent(entry.Name))
	return rf, nil
}

// Open resolves path under opts, creating or truncating as requested
// (spec §4.6 "Open"). It does not itself register the resulting file
// with a channel.Channel — callers that want a position cursor wrap the
// returned file with channel.Open.
func (fs *FileSystem) Open(workingDir *inode.Dir, path string, opts OpenOptions) (*inode.RegularFile, error) {
	mutating := opts.Create || opts.CreateNew || (opts.Write && opts.Truncate)
	if mutating {
		if err := fs.checkWritable("FileSystem.Open"); err != nil {
			return nil, err
		}
	}

	fs.fsLock.Lock()
	defer fs.fsLock.Unlock()

	entry, err := fs.resolver.Resolve(workingDir, path, true)
	if err != nil {
		return nil, err
	}

	if entry.Child != nil {
		if opts.CreateNew {
			return nil, memfserr.Path("FileSystem.Open", memfserr.AlreadyExists, path)
		}
		rf, ok := entry.Child.(*inode.RegularFile)
		if !ok {
			return nil, memfserr.Path("FileSystem.Open", memfserr.IllegalType, path)
		}
		if opts.Write && opts.Truncate {
			if err := rf.Truncate(0); err != nil {
				return nil, err
			}
		}
		return rf, nil
	}

	if !opts.Create && !opts.CreateNew {
		return nil, memfserr.Path("FileSystem.Open", memfserr.NotFound, path)
	}

	rf := inode.NewRegularFile(fs.disk, fs.clock)
	fs.putLocked(rf)
	if err := entry.Parent.Link(entry.Name, rf); err != nil {
		fs.deleteLocked(rf.ID())
		return nil, err
	}
	if fs.attrs != nil {
		fs.attrs.ApplyInitial(rf)
	}
	fs.publishLocked(entry.Parent.ID(), createdEvent(entry.Name))
	return rf, nil
}

// Mkdir creates a new, empty directory at path's final component.
func (fs *FileSystem) Mkdir(workingDir *inode.Dir, path string) (*inode.Dir, error) {
	if err := fs.checkWritable("FileSystem.Mkdir"); err != nil {
		return nil, err
	}

	fs.fsLock.Lock()
	defer fs.fsLock.Unlock()

	entry, err := fs.resolver.Resolve(workingDir, path, true)
	if err != nil {
		return nil, err
	}
	if entry.Child != nil {
		return nil, memfserr.Path("FileSystem.Mkdir", memfserr.AlreadyExists, path)
	}

	d := inode.NewDir(fs.clock)
	fs.putLocked(d)
	if err := entry.Parent.Link(entry.Name, d); err != nil {
		fs.deleteLocked(d.ID())
		return nil, err
	}
	if fs.attrs != nil {
		fs.attrs.ApplyInitial(d)
	}
	fs.publishLocked(entry.Parent.ID(), createdEvent(entry.Name))
	return d, nil
}

// Symlink creates a new symbolic link at path's final component whose
// target is the literal string target (spec §3 "Symbolic link").
func (fs *FileSystem) Symlink(workingDir *inode.Dir, path, target string) (*inode.Symlink, error) {
	if err := fs.checkWritable("FileSystem.Symlink"); err != nil {
		return nil, err
	}

	fs.fsLock.Lock()
	defer fs.fsLock.Unlock()

	entry, err := fs.resolver.Resolve(workingDir, path, false)
	if err != nil {
		return nil, err
	}
	if entry.Child != nil {
		return nil, memfserr.Path("FileSystem.Symlink", memfserr.AlreadyExists, path)
	}

	s := inode.NewSymlink(target, fs.clock)
	fs.putLocked(s)
	if err := entry.Parent.Link(entry.Name, s); err != nil {
		fs.deleteLocked(s.ID())
		return nil, err
	}
	if fs.attrs != nil {
		fs.attrs.ApplyInitial(s)
	}
	fs.publishLocked(entry.Parent.ID(), createdEvent(entry.Name))
	return s, nil
}

// ReadSymlink returns the literal target text recorded at path (spec
// §4.6 "Read/write symlink").
func (fs *FileSystem) ReadSymlink(workingDir *inode.Dir, path string) (string, error) {
	fs.fsLock.RLock()
	defer fs.fsLock.RUnlock()

	entry, err := fs.resolver.Resolve(workingDir, path, false)
	if err != nil {
		return "", err
	}
	if entry.Child == nil {
		return "", memfserr.Path("FileSystem.ReadSymlink", memfserr.NotFound, path)
	}
	s, ok := entry.Child.(*inode.Symlink)
	if !ok {
		return "", memfserr.Path("FileSystem.ReadSymlink", memfserr.IllegalType, path)
	}
	return s.Target(), nil
}

// Link adds a hard link at dstPath referencing the same regular file as
// srcPath, failing if the source is a directory (spec §4.6 "Link").
func (fs *FileSystem) Link(workingDir *inode.Dir, srcPath string, dstWorkingDir *inode.Dir, dstPath string) error {
	if err := fs.checkWritable("FileSystem.Link"); err != nil {
		return err
	}

	fs.fsLock.Lock()
	defer fs.fsLock.Unlock()

	src, err := fs.resolver.Resolve(workingDir, srcPath, true)
	if err != nil {
		return err
	}
	if src.Child == nil {
		return memfserr.Path("FileSystem.Link", memfserr.NotFound, srcPath)
	}
	if src.Child.Kind() == inode.KindDirectory {
		return memfserr.Path("FileSystem.Link", memfserr.IsADirectory, srcPath)
	}

	dst, err := fs.resolver.Resolve(dstWorkingDir, dstPath, true)
	if err != nil {
		return err
	}
	if dst.Child != nil {
		return memfserr.Path("FileSystem.Link", memfserr.AlreadyExists, dstPath)
	}

	if err := dst.Parent.Link(dst.Name, src.Child); err != nil {
		return err
	}
	fs.publishLocked(dst.Parent.ID(), createdEvent(dst.Name))
	return nil
}

// Delete unlinks path from its parent. If it names a directory, the
// directory must be empty (spec §4.6 "Delete").
func (fs *FileSystem) Delete(workingDir *inode.Dir, path string) error {
	if err := fs.checkWritable("FileSystem.Delete"); err != nil {
		return err
	}

	fs.fsLock.Lock()
	defer fs.fsLock.Unlock()

	entry, err := fs.resolver.Resolve(workingDir, path, false)
	if err != nil {
		return err
	}
	if entry.Child == nil {
		return memfserr.Path("FileSystem.Delete", memfserr.NotFound, path)
	}

	if d, ok := entry.Child.(*inode.Dir); ok {
		if !d.Empty() {
			return memfserr.Path("FileSystem.Delete", memfserr.NotEmpty, path)
		}
	}

	childID, err := entry.Parent.Unlink(entry.Name)
	if err != nil {
		return err
	}

	switch child := entry.Child.(type) {
	case *inode.Dir:
		// Mirror Link's two increments: child.LinkCount-- undoes the
		// name entry Link gave child, DetachChild undoes the link Link
		// gave entry.Parent for child's ".." pointing back at it.
		child.LinkCount--
		entry.Parent.DetachChild(child)
		if child.LinkCount == 0 {
			fs.deleteLocked(childID)
		}
	case *inode.RegularFile:
		child.LinkCount--
		if child.LinkCount == 0 {
			child.Deleted()
			fs.deleteLocked(childID)
		}
	case *inode.Symlink:
		child.LinkCount--
		if child.LinkCount == 0 {
			fs.deleteLocked(childID)
		}
	}
	fs.publishLocked(entry.Parent.ID(), removedEvent(entry.Name))
	return nil
}

// Copy produces a deep, independent copy of the regular file at srcPath,
// linked at dstPath (spec §4.6 "Copy"). Directory copy is not offered at
// this layer; callers recurse using Mkdir/Copy/Snapshot themselves.
func (fs *FileSystem) Copy(workingDir *inode.Dir, srcPath string, dstWorkingDir *inode.Dir, dstPath string) (*inode.RegularFile, error) {
	if err := fs.checkWritable("FileSystem.Copy"); err != nil {
		return nil, err
	}

	fs.fsLock.Lock()
	defer fs.fsLock.Unlock()

	src, err := fs.resolver.Resolve(workingDir, srcPath, true)
	if err != nil {
		return nil, err
	}
	if src.Child == nil {
		return nil, memfserr.Path("FileSystem.Copy", memfserr.NotFound, srcPath)
	}
	srcFile, ok := src.Child.(*inode.RegularFile)
	if !ok {
		return nil, memfserr.Path("FileSystem.Copy", memfserr.IllegalType, srcPath)
	}

	dst, err := fs.resolver.Resolve(dstWorkingDir, dstPath, true)
	if err != nil {
		return nil, err
	}
	if dst.Child != nil {
		return nil, memfserr.Path("FileSystem.Copy", memfserr.AlreadyExists, dstPath)
	}

	cp, err := srcFile.Copy(fs.clock)
	if err != nil {
		return nil, err
	}
	fs.putLocked(cp)
	if err := dst.Parent.Link(dst.Name, cp); err != nil {
		fs.deleteLocked(cp.ID())
		return nil, err
	}
	fs.publishLocked(dst.Parent.ID(), createdEvent(dst.Name))
	return cp, nil
}

// IsSameFile reports whether srcPath and dstPath resolve to the same
// file identity (spec §4.6 "isSameFile").
func (fs *FileSystem) IsSameFile(aWorkingDir *inode.Dir, aPath string, bWorkingDir *inode.Dir, bPath string) (bool, error) {
	fs.fsLock.RLock()
	defer fs.fsLock.RUnlock()

	a, err := fs.resolver.Resolve(aWorkingDir, aPath, true)
	if err != nil {
		return false, err
	}
	b, err := fs.resolver.Resolve(bWorkingDir, bPath, true)
	if err != nil {
		return false, err
	}
	if a.Child == nil || b.Child == nil {
		return false, nil
	}
	return a.Child.ID() == b.Child.ID(), nil
}
