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

// Package lookup implements path resolution (spec §4.4): descending a
// tree of inode.Dir values from either a root or a working directory,
// substituting symbolic links as they are encountered, with a bounded
// link-follow counter guarding against cycles. It is generic over the
// injected path grammar (pathtype.Type) and over name normalization
// (name.Options) — no teacher file implements a user-space recursive
// walker like this (gcsfuse resolves one component at a time through the
// kernel's own FUSE calls), so the algorithm below follows spec.md §4.4
// directly, written in the teacher's named-sentinel-error idiom
// (fuseutil's style of returning a concrete *memfserr.Error rather than
// panicking or using exceptions).
package lookup

import (
	"github.com/google/memfs/inode"
	"github.com/google/memfs/memfserr"
	"github.com/google/memfs/name"
	"github.com/google/memfs/pathtype"
	"github.com/google/uuid"
)

// maxSymlinkHops bounds cycle detection (spec §4.4, invariant 9).
const maxSymlinkHops = 40

// Arena resolves a child id to its live Inode. It is implemented by the
// vfs layer's id-keyed table — lookup itself never owns Inode values,
// per the "Cyclic ownership" design note.
type Arena interface {
	Get(id uuid.UUID) (inode.Inode, bool)
}

// Entry is the result of a resolution: the parent directory, the final
// component's Name, and its child Inode (nil if the parent exists but the
// final component does not).
type Entry struct {
	Parent *inode.Dir
	Name   name.Name
	Child  inode.Inode
}

// Resolver binds a path grammar, a name-normalization policy, an arena,
// and a super-root (a Dir whose entries map root strings to the Dir
// linked under each root) into a reusable path-lookup engine.
type Resolver struct {
	PathType pathtype.Type
	Names    name.Options
	Arena    Arena
	SuperRoot *inode.Dir
}

// Resolve implements spec §4.4's algorithm. workingDir is used for
// relative paths; it is ignored for absolute ones.
func (r *Resolver) Resolve(workingDir *inode.Dir, raw string, followLinks bool) (Entry, error) {
	p, err := r.PathType.Parse(raw)
	if err != nil {
		return Entry{}, memfserr.Wrap("lookup.Resolve", memfserr.InvalidPath, raw, err)
	}
	return r.resolve(workingDir, p, followLinks, 0)
}

func (r *Resolver) resolve(workingDir *inode.Dir, p pathtype.Path, followLinks bool, hops int) (Entry, error) {
	cur, err := r.start(workingDir, p)
	if err != nil {
		return Entry{}, err
	}

	comps := p.Components
	for i, raw := range comps {
		last := i == len(comps)-1

		switch {
		case name.IsSelf(raw):
			continue

		case name.IsParent(raw):
			parent, ok := r.Arena.Get(cur.ParentID())
			if !ok {
				return Entry{}, memfserr.New("lookup.Resolve", memfserr.NotFound)
			}
			parentDir, ok := parent.(*inode.Dir)
			if !ok {
				return Entry{}, memfserr.New("lookup.Resolve", memfserr.NotADirectory)
			}
			cur = parentDir
			continue
		}

		n := name.New(raw, r.Names)
		childID, ok := cur.Get(n)
		if !ok {
			if last {
				return Entry{Parent: cur, Name: n, Child: nil}, nil
			}
			return Entry{}, memfserr.Path("lookup.Resolve", memfserr.NotFound, raw)
		}

		child, ok := r.Arena.Get(childID)
		if !ok {
			return Entry{}, memfserr.Path("lookup.Resolve", memfserr.NotFound, raw)
		}

		if !last {
			switch c := child.(type) {
			case *inode.Dir:
				cur = c
				continue
			case *inode.Symlink:
				hops++
				if hops > maxSymlinkHops {
					return Entry{}, memfserr.New("lookup.Resolve", memfserr.TooManySymlinks)
				}
				nextDir, nextPath, err := r.substitute(cur, c, comps[i+1:])
				if err != nil {
					return Entry{}, err
				}
				return r.resolve(nextDir, nextPath, followLinks, hops)
			default:
				return Entry{}, memfserr.Path("lookup.Resolve", memfserr.NotFound, raw)
			}
		}

		// Last component.
		if sym, ok := child.(*inode.Symlink); ok && followLinks {
			hops++
			if hops > maxSymlinkHops {
				return Entry{}, memfserr.New("lookup.Resolve", memfserr.TooManySymlinks)
			}
			nextDir, nextPath, err := r.substitute(cur, sym, nil)
			if err != nil {
				return Entry{}, err
			}
			return r.resolve(nextDir, nextPath, followLinks, hops)
		}

		return Entry{Parent: cur, Name: n, Child: child}, nil
	}

	// Empty component list (path was exactly a root, or SELF/PARENT only):
	// the directory entry for "." within cur.
	return Entry{Parent: cur, Name: name.SELF, Child: cur}, nil
}

// start resolves the starting directory: the super-root's root entry for
// an absolute path, or workingDir for a relative one.
func (r *Resolver) start(workingDir *inode.Dir, p pathtype.Path) (*inode.Dir, error) {
	if !p.Absolute {
		return workingDir, nil
	}

	rootID, ok := r.SuperRoot.Get(name.Raw(p.Root))
	if !ok {
		return nil, memfserr.Path("lookup.Resolve", memfserr.NotFound, p.Root)
	}
	root, ok := r.Arena.Get(rootID)
	if !ok {
		return nil, memfserr.Path("lookup.Resolve", memfserr.NotFound, p.Root)
	}
	rootDir, ok := root.(*inode.Dir)
	if !ok {
		return nil, memfserr.New("lookup.Resolve", memfserr.NotADirectory)
	}
	return rootDir, nil
}

// substitute parses a symlink's target and builds the (directory, path)
// pair resolution should restart from, per spec §4.4 step 4: absolute
// targets restart from their root, relative targets restart from the
// symlink's own containing directory with the target prepended to the
// remaining components.
func (r *Resolver) substitute(containing *inode.Dir, sym *inode.Symlink, rest []string) (*inode.Dir, pathtype.Path, error) {
	target, err := r.PathType.Parse(sym.Target())
	if err != nil {
		return nil, pathtype.Path{}, memfserr.Wrap("lookup.Resolve", memfserr.InvalidPath, sym.Target(), err)
	}

	combined := append(append([]string{}, target.Components...), rest...)

	if target.Absolute {
		return nil, pathtype.Path{Root: target.Root, Components: combined, Absolute: true}, nil
	}
	return containing, pathtype.Path{Components: combined}, nil
}
