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
	"sort"

	"github.com/google/memfs/internal/clock"
	"github.com/google/memfs/memfserr"
	"github.com/google/memfs/name"
	"github.com/google/uuid"
)

// dirEntry is a single directory-table row. Per the "Cyclic ownership"
// design note, directories store child ids, not owning pointers — the
// arena (owned by the vfs layer) is the only place a live Inode value
// lives.
type dirEntry struct {
	Name  name.Name
	Child uuid.UUID
}

// Dir is an ordered name-to-child table with parent/self links (spec §3
// "Directory", §4.3). GUARDED_BY the owning filesystem's fsLock.
type Dir struct {
	Metadata

	parentID uuid.UUID
	isRoot   bool

	// entries maps canonical name to the row. SELF (".") and PARENT
	// ("..") are never stored here; callers special-case them before
	// reaching Dir (spec §4.3 "PARENT/SELF are excluded").
	entries map[string]dirEntry
}

var _ Inode = (*Dir)(nil)

func (d *Dir) Kind() Kind      { return KindDirectory }
func (d *Dir) Meta() *Metadata { return &d.Metadata }

// NewDir creates an empty, detached directory (no parent yet). The
// caller — typically vfs.FileSystem.mkdir or the super-root at startup —
// links it into the tree or marks it a root immediately afterward.
func NewDir(clk clock.Clock) *Dir {
	d := &Dir{Metadata: NewMetadata(clk), entries: make(map[string]dirEntry)}
	// The directory's own SELF entry contributes one to its link count
	// (spec §3 "Directories count a link for each subdirectory (\"..\")
	// in addition to their own parent entry").
	d.LinkCount = 1
	return d
}

// MarkRoot makes d a root directory: its own parent, per spec §3/§4.3.
func (d *Dir) MarkRoot() {
	d.isRoot = true
	d.parentID = d.id
}

func (d *Dir) IsRoot() bool        { return d.isRoot }
func (d *Dir) ParentID() uuid.UUID { return d.parentID }

// HasParent reports whether d is linked under some directory (false for
// a freshly created, not-yet-linked directory, and false once detached).
func (d *Dir) HasParent() bool { return d.parentID != uuid.Nil }

// Link adds an entry mapping n to child's id. Fails with AlreadyExists if
// n is already present. If child is a directory, it must not already have
// a parent; its parent is set to d, and d — not child — gains the extra
// link for the child's new "..", which points back at d, per spec §4.3.
func (d *Dir) Link(n name.Name, child Inode) error {
	if _, ok := d.entries[n.Canonical()]; ok {
		return memfserr.Path("Dir.Link", memfserr.AlreadyExists, n.String())
	}

	if childDir, ok := child.(*Dir); ok {
		if childDir.HasParent() {
			return memfserr.New("Dir.Link", memfserr.InvalidArgument)
		}
		childDir.parentID = d.id
		d.LinkCount++ // childDir's new ".." entry points back at d.
	}

	d.entries[n.Canonical()] = dirEntry{Name: n, Child: child.ID()}
	child.Meta().LinkCount++
	return nil
}

// Unlink removes and returns the entry for n. Fails with NotFound if
// absent. It changes no link count: once the caller has resolved the
// child's Inode, it decrements the child's link count itself and, when
// the child is a *Dir, calls DetachChild below to clear its parent
// pointer.
func (d *Dir) Unlink(n name.Name) (uuid.UUID, error) {
	e, ok := d.entries[n.Canonical()]
	if !ok {
		return uuid.Nil, memfserr.Path("Dir.Unlink", memfserr.NotFound, n.String())
	}
	delete(d.entries, n.Canonical())
	return e.Child, nil
}

// DetachChild clears a removed child directory's parent link and drops
// the link count d (the former parent) held for that child's ".." entry.
// Called by the vfs layer immediately after Unlink when the removed
// child is itself a *Dir; the caller decrements the child's own link
// count separately, for the name entry Unlink just removed.
func (d *Dir) DetachChild(child *Dir) {
	child.parentID = uuid.Nil
	d.LinkCount--
}

// PutEntry directly inserts n -> child without touching any link count.
// Used by the vfs layer's Move: relocating an entry to a new name/parent
// is not a new reference, so the reference count it already holds must
// not change.
func (d *Dir) PutEntry(n name.Name, child uuid.UUID) error {
	if _, ok := d.entries[n.Canonical()]; ok {
		return memfserr.Path("Dir.PutEntry", memfserr.AlreadyExists, n.String())
	}
	d.entries[n.Canonical()] = dirEntry{Name: n, Child: child}
	return nil
}

// Reparent updates d's parent pointer without touching its link count.
// Used by the vfs layer's Move when the moved entry is itself a
// directory: its ".." target changes, but that link was already counted
// when the directory was first linked, so the count is unaffected by
// relocating it.
func (d *Dir) Reparent(parentID uuid.UUID) { d.parentID = parentID }

// Get looks up n by canonical name; the zero UUID and false if absent.
func (d *Dir) Get(n name.Name) (uuid.UUID, bool) {
	e, ok := d.entries[n.Canonical()]
	return e.Child, ok
}

// Snapshot returns the set of child names ordered by display string
// (spec §4.3; S6). SELF/PARENT are excluded.
func (d *Dir) Snapshot() []name.Name {
	names := make([]name.Name, 0, len(d.entries))
	for _, e := range d.entries {
		names = append(names, e.Name)
	}
	sort.Sort(name.ByDisplay(names))
	return names
}

// Empty reports whether d has any entries besides the implicit SELF/PARENT.
func (d *Dir) Empty() bool { return len(d.entries) == 0 }

// Len reports the number of explicit entries, excluding SELF/PARENT.
func (d *Dir) Len() int { return len(d.entries) }
