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

package attr

import (
	"github.com/google/memfs/inode"
)

// Basic is the "basic" view: the read-only attributes every file has
// regardless of platform (spec §4.5 table). It has no inherits and no
// settable attributes.
type Basic struct{}

func (Basic) Name() string     { return "basic" }
func (Basic) Inherits() []string { return nil }

func (Basic) Attributes() []AttrSpec {
	names := []string{"size", "isDirectory", "isRegularFile", "isSymbolicLink",
		"creationTime", "lastAccessTime", "lastModifiedTime", "fileKey"}
	specs := make([]AttrSpec, len(names))
	for i, n := range names {
		specs[i] = AttrSpec{Name: n, Gettable: true}
	}
	return specs
}

// SetInitial is a no-op: every basic attribute is computed from the
// Inode itself, never stored.
func (Basic) SetInitial(inode.Inode) {}

func (Basic) Get(f inode.Inode, attr string) (any, bool) {
	switch attr {
	case "size":
		if rf, ok := f.(*inode.RegularFile); ok {
			return rf.Size(), true
		}
		return int64(0), true
	case "isDirectory":
		return f.Kind() == inode.KindDirectory, true
	case "isRegularFile":
		return f.Kind() == inode.KindRegularFile, true
	case "isSymbolicLink":
		return f.Kind() == inode.KindSymlink, true
	case "creationTime":
		return f.Meta().CreationTime, true
	case "lastAccessTime":
		return f.Meta().LastAccessTime, true
	case "lastModifiedTime":
		return f.Meta().LastModifiedTime, true
	case "fileKey":
		return f.ID(), true
	default:
		return nil, false
	}
}

func (Basic) Set(f inode.Inode, attr string, value any) error {
	// Unreachable: Attributes() reports every basic attribute as
	// non-settable, so Service.SetAttribute never resolves here.
	return nil
}

func (b Basic) ReadAll(f inode.Inode) map[string]any {
	out := make(map[string]any, 8)
	for _, spec := range b.Attributes() {
		v, _ := b.Get(f, spec.Name)
		out[spec.Name] = v
	}
	return out
}
