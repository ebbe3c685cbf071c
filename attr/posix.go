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
	"os"

	"github.com/google/memfs/inode"
)

// Posix is the "posix" view: permission bits and group, inheriting owner
// (spec §4.5 table).
type Posix struct {
	DefaultPermissions os.FileMode
	DefaultGroup       string
}

func (Posix) Name() string       { return "posix" }
func (Posix) Inherits() []string { return []string{"owner"} }

func (Posix) Attributes() []AttrSpec {
	return []AttrSpec{
		{Name: "permissions", Gettable: true, Settable: true, SettableOnCreate: true, Accepts: isFileMode},
		{Name: "group", Gettable: true, Settable: true, SettableOnCreate: true, Accepts: isString},
	}
}

func (p Posix) SetInitial(f inode.Inode) {
	perm := p.DefaultPermissions
	if perm == 0 {
		if f.Kind() == inode.KindDirectory {
			perm = 0o755
		} else {
			perm = 0o644
		}
	}
	f.Meta().Attrs["posix:permissions"] = perm
	f.Meta().Attrs["posix:group"] = p.DefaultGroup
}

func (Posix) Get(f inode.Inode, attr string) (any, bool) {
	v, ok := f.Meta().Attrs["posix:"+attr]
	return v, ok
}

func (Posix) Set(f inode.Inode, attr string, value any) error {
	f.Meta().Attrs["posix:"+attr] = value
	return nil
}

func (p Posix) ReadAll(f inode.Inode) map[string]any {
	perm, _ := p.Get(f, "permissions")
	group, _ := p.Get(f, "group")
	return map[string]any{"permissions": perm, "group": group}
}

func isFileMode(v any) bool { _, ok := v.(os.FileMode); return ok }
