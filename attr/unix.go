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

// Unix is the "unix" view, inheriting posix, adding the attributes a
// FUSE/unix syscall layer needs (spec §4.5 table). nlink and ctime are
// computed, never stored; dev/rdev are always 0 (memfs has no device
// nodes).
type Unix struct {
	DefaultUID, DefaultGID uint32
}

func (Unix) Name() string       { return "unix" }
func (Unix) Inherits() []string { return []string{"posix"} }

func (Unix) Attributes() []AttrSpec {
	return []AttrSpec{
		{Name: "uid", Gettable: true, Settable: true, SettableOnCreate: true, Accepts: isUint32},
		{Name: "gid", Gettable: true, Settable: true, SettableOnCreate: true, Accepts: isUint32},
		{Name: "mode", Gettable: true, Settable: true, SettableOnCreate: true, Accepts: isFileMode},
		{Name: "ino", Gettable: true},
		{Name: "dev", Gettable: true},
		{Name: "nlink", Gettable: true},
		{Name: "rdev", Gettable: true},
		{Name: "ctime", Gettable: true},
	}
}

func (u Unix) SetInitial(f inode.Inode) {
	f.Meta().Attrs["unix:uid"] = u.DefaultUID
	f.Meta().Attrs["unix:gid"] = u.DefaultGID
	mode := os.FileMode(0o644)
	switch f.Kind() {
	case inode.KindDirectory:
		mode = os.ModeDir | 0o755
	case inode.KindSymlink:
		mode = os.ModeSymlink | 0o777
	}
	f.Meta().Attrs["unix:mode"] = mode
}

func (Unix) Get(f inode.Inode, attr string) (any, bool) {
	switch attr {
	case "uid", "gid", "mode":
		v, ok := f.Meta().Attrs["unix:"+attr]
		return v, ok
	case "ino":
		id := f.ID()
		var n uint64
		for _, b := range id[:8] {
			n = n<<8 | uint64(b)
		}
		return n, true
	case "dev", "rdev":
		return uint32(0), true
	case "nlink":
		return f.Meta().LinkCount, true
	case "ctime":
		return f.Meta().CreationTime, true
	default:
		return nil, false
	}
}

func (Unix) Set(f inode.Inode, attr string, value any) error {
	f.Meta().Attrs["unix:"+attr] = value
	return nil
}

func (u Unix) ReadAll(f inode.Inode) map[string]any {
	out := make(map[string]any, 8)
	for _, spec := range u.Attributes() {
		v, _ := u.Get(f, spec.Name)
		out[spec.Name] = v
	}
	return out
}

func isUint32(v any) bool { _, ok := v.(uint32); return ok }
