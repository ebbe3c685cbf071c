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

import "github.com/google/memfs/inode"

// DOS is the "dos" view: the four legacy Windows file flags, inheriting
// basic (spec §4.5 table).
type DOS struct{}

func (DOS) Name() string       { return "dos" }
func (DOS) Inherits() []string { return []string{"basic"} }

func (DOS) Attributes() []AttrSpec {
	names := []string{"readonly", "hidden", "archive", "system"}
	specs := make([]AttrSpec, len(names))
	for i, n := range names {
		specs[i] = AttrSpec{Name: n, Gettable: true, Settable: true, SettableOnCreate: true, Accepts: isBool}
	}
	return specs
}

func (DOS) SetInitial(f inode.Inode) {
	for _, n := range []string{"readonly", "hidden", "archive", "system"} {
		f.Meta().Attrs["dos:"+n] = false
	}
}

func (DOS) Get(f inode.Inode, attr string) (any, bool) {
	v, ok := f.Meta().Attrs["dos:"+attr]
	return v, ok
}

func (DOS) Set(f inode.Inode, attr string, value any) error {
	f.Meta().Attrs["dos:"+attr] = value
	return nil
}

func (d DOS) ReadAll(f inode.Inode) map[string]any {
	out := make(map[string]any, 4)
	for _, spec := range d.Attributes() {
		v, _ := d.Get(f, spec.Name)
		out[spec.Name] = v
	}
	return out
}

func isBool(v any) bool { _, ok := v.(bool); return ok }
