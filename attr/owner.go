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

// Owner is the "owner" view: a single principal name (spec §4.5 table).
type Owner struct {
	// Default is the owner assigned at file creation absent an explicit
	// setAttribute(onCreate=true) call.
	Default string
}

func (Owner) Name() string       { return "owner" }
func (Owner) Inherits() []string { return nil }

func (Owner) Attributes() []AttrSpec {
	return []AttrSpec{
		{Name: "owner", Gettable: true, Settable: true, SettableOnCreate: true, Accepts: isString},
	}
}

func (o Owner) SetInitial(f inode.Inode) {
	f.Meta().Attrs["owner:owner"] = o.Default
}

func (Owner) Get(f inode.Inode, attr string) (any, bool) {
	if attr != "owner" {
		return nil, false
	}
	v, ok := f.Meta().Attrs["owner:owner"]
	return v, ok
}

func (Owner) Set(f inode.Inode, attr string, value any) error {
	f.Meta().Attrs["owner:owner"] = value
	return nil
}

func (o Owner) ReadAll(f inode.Inode) map[string]any {
	v, _ := o.Get(f, "owner")
	return map[string]any{"owner": v}
}

func isString(v any) bool { _, ok := v.(string); return ok }
