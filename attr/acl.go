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

// ACLEntry is one entry of an ACL's ordered entry list.
type ACLEntry struct {
	Principal   string
	Permissions string
}

// ACL is the "acl" view: an ordered list of entries, inheriting owner
// (spec §4.5 table).
type ACL struct{}

func (ACL) Name() string       { return "acl" }
func (ACL) Inherits() []string { return []string{"owner"} }

func (ACL) Attributes() []AttrSpec {
	return []AttrSpec{
		{Name: "acl", Gettable: true, Settable: true, SettableOnCreate: true, Accepts: isACLEntries},
	}
}

func (ACL) SetInitial(f inode.Inode) {
	f.Meta().Attrs["acl:acl"] = []ACLEntry(nil)
}

func (ACL) Get(f inode.Inode, attr string) (any, bool) {
	if attr != "acl" {
		return nil, false
	}
	v, ok := f.Meta().Attrs["acl:acl"]
	return v, ok
}

func (ACL) Set(f inode.Inode, attr string, value any) error {
	f.Meta().Attrs["acl:acl"] = value
	return nil
}

func (a ACL) ReadAll(f inode.Inode) map[string]any {
	v, _ := a.Get(f, "acl")
	return map[string]any{"acl": v}
}

func isACLEntries(v any) bool { _, ok := v.([]ACLEntry); return ok }
