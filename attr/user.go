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

// User is the "user" view: arbitrary caller-chosen key/[]byte pairs
// (spec §4.5 table). It declares no fixed Attributes() — Service
// special-cases the view name "user" to accept any attr key, so a
// User.Attributes() call would never be consulted; it returns nil for
// documentation purposes only.
type User struct{}

func (User) Name() string            { return "user" }
func (User) Inherits() []string      { return nil }
func (User) Attributes() []AttrSpec  { return nil }
func (User) SetInitial(inode.Inode) {}

func (User) Get(f inode.Inode, attr string) (any, bool) {
	v, ok := f.Meta().Attrs["user:"+attr]
	return v, ok
}

func (User) Set(f inode.Inode, attr string, value any) error {
	f.Meta().Attrs["user:"+attr] = value
	return nil
}

func (User) ReadAll(f inode.Inode) map[string]any {
	out := make(map[string]any)
	prefix := "user:"
	for k, v := range f.Meta().Attrs {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			out[k[len(prefix):]] = v
		}
	}
	return out
}
