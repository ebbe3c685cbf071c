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

// counter is a reusable "decrement, act on zero" helper, adapted from the
// teacher's lookup-count pattern (fs/inode/lookup_count.go): an Inc/Dec
// pair where Dec reports whether the count reached zero. External
// synchronization (fsLock or fileLock, depending on which counter this
// backs) is required, exactly as in the teacher's version.
type counter struct {
	n uint64
}

func (c *counter) Inc() { c.n++ }

// Dec decrements by one and reports whether the count is now zero.
func (c *counter) Dec() (zero bool) {
	if c.n == 0 {
		panic("inode: counter decremented below zero")
	}
	c.n--
	return c.n == 0
}

func (c *counter) Get() uint64 { return c.n }
