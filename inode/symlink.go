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

import "github.com/google/memfs/internal/clock"

// Symlink holds an immutable target path (spec §3 "Symbolic link", §4.3).
// The target is opaque to inode — lookup interprets it relative to either
// the symlink's own directory or a path type's root, depending on whether
// it is relative or absolute.
type Symlink struct {
	Metadata

	target string
}

var _ Inode = (*Symlink)(nil)

func (s *Symlink) Kind() Kind      { return KindSymlink }
func (s *Symlink) Meta() *Metadata { return &s.Metadata }

// NewSymlink creates a symlink whose target is fixed at creation time;
// spec §9 resolves the open question of mutable targets against POSIX:
// symlink targets are write-once, like every other OS memfs models
// itself on.
func NewSymlink(target string, clk clock.Clock) *Symlink {
	return &Symlink{Metadata: NewMetadata(clk), target: target}
}

// Target returns the literal path text recorded at creation.
func (s *Symlink) Target() string { return s.target }
