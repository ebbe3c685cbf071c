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

package vfs

import (
	"sync"
	"weak"

	"github.com/google/memfs/memfserr"
	"github.com/google/uuid"
)

// Registry is the process-wide id -> filesystem handle mapping (Design
// Note "Global mutable state"). It holds weak references, so a
// filesystem a caller forgot to Close is still collected once nothing
// else reaches it; Lookup after collection surfaces NotFound rather than
// a stale handle.
type Registry struct {
	m sync.Map // uuid.UUID -> weak.Pointer[FileSystem]
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry { return &Registry{} }

// Register adds fs under its own ID, returning that ID.
func (r *Registry) Register(fs *FileSystem) uuid.UUID {
	r.m.Store(fs.id, weak.Make(fs))
	return fs.id
}

// Lookup resolves id to its FileSystem, failing with NotFound if no
// filesystem was ever registered under id, or if the one that was has
// since been collected.
func (r *Registry) Lookup(id uuid.UUID) (*FileSystem, error) {
	v, ok := r.m.Load(id)
	if !ok {
		return nil, memfserr.New("Registry.Lookup", memfserr.NotFound)
	}
	ptr := v.(weak.Pointer[FileSystem])
	fs := ptr.Value()
	if fs == nil {
		r.m.Delete(id)
		return nil, memfserr.New("Registry.Lookup", memfserr.NotFound)
	}
	return fs, nil
}

// Forget removes id's entry, e.g. on an explicit Close.
func (r *Registry) Forget(id uuid.UUID) { r.m.Delete(id) }
