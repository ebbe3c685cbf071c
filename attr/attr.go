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

// Package attr composes pluggable attribute providers (basic, owner,
// posix, unix, dos, acl, user) into a single service that resolves
// "view:attr" keys against the provider's inheritance chain (spec §4.5).
// The per-file values are backed by inode.Metadata.Attrs; Service.
// ToInodeAttributes (fuse.go) projects the "unix" view into a real
// github.com/jacobsa/fuse/fuseops.InodeAttributes, the shape SPEC_FULL.md
// §3 "Metadata representation" models this package's metadata on.
package attr

import (
	"sort"
	"strings"

	"github.com/google/memfs/inode"
	"github.com/google/memfs/memfserr"
)

// AttrSpec describes one attribute a Provider declares (spec §4.5).
type AttrSpec struct {
	Name             string
	Gettable         bool
	Settable         bool
	SettableOnCreate bool
	// Accepts reports whether a candidate value's runtime type is
	// acceptable for Set. Nil means any type is accepted.
	Accepts func(value any) bool
}

// Provider is one attribute view (spec §4.5).
type Provider interface {
	// Name is the view name, e.g. "basic".
	Name() string

	// Inherits lists other view names this provider proxies.
	Inherits() []string

	// Attributes lists the keys this provider defines. The "user" view is
	// the sole exception: it declares none, since its keys are arbitrary
	// caller-chosen strings (spec §4.5 "user").
	Attributes() []AttrSpec

	// SetInitial applies this view's defaults at file creation.
	SetInitial(f inode.Inode)

	// Get returns the attribute's current value. ok is false if this
	// provider does not currently have a value for attr (e.g. a caller
	// bypassing Attributes() with an attr name this provider never saw).
	Get(f inode.Inode, attr string) (value any, ok bool)

	// Set stores a new value for attr, validated by the caller against
	// Attributes() first.
	Set(f inode.Inode, attr string, value any) error

	// ReadAll returns every attribute this provider itself defines.
	ReadAll(f inode.Inode) map[string]any
}

// userView is the name special-cased for arbitrary key/value attributes
// (spec §4.5 "user": "arbitrary user-defined key/[]byte pairs").
const userView = "user"

// Service is the composed, queryable set of providers, resolved once at
// construction (spec §4.5 "resolved once at filesystem construction").
type Service struct {
	providers map[string]Provider
	chains    map[string][]string // view -> transitive closure, self first
	specs     map[string]map[string]AttrSpec
}

// NewService builds a Service from the given providers. Fails with
// DuplicateView if two providers share a Name.
func NewService(providers ...Provider) (*Service, error) {
	byName := make(map[string]Provider, len(providers))
	for _, p := range providers {
		if _, exists := byName[p.Name()]; exists {
			return nil, memfserr.Path("attr.NewService", memfserr.DuplicateView, p.Name())
		}
		byName[p.Name()] = p
	}

	s := &Service{
		providers: byName,
		chains:    make(map[string][]string, len(byName)),
		specs:     make(map[string]map[string]AttrSpec, len(byName)),
	}
	for name, p := range byName {
		spec := make(map[string]AttrSpec, len(p.Attributes()))
		for _, a := range p.Attributes() {
			spec[a.Name] = a
		}
		s.specs[name] = spec
	}
	for name := range byName {
		s.chains[name] = s.resolveChain(name, make(map[string]bool))
	}
	return s, nil
}

func (s *Service) resolveChain(view string, seen map[string]bool) []string {
	if seen[view] {
		return nil
	}
	seen[view] = true

	chain := []string{view}
	p, ok := s.providers[view]
	if !ok {
		return chain
	}
	for _, parent := range p.Inherits() {
		chain = append(chain, s.resolveChain(parent, seen)...)
	}
	return chain
}

// SupportedFileAttributeViews returns the union of every provider's name.
func (s *Service) SupportedFileAttributeViews() []string {
	views := make([]string, 0, len(s.providers))
	for name := range s.providers {
		views = append(views, name)
	}
	sort.Strings(views)
	return views
}

// ApplyInitial runs every provider's SetInitial over f, at creation time.
func (s *Service) ApplyInitial(f inode.Inode) {
	for _, p := range s.providers {
		p.SetInitial(f)
	}
}

func splitKey(key string) (view, attr string, err error) {
	view, attr, ok := strings.Cut(key, ":")
	if !ok || view == "" || attr == "" {
		return "", "", memfserr.Path("attr", memfserr.IllegalAttribute, key)
	}
	return view, attr, nil
}

// GetAttribute locates view, walks it plus its inherits chain, and
// returns the first provider that reports attr gettable (spec §4.5
// "getAttribute").
func (s *Service) GetAttribute(f inode.Inode, key string) (any, error) {
	view, attr, err := splitKey(key)
	if err != nil {
		return nil, err
	}

	for _, vn := range s.chains[view] {
		p, ok := s.providers[vn]
		if !ok {
			continue
		}
		if vn == userView {
			if v, ok := p.Get(f, attr); ok {
				return v, nil
			}
			continue
		}
		spec, ok := s.specs[vn][attr]
		if !ok || !spec.Gettable {
			continue
		}
		if v, ok := p.Get(f, attr); ok {
			return v, nil
		}
	}
	return nil, memfserr.Path("attr.GetAttribute", memfserr.IllegalAttribute, key)
}

// SetAttribute locates the first provider in view's chain that reports
// attr settable, validates value's type, and applies it (spec §4.5
// "setAttribute"). If onCreate, the provider must also report the
// attribute settable-on-create.
func (s *Service) SetAttribute(f inode.Inode, key string, value any, onCreate bool) error {
	view, attr, err := splitKey(key)
	if err != nil {
		return err
	}

	for _, vn := range s.chains[view] {
		p, ok := s.providers[vn]
		if !ok {
			continue
		}
		if vn == userView {
			if _, ok := value.([]byte); !ok {
				return memfserr.Path("attr.SetAttribute", memfserr.IllegalType, key)
			}
			return p.Set(f, attr, value)
		}

		spec, ok := s.specs[vn][attr]
		if !ok || !spec.Settable {
			continue
		}
		if onCreate && !spec.SettableOnCreate {
			return memfserr.Path("attr.SetAttribute", memfserr.UnsupportedOnCreate, key)
		}
		if spec.Accepts != nil && !spec.Accepts(value) {
			return memfserr.Path("attr.SetAttribute", memfserr.IllegalType, key)
		}
		return p.Set(f, attr, value)
	}
	return memfserr.Path("attr.SetAttribute", memfserr.IllegalAttribute, key)
}

// ReadAttributes parses "view:a,b,c" or "view:*" and returns an ordered
// mapping of attribute name to value (spec §4.5 "readAttributes").
// Mixing "*" with explicit names is an error.
func (s *Service) ReadAttributes(f inode.Inode, pattern string) ([]NamedValue, error) {
	view, rest, ok := strings.Cut(pattern, ":")
	if !ok || view == "" || rest == "" {
		return nil, memfserr.Path("attr.ReadAttributes", memfserr.IllegalAttribute, pattern)
	}

	if rest == "*" {
		return s.readAllInChain(f, view), nil
	}

	names := strings.Split(rest, ",")
	for _, n := range names {
		if n == "*" {
			return nil, memfserr.Path("attr.ReadAttributes", memfserr.IllegalAttribute, pattern)
		}
	}

	out := make([]NamedValue, 0, len(names))
	for _, n := range names {
		v, err := s.GetAttribute(f, view+":"+n)
		if err != nil {
			return nil, err
		}
		out = append(out, NamedValue{Name: n, Value: v})
	}
	return out, nil
}

// NamedValue is one entry of a ReadAttributes result.
type NamedValue struct {
	Name  string
	Value any
}

func (s *Service) readAllInChain(f inode.Inode, view string) []NamedValue {
	seenNames := make(map[string]bool)
	var out []NamedValue
	for _, vn := range s.chains[view] {
		p, ok := s.providers[vn]
		if !ok {
			continue
		}
		all := p.ReadAll(f)
		names := make([]string, 0, len(all))
		for n := range all {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			if seenNames[n] {
				continue
			}
			seenNames[n] = true
			out = append(out, NamedValue{Name: n, Value: all[n]})
		}
	}
	return out
}
