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

// Package name converts raw path-component strings into comparable,
// hash-stable values. A Name is a (display, canonical) pair: display is
// the form used for printing and directory ordering, canonical is the
// form used for equality and hashing.
package name

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalization selects one transformation applied while deriving a Name's
// display or canonical form.
type Normalization int

const (
	None Normalization = iota
	NFC
	NFD
	CaseFoldUnicode
	CaseFoldASCII
)

// Options configures how raw strings are turned into Names. At most one
// Unicode normalization and at most one case fold may appear in each set,
// matching the configuration surface in spec §6.
type Options struct {
	Display   []Normalization
	Canonical []Normalization
}

// DefaultOptions performs no normalization at all: display and canonical
// are both the raw string, so lookups are exact-byte-match.
var DefaultOptions = Options{}

var foldCaser = cases.Fold()

func apply(raw string, norms []Normalization) string {
	s := raw
	for _, n := range norms {
		switch n {
		case None:
		case NFC:
			s = norm.NFC.String(s)
		case NFD:
			s = norm.NFD.String(s)
		case CaseFoldUnicode:
			s = foldCaser.String(s)
		case CaseFoldASCII:
			// x/text/cases has no ASCII-only fold, so this one branch is
			// a stdlib strings.Map that lowers only A-Z and leaves every
			// other rune, non-ASCII letters included, as it is.
			s = strings.Map(func(r rune) rune {
				if 'A' <= r && r <= 'Z' {
					return r + ('a' - 'A')
				}
				return r
			}, s)
		}
	}
	return s
}

// Name is a normalized path component: Display is used for printing and
// directory ordering (spec §4.3 snapshot()), Canonical is used for
// equality/hashing (directory get/unlink).
type Name struct {
	display   string
	canonical string
}

// New derives a Name from a raw input string under the given options.
// Canonical is a pure function of raw + opts, per spec §3's invariant.
func New(raw string, opts Options) Name {
	return Name{
		display:   apply(raw, opts.Display),
		canonical: apply(raw, opts.Canonical),
	}
}

// Raw builds a Name whose display and canonical forms are both the
// supplied string verbatim; used for the SELF/PARENT/root sentinels,
// which are never subject to normalization.
func Raw(s string) Name {
	return Name{display: s, canonical: s}
}

func (n Name) String() string    { return n.display }
func (n Name) Canonical() string { return n.canonical }
func (n Name) IsZero() bool      { return n.display == "" && n.canonical == "" }

// Equal compares two Names by canonical form.
func (n Name) Equal(o Name) bool { return n.canonical == o.canonical }

// SELF and PARENT are the sentinel names for "." and "..". They compare
// equal to themselves only: a raw component matching their text is
// special-cased by callers (lookup, Dir.link/unlink) before a Name value
// is ever constructed for it, so these exist mainly as comparison targets
// in tests and for rendering.
var (
	SELF   = Raw(".")
	PARENT = Raw("..")
)

// IsSelf and IsParent classify a raw path component before normalization,
// since "." and ".." are syntactic, not subject to case folding or
// Unicode normalization in any path grammar this package supports.
func IsSelf(raw string) bool   { return raw == "." }
func IsParent(raw string) bool { return raw == ".." }

// ByDisplay sorts Names by their display string, ascending. Directory
// snapshot() order is observable (spec §4.3) and uses this order, not
// canonical order.
type ByDisplay []Name

func (b ByDisplay) Len() int           { return len(b) }
func (b ByDisplay) Less(i, j int) bool { return b[i].display < b[j].display }
func (b ByDisplay) Swap(i, j int)      { b[i], b[j] = b[j], b[i] }
