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

// Package pathtype injects a path grammar (Unix, Windows, or a custom
// test grammar) into the path-lookup algorithm, which is otherwise
// generic over it (spec §6).
package pathtype

import "strings"

// Path is a parsed path: an optional root (empty for a relative path) and
// the sequence of raw, not-yet-normalized component strings between
// separators.
type Path struct {
	Root       string
	Components []string
	Absolute   bool
}

// Type is an injected path grammar.
type Type interface {
	// Name identifies the grammar, e.g. "unix" or "windows".
	Name() string

	// Roots returns the configured root strings, e.g. ["/"] for Unix or
	// ["C:\\", "D:\\"] for a multi-root Windows configuration.
	Roots() []string

	// Parse splits raw into a Path. It does not consult the filesystem;
	// it is pure syntax.
	Parse(raw string) (Path, error)

	// Join renders root plus components back into a single string in
	// this grammar's own separator convention.
	Join(root string, components []string) string
}

// splitOn splits s on any of the given separator bytes, dropping empty
// components (so "a//b" and "a/b" parse identically, matching typical
// POSIX shell and Win32 path semantics).
func splitOn(s string, seps string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(seps, s[i]) >= 0 {
			if i > start {
				parts = append(parts, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}
