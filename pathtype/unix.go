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

package pathtype

import (
	"fmt"
	"strings"
)

// unixType is the single-root "/" grammar: separator "/", NUL disallowed.
type unixType struct{}

// Unix is the built-in Unix path grammar.
var Unix Type = unixType{}

func (unixType) Name() string   { return "unix" }
func (unixType) Roots() []string { return []string{"/"} }

func (unixType) Parse(raw string) (Path, error) {
	if strings.IndexByte(raw, 0) >= 0 {
		return Path{}, fmt.Errorf("path contains NUL byte: %q", raw)
	}

	p := Path{}
	if strings.HasPrefix(raw, "/") {
		p.Absolute = true
		p.Root = "/"
		raw = raw[1:]
	}
	p.Components = splitOn(raw, "/")
	return p, nil
}

func (unixType) Join(root string, components []string) string {
	var b strings.Builder
	b.WriteString(root)
	b.WriteString(strings.Join(components, "/"))
	return b.String()
}
