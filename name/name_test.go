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

package name

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaseFoldASCIICanonical(t *testing.T) {
	opts := Options{Canonical: []Normalization{CaseFoldASCII}}

	foo := New("FOO", opts)
	bar := New("foo", opts)

	assert.True(t, foo.Equal(bar))
	assert.Equal(t, "FOO", foo.String())
}

func TestDefaultOptionsExactMatch(t *testing.T) {
	a := New("FOO", DefaultOptions)
	b := New("foo", DefaultOptions)

	assert.False(t, a.Equal(b))
}

// S6: snapshot() ordering is by display, not canonical.
func TestByDisplayOrdering(t *testing.T) {
	opts := Options{Canonical: []Normalization{CaseFoldASCII}}
	names := []Name{New("bar", opts), New("FOO", opts)}

	sort.Sort(ByDisplay(names))

	assert.Equal(t, "FOO", names[0].String())
	assert.Equal(t, "bar", names[1].String())
}

func TestIsSelfParent(t *testing.T) {
	assert.True(t, IsSelf("."))
	assert.True(t, IsParent(".."))
	assert.False(t, IsSelf(".."))
	assert.False(t, IsParent("foo"))
}

func TestNFCCanonical(t *testing.T) {
	// U+00E9 (single codepoint) vs U+0065 U+0301 (decomposed), same glyph.
	nfc := "é"
	nfd := "é"

	opts := Options{Canonical: []Normalization{NFC}}
	a := New(nfc, opts)
	b := New(nfd, opts)

	assert.True(t, a.Equal(b))
}
