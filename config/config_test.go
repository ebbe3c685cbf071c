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

package config

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/memfs/name"
	"github.com/google/memfs/pathtype"
)

func TestDefaultIsUnixSingleRoot(t *testing.T) {
	c := Default()
	assert.Equal(t, GrammarUnix, c.PathType)
	assert.Equal(t, []string{"/"}, c.Roots)
}

func TestLoadDecodesFromYAML(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
path-type: unix
roots: ["/"]
block-size: 8
max-size: 1000000
max-cache-size: 10000
display-normalization: "nfc"
canonical-normalization: "nfc,casefold-ascii"
path-equality-uses-canonical-form: true
attribute-views: ["basic", "posix"]
read-only: true
`)))

	c, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 8, c.BlockSize)
	assert.Equal(t, int64(1000000), c.MaxSize)
	assert.True(t, c.PathEqualityUsesCanonicalForm)
	assert.True(t, c.ReadOnly)
	assert.Equal(t, NormalizationList{name.NFC}, c.Display)
	assert.Equal(t, NormalizationList{name.NFC, name.CaseFoldASCII}, c.Canonical)
	assert.Equal(t, []string{"basic", "posix"}, c.AttributeViews)
}

func TestNormalizationListRejectsUnknownValue(t *testing.T) {
	var l NormalizationList
	err := l.UnmarshalText([]byte("bogus"))
	assert.Error(t, err)
}

func TestPathGrammarRejectsUnknownValue(t *testing.T) {
	var g PathGrammar
	err := g.UnmarshalText([]byte("plan9"))
	assert.Error(t, err)
}

func TestConfigPathTypeBuildsUnixByDefault(t *testing.T) {
	c := Default()
	pt, err := c.BuildPathType()
	require.NoError(t, err)
	assert.Equal(t, pathtype.Unix, pt)
}

func TestConfigPathTypeBuildsWindows(t *testing.T) {
	c := Default()
	c.PathType = GrammarWindows
	c.Roots = []string{`C:\`}
	pt, err := c.BuildPathType()
	require.NoError(t, err)
	assert.Equal(t, "windows", pt.Name())
}

func TestAttrServiceUnknownViewFails(t *testing.T) {
	c := Default()
	c.AttributeViews = []string{"bogus"}
	_, err := c.AttrService()
	assert.Error(t, err)
}

func TestBindFlagsRootOverridesConfigRoots(t *testing.T) {
	v := viper.New()
	v.SetDefault("roots", []string{"/"})

	fs := pflag.NewFlagSet("memfsctl", pflag.ContinueOnError)
	require.NoError(t, BindFlags(fs, v))
	require.NoError(t, fs.Parse([]string{"--root=/mnt/alt", "--read-only"}))

	c, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, []string{"/mnt/alt"}, c.Roots)
	assert.True(t, c.ReadOnly)
}

func TestAttrServiceBuildsRequestedViews(t *testing.T) {
	c := Default()
	c.AttributeViews = []string{"basic", "unix"}
	svc, err := c.AttrService()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"basic", "unix"}, svc.SupportedFileAttributeViews())
}
