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

// Package config is the decoded form of memfs's configuration surface
// (spec §6: path grammar, roots, working directory, normalization sets,
// attribute views, disk sizing, supported features). Grounded on
// cfg/types.go's custom scalar types (Octal, Protocol, LogSeverity) with
// UnmarshalText hooks plus cfg/decode_hook.go's
// mapstructure.ComposeDecodeHookFunc chain; Load mirrors cfg/config.go's
// viper-driven decode.
package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/google/memfs/name"
)

// PathGrammar selects which pathtype.Type a Config builds.
type PathGrammar string

const (
	GrammarUnix    PathGrammar = "unix"
	GrammarWindows PathGrammar = "windows"
)

func (g *PathGrammar) UnmarshalText(text []byte) error {
	v := PathGrammar(strings.ToLower(string(text)))
	switch v {
	case GrammarUnix, GrammarWindows:
		*g = v
		return nil
	default:
		return fmt.Errorf("config: invalid path grammar %q, want %q or %q", text, GrammarUnix, GrammarWindows)
	}
}

// NormalizationList is a comma-separated list of name.Normalization
// values as they appear in a config file, e.g. "nfc,casefold-ascii".
type NormalizationList []name.Normalization

var normalizationNames = map[string]name.Normalization{
	"none":             name.None,
	"nfc":              name.NFC,
	"nfd":              name.NFD,
	"casefold-unicode": name.CaseFoldUnicode,
	"casefold-ascii":   name.CaseFoldASCII,
}

func (l *NormalizationList) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*l = nil
		return nil
	}
	var out NormalizationList
	for _, part := range strings.Split(s, ",") {
		n, ok := normalizationNames[strings.TrimSpace(strings.ToLower(part))]
		if !ok {
			return fmt.Errorf("config: invalid normalization %q", part)
		}
		out = append(out, n)
	}
	*l = out
	return nil
}

// Config is the canonical Go struct for spec §6's configuration surface.
type Config struct {
	// PathType selects the injected path grammar (pathType in spec §6).
	PathType PathGrammar `mapstructure:"path-type"`
	// Roots are the configured root strings (e.g. ["/"] for Unix,
	// ["C:\\"] for a single-drive Windows configuration).
	Roots []string `mapstructure:"roots"`
	// WorkingDirectory is the root-relative path callers resolve
	// relative paths against if they don't track their own handle.
	WorkingDirectory string `mapstructure:"working-directory"`

	// Display and Canonical select the name.Options normalization sets
	// applied to every path component.
	Display   NormalizationList `mapstructure:"display-normalization"`
	Canonical NormalizationList `mapstructure:"canonical-normalization"`

	// PathEqualityUsesCanonicalForm, when true, means isSameFile and
	// friends compare paths by canonical (normalized) form rather than
	// requiring identical raw text before resolution.
	PathEqualityUsesCanonicalForm bool `mapstructure:"path-equality-uses-canonical-form"`

	// AttributeViews lists the attribute views a filesystem supports,
	// e.g. ["basic", "posix", "unix", "dos", "acl", "user"].
	AttributeViews []string `mapstructure:"attribute-views"`

	// BlockSize, MaxSize, MaxCacheSize configure the backing disk.
	BlockSize    int   `mapstructure:"block-size"`
	MaxSize      int64 `mapstructure:"max-size"`
	MaxCacheSize int64 `mapstructure:"max-cache-size"`

	// SupportedFeatures advertises optional behavior to collaborators
	// (e.g. "atomic-move", "hard-links").
	SupportedFeatures []string `mapstructure:"supported-features"`

	// ReadOnly rejects every mutating vfs operation (SPEC_FULL.md
	// "Read-only filesystems").
	ReadOnly bool `mapstructure:"read-only"`
}

// Default returns the configuration memfsctl uses absent any file or
// flag overrides: a Unix grammar rooted at "/", no normalization (exact
// byte-match lookups), every built-in attribute view, and a generous
// in-memory disk.
func Default() Config {
	return Config{
		PathType:     GrammarUnix,
		Roots:        []string{"/"},
		BlockSize:    4096,
		MaxSize:      1 << 30,
		MaxCacheSize: 1 << 20,
		AttributeViews: []string{
			"basic", "owner", "posix", "unix", "dos", "acl", "user",
		},
	}
}

// decodeHook composes mapstructure's TextUnmarshaler hook (which drives
// the UnmarshalText methods above) with its comma-separated
// string-to-slice hook, matching cfg/decode_hook.go's
// ComposeDecodeHookFunc chain.
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// Load reads configuration from v (already pointed at a file via
// SetConfigFile/AddConfigPath, or populated from bound flags/env) on top
// of Default, decoding through decodeHook.
func Load(v *viper.Viper) (Config, error) {
	cfg := Default()
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHook())); err != nil {
		return Config{}, fmt.Errorf("config: decoding: %w", err)
	}
	return cfg, nil
}

// Names builds the name.Options this configuration selects.
func (c Config) Names() name.Options {
	return name.Options{
		Display:   []name.Normalization(c.Display),
		Canonical: []name.Normalization(c.Canonical),
	}
}
