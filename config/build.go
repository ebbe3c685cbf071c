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
	"fmt"

	"github.com/google/memfs/attr"
	"github.com/google/memfs/pathtype"
)

// BuildPathType resolves c's grammar selection and roots into a
// pathtype.Type.
func (c Config) BuildPathType() (pathtype.Type, error) {
	switch c.PathType {
	case GrammarWindows:
		return pathtype.NewWindows(c.Roots), nil
	case GrammarUnix, "":
		return pathtype.Unix, nil
	default:
		return nil, fmt.Errorf("config: unknown path grammar %q", c.PathType)
	}
}

var attrProviders = map[string]attr.Provider{
	"basic": attr.Basic{},
	"owner": attr.Owner{},
	"posix": attr.Posix{},
	"unix":  attr.Unix{},
	"dos":   attr.DOS{},
	"acl":   attr.ACL{},
	"user":  attr.User{},
}

// AttrService builds the attr.Service naming exactly c.AttributeViews, in
// the order given.
func (c Config) AttrService() (*attr.Service, error) {
	providers := make([]attr.Provider, 0, len(c.AttributeViews))
	for _, view := range c.AttributeViews {
		p, ok := attrProviders[view]
		if !ok {
			return nil, fmt.Errorf("config: unknown attribute view %q", view)
		}
		providers = append(providers, p)
	}
	return attr.NewService(providers...)
}
