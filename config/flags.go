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
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// BindFlags registers the handful of options worth overriding from the
// command line directly on flagSet and binds each to v, so a flag value
// wins over the config file for that key (viper's normal precedence).
// Everything else stays file-only; memfsctl is a smoke-test harness, not
// a full CLI surface.
func BindFlags(flagSet *pflag.FlagSet, v *viper.Viper) error {
	flagSet.String("root", "", "filesystem root to use, overriding roots[0] in the config file")
	if err := v.BindPFlag("roots", flagSet.Lookup("root")); err != nil {
		return err
	}

	flagSet.Bool("read-only", false, "mount the filesystem read-only")
	if err := v.BindPFlag("read-only", flagSet.Lookup("read-only")); err != nil {
		return err
	}

	return nil
}
