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

package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/google/memfs/config"
	"github.com/google/memfs/internal/clock"
	"github.com/google/memfs/vfs"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "memfsctl",
	Short: "Build an in-memory filesystem from a config file and run a scripted smoke session",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viper.New()
		if cfgFile != "" {
			v.SetConfigFile(cfgFile)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("memfsctl: reading config: %w", err)
			}
		}

		if err := config.BindFlags(cmd.Flags(), v); err != nil {
			return fmt.Errorf("memfsctl: binding flags: %w", err)
		}

		cfg, err := config.Load(v)
		if err != nil {
			return err
		}

		pathType, err := cfg.BuildPathType()
		if err != nil {
			return err
		}
		attrs, err := cfg.AttrService()
		if err != nil {
			return err
		}

		fs := vfs.New(vfs.Config{
			PathType:       pathType,
			Names:          cfg.Names(),
			Attrs:          attrs,
			Clock:          clock.Real(),
			BlockSize:      cfg.BlockSize,
			MaxTotalBytes:  cfg.MaxSize,
			MaxCachedBytes: cfg.MaxCacheSize,
			ReadOnly:       cfg.ReadOnly,
			Metrics:        prometheus.NewRegistry(),
		})
		defer fs.Close()

		return runSmokeSession(cmd, fs, pathType.Roots()[0])
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML/JSON/TOML config file")
}
