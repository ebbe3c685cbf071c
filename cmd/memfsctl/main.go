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

// Command memfsctl is the CLI/configuration-plumbing collaborator named
// out-of-scope for the core in spec §1: it loads a config.Config, builds
// a vfs.FileSystem from it, and runs a small scripted session against it
// for manual smoke-testing. Grounded on cmd/root.go's cobra.Command
// structure, kept thin on purpose.
package main

import (
	"os"

	"github.com/google/memfs/internal/logger"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Errorf("memfsctl: %v", err)
		os.Exit(1)
	}
}
