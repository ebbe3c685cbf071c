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
	"io"

	"github.com/spf13/cobra"

	"github.com/google/memfs/vfs"
)

// runSmokeSession exercises create/write/read/ls against a freshly built
// filesystem, printing what it did. This is manual smoke-testing, not a
// substitute for the vfs package's own tests.
func runSmokeSession(cmd *cobra.Command, fs *vfs.FileSystem, root string) error {
	wd, err := fs.Root(root)
	if err != nil {
		return err
	}

	const path = "hello.txt"
	f, err := fs.CreateFile(wd, path)
	if err != nil {
		return fmt.Errorf("memfsctl: create %s: %w", path, err)
	}
	cmd.Printf("created %s\n", path)

	c := fs.OpenChannel(f)
	defer c.Close()

	msg := "hello from memfsctl\n"
	if _, err := c.Write([]byte(msg)); err != nil {
		return fmt.Errorf("memfsctl: write %s: %w", path, err)
	}
	cmd.Printf("wrote %d bytes\n", len(msg))

	if _, err := c.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("memfsctl: seek %s: %w", path, err)
	}
	buf := make([]byte, len(msg))
	if _, err := io.ReadFull(c, buf); err != nil {
		return fmt.Errorf("memfsctl: read %s: %w", path, err)
	}
	cmd.Printf("read back: %q\n", string(buf))

	dh := fs.OpenDir(wd)
	defer dh.Close()
	cmd.Println("ls:")
	for {
		n, ok := dh.Next()
		if !ok {
			break
		}
		cmd.Printf("  %s\n", n.String())
	}
	return nil
}
