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

package vfs

import (
	"sync"

	"github.com/google/memfs/internal/logger"
	"github.com/google/memfs/watch"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Close iterates every handle registered with fs (channels, directory
// handles) and closes them concurrently via errgroup (spec §5 "Resource
// manager": "aggregating thrown errors (first kept as primary; remainder
// suppressed)"). The first error is returned; the rest are logged at
// WARNING and otherwise discarded.
func (fs *FileSystem) Close() error {
	fs.fsLock.Lock()
	handles := make([]Closer, 0, len(fs.handles))
	for _, c := range fs.handles {
		handles = append(handles, c)
	}
	fs.handles = make(map[uuid.UUID]Closer)

	for _, w := range fs.watchers {
		w.Close()
	}
	fs.watchers = make(map[uuid.UUID]*watch.Dir)
	fs.fsLock.Unlock()

	var g errgroup.Group
	var firstErr error
	var firstErrSet bool
	var mu sync.Mutex

	for _, c := range handles {
		c := c
		g.Go(func() error {
			err := c.Close()
			if err != nil {
				mu.Lock()
				if !firstErrSet {
					firstErr = err
					firstErrSet = true
				} else {
					logger.Warnf("vfs: suppressing handle close error: %v", err)
				}
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return firstErr
}
