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

// Package channel implements the per-open-handle position cursor over a
// regular file (spec §4.2/§6 "Channels", L5). Grounded on
// gcsproxy/mutable_content.go's ReadAt/WriteAt pairing with fs/file.go's
// per-handle state pattern: a handle wraps an inode reference plus
// whatever position/flag state is specific to that open, while the
// underlying file object stays handle-agnostic.
package channel

import (
	"io"
	"sync"

	"github.com/google/memfs/inode"
	"github.com/google/memfs/memfserr"
)

// Channel is a seekable, positionable view over a *inode.RegularFile.
// Multiple Channels may be open over the same file concurrently; each
// has its own independent position, guarded by its own mutex, while
// byte-level concurrency safety is provided by the file's own fileLock.
type Channel struct {
	mu       sync.Mutex
	file     *inode.RegularFile
	position int64
	closed   bool
}

var _ io.ReadWriteSeeker = (*Channel)(nil)

// Open wraps f in a new Channel positioned at 0 and registers the open
// handle with f (spec §4.2 "opened()").
func Open(f *inode.RegularFile) *Channel {
	f.Opened()
	return &Channel{file: f}
}

// Read implements io.Reader, advancing the channel's position.
func (c *Channel) Read(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, memfserr.New("Channel.Read", memfserr.InvalidArgument)
	}

	n, err := c.file.Read(c.position, p)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, io.EOF
	}
	c.position += int64(n)
	return n, nil
}

// Write implements io.Writer, advancing the channel's position.
func (c *Channel) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, memfserr.New("Channel.Write", memfserr.InvalidArgument)
	}

	n, err := c.file.Write(c.position, p)
	if err != nil {
		return 0, err
	}
	c.position += int64(n)
	return n, nil
}

// Seek implements io.Seeker.
func (c *Channel) Seek(offset int64, whence int) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = c.position
	case io.SeekEnd:
		base = c.file.Size()
	default:
		return 0, memfserr.New("Channel.Seek", memfserr.InvalidArgument)
	}

	newPos := base + offset
	if newPos < 0 {
		return 0, memfserr.New("Channel.Seek", memfserr.InvalidArgument)
	}
	c.position = newPos
	return newPos, nil
}

// TransferFrom reads exactly count bytes from r and writes them at the
// channel's current position, advancing it by count (spec §4.2
// "transferFrom").
func (c *Channel) TransferFrom(r io.Reader, count int64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, err := c.file.TransferFrom(r, c.position, count)
	c.position += n
	return n, err
}

// TransferTo reads count bytes at the channel's current position and
// writes them to w, advancing the position by the number of bytes
// actually read (spec §4.2 "transferTo").
func (c *Channel) TransferTo(count int64, w io.Writer) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, err := c.file.TransferTo(c.position, count, w)
	c.position += n
	return n, err
}

// Position reports the channel's current offset.
func (c *Channel) Position() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

// Close releases the open handle (spec §4.2 "closed()"). Idempotent.
func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.file.Closed()
	return nil
}
