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

package inode

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/google/memfs/disk"
	"github.com/google/memfs/internal/clock"
	"github.com/google/memfs/memfserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDisk() *disk.Disk {
	return disk.New(4, 1<<20, 1<<20, nil)
}

func TestReadPastEndOfFile(t *testing.T) {
	f := NewRegularFile(newTestDisk(), clock.NewFake(clock.Real().Now()))

	n, err := f.Write(0, []byte("hi"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	dst := make([]byte, 4)
	n, err = f.Read(2, dst)
	require.NoError(t, err)
	assert.Equal(t, -1, n)
}

// S2: a write starting beyond the current size zero-fills the gap.
func TestWriteZeroFillsGap(t *testing.T) {
	f := NewRegularFile(newTestDisk(), clock.NewFake(clock.Real().Now()))

	_, err := f.Write(0, []byte("ab"))
	require.NoError(t, err)

	_, err = f.Write(6, []byte("cd"))
	require.NoError(t, err)

	require.Equal(t, int64(8), f.Size())

	dst := make([]byte, 8)
	n, err := f.Read(0, dst)
	require.NoError(t, err)
	require.Equal(t, 8, n)

	assert.Equal(t, "ab\x00\x00\x00\x00cd", string(dst))
}

func TestTruncateShrinkFreesBlocks(t *testing.T) {
	d := newTestDisk()
	f := NewRegularFile(d, clock.NewFake(clock.Real().Now()))

	_, err := f.Write(0, bytes.Repeat([]byte{1}, 16))
	require.NoError(t, err)
	require.Equal(t, int64(16), d.Stats().AllocatedBytes)

	require.NoError(t, f.Truncate(5))
	assert.Equal(t, int64(5), f.Size())
	assert.Equal(t, int64(8), d.Stats().AllocatedBytes)
}

func TestTruncateGrowIsNoop(t *testing.T) {
	f := NewRegularFile(newTestDisk(), clock.NewFake(clock.Real().Now()))

	_, err := f.Write(0, []byte("ab"))
	require.NoError(t, err)

	require.NoError(t, f.Truncate(100))
	assert.Equal(t, int64(2), f.Size(), "Truncate only shrinks, per spec")
}

func TestTransferFromAndTo(t *testing.T) {
	f := NewRegularFile(newTestDisk(), clock.NewFake(clock.Real().Now()))

	n, err := f.TransferFrom(strings.NewReader("hello"), 0, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	var out bytes.Buffer
	n, err = f.TransferTo(0, 5, &out)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	assert.Equal(t, "hello", out.String())
}

// shortReader yields data, then fails on whatever read would cross the
// end of data.
type shortReader struct {
	data []byte
	pos  int
}

func (r *shortReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.ErrClosedPipe
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	if n < len(p) {
		return n, io.ErrUnexpectedEOF
	}
	return n, nil
}

// A reader that fails partway through a transfer leaves size advanced
// only up to the last fully read, block-aligned chunk already committed
// via writeLocked — not zero, and not the bytes the failing chunk read.
func TestTransferFromShortReadCommitsCompleteChunks(t *testing.T) {
	f := NewRegularFile(newTestDisk(), clock.NewFake(clock.Real().Now())) // block size 4

	r := &shortReader{data: []byte("abcdef")}
	n, err := f.TransferFrom(r, 0, 9)
	require.Error(t, err)
	assert.True(t, memfserr.Is(err, memfserr.InvalidArgument))
	assert.Equal(t, int64(4), n, "only the first full 4-byte chunk committed")
	assert.Equal(t, int64(4), f.Size())

	dst := make([]byte, 4)
	readN, err := f.Read(0, dst)
	require.NoError(t, err)
	require.Equal(t, 4, readN)
	assert.Equal(t, "abcd", string(dst))
}

// S5: deleting a file while it has an open handle keeps its blocks
// allocated until the handle closes.
func TestDeleteWhileOpenKeepsBlocksUntilClose(t *testing.T) {
	d := newTestDisk()
	f := NewRegularFile(d, clock.NewFake(clock.Real().Now()))

	_, err := f.Write(0, []byte("data"))
	require.NoError(t, err)

	f.Opened()
	f.Deleted()
	assert.Equal(t, int64(4), d.Stats().AllocatedBytes, "blocks must survive while a handle is open")

	f.Closed()
	assert.Equal(t, int64(0), d.Stats().AllocatedBytes, "blocks freed once the last handle closes")
}

func TestDeletedWithNoOpenHandlesFreesImmediately(t *testing.T) {
	d := newTestDisk()
	f := NewRegularFile(d, clock.NewFake(clock.Real().Now()))

	_, err := f.Write(0, []byte("data"))
	require.NoError(t, err)

	f.Deleted()
	assert.Equal(t, int64(0), d.Stats().AllocatedBytes)
}

func TestCopyProducesIndependentBlocks(t *testing.T) {
	f := NewRegularFile(newTestDisk(), clock.NewFake(clock.Real().Now()))
	_, err := f.Write(0, []byte("orig"))
	require.NoError(t, err)

	cp, err := f.Copy(clock.Real())
	require.NoError(t, err)

	_, err = f.Write(0, []byte("modi"))
	require.NoError(t, err)

	dst := make([]byte, 4)
	_, err = cp.Read(0, dst)
	require.NoError(t, err)
	assert.Equal(t, "orig", string(dst), "copy must not share blocks with the source")
}

func TestWriteOutOfSpaceLeavesSizeUnchanged(t *testing.T) {
	d := disk.New(4, 4, 4, nil)
	f := NewRegularFile(d, clock.NewFake(clock.Real().Now()))

	_, err := f.Write(0, []byte("ab"))
	require.NoError(t, err)

	_, err = f.Write(4, []byte("toolong"))
	require.Error(t, err)
	assert.True(t, memfserr.Is(err, memfserr.OutOfSpace))
	assert.Equal(t, int64(2), f.Size())
}
