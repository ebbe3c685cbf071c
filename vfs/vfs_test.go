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
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/memfs/attr"
	"github.com/google/memfs/inode"
	"github.com/google/memfs/internal/clock"
	"github.com/google/memfs/memfserr"
	"github.com/google/memfs/name"
	"github.com/google/memfs/pathtype"
	"github.com/google/memfs/watch"
)

func newTestFS(t *testing.T) (*FileSystem, *inode.Dir) {
	t.Helper()
	svc, err := attr.NewService(attr.Basic{}, attr.Owner{}, attr.Posix{}, attr.Unix{}, attr.DOS{}, attr.ACL{}, attr.User{})
	require.NoError(t, err)

	fs := New(Config{
		PathType:       pathtype.Unix,
		Names:          name.DefaultOptions,
		Attrs:          svc,
		Clock:          clock.NewFake(time.Unix(0, 0)),
		BlockSize:      4,
		MaxTotalBytes:  1 << 20,
		MaxCachedBytes: 1 << 20,
	})
	root, err := fs.Root("/")
	require.NoError(t, err)
	return fs, root
}

func TestCreateFileThenOpenReturnsSameFile(t *testing.T) {
	fs, root := newTestFS(t)

	created, err := fs.CreateFile(root, "/a.txt")
	require.NoError(t, err)

	opened, err := fs.Open(root, "/a.txt", OpenOptions{})
	require.NoError(t, err)
	assert.Equal(t, created.ID(), opened.ID())
}

func TestCreateFileDuplicateFails(t *testing.T) {
	fs, root := newTestFS(t)

	_, err := fs.CreateFile(root, "/a.txt")
	require.NoError(t, err)

	_, err = fs.CreateFile(root, "/a.txt")
	assert.True(t, memfserr.Is(err, memfserr.AlreadyExists))
}

func TestOpenMissingWithoutCreateFails(t *testing.T) {
	fs, root := newTestFS(t)

	_, err := fs.Open(root, "/missing.txt", OpenOptions{})
	assert.True(t, memfserr.Is(err, memfserr.NotFound))
}

func TestOpenCreateNewTwiceFails(t *testing.T) {
	fs, root := newTestFS(t)

	_, err := fs.Open(root, "/a.txt", OpenOptions{CreateNew: true})
	require.NoError(t, err)

	_, err = fs.Open(root, "/a.txt", OpenOptions{CreateNew: true})
	assert.True(t, memfserr.Is(err, memfserr.AlreadyExists))
}

func TestOpenWriteTruncateShrinksExisting(t *testing.T) {
	fs, root := newTestFS(t)

	f, err := fs.CreateFile(root, "/a.txt")
	require.NoError(t, err)
	_, err = f.Write(0, []byte("hello"))
	require.NoError(t, err)

	f2, err := fs.Open(root, "/a.txt", OpenOptions{Write: true, Truncate: true})
	require.NoError(t, err)
	assert.Equal(t, int64(0), f2.Size())
}

func TestMkdirThenLookupChild(t *testing.T) {
	fs, root := newTestFS(t)

	d, err := fs.Mkdir(root, "/sub")
	require.NoError(t, err)
	assert.True(t, d.Empty())

	same, err := fs.IsSameFile(root, "/sub", root, "/sub")
	require.NoError(t, err)
	assert.True(t, same)
}

func TestMkdirDuplicateFails(t *testing.T) {
	fs, root := newTestFS(t)

	_, err := fs.Mkdir(root, "/sub")
	require.NoError(t, err)
	_, err = fs.Mkdir(root, "/sub")
	assert.True(t, memfserr.Is(err, memfserr.AlreadyExists))
}

func TestSymlinkCreateAndRead(t *testing.T) {
	fs, root := newTestFS(t)

	_, err := fs.Symlink(root, "/link", "/target")
	require.NoError(t, err)

	target, err := fs.ReadSymlink(root, "/link")
	require.NoError(t, err)
	assert.Equal(t, "/target", target)
}

func TestReadSymlinkOnRegularFileFails(t *testing.T) {
	fs, root := newTestFS(t)

	_, err := fs.CreateFile(root, "/a.txt")
	require.NoError(t, err)

	_, err = fs.ReadSymlink(root, "/a.txt")
	assert.True(t, memfserr.Is(err, memfserr.IllegalType))
}

func TestLinkCreatesSecondNameForSameFile(t *testing.T) {
	fs, root := newTestFS(t)

	f, err := fs.CreateFile(root, "/a.txt")
	require.NoError(t, err)
	require.NoError(t, fs.Link(root, "/a.txt", root, "/b.txt"))

	same, err := fs.IsSameFile(root, "/a.txt", root, "/b.txt")
	require.NoError(t, err)
	assert.True(t, same)
	assert.EqualValues(t, 2, f.LinkCount)
}

func TestLinkOfDirectoryFails(t *testing.T) {
	fs, root := newTestFS(t)

	_, err := fs.Mkdir(root, "/sub")
	require.NoError(t, err)

	err = fs.Link(root, "/sub", root, "/sub2")
	assert.True(t, memfserr.Is(err, memfserr.IsADirectory))
}

func TestDeleteRegularFileFreesNameImmediatelyWhenUnopen(t *testing.T) {
	fs, root := newTestFS(t)

	_, err := fs.CreateFile(root, "/a.txt")
	require.NoError(t, err)
	require.NoError(t, fs.Delete(root, "/a.txt"))

	_, err = fs.Open(root, "/a.txt", OpenOptions{})
	assert.True(t, memfserr.Is(err, memfserr.NotFound))
}

func TestDeleteNonEmptyDirectoryFails(t *testing.T) {
	fs, root := newTestFS(t)

	_, err := fs.Mkdir(root, "/sub")
	require.NoError(t, err)
	_, err = fs.CreateFile(root, "/sub/a.txt")
	require.NoError(t, err)

	err = fs.Delete(root, "/sub")
	assert.True(t, memfserr.Is(err, memfserr.NotEmpty))
}

func TestDeleteEmptyDirectorySucceeds(t *testing.T) {
	fs, root := newTestFS(t)

	_, err := fs.Mkdir(root, "/sub")
	require.NoError(t, err)
	require.NoError(t, fs.Delete(root, "/sub"))

	_, err = fs.Mkdir(root, "/sub")
	assert.NoError(t, err)
}

func TestDeleteDirectoryRestoresParentLinkCount(t *testing.T) {
	fs, root := newTestFS(t)
	before := root.LinkCount

	_, err := fs.Mkdir(root, "/sub")
	require.NoError(t, err)
	assert.Equal(t, before+1, root.LinkCount)

	require.NoError(t, fs.Delete(root, "/sub"))
	assert.Equal(t, before, root.LinkCount)
}

func TestCopyProducesIndependentFile(t *testing.T) {
	fs, root := newTestFS(t)

	orig, err := fs.CreateFile(root, "/a.txt")
	require.NoError(t, err)
	_, err = orig.Write(0, []byte("hello"))
	require.NoError(t, err)

	cp, err := fs.Copy(root, "/a.txt", root, "/b.txt")
	require.NoError(t, err)
	assert.NotEqual(t, orig.ID(), cp.ID())

	_, err = cp.Write(0, []byte("HELLO"))
	require.NoError(t, err)

	buf := make([]byte, 5)
	_, err = orig.Read(0, buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf))
}

func TestCopyOfDirectoryFails(t *testing.T) {
	fs, root := newTestFS(t)

	_, err := fs.Mkdir(root, "/sub")
	require.NoError(t, err)

	_, err = fs.Copy(root, "/sub", root, "/sub2")
	assert.True(t, memfserr.Is(err, memfserr.IllegalType))
}

func TestMoveRenameWithinSameDirectory(t *testing.T) {
	fs, root := newTestFS(t)

	_, err := fs.CreateFile(root, "/a.txt")
	require.NoError(t, err)
	require.NoError(t, fs.Move(root, "/a.txt", root, "/b.txt"))

	_, err = fs.Open(root, "/a.txt", OpenOptions{})
	assert.True(t, memfserr.Is(err, memfserr.NotFound))
	_, err = fs.Open(root, "/b.txt", OpenOptions{})
	assert.NoError(t, err)
}

func TestMoveDirectoryAcrossParents(t *testing.T) {
	fs, root := newTestFS(t)

	src, err := fs.Mkdir(root, "/src")
	require.NoError(t, err)
	dst, err := fs.Mkdir(root, "/dst")
	require.NoError(t, err)
	_, err = fs.Mkdir(root, "/src/child")
	require.NoError(t, err)

	require.NoError(t, fs.Move(root, "/src/child", root, "/dst/child"))

	assert.True(t, src.Empty())
	assert.False(t, dst.Empty())

	_, err = fs.Mkdir(root, "/dst/child/grandchild")
	assert.NoError(t, err)
}

func TestMoveOntoExistingDestinationFails(t *testing.T) {
	fs, root := newTestFS(t)

	_, err := fs.CreateFile(root, "/a.txt")
	require.NoError(t, err)
	_, err = fs.CreateFile(root, "/b.txt")
	require.NoError(t, err)

	err = fs.Move(root, "/a.txt", root, "/b.txt")
	assert.True(t, memfserr.Is(err, memfserr.AlreadyExists))
}

func TestMoveDirectoryIntoOwnDescendantFails(t *testing.T) {
	fs, root := newTestFS(t)

	_, err := fs.Mkdir(root, "/a")
	require.NoError(t, err)
	_, err = fs.Mkdir(root, "/a/b")
	require.NoError(t, err)

	err = fs.Move(root, "/a", root, "/a/b/a")
	assert.True(t, memfserr.Is(err, memfserr.InvalidArgument))
}

func TestMoveDoesNotInflateLinkCount(t *testing.T) {
	fs, root := newTestFS(t)

	d, err := fs.Mkdir(root, "/a")
	require.NoError(t, err)
	before := d.LinkCount

	require.NoError(t, fs.Move(root, "/a", root, "/b"))
	require.NoError(t, fs.Move(root, "/b", root, "/c"))

	assert.Equal(t, before, d.LinkCount)
}

func TestReadOnlyFileSystemRejectsMutation(t *testing.T) {
	svc, err := attr.NewService(attr.Basic{})
	require.NoError(t, err)
	fs := New(Config{
		PathType:       pathtype.Unix,
		Names:          name.DefaultOptions,
		Attrs:          svc,
		Clock:          clock.NewFake(time.Unix(0, 0)),
		BlockSize:      4,
		MaxTotalBytes:  1 << 20,
		MaxCachedBytes: 1 << 20,
		ReadOnly:       true,
	})
	root, err := fs.Root("/")
	require.NoError(t, err)

	_, err = fs.CreateFile(root, "/a.txt")
	assert.True(t, memfserr.Is(err, memfserr.AccessDenied))
}

func TestOpenChannelReadWriteRoundTrip(t *testing.T) {
	fs, root := newTestFS(t)

	f, err := fs.CreateFile(root, "/a.txt")
	require.NoError(t, err)

	c := fs.OpenChannel(f)
	n, err := c.Write([]byte("hi"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.NoError(t, c.Close())
}

func TestOpenDirIteratesSnapshot(t *testing.T) {
	fs, root := newTestFS(t)

	_, err := fs.CreateFile(root, "/a.txt")
	require.NoError(t, err)
	_, err = fs.CreateFile(root, "/b.txt")
	require.NoError(t, err)

	dh := fs.OpenDir(root)
	var seen []string
	for {
		n, ok := dh.Next()
		if !ok {
			break
		}
		seen = append(seen, n.String())
	}
	assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, seen)
	require.NoError(t, dh.Close())
}

func TestOpenDirRewindReplaysSnapshot(t *testing.T) {
	fs, root := newTestFS(t)
	_, err := fs.CreateFile(root, "/a.txt")
	require.NoError(t, err)

	dh := fs.OpenDir(root)
	_, ok := dh.Next()
	require.True(t, ok)
	_, ok = dh.Next()
	require.False(t, ok)

	dh.Rewind()
	_, ok = dh.Next()
	assert.True(t, ok)
}

func TestOpenDirSeekOutOfRangeFails(t *testing.T) {
	fs, root := newTestFS(t)
	dh := fs.OpenDir(root)
	err := dh.Seek(5)
	assert.True(t, memfserr.Is(err, memfserr.InvalidArgument))
}

func TestCloseSweepsOutstandingHandles(t *testing.T) {
	fs, root := newTestFS(t)

	f, err := fs.CreateFile(root, "/a.txt")
	require.NoError(t, err)
	_ = fs.OpenChannel(f)
	_ = fs.OpenDir(root)

	assert.NoError(t, fs.Close())
	assert.Empty(t, fs.handles)
}

func TestWatchDirReceivesCreateAndRemoveEvents(t *testing.T) {
	fs, root := newTestFS(t)
	w := fs.WatchDir(root)

	_, err := fs.CreateFile(root, "/a.txt")
	require.NoError(t, err)
	ev := <-w.Events()
	assert.Equal(t, watch.Created, ev.Op)
	assert.Equal(t, "a.txt", ev.Name.String())

	require.NoError(t, fs.Delete(root, "/a.txt"))
	ev = <-w.Events()
	assert.Equal(t, watch.Removed, ev.Op)
	assert.Equal(t, "a.txt", ev.Name.String())
}

func TestWatchDirReceivesRenameEventOnSameDirectoryMove(t *testing.T) {
	fs, root := newTestFS(t)
	w := fs.WatchDir(root)

	_, err := fs.CreateFile(root, "/a.txt")
	require.NoError(t, err)
	<-w.Events() // created

	require.NoError(t, fs.Move(root, "/a.txt", root, "/b.txt"))
	ev := <-w.Events()
	assert.Equal(t, watch.Renamed, ev.Op)
	assert.Equal(t, "a.txt", ev.OldName.String())
	assert.Equal(t, "b.txt", ev.Name.String())
}

func TestWatchDirUnwatchedDirectoryNeverBlocks(t *testing.T) {
	fs, root := newTestFS(t)
	// No WatchDir call: publishLocked must be a no-op, not a block.
	_, err := fs.CreateFile(root, "/a.txt")
	require.NoError(t, err)
}

func TestRegistryLookupAndForget(t *testing.T) {
	fs, _ := newTestFS(t)
	reg := NewRegistry()

	id := reg.Register(fs)
	got, err := reg.Lookup(id)
	require.NoError(t, err)
	assert.Equal(t, fs.ID(), got.ID())

	reg.Forget(id)
	_, err = reg.Lookup(id)
	assert.True(t, memfserr.Is(err, memfserr.NotFound))
}

func TestRegistryLookupUnknownIDFails(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Lookup(uuid.New())
	assert.True(t, memfserr.Is(err, memfserr.NotFound))
}
