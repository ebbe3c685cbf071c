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

package attr

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/memfs/inode"
	"github.com/google/memfs/internal/clock"
)

func TestToInodeAttributesProjectsUnixView(t *testing.T) {
	s := newService(t)
	clk := clock.Real()
	f := inode.NewRegularFile(newDiskForTest(), clk)
	s.ApplyInitial(f)
	_, err := f.Write(0, []byte("hello"))
	require.NoError(t, err)

	require.NoError(t, s.SetAttribute(f, "unix:mode", os.FileMode(0o644), false))

	attrs, err := s.ToInodeAttributes(f)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), attrs.Size)
	assert.Equal(t, os.FileMode(0o644), attrs.Mode)
	assert.Equal(t, uint32(f.Meta().LinkCount), attrs.Nlink)
	assert.Equal(t, f.Meta().CreationTime, attrs.Crtime)
	assert.Equal(t, f.Meta().LastModifiedTime, attrs.Mtime)
}

func TestToInodeAttributesDirectoryHasZeroSize(t *testing.T) {
	s := newService(t)
	d := inode.NewDir(clock.Real())
	s.ApplyInitial(d)

	attrs, err := s.ToInodeAttributes(d)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), attrs.Size)
}

func TestToInodeAttributesWithoutUnixViewFails(t *testing.T) {
	s, err := NewService(Basic{})
	require.NoError(t, err)
	f := inode.NewRegularFile(newDiskForTest(), clock.Real())
	s.ApplyInitial(f)

	_, err = s.ToInodeAttributes(f)
	assert.Error(t, err)
}
