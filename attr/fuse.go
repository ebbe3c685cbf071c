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
	"time"

	"github.com/jacobsa/fuse/fuseops"

	"github.com/google/memfs/inode"
)

// ToInodeAttributes projects f's unix-view attributes into a
// fuseops.InodeAttributes, the struct a FUSE binding built atop memfs
// would hand back from a Getattr/Lookup response. memfs itself mounts
// nothing (the kernel-facing adapter is the out-of-scope "FUSE/kernel
// integration" collaborator), so this never runs inside a real kernel
// request, but it's the projection such a collaborator would call,
// grounded in SPEC_FULL.md's "single struct modeled directly on
// fuseops.InodeAttributes" design note. Fails with IllegalAttribute if
// the "unix" view was not registered with s.
func (s *Service) ToInodeAttributes(f inode.Inode) (fuseops.InodeAttributes, error) {
	mode, err := s.GetAttribute(f, "unix:mode")
	if err != nil {
		return fuseops.InodeAttributes{}, err
	}
	uid, err := s.GetAttribute(f, "unix:uid")
	if err != nil {
		return fuseops.InodeAttributes{}, err
	}
	gid, err := s.GetAttribute(f, "unix:gid")
	if err != nil {
		return fuseops.InodeAttributes{}, err
	}
	nlink, err := s.GetAttribute(f, "unix:nlink")
	if err != nil {
		return fuseops.InodeAttributes{}, err
	}
	ctime, err := s.GetAttribute(f, "unix:ctime")
	if err != nil {
		return fuseops.InodeAttributes{}, err
	}

	var size uint64
	if rf, ok := f.(*inode.RegularFile); ok {
		size = uint64(rf.Size())
	}

	return fuseops.InodeAttributes{
		Size:   size,
		Nlink:  uint32(nlink.(uint64)),
		Mode:   mode.(os.FileMode),
		Atime:  f.Meta().LastAccessTime,
		Mtime:  f.Meta().LastModifiedTime,
		Ctime:  ctime.(time.Time),
		Crtime: f.Meta().CreationTime,
		Uid:    uid.(uint32),
		Gid:    gid.(uint32),
	}, nil
}
