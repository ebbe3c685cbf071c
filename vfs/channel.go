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
	"github.com/google/memfs/channel"
	"github.com/google/memfs/inode"
	"github.com/google/uuid"
)

// OpenChannel wraps f in a channel.Channel and registers it with fs's
// resource manager, so FileSystem.Close sweeps it up along with every
// other outstanding handle (spec §5 "Resource manager").
func (fs *FileSystem) OpenChannel(f *inode.RegularFile) *channel.Channel {
	c := channel.Open(f)
	fs.trackHandle(uuid.New(), c)
	return c
}
