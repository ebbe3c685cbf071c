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

package watch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/memfs/name"
)

func TestPublishThenReceive(t *testing.T) {
	d := New()
	d.Publish(Event{Op: Created, Name: name.Raw("a.txt")})

	ev := <-d.Events()
	assert.Equal(t, Created, ev.Op)
	assert.Equal(t, "a.txt", ev.Name.String())
}

func TestPublishDropsWhenBacklogFull(t *testing.T) {
	d := New()
	for i := 0; i < defaultBacklog+10; i++ {
		d.Publish(Event{Op: Removed, Name: name.Raw("x")})
	}
	assert.LessOrEqual(t, len(d.Events()), defaultBacklog)
}

func TestRenamedEventCarriesOldAndNewName(t *testing.T) {
	d := New()
	d.Publish(Event{Op: Renamed, OldName: name.Raw("old"), Name: name.Raw("new")})

	ev := <-d.Events()
	require.Equal(t, Renamed, ev.Op)
	assert.Equal(t, "old", ev.OldName.String())
	assert.Equal(t, "new", ev.Name.String())
}

func TestCloseMakesChannelReadAllDrainedThenZero(t *testing.T) {
	d := New()
	d.Publish(Event{Op: Created, Name: name.Raw("a")})
	d.Close()

	ev, ok := <-d.Events()
	assert.True(t, ok)
	assert.Equal(t, Created, ev.Op)

	_, ok = <-d.Events()
	assert.False(t, ok)
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "created", Created.String())
	assert.Equal(t, "removed", Removed.String())
	assert.Equal(t, "renamed", Renamed.String())
	assert.Equal(t, "unknown", Op(99).String())
}
