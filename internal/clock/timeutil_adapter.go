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

package clock

import (
	"time"

	"github.com/jacobsa/timeutil"
)

// FromTimeutil adapts a github.com/jacobsa/timeutil.Clock (the teacher's
// own clock dependency) to this package's Clock, for callers that already
// have one lying around (e.g. shared with an embedding application).
func FromTimeutil(c timeutil.Clock) Clock {
	return timeutilAdapter{c}
}

type timeutilAdapter struct {
	c timeutil.Clock
}

func (a timeutilAdapter) Now() time.Time { return a.c.Now() }
