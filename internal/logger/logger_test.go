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

package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextOutputUsesSeverityKey(t *testing.T) {
	var buf bytes.Buffer
	SetOutput("text", &buf, LevelInfo)

	Infof("hello %s", "world")

	out := buf.String()
	assert.Contains(t, out, "severity=INFO")
	assert.Contains(t, out, "hello world")
}

func TestJSONOutputUsesSeverityKey(t *testing.T) {
	var buf bytes.Buffer
	SetOutput("json", &buf, LevelWarn)

	Warnf("careful")

	out := buf.String()
	assert.Contains(t, out, `"severity":"WARNING"`)
}

func TestBelowThresholdSuppressed(t *testing.T) {
	var buf bytes.Buffer
	SetOutput("text", &buf, LevelInfo)

	Debugf("should not appear")

	assert.False(t, strings.Contains(buf.String(), "should not appear"))
}
