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

// Package logger provides memfs's structured logger: a thin layer over
// log/slog with a TRACE level below DEBUG, matching the severities a
// filesystem implementation typically wants (spec §7's "surfaced
// immediately" error philosophy calls for a logger that can be turned all
// the way down without code changes).
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Severity levels. slog only has four native levels, so TRACE is encoded
// as an offset below LevelDebug.
const (
	LevelTrace = slog.Level(-8)
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var levelNames = map[slog.Leveler]string{
	LevelTrace: "TRACE",
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARNING",
	LevelError: "ERROR",
}

func levelString(l slog.Level) string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return l.String()
}

func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		level, _ := a.Value.Any().(slog.Level)
		a.Value = slog.StringValue(levelString(level))
		a.Key = "severity"
	}
	return a
}

type factory struct{}

func (factory) handler(format string, w io.Writer, level slog.Leveler) slog.Handler {
	opts := &slog.HandlerOptions{Level: level, ReplaceAttr: replaceLevel}
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

var defaultLoggerFactory = factory{}

var defaultLogger = slog.New(defaultLoggerFactory.handler("text", os.Stderr, LevelInfo))

// SetOutput redirects the default logger to w, in the given format
// ("text" or "json"), at the given minimum severity.
func SetOutput(format string, w io.Writer, level slog.Leveler) {
	defaultLogger = slog.New(defaultLoggerFactory.handler(format, w, level))
}

func Tracef(format string, args ...any) {
	defaultLogger.Log(context.Background(), LevelTrace, fmt.Sprintf(format, args...))
}

func Debugf(format string, args ...any) {
	defaultLogger.Log(context.Background(), LevelDebug, fmt.Sprintf(format, args...))
}

func Infof(format string, args ...any) {
	defaultLogger.Log(context.Background(), LevelInfo, fmt.Sprintf(format, args...))
}

func Warnf(format string, args ...any) {
	defaultLogger.Log(context.Background(), LevelWarn, fmt.Sprintf(format, args...))
}

func Errorf(format string, args ...any) {
	defaultLogger.Log(context.Background(), LevelError, fmt.Sprintf(format, args...))
}
