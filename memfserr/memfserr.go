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

// Package memfserr defines the typed error kinds surfaced at the memfs
// boundary (spec §7). Every exported error carries the operation and the
// offending path, when one is applicable.
package memfserr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure the way an OS filesystem's exceptions would.
type Kind int

const (
	// Unknown is never returned; it is the zero value of Kind.
	Unknown Kind = iota
	NotFound
	AlreadyExists
	NotADirectory
	IsADirectory
	Loop
	TooManySymlinks
	InvalidPath
	InvalidArgument
	OutOfSpace
	AccessDenied
	UnsupportedOperation
	AtomicMoveNotSupported
	IllegalAttribute
	UnsupportedOnCreate
	IllegalType
	DuplicateView
	NotEmpty
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case AlreadyExists:
		return "already exists"
	case NotADirectory:
		return "not a directory"
	case IsADirectory:
		return "is a directory"
	case Loop:
		return "loop"
	case TooManySymlinks:
		return "too many symbolic links"
	case InvalidPath:
		return "invalid path"
	case InvalidArgument:
		return "invalid argument"
	case OutOfSpace:
		return "out of space"
	case AccessDenied:
		return "access denied"
	case UnsupportedOperation:
		return "unsupported operation"
	case AtomicMoveNotSupported:
		return "atomic move not supported"
	case IllegalAttribute:
		return "illegal attribute"
	case UnsupportedOnCreate:
		return "unsupported on create"
	case IllegalType:
		return "illegal type"
	case DuplicateView:
		return "duplicate view"
	case NotEmpty:
		return "directory not empty"
	default:
		return "unknown error"
	}
}

// Error is the concrete error type returned by every memfs operation that
// can fail. It wraps an optional underlying cause so callers may still use
// errors.Is/errors.As against it.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Kind, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Kind)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error with no path and no wrapped cause.
func New(op string, kind Kind) error {
	return &Error{Op: op, Kind: kind}
}

// Path builds an *Error carrying the offending path.
func Path(op string, kind Kind, path string) error {
	return &Error{Op: op, Kind: kind, Path: path}
}

// Wrap builds an *Error carrying the offending path and an underlying cause.
func Wrap(op string, kind Kind, path string, err error) error {
	return &Error{Op: op, Kind: kind, Path: path, Err: err}
}

// Is reports whether err is a memfs *Error of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
