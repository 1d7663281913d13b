/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import "strings"

// ResolvedPath is an immutable resolution outcome: either a path or an
// error. Copies share the same underlying record, so a ResolvedPath is
// cheap to store in caches. The zero value reports ErrNotFound.
type ResolvedPath struct {
	r *outcome
}

type outcome struct {
	path string
	err  error
}

// NewResolvedPath wraps the result of a resolution.
func NewResolvedPath(path string, err error) ResolvedPath {
	if err != nil {
		path = ""
	}
	return ResolvedPath{r: &outcome{path: path, err: err}}
}

// FromPath wraps a successfully resolved path.
func FromPath(path string) ResolvedPath {
	return NewResolvedPath(path, nil)
}

// FromError wraps a failed resolution.
func FromError(err error) ResolvedPath {
	return NewResolvedPath("", err)
}

// Path returns the resolved path, or "" if resolution failed.
func (p ResolvedPath) Path() string {
	if p.r == nil {
		return ""
	}
	return p.r.path
}

// Err returns the resolution error, or nil if resolution succeeded.
func (p ResolvedPath) Err() error {
	if p.r == nil {
		return ErrNotFound
	}
	return p.r.err
}

// IsOK reports whether resolution succeeded.
func (p ResolvedPath) IsOK() bool {
	return p.Err() == nil
}

// Result returns the path and error as a pair.
func (p ResolvedPath) Result() (string, error) {
	return p.Path(), p.Err()
}

// Equal compares the wrapped values, not the identity of the handles.
func (p ResolvedPath) Equal(other ResolvedPath) bool {
	return p.Compare(other) == 0
}

// Compare orders successes before failures, then paths lexically, then
// errors by message.
func (p ResolvedPath) Compare(other ResolvedPath) int {
	aErr, bErr := p.Err(), other.Err()
	switch {
	case aErr == nil && bErr == nil:
		return strings.Compare(p.Path(), other.Path())
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	case aErr == bErr:
		return 0
	default:
		return strings.Compare(aErr.Error(), bErr.Error())
	}
}

func (p ResolvedPath) String() string {
	if err := p.Err(); err != nil {
		return "error: " + err.Error()
	}
	return p.Path()
}
