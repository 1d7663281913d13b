/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"iter"
	"path/filepath"
)

// NormalizePath collapses "." and ".." segments lexically, without touching
// the filesystem. ".." above the root stays at the root.
//
// filepath.Clean returns its input without allocating when the path is
// already clean, so no separate fast path is needed.
func NormalizePath(path string) string {
	return filepath.Clean(path)
}

// ancestors yields dir followed by each of its parents up to the root.
func ancestors(dir string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			if !yield(dir) {
				return
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				return
			}
			dir = parent
		}
	}
}
