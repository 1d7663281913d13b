/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"errors"

	"bennypowers.dev/modresolve/specifier"
)

// Sentinel errors for resolution. Errors surfaced by the filesystem
// collaborator are returned as is and never replaced by these.
var (
	// ErrNotFound indicates nothing exists at the requested location. It is
	// the only error that triggers a fallback strategy.
	ErrNotFound = errors.New("module not found")

	// ErrNodeBuiltIn indicates the specifier names a Node.js builtin, which
	// has no path on disk.
	ErrNodeBuiltIn = errors.New("specifier is a Node.js builtin")

	// ErrBrokenSymlink indicates a symlink resolved to another symlink.
	ErrBrokenSymlink = errors.New("broken symlink")

	// ErrInvalidMappingTarget indicates an exports or imports value has an
	// unsupported JSON shape.
	ErrInvalidMappingTarget = errors.New("invalid mapping target")

	// ErrInvalidPackageSpecifier indicates the package name segment of a
	// bare specifier is syntactically invalid.
	ErrInvalidPackageSpecifier = specifier.ErrInvalidPackageSpecifier

	// ErrDirectoryWithoutDefault indicates a directory was reached but none
	// of the configured default files exist in it.
	ErrDirectoryWithoutDefault = errors.New("directory has no default file")

	// ErrResolutionTooDeep indicates the chain of exports, imports and
	// dependency indirections exceeded MaxResolutionDepth.
	ErrResolutionTooDeep = errors.New("resolution too deep")
)
