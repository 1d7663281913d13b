/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"errors"
	"strings"
)

// ErrInvalidPackageSpecifier indicates the package name segment of a bare
// specifier is syntactically invalid.
var ErrInvalidPackageSpecifier = errors.New("invalid package specifier")

// ParsePackage splits a bare specifier into package name and subpath.
//
// Scoped packages keep their scope: "@scope/name/sub/path" splits into
// "@scope/name" and "sub/path". The subpath is empty when the specifier
// names the package itself.
//
// Follows PACKAGE_RESOLVE from lib/internal/modules/esm/resolve.js in Node.js.
func ParsePackage(spec string) (name, subpath string, err error) {
	sep := strings.IndexByte(spec, '/')
	if sep >= 0 && spec[0] == '@' {
		if next := strings.IndexByte(spec[sep+1:], '/'); next >= 0 {
			sep = sep + 1 + next
		} else {
			sep = -1
		}
	}

	name = spec
	if sep >= 0 {
		name = spec[:sep]
		subpath = spec[sep+1:]
	}

	// Package names cannot have a leading '.', percent-encoding or
	// backslash separators.
	if name == "" || name[0] == '.' || strings.ContainsAny(name, `\%`) {
		return "", "", ErrInvalidPackageSpecifier
	}

	return name, subpath, nil
}
