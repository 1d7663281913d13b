/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package specifier classifies and parses import specifiers.
package specifier

import "strings"

// Kind indicates the type of specifier.
type Kind int

const (
	// KindBare is a package specifier such as "lodash" or "@scope/pkg/sub".
	KindBare Kind = iota
	// KindAbsolute is an absolute path such as "/abs/path".
	KindAbsolute
	// KindRelative is ".", or a path starting with "./" or "../".
	KindRelative
	// KindImport is a package-internal subpath import such as "#internal".
	KindImport
)

func (k Kind) String() string {
	switch k {
	case KindAbsolute:
		return "absolute"
	case KindRelative:
		return "relative"
	case KindImport:
		return "import"
	default:
		return "bare"
	}
}

// Specifier represents a parsed import specifier.
type Specifier struct {
	// Kind is the type of specifier.
	Kind Kind

	// Package is the package name for bare specifiers (e.g., "@scope/pkg").
	Package string

	// Subpath is the path within the package, without a leading slash.
	Subpath string

	// Raw is the specifier with any query or fragment removed.
	Raw string
}

// Parse classifies spec after stripping its query and fragment.
// Bare specifiers are additionally split into package name and subpath.
func Parse(spec string) (*Specifier, error) {
	raw := StripQueryAndFragment(spec)
	s := &Specifier{
		Kind: Classify(raw),
		Raw:  raw,
	}
	if s.Kind == KindBare {
		name, subpath, err := ParsePackage(raw)
		if err != nil {
			return nil, err
		}
		s.Package = name
		s.Subpath = subpath
	}
	return s, nil
}

// Classify returns the kind of a module specifier whose query and fragment
// have already been removed.
func Classify(spec string) Kind {
	switch {
	case strings.HasPrefix(spec, "/"):
		return KindAbsolute
	case spec == ".", strings.HasPrefix(spec, "./"), strings.HasPrefix(spec, "../"):
		return KindRelative
	case strings.HasPrefix(spec, "#"):
		return KindImport
	default:
		return KindBare
	}
}

// StripQueryAndFragment truncates spec at the first '?' or '#'.
// The scan starts at index 1 so that subpath imports such as "#internal"
// keep their leading '#'.
func StripQueryAndFragment(spec string) string {
	if len(spec) < 2 {
		return spec
	}
	if i := strings.IndexAny(spec[1:], "?#"); i >= 0 {
		return spec[:i+1]
	}
	return spec
}
