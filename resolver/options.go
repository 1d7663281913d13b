/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"slices"

	"bennypowers.dev/modresolve/manifest"
)

// Options configures a single resolution. Options are never mutated during
// a call; derived variants are copies.
type Options struct {
	// AssumeRelative makes bare specifiers try a relative lookup first.
	// Resolving them as a package is still attempted if that lookup finds
	// nothing.
	AssumeRelative bool

	// ConditionNames are the keys accepted in conditional exports and
	// imports. Order is irrelevant: the order of keys in the manifest decides
	// which condition matches first.
	ConditionNames []string

	// DefaultFiles are the file names, without extension, probed when a
	// directory is resolved. Earlier entries win.
	DefaultFiles []string

	// Extensions are probed, without leading dot, when a path does not
	// exist as written. Earlier entries win.
	Extensions []string

	// PackageJSON controls which package.json is used for self-references
	// and subpath imports.
	PackageJSON DiscoverableManifest[*manifest.PackageJSON]

	// PreferTypes resolves a dependency to its "types" entry point instead
	// of "main" when it has no exports.
	PreferTypes bool

	// ResolveNodeBuiltins makes builtin specifiers fail with ErrNodeBuiltIn
	// instead of being looked up as ordinary dependencies.
	ResolveNodeBuiltins bool

	// TsConfig controls which tsconfig.json is associated with the
	// resolution. It is carried for callers and not interpreted here.
	TsConfig DiscoverableManifest[*manifest.TsConfigJSON]

	// Logger receives debug traces. Nil means silent.
	Logger Logger
}

// Logger is an interface for logging messages during resolution.
type Logger interface {
	Warning(format string, args ...any)
	Debug(format string, args ...any)
}

// WithAssumeRelative returns a copy of o with AssumeRelative set.
func (o Options) WithAssumeRelative() Options {
	o.AssumeRelative = true
	return o
}

// WithoutExtensionsOrManifests returns a copy of o that performs exact
// lookups only. It is used once resolution has entered a package through
// a manifest target, where Node.js forbids extension guessing.
func (o Options) WithoutExtensionsOrManifests() Options {
	o.Extensions = nil
	o.PackageJSON = Off[*manifest.PackageJSON]()
	o.TsConfig = Off[*manifest.TsConfigJSON]()
	return o
}

// HasCondition reports whether name is one of the accepted conditions.
func (o Options) HasCondition(name string) bool {
	return slices.Contains(o.ConditionNames, name)
}

// ManifestMode tells how a DiscoverableManifest is obtained.
type ManifestMode int

const (
	// ManifestAuto discovers the manifest by probing the filesystem upward.
	ManifestAuto ManifestMode = iota
	// ManifestExplicit uses a caller-supplied manifest.
	ManifestExplicit
	// ManifestOff never consults this kind of manifest.
	ManifestOff
)

func (m ManifestMode) String() string {
	switch m {
	case ManifestExplicit:
		return "explicit"
	case ManifestOff:
		return "off"
	default:
		return "auto"
	}
}

// DiscoverableManifest controls how a manifest such as package.json is
// found. The zero value is Auto.
type DiscoverableManifest[T any] struct {
	mode        ManifestMode
	packagePath string
	manifest    T
}

// Auto returns a manifest setting that probes the filesystem.
func Auto[T any]() DiscoverableManifest[T] {
	return DiscoverableManifest[T]{mode: ManifestAuto}
}

// Explicit returns a manifest setting that uses manifest, located in the
// directory packagePath, without probing.
func Explicit[T any](packagePath string, manifest T) DiscoverableManifest[T] {
	return DiscoverableManifest[T]{
		mode:        ManifestExplicit,
		packagePath: packagePath,
		manifest:    manifest,
	}
}

// Off returns a manifest setting that never consults the manifest.
func Off[T any]() DiscoverableManifest[T] {
	return DiscoverableManifest[T]{mode: ManifestOff}
}

// Mode returns how the manifest is obtained.
func (d DiscoverableManifest[T]) Mode() ManifestMode {
	return d.mode
}

// Manifest returns the explicit manifest and its package directory.
// ok is false unless the mode is ManifestExplicit.
func (d DiscoverableManifest[T]) Manifest() (packagePath string, manifest T, ok bool) {
	if d.mode != ManifestExplicit {
		var zero T
		return "", zero, false
	}
	return d.packagePath, d.manifest, true
}
