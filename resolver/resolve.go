/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolver resolves import specifiers to file paths following the
// Node.js module resolution algorithm: relative and absolute path probing,
// node_modules lookup, and conditional exports and imports maps.
//
// Resolution is synchronous and keeps no state between calls. It only reads
// from the filesystem collaborator, so Resolve may be called concurrently as
// long as the collaborator tolerates concurrent reads.
package resolver

import (
	"errors"
	"path/filepath"

	"bennypowers.dev/modresolve/specifier"
)

// MaxResolutionDepth bounds the number of nested indirections through
// dependencies, exports, imports and condition objects. Cyclic manifests fail
// with ErrResolutionTooDeep instead of recursing forever.
const MaxResolutionDepth = 64

// Resolve resolves specifier from baseDir.
//
// The baseDir is used for resolving relative specifiers, such as "./dep.ts",
// but also for discovery of the relevant package.json and for the
// node_modules lookup of bare specifiers.
func Resolve(spec, baseDir string, fsys FSProxy, opts Options) (string, error) {
	r := &resolution{fs: fsys, log: opts.Logger}
	return r.resolve(spec, baseDir, opts)
}

// ResolvePath is like Resolve but wraps the outcome in a ResolvedPath.
func ResolvePath(spec, baseDir string, fsys FSProxy, opts Options) ResolvedPath {
	return NewResolvedPath(Resolve(spec, baseDir, fsys, opts))
}

// resolution carries the per-call state: the collaborator and the current
// indirection depth.
type resolution struct {
	fs    FSProxy
	log   Logger
	depth int
}

func (r *resolution) descend() error {
	r.depth++
	if r.depth > MaxResolutionDepth {
		return ErrResolutionTooDeep
	}
	return nil
}

func (r *resolution) ascend() {
	r.depth--
}

func (r *resolution) debug(format string, args ...any) {
	if r.log != nil {
		r.log.Debug(format, args...)
	}
}

func (r *resolution) warn(format string, args ...any) {
	if r.log != nil {
		r.log.Warning(format, args...)
	}
}

func (r *resolution) resolve(spec, baseDir string, opts Options) (string, error) {
	spec = specifier.StripQueryAndFragment(spec)

	if opts.ResolveNodeBuiltins && specifier.IsNodeBuiltin(spec) {
		return "", ErrNodeBuiltIn
	}

	switch specifier.Classify(spec) {
	case specifier.KindAbsolute:
		return r.resolveAbsolutePath(spec, opts)
	case specifier.KindRelative:
		return r.resolveRelativePath(spec, baseDir, opts)
	}

	if opts.AssumeRelative {
		path, err := r.resolveRelativePath(spec, baseDir, opts)
		if !errors.Is(err, ErrNotFound) {
			return path, err
		}
		r.debug("%q is not relative to %s, trying as a package", spec, baseDir)
	}

	return r.resolveModule(spec, baseDir, opts)
}

func (r *resolution) resolveRelativePath(path, baseDir string, opts Options) (string, error) {
	return r.resolveAbsolutePath(filepath.Join(baseDir, path), opts)
}

func (r *resolution) resolveAbsolutePath(path string, opts Options) (string, error) {
	path = NormalizePath(path)

	kind, realPath, err := r.resolvePathInfo(path)
	switch {
	case err == nil && kind == PathFile:
		return realPath, nil

	case err == nil && kind == PathDirectory:
		resolved, dirErr := r.resolveDirectory(realPath, opts)
		if dirErr == nil {
			return resolved, nil
		}
		resolved, err = r.resolveWithExtension(path, opts)
		if errors.Is(err, ErrNotFound) {
			return "", dirErr
		}
		return resolved, err

	case errors.Is(err, ErrNotFound):
		return r.resolveWithExtension(path, opts)

	default:
		return "", err
	}
}

// resolveWithExtension appends each configured extension to path and
// returns the first candidate that is a file.
func (r *resolution) resolveWithExtension(path string, opts Options) (string, error) {
	for _, ext := range opts.Extensions {
		candidate := path + "." + ext
		kind, _, err := r.resolvePathInfo(candidate)
		switch {
		case errors.Is(err, ErrNotFound):
			continue
		case err != nil:
			return "", err
		case kind == PathFile:
			return candidate, nil
		}
		// Adding an extension yielded a directory? No, thanks.
	}
	return "", ErrNotFound
}

// resolveDirectory probes every default file with every extension, default
// files taking priority over extensions.
func (r *resolution) resolveDirectory(dir string, opts Options) (string, error) {
	for _, name := range opts.DefaultFiles {
		for _, ext := range opts.Extensions {
			candidate := filepath.Join(dir, name+"."+ext)
			kind, _, err := r.resolvePathInfo(candidate)
			if err == nil && kind == PathFile {
				return candidate, nil
			}
		}
	}
	return "", ErrDirectoryWithoutDefault
}

// resolvePathInfo classifies path, following a single symlink. It returns
// the path to use from here on: path itself, or the symlink's target.
func (r *resolution) resolvePathInfo(path string) (PathKind, string, error) {
	info, err := r.fs.PathInfo(path)
	if err != nil {
		return 0, "", err
	}
	if info.Kind != PathSymlink {
		return info.Kind, path, nil
	}

	target, err := r.fs.PathInfo(info.Target)
	if err != nil {
		return 0, "", err
	}
	if target.Kind == PathSymlink {
		return 0, "", ErrBrokenSymlink
	}
	return target.Kind, info.Target, nil
}
