/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"errors"
	"strings"

	"bennypowers.dev/modresolve/manifest"
)

// ResolveExport resolves subpath against the "exports" field of pkg, which
// lives in packageDir. An empty subpath or "." selects the package root.
func ResolveExport(subpath, packageDir string, pkg *manifest.PackageJSON, fsys FSProxy, opts Options) (string, error) {
	r := &resolution{fs: fsys, log: opts.Logger}
	return r.resolveExport(subpath, packageDir, pkg, opts)
}

// ResolveImport resolves a "#"-prefixed specifier against the "imports"
// field of pkg, which lives in packageDir.
func ResolveImport(spec, packageDir string, pkg *manifest.PackageJSON, fsys FSProxy, opts Options) (string, error) {
	r := &resolution{fs: fsys, log: opts.Logger}
	return r.resolveImportAlias(spec, packageDir, pkg, opts)
}

func (r *resolution) resolveImportAlias(spec, packageDir string, pkg *manifest.PackageJSON, opts Options) (string, error) {
	imports, ok := pkg.GetValueByPath("imports")
	if !ok {
		return "", ErrNotFound
	}
	mapping, ok := manifest.AsObject(imports)
	if !ok {
		return "", ErrNotFound
	}
	return r.resolveTargetMapping(spec, mapping, packageDir, opts)
}

func (r *resolution) resolveExport(subpath, packageDir string, pkg *manifest.PackageJSON, opts Options) (string, error) {
	exports, ok := pkg.GetValueByPath("exports")
	if !ok {
		return "", ErrNotFound
	}

	switch exports := exports.(type) {
	case *manifest.Object:
		path, err := r.resolveTargetMapping(subpath, exports, packageDir, opts)
		if errors.Is(err, ErrNotFound) {
			// exports can match directly on conditions too.
			return r.resolveTargetValue(exports, nil, packageDir, opts)
		}
		return path, err
	case manifest.String:
		// A string is resolved whatever the subpath.
		return r.resolveTargetString(string(exports), packageDir, opts)
	default:
		return "", ErrInvalidMappingTarget
	}
}

// resolveTargetMapping matches subpath against the keys of mapping in
// declared order. Keys may contain a "*" that captures the rest of the
// subpath between the key's prefix and suffix.
func (r *resolution) resolveTargetMapping(subpath string, mapping *manifest.Object, packageDir string, opts Options) (string, error) {
	subpath = normalizeSubpath(subpath)
	for _, m := range mapping.Members {
		key := normalizeSubpath(m.Key)
		if prefix, suffix, isGlob := strings.Cut(key, "*"); isGlob {
			if len(subpath) >= len(prefix)+len(suffix) &&
				strings.HasPrefix(subpath, prefix) &&
				strings.HasSuffix(subpath, suffix) {
				glob := subpath[len(prefix) : len(subpath)-len(suffix)]
				return r.resolveTargetValue(m.Value, &glob, packageDir, opts)
			}
		} else if key == subpath {
			return r.resolveTargetValue(m.Value, nil, packageDir, opts)
		}
	}
	return "", ErrNotFound
}

// resolveTargetValue resolves a mapping target: either a string or an
// object of conditions, which may nest.
func (r *resolution) resolveTargetValue(target manifest.Value, glob *string, packageDir string, opts Options) (string, error) {
	if err := r.descend(); err != nil {
		return "", err
	}
	defer r.ascend()

	switch target := target.(type) {
	case *manifest.Object:
		for _, m := range target.Members {
			if opts.HasCondition(m.Key) {
				r.debug("matched condition %q in %s", m.Key, packageDir)
				return r.resolveTargetValue(m.Value, glob, packageDir, opts)
			}
		}
		return "", ErrNotFound
	case manifest.String:
		s := string(target)
		if glob != nil {
			s = strings.ReplaceAll(s, "*", *glob)
		}
		return r.resolveTargetString(s, packageDir, opts)
	default:
		return "", ErrInvalidMappingTarget
	}
}

// resolveTargetString resolves a string target: a package-relative path, or
// the name of another package.
func (r *resolution) resolveTargetString(target, packageDir string, opts Options) (string, error) {
	if strings.HasPrefix(target, "./") {
		return r.resolveRelativePath(target, packageDir, opts.WithoutExtensionsOrManifests())
	}
	return r.resolveDependency(target, packageDir, opts)
}

// normalizeSubpath maps "." to "" and strips a leading "./".
func normalizeSubpath(subpath string) string {
	if subpath == "." {
		return ""
	}
	return strings.TrimPrefix(subpath, "./")
}
