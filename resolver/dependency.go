/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"errors"
	"path/filepath"
	"strings"

	"bennypowers.dev/modresolve/manifest"
	"bennypowers.dev/modresolve/specifier"
)

func (r *resolution) resolveModule(spec, baseDir string, opts Options) (string, error) {
	switch opts.PackageJSON.Mode() {
	case ManifestAuto:
		packagePath, pkg, err := r.fs.FindPackageJSON(baseDir)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				r.warn("ignoring package.json above %s: %v", baseDir, err)
			}
			return r.resolveDependency(spec, baseDir, opts)
		}
		return r.resolveModuleWithPackageJSON(spec, baseDir, packagePath, pkg, opts)

	case ManifestExplicit:
		packagePath, pkg, _ := opts.PackageJSON.Manifest()
		return r.resolveModuleWithPackageJSON(spec, baseDir, packagePath, pkg, opts)

	default:
		return r.resolveDependency(spec, baseDir, opts)
	}
}

// resolveModuleWithPackageJSON handles the specifiers that refer to the
// enclosing package itself: subpath imports and self-references by name.
func (r *resolution) resolveModuleWithPackageJSON(
	spec, baseDir, packagePath string,
	pkg *manifest.PackageJSON,
	opts Options,
) (string, error) {
	if strings.HasPrefix(spec, "#") {
		return r.resolveImportAlias(spec, packagePath, pkg, opts)
	}

	if pkg != nil && pkg.Name != "" {
		if subpath, ok := strings.CutPrefix(spec, pkg.Name+"/"); ok {
			r.debug("%q is a self-reference to %s", spec, pkg.Name)
			return r.resolveExport(subpath, packagePath, pkg, opts)
		}
	}

	return r.resolveDependency(spec, baseDir, opts)
}

// resolveDependency looks the package up in the nearest node_modules
// directory that has it. Once a package directory is found, resolution is
// committed to it: farther ancestors are never consulted.
func (r *resolution) resolveDependency(spec, baseDir string, opts Options) (string, error) {
	if err := r.descend(); err != nil {
		return "", err
	}
	defer r.ascend()

	packageName, subpath, err := specifier.ParsePackage(spec)
	if err != nil {
		return "", err
	}

	for dir := range ancestors(baseDir) {
		packagePath := filepath.Join(dir, "node_modules", packageName)
		realPath, ok := r.packageDirectory(packagePath)
		if !ok {
			continue
		}
		r.debug("resolving %q in %s", spec, packagePath)
		return r.resolveInPackage(subpath, packagePath, realPath, opts)
	}

	return "", ErrNotFound
}

// packageDirectory reports whether packagePath is a directory, or a symlink
// to one, and returns the directory to read the manifest from.
func (r *resolution) packageDirectory(packagePath string) (string, bool) {
	info, err := r.fs.PathInfo(packagePath)
	if err != nil {
		return "", false
	}
	switch info.Kind {
	case PathDirectory:
		return packagePath, true
	case PathSymlink:
		target, err := r.fs.PathInfo(info.Target)
		if err != nil || target.Kind != PathDirectory {
			return "", false
		}
		return info.Target, true
	default:
		return "", false
	}
}

func (r *resolution) resolveInPackage(subpath, packagePath, realPath string, opts Options) (string, error) {
	exact := opts.WithoutExtensionsOrManifests()

	pkg, err := r.fs.ReadPackageJSON(filepath.Join(realPath, PackageJSONFileName))
	switch {
	case err == nil:
		if _, ok := pkg.GetValueByPath("exports"); ok {
			return r.resolveExport(subpath, packagePath, pkg, opts)
		}
		if subpath == "" {
			if entry, ok := r.entryPoint(pkg, opts); ok {
				return r.resolveRelativePath(entry, packagePath, exact)
			}
		}
	case !errors.Is(err, ErrNotFound):
		r.warn("ignoring unreadable manifest in %s: %v", realPath, err)
	}

	return r.resolveRelativePath(subpath, packagePath, exact)
}

// entryPoint returns the manifest field naming the package's root module.
func (r *resolution) entryPoint(pkg *manifest.PackageJSON, opts Options) (string, bool) {
	if opts.PreferTypes && pkg.Types != "" {
		return pkg.Types, true
	}
	main, ok := pkg.GetValueByPath("main")
	if !ok {
		return "", false
	}
	return manifest.AsString(main)
}
