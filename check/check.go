/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package check verifies that every entry point a package declares in its
// package.json actually resolves to a file.
package check

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	modfs "bennypowers.dev/modresolve/fs"
	"bennypowers.dev/modresolve/manifest"
	"bennypowers.dev/modresolve/resolver"
)

// ErrNoMatches is the result of a glob key whose targets match no file.
var ErrNoMatches = errors.New("glob pattern matches no files")

// Field names the package.json field an entry comes from.
type Field string

const (
	FieldExports Field = "exports"
	FieldImports Field = "imports"
	FieldMain    Field = "main"
)

func (f Field) rank() int {
	switch f {
	case FieldExports:
		return 0
	case FieldImports:
		return 1
	default:
		return 2
	}
}

// Options configures a package check.
type Options struct {
	// Resolve is used for every entry.
	Resolve resolver.Options

	// Concurrency bounds the number of entries resolved at once.
	// Zero means GOMAXPROCS.
	Concurrency int

	// Ignore lists doublestar patterns. Entries whose key or specifier
	// matches one are skipped.
	Ignore []string
}

// Entry is one checked entry point.
type Entry struct {
	// Field is the manifest field declaring the entry.
	Field Field

	// Key is the key as declared, e.g. "./utils/*" or "#internal".
	Key string

	// Specifier is the concrete subpath or import that was resolved, e.g.
	// "./utils/format". It equals Key unless Key is a glob.
	Specifier string

	// Result is the outcome of resolving Specifier.
	Result resolver.ResolvedPath
}

// Report is the outcome of checking one package.
type Report struct {
	PackageDir string
	Name       string
	Entries    []Entry
}

// Failures returns the entries that did not resolve.
func (r *Report) Failures() []Entry {
	var failed []Entry
	for _, e := range r.Entries {
		if !e.Result.IsOK() {
			failed = append(failed, e)
		}
	}
	return failed
}

// OK reports whether every entry resolved.
func (r *Report) OK() bool {
	return len(r.Failures()) == 0
}

// Package reads the package.json in packageDir and resolves every entry of
// its exports and imports maps, or its main field when it has no exports.
// Entries are sorted by field, then by specifier.
func Package(ctx context.Context, filesystem modfs.FileSystem, packageDir string, opts Options) (*Report, error) {
	packageDir = resolver.NormalizePath(packageDir)
	proxy := resolver.NewFSProxy(filesystem)

	pkg, err := proxy.ReadPackageJSON(filepath.Join(packageDir, resolver.PackageJSONFileName))
	if err != nil {
		return nil, fmt.Errorf("reading package in %s: %w", packageDir, err)
	}

	e := &enumerator{fs: filesystem, packageDir: packageDir}
	entries, err := e.entries(pkg)
	if err != nil {
		return nil, fmt.Errorf("listing entries of %s: %w", packageDir, err)
	}
	entries = slices.DeleteFunc(entries, func(entry Entry) bool {
		return ignored(opts.Ignore, entry)
	})

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := range entries {
		if errors.Is(entries[i].Result.Err(), ErrNoMatches) {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			entries[i].Result = resolveEntry(entries[i], packageDir, pkg, proxy, opts.Resolve)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return cmp.Or(
			cmp.Compare(a.Field.rank(), b.Field.rank()),
			strings.Compare(a.Specifier, b.Specifier),
			strings.Compare(a.Key, b.Key),
		)
	})

	return &Report{
		PackageDir: packageDir,
		Name:       pkg.Name,
		Entries:    entries,
	}, nil
}

func resolveEntry(entry Entry, packageDir string, pkg *manifest.PackageJSON, proxy resolver.FSProxy, opts resolver.Options) resolver.ResolvedPath {
	switch entry.Field {
	case FieldExports:
		return resolver.NewResolvedPath(resolver.ResolveExport(entry.Specifier, packageDir, pkg, proxy, opts))
	case FieldImports:
		return resolver.NewResolvedPath(resolver.ResolveImport(entry.Specifier, packageDir, pkg, proxy, opts))
	default:
		path := filepath.Join(packageDir, entry.Specifier)
		return resolver.ResolvePath(path, packageDir, proxy, opts.WithoutExtensionsOrManifests())
	}
}

func ignored(patterns []string, entry Entry) bool {
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, entry.Key); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern, entry.Specifier); matched {
			return true
		}
	}
	return false
}
