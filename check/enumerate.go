/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package check

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	modfs "bennypowers.dev/modresolve/fs"
	"bennypowers.dev/modresolve/manifest"
	"bennypowers.dev/modresolve/resolver"
)

// enumerator lists the entries of a package, expanding glob keys against
// the files of the package.
type enumerator struct {
	fs         modfs.FileSystem
	packageDir string
}

func (e *enumerator) entries(pkg *manifest.PackageJSON) ([]Entry, error) {
	var entries []Entry

	if exports, ok := pkg.GetValueByPath("exports"); ok {
		obj, isObject := manifest.AsObject(exports)
		if isObject && isSubpathMap(obj) {
			mapped, err := e.mapEntries(FieldExports, obj)
			if err != nil {
				return nil, err
			}
			entries = append(entries, mapped...)
		} else {
			entries = append(entries, Entry{Field: FieldExports, Key: ".", Specifier: "."})
		}
	} else if main, ok := pkg.GetValueByPath("main"); ok {
		if s, ok := manifest.AsString(main); ok {
			entries = append(entries, Entry{Field: FieldMain, Key: "main", Specifier: s})
		}
	}

	if imports, ok := pkg.GetValueByPath("imports"); ok {
		if obj, ok := manifest.AsObject(imports); ok {
			mapped, err := e.mapEntries(FieldImports, obj)
			if err != nil {
				return nil, err
			}
			entries = append(entries, mapped...)
		}
	}

	return entries, nil
}

// isSubpathMap tells a map of subpaths from an object of conditions.
func isSubpathMap(obj *manifest.Object) bool {
	return obj.Len() > 0 && strings.HasPrefix(obj.Members[0].Key, ".")
}

func (e *enumerator) mapEntries(field Field, mapping *manifest.Object) ([]Entry, error) {
	var entries []Entry
	for _, m := range mapping.Members {
		keyPrefix, keySuffix, isGlob := strings.Cut(m.Key, "*")
		if !isGlob {
			entries = append(entries, Entry{Field: field, Key: m.Key, Specifier: m.Key})
			continue
		}

		var captures []string
		for _, target := range targets(m.Value) {
			expanded, err := e.expand(target)
			if err != nil {
				return nil, fmt.Errorf("expanding %s %q: %w", field, m.Key, err)
			}
			captures = append(captures, expanded...)
		}
		slices.Sort(captures)
		captures = slices.Compact(captures)

		if len(captures) == 0 {
			entries = append(entries, Entry{
				Field:     field,
				Key:       m.Key,
				Specifier: m.Key,
				Result:    resolver.FromError(ErrNoMatches),
			})
			continue
		}
		for _, capture := range captures {
			entries = append(entries, Entry{
				Field:     field,
				Key:       m.Key,
				Specifier: keyPrefix + capture + keySuffix,
			})
		}
	}
	return entries, nil
}

// targets collects every string target under v, whatever its condition.
func targets(v manifest.Value) []string {
	switch v := v.(type) {
	case manifest.String:
		return []string{string(v)}
	case *manifest.Object:
		var out []string
		for _, m := range v.Members {
			out = append(out, targets(m.Value)...)
		}
		return out
	default:
		return nil
	}
}

// expand returns the values "*" takes in a package-relative target such
// as "./src/*.js", one per matching file. Targets naming other packages
// are not expanded, and a target directory that does not exist matches
// nothing.
func (e *enumerator) expand(target string) ([]string, error) {
	rel, ok := strings.CutPrefix(target, "./")
	if !ok {
		return nil, nil
	}
	prefix, suffix, ok := strings.Cut(rel, "*")
	if !ok {
		return nil, nil
	}
	root := filepath.Join(e.packageDir, path.Dir(prefix+"x"))

	var captures []string
	err := fs.WalkDir(e.fs, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root && (errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() {
			if d.Name() == "node_modules" {
				return fs.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(e.packageDir, p)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)
		if len(relPath) < len(prefix)+len(suffix) ||
			!strings.HasPrefix(relPath, prefix) {
			return nil
		}

		// Further stars repeat the capture, which substitution verifies.
		captured, found := capture(relPath[len(prefix):], suffix)
		if found && strings.ReplaceAll(rel, "*", captured) == relPath {
			captures = append(captures, captured)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return captures, nil
}

// capture returns what "*" matched in s, given the remainder of the
// pattern after the star.
func capture(s, rest string) (string, bool) {
	next := strings.IndexByte(rest, '*')
	if next < 0 {
		if !strings.HasSuffix(s, rest) {
			return "", false
		}
		return s[:len(s)-len(rest)], true
	}
	// The text between the first and second star fixes where the
	// capture ends.
	literal := rest[:next]
	if literal == "" {
		return "", false
	}
	i := strings.Index(s, literal)
	if i < 0 {
		return "", false
	}
	return s[:i], true
}
