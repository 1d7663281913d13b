/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package manifest

import "fmt"

// PackageJSON is a parsed package.json.
//
// Only the fields module resolution consults are lifted out; everything else
// stays reachable through GetValueByPath.
type PackageJSON struct {
	// Name is the package name, empty when the field is missing or not a string.
	Name string

	// Version is the "version" field.
	Version string

	// Type is the "type" field ("module" or "commonjs").
	Type string

	// Main is the "main" field, empty unless it is a string.
	Main string

	// Types is the "types" field, falling back to the legacy "typings".
	Types string

	// Exports is the raw "exports" value, nil when absent.
	Exports Value

	// Imports is the raw "imports" value, nil when absent.
	Imports Value

	root *Object
}

// NewPackageJSON builds a manifest from an already-parsed root object.
func NewPackageJSON(root *Object) *PackageJSON {
	if root == nil {
		root = &Object{}
	}
	pkg := &PackageJSON{root: root}
	pkg.Name = stringField(root, "name")
	pkg.Version = stringField(root, "version")
	pkg.Type = stringField(root, "type")
	pkg.Main = stringField(root, "main")
	pkg.Types = stringField(root, "types")
	if pkg.Types == "" {
		pkg.Types = stringField(root, "typings")
	}
	pkg.Exports, _ = root.Get("exports")
	pkg.Imports, _ = root.Get("imports")
	return pkg
}

// ParsePackageJSON parses the contents of a package.json file.
func ParsePackageJSON(data []byte) (*PackageJSON, error) {
	value, err := ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse package.json: %w", err)
	}
	root, ok := AsObject(value)
	if !ok {
		return nil, fmt.Errorf("failed to parse package.json: %w", ErrNotObject)
	}
	return NewPackageJSON(root), nil
}

// GetValueByPath walks nested objects by key and returns the value found at
// the end of the path.
func (p *PackageJSON) GetValueByPath(segments ...string) (Value, bool) {
	if p == nil {
		return nil, false
	}
	var current Value = p.root
	for _, segment := range segments {
		obj, ok := AsObject(current)
		if !ok {
			return nil, false
		}
		current, ok = obj.Get(segment)
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Root returns the whole manifest.
func (p *PackageJSON) Root() *Object {
	return p.root
}

func stringField(obj *Object, key string) string {
	v, ok := obj.Get(key)
	if !ok {
		return ""
	}
	s, _ := AsString(v)
	return s
}
