/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package manifest

import (
	"fmt"
	"path/filepath"
)

// TsConfigJSON is a parsed tsconfig.json.
type TsConfigJSON struct {
	// Path is the location of the tsconfig.json file itself.
	Path string

	// Extends lists the configs this one extends, in declaration order.
	Extends []string

	// CompilerOptions holds the options relevant to module resolution.
	CompilerOptions CompilerOptions

	// References lists the paths of referenced projects.
	References []string
}

// CompilerOptions is the subset of "compilerOptions" that affects module
// resolution.
type CompilerOptions struct {
	// BaseURL is the absolute form of "baseUrl", resolved against the
	// directory of the tsconfig.json.
	BaseURL string

	// Paths maps path patterns to their substitutions, in declared order.
	Paths []PathMapping

	// Types lists the type packages to include.
	Types []string
}

// PathMapping is a single entry of "compilerOptions.paths".
type PathMapping struct {
	Pattern       string
	Substitutions []string
}

// ParseTsConfigJSON parses a tsconfig.json located at path.
func ParseTsConfigJSON(path string, data []byte) (*TsConfigJSON, error) {
	value, err := ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	root, ok := AsObject(value)
	if !ok {
		return nil, fmt.Errorf("failed to parse %s: %w", path, ErrNotObject)
	}

	cfg := &TsConfigJSON{Path: path}

	if extends, ok := root.Get("extends"); ok {
		cfg.Extends = stringList(extends)
	}

	if refs, ok := root.Get("references"); ok {
		if arr, ok := refs.(Array); ok {
			for _, ref := range arr {
				if obj, ok := AsObject(ref); ok {
					if p := stringField(obj, "path"); p != "" {
						cfg.References = append(cfg.References, p)
					}
				}
			}
		}
	}

	if opts, ok := root.Get("compilerOptions"); ok {
		if obj, ok := AsObject(opts); ok {
			cfg.CompilerOptions = parseCompilerOptions(filepath.Dir(path), obj)
		}
	}

	return cfg, nil
}

func parseCompilerOptions(dir string, obj *Object) CompilerOptions {
	var opts CompilerOptions

	if baseURL := stringField(obj, "baseUrl"); baseURL != "" {
		if filepath.IsAbs(baseURL) {
			opts.BaseURL = filepath.Clean(baseURL)
		} else {
			opts.BaseURL = filepath.Join(dir, baseURL)
		}
	}

	if paths, ok := obj.Get("paths"); ok {
		if mapping, ok := AsObject(paths); ok {
			for _, m := range mapping.Members {
				opts.Paths = append(opts.Paths, PathMapping{
					Pattern:       m.Key,
					Substitutions: stringList(m.Value),
				})
			}
		}
	}

	if types, ok := obj.Get("types"); ok {
		opts.Types = stringList(types)
	}

	return opts
}

// stringList accepts either a single string or an array of strings.
func stringList(v Value) []string {
	switch v := v.(type) {
	case String:
		return []string{string(v)}
	case Array:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := AsString(item); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
