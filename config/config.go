/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for module resolution.
package config

import (
	"fmt"
	"path/filepath"

	modfs "bennypowers.dev/modresolve/fs"
	"bennypowers.dev/modresolve/manifest"
	"bennypowers.dev/modresolve/resolver"
)

// Manifest settings accepted by PackageJSON and TsConfig. Any other value
// is taken as the path of an explicit manifest.
const (
	ManifestAuto = "auto"
	ManifestOff  = "off"
)

// TsConfigFileName is the name of the TypeScript project manifest.
const TsConfigFileName = "tsconfig.json"

// Config represents the module resolution configuration.
type Config struct {
	// Conditions are the accepted export and import conditions.
	Conditions []string `yaml:"conditions" json:"conditions"`

	// Extensions are probed, without leading dot, in priority order.
	Extensions []string `yaml:"extensions" json:"extensions"`

	// DefaultFiles are the directory entry points, without extension.
	DefaultFiles []string `yaml:"defaultFiles" json:"defaultFiles"`

	// AssumeRelative tries bare specifiers as relative paths first.
	AssumeRelative bool `yaml:"assumeRelative" json:"assumeRelative"`

	// PreferTypes resolves dependencies to their "types" entry point.
	PreferTypes bool `yaml:"preferTypes" json:"preferTypes"`

	// NodeBuiltins reports Node.js builtins instead of looking them up.
	NodeBuiltins bool `yaml:"nodeBuiltins" json:"nodeBuiltins"`

	// PackageJSON is "auto", "off", or the path of a package.json to use
	// for every resolution.
	PackageJSON string `yaml:"packageJson" json:"packageJson"`

	// TsConfig is "auto", "off", or the path of a tsconfig.json.
	TsConfig string `yaml:"tsconfig" json:"tsconfig"`

	// Ignore lists glob patterns of package entries the check command
	// skips (e.g. "./internal/**").
	Ignore []string `yaml:"ignore" json:"ignore"`
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		Conditions:   []string{"node", "import", "default"},
		Extensions:   []string{"js", "mjs", "cjs", "ts", "mts", "cts", "json"},
		DefaultFiles: []string{"index"},
		PackageJSON:  ManifestAuto,
		TsConfig:     ManifestAuto,
	}
}

// Options converts the configuration to resolver.Options. Explicit manifest
// paths are relative to rootDir and are read and parsed here.
func (c *Config) Options(filesystem modfs.FileSystem, rootDir string) (resolver.Options, error) {
	opts := resolver.Options{
		AssumeRelative:      c.AssumeRelative,
		ConditionNames:      c.Conditions,
		DefaultFiles:        c.DefaultFiles,
		Extensions:          c.Extensions,
		PreferTypes:         c.PreferTypes,
		ResolveNodeBuiltins: c.NodeBuiltins,
	}

	switch c.PackageJSON {
	case "", ManifestAuto:
		opts.PackageJSON = resolver.Auto[*manifest.PackageJSON]()
	case ManifestOff:
		opts.PackageJSON = resolver.Off[*manifest.PackageJSON]()
	default:
		path := manifestPath(rootDir, c.PackageJSON, resolver.PackageJSONFileName, filesystem)
		data, err := filesystem.ReadFile(path)
		if err != nil {
			return resolver.Options{}, fmt.Errorf("reading package.json: %w", err)
		}
		pkg, err := manifest.ParsePackageJSON(data)
		if err != nil {
			return resolver.Options{}, fmt.Errorf("%s: %w", path, err)
		}
		opts.PackageJSON = resolver.Explicit(filepath.Dir(path), pkg)
	}

	switch c.TsConfig {
	case "", ManifestAuto:
		opts.TsConfig = resolver.Auto[*manifest.TsConfigJSON]()
	case ManifestOff:
		opts.TsConfig = resolver.Off[*manifest.TsConfigJSON]()
	default:
		path := manifestPath(rootDir, c.TsConfig, TsConfigFileName, filesystem)
		data, err := filesystem.ReadFile(path)
		if err != nil {
			return resolver.Options{}, fmt.Errorf("reading tsconfig: %w", err)
		}
		tsconfig, err := manifest.ParseTsConfigJSON(path, data)
		if err != nil {
			return resolver.Options{}, err
		}
		opts.TsConfig = resolver.Explicit(filepath.Dir(path), tsconfig)
	}

	return opts, nil
}

// manifestPath makes path absolute against rootDir. A directory is taken
// to contain a manifest named fileName.
func manifestPath(rootDir, path, fileName string, filesystem modfs.FileSystem) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(rootDir, path)
	}
	if info, err := filesystem.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, fileName)
	}
	return path
}
