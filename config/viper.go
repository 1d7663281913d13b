/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override the config file,
// e.g. MODRESOLVE_PACKAGE_JSON=off.
const EnvPrefix = "MODRESOLVE"

// Keys shared by command-line flags, environment variables and Overlay.
const (
	KeyCondition      = "condition"
	KeyExtension      = "extension"
	KeyDefaultFile    = "default-file"
	KeyAssumeRelative = "assume-relative"
	KeyPreferTypes    = "prefer-types"
	KeyNodeBuiltins   = "node-builtins"
	KeyPackageJSON    = "package-json"
	KeyTsConfig       = "tsconfig"
	KeyIgnore         = "ignore"
)

// NewViper returns a viper instance that reads MODRESOLVE_* environment
// variables for every key.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Overlay replaces the fields of c whose key is set in v, by a changed flag
// or an environment variable.
func (c *Config) Overlay(v *viper.Viper) {
	if v.IsSet(KeyCondition) {
		c.Conditions = stringSlice(v, KeyCondition)
	}
	if v.IsSet(KeyExtension) {
		c.Extensions = trimDots(stringSlice(v, KeyExtension))
	}
	if v.IsSet(KeyDefaultFile) {
		c.DefaultFiles = stringSlice(v, KeyDefaultFile)
	}
	if v.IsSet(KeyAssumeRelative) {
		c.AssumeRelative = v.GetBool(KeyAssumeRelative)
	}
	if v.IsSet(KeyPreferTypes) {
		c.PreferTypes = v.GetBool(KeyPreferTypes)
	}
	if v.IsSet(KeyNodeBuiltins) {
		c.NodeBuiltins = v.GetBool(KeyNodeBuiltins)
	}
	if v.IsSet(KeyPackageJSON) {
		c.PackageJSON = v.GetString(KeyPackageJSON)
	}
	if v.IsSet(KeyTsConfig) {
		c.TsConfig = v.GetString(KeyTsConfig)
	}
	if v.IsSet(KeyIgnore) {
		c.Ignore = stringSlice(v, KeyIgnore)
	}
}

// stringSlice reads a list-valued key. Environment variables arrive as a
// single string, so every element is also split on commas.
func stringSlice(v *viper.Viper, key string) []string {
	var out []string
	for _, value := range v.GetStringSlice(key) {
		for part := range strings.SplitSeq(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// trimDots accepts ".ts" as well as "ts".
func trimDots(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		out = append(out, strings.TrimPrefix(ext, "."))
	}
	return out
}
