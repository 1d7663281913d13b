/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package settings merges the config file, environment and command-line
// flags into the options every modresolve command resolves with.
package settings

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"bennypowers.dev/modresolve/config"
	"bennypowers.dev/modresolve/fs"
	"bennypowers.dev/modresolve/internal/logger"
	"bennypowers.dev/modresolve/resolver"
)

// Flag names that are not resolution settings.
const (
	FlagRoot    = "root"
	FlagVerbose = "verbose"
)

// AddFlags registers the persistent flags shared by all commands.
func AddFlags(flags *pflag.FlagSet) {
	flags.String(FlagRoot, ".", "Project root containing .config/modresolve.{yaml,yml,json}")
	flags.BoolP(FlagVerbose, "v", false, "Log resolution traces")

	flags.StringSlice(config.KeyCondition, nil, "Accepted export and import conditions, in any order")
	flags.StringSlice(config.KeyExtension, nil, "Extensions to probe, in priority order")
	flags.StringSlice(config.KeyDefaultFile, nil, "Directory entry points without extension, in priority order")
	flags.Bool(config.KeyAssumeRelative, false, "Try bare specifiers as relative paths first")
	flags.Bool(config.KeyPreferTypes, false, `Resolve dependencies to their "types" entry point`)
	flags.Bool(config.KeyNodeBuiltins, false, "Report Node.js builtins instead of looking them up")
	flags.String(config.KeyPackageJSON, "", `package.json to use: "auto", "off" or a path`)
	flags.String(config.KeyTsConfig, "", `tsconfig.json to use: "auto", "off" or a path`)
	flags.StringSlice(config.KeyIgnore, nil, "Glob patterns of package entries to skip when checking")
}

// Settings is the merged configuration of one command invocation.
type Settings struct {
	FS      fs.FileSystem
	Root    string
	Config  *config.Config
	Options resolver.Options
}

// Load reads the config file under --root and applies environment
// variables and changed flags on top of it.
func Load(cmd *cobra.Command, filesystem fs.FileSystem) (*Settings, error) {
	flags := cmd.Flags()

	root, err := flags.GetString(FlagRoot)
	if err != nil {
		return nil, fmt.Errorf("error reading root flag: %w", err)
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(filesystem, root)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if cfg == nil {
		cfg = config.Default()
	}

	v := config.NewViper()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}
	cfg.Overlay(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts, err := cfg.Options(filesystem, root)
	if err != nil {
		return nil, err
	}

	verbose, _ := flags.GetBool(FlagVerbose)
	logger.SetVerbose(verbose)
	opts.Logger = logger.Resolver{}

	return &Settings{
		FS:      filesystem,
		Root:    root,
		Config:  cfg,
		Options: opts,
	}, nil
}

// Abs makes path absolute against the project root.
func (s *Settings) Abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(s.Root, path)
}
