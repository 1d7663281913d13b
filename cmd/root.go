/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for modresolve.
package cmd

import (
	"github.com/spf13/cobra"

	"bennypowers.dev/modresolve/cmd/check"
	"bennypowers.dev/modresolve/cmd/resolve"
	"bennypowers.dev/modresolve/cmd/settings"
	"bennypowers.dev/modresolve/cmd/version"
)

var rootCmd = &cobra.Command{
	Use:   "modresolve",
	Short: "Resolve JavaScript and TypeScript import specifiers",
	Long: `modresolve resolves import specifiers to files following the Node.js
module resolution algorithm, including package.json exports and imports maps.

Settings are read from .config/modresolve.{yaml,yml,json} under --root, then
from MODRESOLVE_* environment variables (e.g. MODRESOLVE_PACKAGE_JSON=off),
then from command-line flags.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	settings.AddFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(resolve.Cmd)
	rootCmd.AddCommand(check.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
