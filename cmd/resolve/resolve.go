/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolve provides the resolve command for modresolve.
package resolve

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/modresolve/cache"
	"bennypowers.dev/modresolve/cmd/settings"
	"bennypowers.dev/modresolve/fs"
	"bennypowers.dev/modresolve/resolver"
	"bennypowers.dev/modresolve/specifier"
)

// Cmd is the resolve cobra command.
var Cmd = &cobra.Command{
	Use:   "resolve [specifiers...]",
	Short: "Resolve import specifiers to file paths",
	Long: `Resolve import specifiers the way Node.js does, honoring package.json
exports and imports maps, conditions, symlinks and extension probing.

Specifiers are read from standard input, one per line, when none are given.

Examples:
  # Resolve a dependency from the current directory
  modresolve resolve lodash

  # Resolve relative to a source file's directory, for bundlers
  modresolve resolve --from src/components ./button '#internal/utils'

  # Resolve the browser build of a package as JSON
  modresolve resolve --condition browser,import,default --format json preact`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().String("from", ".", "Directory to resolve from, relative to --root")
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json, yaml)")
	Cmd.Flags().IntP("jobs", "j", runtime.GOMAXPROCS(0), "Number of specifiers resolved concurrently")
}

// Result is the outcome of resolving one specifier.
type Result struct {
	Specifier string `json:"specifier" yaml:"specifier"`
	Kind      string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Package   string `json:"package,omitempty" yaml:"package,omitempty"`
	Path      string `json:"path,omitempty" yaml:"path,omitempty"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

func run(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	format, _ := cmd.Flags().GetString("format")
	jobs, _ := cmd.Flags().GetInt("jobs")

	s, err := settings.Load(cmd, fs.NewOSFileSystem())
	if err != nil {
		return err
	}

	specs := args
	if len(specs) == 0 {
		specs, err = readSpecifiers(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("error reading specifiers: %w", err)
		}
	}

	c := cache.New(resolver.NewFSProxy(s.FS), s.Options)
	results, err := resolveAll(cmd.Context(), c, s.Abs(from), specs, jobs)
	if err != nil {
		return err
	}

	if err := write(cmd.OutOrStdout(), format, results); err != nil {
		return err
	}

	if failed := countFailures(results); failed > 0 {
		return fmt.Errorf("%d of %d specifiers did not resolve", failed, len(results))
	}
	return nil
}

// readSpecifiers returns the non-blank lines of r.
func readSpecifiers(r io.Reader) ([]string, error) {
	var specs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			specs = append(specs, line)
		}
	}
	return specs, scanner.Err()
}

// resolveAll resolves specs concurrently. Results keep the order of specs,
// and repeated specifiers are resolved once.
func resolveAll(ctx context.Context, c *cache.Cache, baseDir string, specs []string, jobs int) ([]Result, error) {
	results := make([]Result, len(specs))

	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, spec := range specs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			resolved := c.Resolve(spec, baseDir)
			results[i] = Result{Specifier: spec, Path: resolved.Path()}
			results[i].Kind, results[i].Package = label(spec)
			if err := resolved.Err(); err != nil {
				results[i].Error = err.Error()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// label describes what kind of specifier spec is and, for a well-formed
// package specifier, which package it names.
func label(spec string) (kind, pkg string) {
	parsed, err := specifier.Parse(spec)
	switch {
	case err != nil:
		return specifier.Classify(specifier.StripQueryAndFragment(spec)).String(), ""
	case specifier.IsNodeBuiltin(parsed.Raw):
		return "builtin", ""
	default:
		return parsed.Kind.String(), parsed.Package
	}
}

func countFailures(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Error != "" {
			n++
		}
	}
	return n
}

func write(w io.Writer, format string, results []Result) error {
	switch format {
	case "json":
		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling results: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("error marshaling results: %w", err)
		}
		return enc.Close()
	case "text", "":
		for _, r := range results {
			value := r.Path
			if r.Error != "" {
				value = "error: " + r.Error
			}
			if _, err := fmt.Fprintf(w, "%-40s %s\n", r.Specifier, value); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
