/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package check provides the check command for modresolve.
package check

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	checklib "bennypowers.dev/modresolve/check"
	"bennypowers.dev/modresolve/cmd/settings"
	"bennypowers.dev/modresolve/fs"
	"bennypowers.dev/modresolve/internal/logger"
)

// Cmd is the check cobra command.
var Cmd = &cobra.Command{
	Use:   "check [package-dir]",
	Short: "Verify that a package's entry points resolve",
	Long: `Resolve every entry of a package's exports and imports maps, or its
main field when it has no exports, and report the ones that do not resolve.

Glob keys such as "./utils/*" are expanded against the package's files.

Examples:
  # Check the package in the current directory
  modresolve check

  # Check the require build of a dependency, skipping internals
  modresolve check --condition require,default --ignore './internal/**' node_modules/some-lib`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
	Cmd.Flags().IntP("jobs", "j", runtime.GOMAXPROCS(0), "Number of entries resolved concurrently")
}

func run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	jobs, _ := cmd.Flags().GetInt("jobs")

	s, err := settings.Load(cmd, fs.NewOSFileSystem())
	if err != nil {
		return err
	}

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	report, err := checklib.Package(cmd.Context(), s.FS, s.Abs(dir), checklib.Options{
		Resolve:     s.Options,
		Concurrency: jobs,
		Ignore:      s.Config.Ignore,
	})
	if err != nil {
		return err
	}

	if err := write(cmd.OutOrStdout(), format, report); err != nil {
		return err
	}

	if !report.OK() {
		return errors.New(summary(report))
	}
	logger.Info("%s", summary(report))
	return nil
}

func summary(report *checklib.Report) string {
	if failures := report.Failures(); len(failures) > 0 {
		return fmt.Sprintf("%d of %d entries of %s did not resolve", len(failures), len(report.Entries), displayName(report))
	}
	return fmt.Sprintf("all %d entries of %s resolve", len(report.Entries), displayName(report))
}

func displayName(report *checklib.Report) string {
	if report.Name != "" {
		return report.Name
	}
	return report.PackageDir
}

type entryOutput struct {
	Field     string `json:"field"`
	Key       string `json:"key"`
	Specifier string `json:"specifier"`
	Path      string `json:"path,omitempty"`
	Error     string `json:"error,omitempty"`
}

type reportOutput struct {
	Package    string        `json:"package,omitempty"`
	PackageDir string        `json:"packageDir"`
	OK         bool          `json:"ok"`
	Entries    []entryOutput `json:"entries"`
}

func toOutput(report *checklib.Report) reportOutput {
	out := reportOutput{
		Package:    report.Name,
		PackageDir: report.PackageDir,
		OK:         report.OK(),
		Entries:    make([]entryOutput, 0, len(report.Entries)),
	}
	for _, e := range report.Entries {
		entry := entryOutput{
			Field:     string(e.Field),
			Key:       e.Key,
			Specifier: e.Specifier,
			Path:      e.Result.Path(),
		}
		if err := e.Result.Err(); err != nil {
			entry.Error = err.Error()
		}
		out.Entries = append(out.Entries, entry)
	}
	return out
}

func write(w io.Writer, format string, report *checklib.Report) error {
	switch format {
	case "json":
		out, err := json.MarshalIndent(toOutput(report), "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "text", "":
		for _, e := range toOutput(report).Entries {
			status, value := "ok", e.Path
			if e.Error != "" {
				status, value = "FAIL", e.Error
			}
			if _, err := fmt.Fprintf(w, "%-4s %-7s %-40s %s\n", status, e.Field, e.Specifier, value); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
