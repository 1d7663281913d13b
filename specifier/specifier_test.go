/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"errors"
	"testing"
)

func TestStripQueryAndFragment(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want string
	}{
		{"no query", "./a.js", "./a.js"},
		{"query", "./a.js?raw", "./a.js"},
		{"fragment", "./a.js#frag", "./a.js"},
		{"query before fragment", "./a.js?x=1#frag", "./a.js"},
		{"subpath import keeps hash", "#internal", "#internal"},
		{"subpath import with query", "#internal?x=1", "#internal"},
		{"subpath import with second hash", "#internal#frag", "#internal"},
		{"leading question mark kept", "?", "?"},
		{"single hash", "#", "#"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripQueryAndFragment(tt.spec); got != tt.want {
				t.Errorf("StripQueryAndFragment(%q) = %q, want %q", tt.spec, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		spec string
		want Kind
	}{
		{"/abs/path", KindAbsolute},
		{".", KindRelative},
		{"./x", KindRelative},
		{"../x", KindRelative},
		{"..", KindBare},
		{".hidden", KindBare},
		{"#internal", KindImport},
		{"lodash", KindBare},
		{"@scope/pkg/sub", KindBare},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			if got := Classify(tt.spec); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParsePackage(t *testing.T) {
	tests := []struct {
		name        string
		spec        string
		wantName    string
		wantSubpath string
		wantErr     bool
	}{
		{"unscoped", "lodash", "lodash", "", false},
		{"unscoped subpath", "lodash/fp/map", "lodash", "fp/map", false},
		{"scoped", "@scope/name", "@scope/name", "", false},
		{"scoped subpath", "@scope/name/sub/path", "@scope/name", "sub/path", false},
		{"bare scope", "@scope", "@scope", "", false},
		{"trailing slash", "pkg/", "pkg", "", false},
		{"leading dot", ".bin/tool", "", "", true},
		{"backslash", `pkg\win`, "", "", true},
		{"percent", "pkg%20", "", "", true},
		{"empty name", "/x", "", "", true},
		{"empty", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, subpath, err := ParsePackage(tt.spec)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPackageSpecifier) {
					t.Fatalf("ParsePackage(%q) error = %v, want ErrInvalidPackageSpecifier", tt.spec, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if subpath != tt.wantSubpath {
				t.Errorf("subpath = %q, want %q", subpath, tt.wantSubpath)
			}
		})
	}
}

func TestParse(t *testing.T) {
	s, err := Parse("@scope/pkg/utils/format.js?raw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Kind != KindBare {
		t.Errorf("Kind = %v, want KindBare", s.Kind)
	}
	if s.Package != "@scope/pkg" {
		t.Errorf("Package = %q, want %q", s.Package, "@scope/pkg")
	}
	if s.Subpath != "utils/format.js" {
		t.Errorf("Subpath = %q, want %q", s.Subpath, "utils/format.js")
	}
	if s.Raw != "@scope/pkg/utils/format.js" {
		t.Errorf("Raw = %q, want %q", s.Raw, "@scope/pkg/utils/format.js")
	}

	local, err := Parse("./button.js#main")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if local.Kind != KindRelative || local.Package != "" || local.Raw != "./button.js" {
		t.Errorf("Parse(./button.js#main) = %+v, want relative ./button.js", local)
	}

	internal, err := Parse("#internal/utils")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if internal.Kind != KindImport || internal.Raw != "#internal/utils" {
		t.Errorf("Parse(#internal/utils) = %+v, want import #internal/utils", internal)
	}

	if _, err := Parse(".bin"); !errors.Is(err, ErrInvalidPackageSpecifier) {
		t.Errorf("Parse(.bin) error = %v, want ErrInvalidPackageSpecifier", err)
	}
}

func TestIsNodeBuiltin(t *testing.T) {
	tests := []struct {
		spec string
		want bool
	}{
		{"fs", true},
		{"fs/promises", true},
		{"node:fs", true},
		{"node:test", true},
		{"test", false},
		{"lodash", false},
		{"./fs", false},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			if got := IsNodeBuiltin(tt.spec); got != tt.want {
				t.Errorf("IsNodeBuiltin(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}
