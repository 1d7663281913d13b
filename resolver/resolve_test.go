/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/modresolve/internal/mapfs"
	"bennypowers.dev/modresolve/resolver"
)

func newProxy(files map[string]string) (*mapfs.MapFileSystem, resolver.FSProxy) {
	mfs := mapfs.New()
	for path, content := range files {
		mfs.AddFile(path, content, 0644)
	}
	return mfs, resolver.NewFSProxy(mfs)
}

func defaultOptions() resolver.Options {
	return resolver.Options{
		ConditionNames: []string{"import", "default"},
		DefaultFiles:   []string{"index"},
		Extensions:     []string{"ts", "js"},
	}
}

func TestResolve_RelativeWithExtension(t *testing.T) {
	_, proxy := newProxy(map[string]string{
		"/proj/src/a.ts": "export {}",
	})

	got, err := resolver.Resolve("./a", "/proj/src", proxy, resolver.Options{Extensions: []string{"ts"}})
	require.NoError(t, err)
	assert.Equal(t, "/proj/src/a.ts", got)
}

func TestResolve_ExactFileWins(t *testing.T) {
	_, proxy := newProxy(map[string]string{
		"/proj/src/a.js":    "",
		"/proj/src/a.js.ts": "",
	})

	got, err := resolver.Resolve("./a.js", "/proj/src", proxy, defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "/proj/src/a.js", got)
}

func TestResolve_ParentRelative(t *testing.T) {
	_, proxy := newProxy(map[string]string{
		"/proj/lib/util.js": "",
	})

	got, err := resolver.Resolve("../lib/util", "/proj/src", proxy, defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "/proj/lib/util.js", got)
}

func TestResolve_DotIsBaseDirectory(t *testing.T) {
	_, proxy := newProxy(map[string]string{
		"/proj/src/index.ts": "",
	})

	got, err := resolver.Resolve(".", "/proj/src", proxy, defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "/proj/src/index.ts", got)
}

func TestResolve_AbsoluteNormalization(t *testing.T) {
	_, proxy := newProxy(map[string]string{
		"/y/file.js": "",
	})

	normalized := resolver.ResolvePath("/x/../y/file.js", "/", proxy, defaultOptions())
	direct := resolver.ResolvePath("/y/file.js", "/", proxy, defaultOptions())

	require.True(t, direct.IsOK(), "direct: %v", direct.Err())
	assert.True(t, normalized.Equal(direct))
	assert.Equal(t, "/y/file.js", normalized.Path())

	dotted := resolver.ResolvePath("/y/./file.js", "/", proxy, defaultOptions())
	assert.True(t, dotted.Equal(direct))
}

func TestResolve_Deterministic(t *testing.T) {
	_, proxy := newProxy(map[string]string{
		"/proj/node_modules/pkg/package.json": `{"exports": {".": "./main.js"}}`,
		"/proj/node_modules/pkg/main.js":      "",
	})

	first := resolver.ResolvePath("pkg", "/proj", proxy, defaultOptions())
	second := resolver.ResolvePath("pkg", "/proj", proxy, defaultOptions())
	assert.True(t, first.Equal(second))
	assert.Equal(t, "/proj/node_modules/pkg/main.js", first.Path())

	missingA := resolver.ResolvePath("nope", "/proj", proxy, defaultOptions())
	missingB := resolver.ResolvePath("nope", "/proj", proxy, defaultOptions())
	assert.True(t, missingA.Equal(missingB))
}

func TestResolve_DirectoryDefaultFilePriority(t *testing.T) {
	_, proxy := newProxy(map[string]string{
		"/proj/dir/index.js": "",
		"/proj/dir/main.ts":  "",
	})

	opts := resolver.Options{
		DefaultFiles: []string{"index", "main"},
		Extensions:   []string{"ts", "js"},
	}
	got, err := resolver.Resolve("./dir", "/proj", proxy, opts)
	require.NoError(t, err)
	assert.Equal(t, "/proj/dir/index.js", got)
}

func TestResolve_DirectoryWithoutDefault(t *testing.T) {
	mfs, proxy := newProxy(nil)
	mfs.AddDir("/proj/empty", 0755)

	_, err := resolver.Resolve("./empty", "/proj", proxy, defaultOptions())
	assert.ErrorIs(t, err, resolver.ErrDirectoryWithoutDefault)
}

func TestResolve_DirectoryFallsBackToExtension(t *testing.T) {
	_, proxy := newProxy(map[string]string{
		"/proj/src/utils/helpers.ts": "",
		"/proj/src/utils.ts":         "",
	})

	got, err := resolver.Resolve("./utils", "/proj/src", proxy, defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "/proj/src/utils.ts", got)
}

func TestResolve_ExtensionCandidateDirectoryRejected(t *testing.T) {
	_, proxy := newProxy(map[string]string{
		"/proj/src/a.ts/index.ts": "",
		"/proj/src/a.js":          "",
	})

	got, err := resolver.Resolve("./a", "/proj/src", proxy, defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "/proj/src/a.js", got)
}

func TestResolve_NotFound(t *testing.T) {
	_, proxy := newProxy(map[string]string{
		"/proj/src/a.ts": "",
	})

	_, err := resolver.Resolve("./b", "/proj/src", proxy, defaultOptions())
	assert.ErrorIs(t, err, resolver.ErrNotFound)

	_, err = resolver.Resolve("./a.ts/nested", "/proj/src", proxy, defaultOptions())
	assert.ErrorIs(t, err, resolver.ErrNotFound)
}

func TestResolve_NodeBuiltins(t *testing.T) {
	_, proxy := newProxy(nil)
	opts := defaultOptions()
	opts.ResolveNodeBuiltins = true

	for _, spec := range []string{"fs", "node:fs", "fs/promises", "node:test", "fs?query"} {
		t.Run(spec, func(t *testing.T) {
			_, err := resolver.Resolve(spec, "/proj", proxy, opts)
			assert.ErrorIs(t, err, resolver.ErrNodeBuiltIn)
		})
	}

	t.Run("disabled", func(t *testing.T) {
		_, err := resolver.Resolve("fs", "/proj", proxy, defaultOptions())
		assert.ErrorIs(t, err, resolver.ErrNotFound)
	})
}

func TestResolve_QueryAndFragmentStripped(t *testing.T) {
	_, proxy := newProxy(map[string]string{
		"/proj/src/a.ts": "",
	})

	for _, spec := range []string{"./a?raw", "./a#hash", "./a.ts?x=1#y"} {
		t.Run(spec, func(t *testing.T) {
			got, err := resolver.Resolve(spec, "/proj/src", proxy, defaultOptions())
			require.NoError(t, err)
			assert.Equal(t, "/proj/src/a.ts", got)
		})
	}
}

func TestResolve_SubpathImportWithQuery(t *testing.T) {
	_, proxy := newProxy(map[string]string{
		"/proj/package.json":     `{"name": "app", "imports": {"#internal": "./src/internal.js"}}`,
		"/proj/src/internal.js":  "",
		"/proj/src/component.js": "",
	})

	got, err := resolver.Resolve("#internal?x=1", "/proj/src", proxy, defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "/proj/src/internal.js", got)
}

func TestResolve_AssumeRelative(t *testing.T) {
	mfs, proxy := newProxy(map[string]string{
		"/proj/foo.ts":                           "",
		"/proj/node_modules/lodash/index.js":     "",
		"/proj/node_modules/lodash/package.json": `{"main": "index.js"}`,
		"/proj/node_modules/dir/package.json":    `{"main": "main.js"}`,
		"/proj/node_modules/dir/main.js":         "",
	})
	mfs.AddDir("/proj/dir", 0755)

	opts := defaultOptions().WithAssumeRelative()

	t.Run("relative wins", func(t *testing.T) {
		got, err := resolver.Resolve("foo", "/proj", proxy, opts)
		require.NoError(t, err)
		assert.Equal(t, "/proj/foo.ts", got)
	})

	t.Run("falls back to package on not found", func(t *testing.T) {
		got, err := resolver.Resolve("lodash", "/proj", proxy, opts)
		require.NoError(t, err)
		assert.Equal(t, "/proj/node_modules/lodash/index.js", got)
	})

	t.Run("other errors do not fall back", func(t *testing.T) {
		_, err := resolver.Resolve("dir", "/proj", proxy, opts)
		assert.ErrorIs(t, err, resolver.ErrDirectoryWithoutDefault)
	})
}

func TestResolve_Symlinks(t *testing.T) {
	mfs, proxy := newProxy(map[string]string{
		"/proj/src/real.js": "",
	})
	mfs.AddSymlink("/proj/src/link.js", "real.js")
	mfs.AddSymlink("/proj/src/dangling.js", "/nowhere.js")

	t.Run("file symlink resolves to target", func(t *testing.T) {
		got, err := resolver.Resolve("./link.js", "/proj/src", proxy, defaultOptions())
		require.NoError(t, err)
		assert.Equal(t, "/proj/src/real.js", got)
	})

	t.Run("dangling symlink is not found", func(t *testing.T) {
		_, err := resolver.Resolve("./dangling.js", "/proj/src", proxy, defaultOptions())
		assert.ErrorIs(t, err, resolver.ErrNotFound)
	})
}

func TestResolvedPath(t *testing.T) {
	a := resolver.FromPath("/a.js")
	b := resolver.FromPath("/b.js")
	notFound := resolver.FromError(resolver.ErrNotFound)

	assert.True(t, a.IsOK())
	assert.Equal(t, "/a.js", a.Path())
	assert.NoError(t, a.Err())

	assert.False(t, notFound.IsOK())
	assert.Empty(t, notFound.Path())
	assert.ErrorIs(t, notFound.Err(), resolver.ErrNotFound)

	copied := a
	assert.True(t, copied.Equal(a))
	assert.True(t, a.Equal(resolver.FromPath("/a.js")), "equality compares values")

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, -1, b.Compare(notFound), "successes sort before failures")
	assert.Equal(t, 1, notFound.Compare(a))

	var zero resolver.ResolvedPath
	assert.ErrorIs(t, zero.Err(), resolver.ErrNotFound)
	assert.True(t, zero.Equal(notFound))
}
