/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cache memoizes resolutions for callers that resolve the same
// specifiers repeatedly, such as bundlers walking an import graph.
//
// The resolver itself keeps no state; a Cache is owned by the caller and
// is only correct as long as the filesystem does not change underneath it.
// Use Invalidate or Clear when it does.
package cache

import (
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"

	"bennypowers.dev/modresolve/resolver"
)

type key struct {
	specifier string
	baseDir   string
}

// Cache maps (specifier, baseDir) pairs to their ResolvedPath. It is safe
// for concurrent use; concurrent lookups of the same pair resolve once.
type Cache struct {
	fs      resolver.FSProxy
	opts    resolver.Options
	entries *xsync.MapOf[key, resolver.ResolvedPath]

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates a cache that resolves through fsys with opts.
func New(fsys resolver.FSProxy, opts resolver.Options) *Cache {
	return &Cache{
		fs:      fsys,
		opts:    opts,
		entries: xsync.NewMapOf[key, resolver.ResolvedPath](),
	}
}

// Options returns the options every resolution in this cache uses.
func (c *Cache) Options() resolver.Options {
	return c.opts
}

// Resolve returns the cached outcome for spec from baseDir, resolving it
// on first use. Failures are cached too.
func (c *Cache) Resolve(spec, baseDir string) resolver.ResolvedPath {
	k := key{specifier: spec, baseDir: resolver.NormalizePath(baseDir)}
	result, loaded := c.entries.LoadOrCompute(k, func() resolver.ResolvedPath {
		return resolver.ResolvePath(k.specifier, k.baseDir, c.fs, c.opts)
	})
	if loaded {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return result
}

// Len returns the number of cached outcomes.
func (c *Cache) Len() int {
	return c.entries.Size()
}

// Clear drops every cached outcome.
func (c *Cache) Clear() {
	c.entries.Clear()
}

// Invalidate drops the outcomes resolved from dir or any directory below
// it, and returns how many were dropped.
func (c *Cache) Invalidate(dir string) int {
	dir = resolver.NormalizePath(dir)
	prefix := dir
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}

	var stale []key
	c.entries.Range(func(k key, _ resolver.ResolvedPath) bool {
		if k.baseDir == dir || strings.HasPrefix(k.baseDir, prefix) {
			stale = append(stale, k)
		}
		return true
	})
	for _, k := range stale {
		c.entries.Delete(k)
	}
	return len(stale)
}

// Stats returns hit and miss counts since the cache was created.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}

// Stats contains statistics about a cache.
type Stats struct {
	Hits   uint64 // Lookups answered from the cache
	Misses uint64 // Lookups that ran the resolver
}

// HitRate returns the hit rate (0.0 to 1.0).
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
