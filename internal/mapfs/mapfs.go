/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mapfs provides an in-memory filesystem implementation for testing.
package mapfs

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
	"testing/fstest"
	"time"
)

// maxLinkHops bounds symlink expansion, like the kernel's MAXSYMLINKS.
const maxLinkHops = 40

var errTooManyLinks = errors.New("too many levels of symbolic links")

// MapFileSystem implements FileSystem using an in-memory fstest.MapFS.
// Symlinks are tracked separately from the MapFS and expanded on every
// lookup, so tests can model pnpm-style node_modules layouts.
type MapFileSystem struct {
	mu      sync.RWMutex
	mapFS   fstest.MapFS
	links   map[string]string
	modTime time.Time
}

// New creates a new in-memory filesystem for testing.
func New() *MapFileSystem {
	return &MapFileSystem{
		mapFS:   make(fstest.MapFS),
		links:   make(map[string]string),
		modTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// AddFile adds a file to the in-memory filesystem.
func (mfs *MapFileSystem) AddFile(p string, content string, mode fs.FileMode) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	p = mfs.cleanPath(p)
	mfs.mapFS[p] = &fstest.MapFile{
		Data:    []byte(content),
		Mode:    mode,
		ModTime: mfs.modTime,
	}
}

// AddDir adds a directory to the in-memory filesystem.
func (mfs *MapFileSystem) AddDir(p string, mode fs.FileMode) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	p = mfs.cleanPath(p)
	keepFile := path.Join(p, ".keep")
	mfs.mapFS[keepFile] = &fstest.MapFile{
		Data:    []byte(""),
		Mode:    mode.Perm(),
		ModTime: mfs.modTime,
	}
}

// AddSymlink creates a symlink at link pointing to target.
// A relative target is interpreted relative to the directory containing link.
func (mfs *MapFileSystem) AddSymlink(link, target string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	if !path.IsAbs(target) {
		target = path.Join(path.Dir(path.Clean("/"+link)), target)
	}
	mfs.links[mfs.cleanPath(link)] = mfs.cleanPath(target)
}

// ReadFile implements FileSystem.
func (mfs *MapFileSystem) ReadFile(name string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	p, err := mfs.resolveLocked(name, true)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(mfs.mapFS, p)
}

// Stat implements FileSystem.
func (mfs *MapFileSystem) Stat(name string) (fs.FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	p, err := mfs.resolveLocked(name, true)
	if err != nil {
		return nil, err
	}
	return fs.Stat(mfs.mapFS, p)
}

// Lstat implements FileSystem.
func (mfs *MapFileSystem) Lstat(name string) (fs.FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	p, err := mfs.resolveLocked(name, false)
	if err != nil {
		return nil, err
	}
	if _, isLink := mfs.links[p]; isLink {
		return &linkInfo{name: path.Base(p), modTime: mfs.modTime}, nil
	}
	return fs.Stat(mfs.mapFS, p)
}

// EvalSymlinks implements FileSystem.
func (mfs *MapFileSystem) EvalSymlinks(name string) (string, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	p, err := mfs.resolveLocked(name, true)
	if err != nil {
		return "", err
	}
	if _, err := fs.Stat(mfs.mapFS, p); err != nil {
		return "", &fs.PathError{Op: "lstat", Path: name, Err: fs.ErrNotExist}
	}
	if p == "." {
		return "/", nil
	}
	return "/" + p, nil
}

// Exists implements FileSystem.
func (mfs *MapFileSystem) Exists(name string) bool {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	p, err := mfs.resolveLocked(name, true)
	if err != nil {
		return false
	}
	if p == "." {
		return true
	}

	if _, exists := mfs.mapFS[p]; exists {
		return true
	}

	prefix := p + "/"
	for filePath := range mfs.mapFS {
		if strings.HasPrefix(filePath, prefix) {
			return true
		}
	}

	return false
}

// ReadDir implements FileSystem.
func (mfs *MapFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	p, err := mfs.resolveLocked(name, true)
	if err != nil {
		return nil, err
	}
	return fs.ReadDir(mfs.mapFS, p)
}

// Open implements FileSystem.
func (mfs *MapFileSystem) Open(name string) (fs.File, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	p, err := mfs.resolveLocked(name, true)
	if err != nil {
		return nil, err
	}
	return mfs.mapFS.Open(p)
}

// ListFiles returns all files in the MapFS for debugging.
func (mfs *MapFileSystem) ListFiles() map[string]string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	result := make(map[string]string)
	for p, file := range mfs.mapFS {
		// Directories are stored as .keep files
		if strings.HasSuffix(p, "/.keep") || p == ".keep" {
			dirPath := path.Dir(p)
			if dirPath == "." {
				dirPath = "/"
			}
			result[dirPath] = "directory"
		} else {
			result[p] = fmt.Sprintf("file (%d bytes)", len(file.Data))
		}
	}
	for link, target := range mfs.links {
		result[link] = "symlink -> /" + target
	}
	return result
}

// resolveLocked expands symlinks in every element of name. The final
// element is only expanded when followFinal is set.
func (mfs *MapFileSystem) resolveLocked(name string, followFinal bool) (string, error) {
	p := mfs.cleanPath(name)
	if p == "." {
		return p, nil
	}

	parts := strings.Split(p, "/")
	resolved := "."
	hops := 0
	for i := 0; i < len(parts); i++ {
		next := joinKey(resolved, parts[i])
		target, isLink := mfs.links[next]
		if isLink && (followFinal || i < len(parts)-1) {
			hops++
			if hops > maxLinkHops {
				return "", &fs.PathError{Op: "readlink", Path: name, Err: errTooManyLinks}
			}
			parts = append(strings.Split(target, "/"), parts[i+1:]...)
			resolved = "."
			i = -1
			continue
		}
		resolved = next
	}
	return resolved, nil
}

func (mfs *MapFileSystem) cleanPath(p string) string {
	cleaned := path.Clean(p)
	if !path.IsAbs(cleaned) {
		cleaned = "/" + cleaned
	}
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" {
		return "."
	}
	return cleaned
}

func joinKey(dir, elem string) string {
	switch {
	case elem == "." || elem == "":
		return dir
	case dir == ".":
		return elem
	default:
		return dir + "/" + elem
	}
}

// linkInfo describes a symlink as reported by Lstat.
type linkInfo struct {
	name    string
	modTime time.Time
}

func (i *linkInfo) Name() string       { return i.name }
func (i *linkInfo) Size() int64        { return 0 }
func (i *linkInfo) Mode() fs.FileMode  { return fs.ModeSymlink | 0o777 }
func (i *linkInfo) ModTime() time.Time { return i.modTime }
func (i *linkInfo) IsDir() bool        { return false }
func (i *linkInfo) Sys() any           { return nil }
