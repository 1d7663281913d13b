/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package fs provides filesystem abstractions for modresolve.
package fs

import (
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem provides an abstraction over the read-only filesystem
// operations module resolution needs.
// This interface is congruent with bennypowers.dev/mappa/fs.FileSystem
// for the methods they share, to enable duck typing compatibility.
type FileSystem interface {
	// File operations
	ReadFile(name string) ([]byte, error)

	// Directory operations
	ReadDir(name string) ([]fs.DirEntry, error)

	// File system queries
	Stat(name string) (fs.FileInfo, error)
	Exists(path string) bool

	// Lstat is like Stat but does not follow a symlink in the final
	// path element.
	Lstat(name string) (fs.FileInfo, error)

	// EvalSymlinks returns the path name after evaluating every symlink in
	// it. The result is absolute when name is absolute.
	EvalSymlinks(name string) (string, error)

	// fs.FS compatibility - allows use with fs.WalkDir
	Open(name string) (fs.File, error)
}

// OSFileSystem implements FileSystem using the standard os package.
type OSFileSystem struct{}

// NewOSFileSystem creates a new filesystem that uses the standard os package.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// ReadFile reads the entire contents of a file.
func (f *OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// Stat returns file information for the named file.
func (f *OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// Lstat returns file information without following a trailing symlink.
func (f *OSFileSystem) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}

// EvalSymlinks returns the canonical path of name.
func (f *OSFileSystem) EvalSymlinks(name string) (string, error) {
	return filepath.EvalSymlinks(name)
}

// Exists returns true if the path exists.
func (f *OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadDir reads the named directory and returns its entries.
func (f *OSFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

// Open opens the named file for reading.
func (f *OSFileSystem) Open(name string) (fs.File, error) {
	return os.Open(name)
}
