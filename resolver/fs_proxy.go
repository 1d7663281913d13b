/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"syscall"

	"bennypowers.dev/modresolve/fs"
	"bennypowers.dev/modresolve/manifest"
)

// PackageJSONFileName is the name of the package manifest.
const PackageJSONFileName = "package.json"

// PathKind classifies a path on disk.
type PathKind int

const (
	// PathFile is a regular file.
	PathFile PathKind = iota
	// PathDirectory is a directory.
	PathDirectory
	// PathSymlink is a symlink; PathInfo.Target holds its canonical target.
	PathSymlink
)

func (k PathKind) String() string {
	switch k {
	case PathDirectory:
		return "directory"
	case PathSymlink:
		return "symlink"
	default:
		return "file"
	}
}

// PathInfo describes what exists at a path.
type PathInfo struct {
	Kind PathKind

	// Target is the canonicalized target of a symlink. It must not itself
	// be reported as a symlink when queried again.
	Target string
}

// FSProxy is the filesystem collaborator consulted by the resolver.
// Implementations must be safe for concurrent reads.
type FSProxy interface {
	// PathInfo classifies path. A missing path yields an error matching
	// ErrNotFound.
	PathInfo(path string) (PathInfo, error)

	// FindPackageJSON locates the nearest package.json starting at dir and
	// returns the directory containing it along with the parsed manifest.
	FindPackageJSON(dir string) (string, *manifest.PackageJSON, error)

	// ReadPackageJSON parses the manifest at an exact path.
	ReadPackageJSON(path string) (*manifest.PackageJSON, error)
}

// fsProxy implements FSProxy on top of a FileSystem.
type fsProxy struct {
	fs fs.FileSystem
}

// NewFSProxy creates the default filesystem collaborator.
func NewFSProxy(filesystem fs.FileSystem) FSProxy {
	return &fsProxy{fs: filesystem}
}

func (p *fsProxy) PathInfo(path string) (PathInfo, error) {
	info, err := p.fs.Lstat(path)
	if err != nil {
		return PathInfo{}, fsError(err)
	}

	if info.Mode()&iofs.ModeSymlink != 0 {
		target, err := p.fs.EvalSymlinks(path)
		if err != nil {
			return PathInfo{}, fsError(err)
		}
		return PathInfo{Kind: PathSymlink, Target: target}, nil
	}

	if info.IsDir() {
		return PathInfo{Kind: PathDirectory}, nil
	}
	return PathInfo{Kind: PathFile}, nil
}

func (p *fsProxy) FindPackageJSON(dir string) (string, *manifest.PackageJSON, error) {
	for current := range ancestors(dir) {
		pkg, err := p.ReadPackageJSON(filepath.Join(current, PackageJSONFileName))
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return "", nil, err
		}
		return current, pkg, nil
	}
	return "", nil, ErrNotFound
}

func (p *fsProxy) ReadPackageJSON(path string) (*manifest.PackageJSON, error) {
	data, err := p.fs.ReadFile(path)
	if err != nil {
		return nil, fsError(err)
	}
	pkg, err := manifest.ParsePackageJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pkg, nil
}

// fsError maps "nothing there" conditions to ErrNotFound. Anything else is
// passed through unchanged.
func fsError(err error) error {
	if errors.Is(err, iofs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return ErrNotFound
	}
	return err
}
