// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fsops

import (
	"io"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// 📋 copyPath copies src into destDir under its own base name.
// Symbolic links are recreated as links, never followed; directories are
// copied recursively; regular files keep their permission bits and mtime.
func copyPath(src, destDir string) error {
	dest := filepath.Join(destDir, filepath.Base(src))

	info, err := os.Lstat(src)
	if err != nil {
		return errors.Errorf("inspecting source: %w", err)
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		return copySymlink(src, dest)
	case info.IsDir():
		return copyTree(src, dest, info)
	default:
		return copyFile(src, dest, info)
	}
}

// 🔗 copySymlink recreates the link itself, pointing at the same target
// string. The target's contents are never read.
func copySymlink(src, dest string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return errors.Errorf("reading link: %w", err)
	}
	if err := os.Symlink(target, dest); err != nil {
		return errors.Errorf("creating link: %w", err)
	}
	return nil
}

// 📁 copyTree copies a directory recursively, preserving symlinks found
// within. An existing destination is an error rather than a merge.
func copyTree(src, dest string, info os.FileInfo) error {
	if _, err := os.Lstat(dest); err == nil {
		return errors.Errorf("destination already exists: %s", dest)
	}

	if err := os.Mkdir(dest, info.Mode().Perm()); err != nil {
		return errors.Errorf("creating directory: %w", err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return errors.Errorf("listing directory: %w", err)
	}

	for _, entry := range entries {
		srcEntry := filepath.Join(src, entry.Name())
		if err := copyPath(srcEntry, dest); err != nil {
			return errors.Errorf("copying %s: %w", entry.Name(), err)
		}
	}

	// preserve the directory mtime last, after children stopped touching it
	if err := os.Chtimes(dest, info.ModTime(), info.ModTime()); err != nil {
		return errors.Errorf("preserving directory times: %w", err)
	}

	return nil
}

// 📄 copyFile copies content, permission bits and modification time
func copyFile(src, dest string, info os.FileInfo) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer srcFile.Close()

	destFile, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}

	if _, err := io.Copy(destFile, srcFile); err != nil {
		destFile.Close()
		return errors.Errorf("copying file content: %w", err)
	}
	if err := destFile.Close(); err != nil {
		return errors.Errorf("closing destination file: %w", err)
	}

	if err := os.Chmod(dest, info.Mode().Perm()); err != nil {
		return errors.Errorf("preserving permissions: %w", err)
	}
	if err := os.Chtimes(dest, info.ModTime(), info.ModTime()); err != nil {
		return errors.Errorf("preserving times: %w", err)
	}

	return nil
}
