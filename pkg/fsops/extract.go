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
	"archive/tar"
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"gitlab.com/tozd/go/errors"
)

// 📦 extractArchive unpacks src into destDir, defaulting to the
// archive's own parent directory. The format is chosen by extension.
// A single malformed entry (corrupt data or a path escaping the
// destination) fails the whole archive as one item error; whatever was
// extracted before the failure is left in place, but nothing is ever
// written outside destDir.
func extractArchive(ctx context.Context, src, destDir string) error {
	if destDir == "" {
		destDir = filepath.Dir(src)
	}

	name := strings.ToLower(src)
	switch {
	case strings.HasSuffix(name, ".zip"):
		return extractZip(ctx, src, destDir)
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return extractTarGz(ctx, src, destDir)
	default:
		return errors.Errorf("unsupported archive format: %s", filepath.Base(src))
	}
}

// entryDest resolves an archive entry name under destDir, rejecting
// zip-slip entries that would land outside it
func entryDest(destDir, entryName string) (string, error) {
	dest := filepath.Join(destDir, entryName)
	if !strings.HasPrefix(dest, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", errors.Errorf("entry escapes destination: %s", entryName)
	}
	return dest, nil
}

// linkWithin rejects symlink entries whose target resolves outside
// destDir. The lexical entryDest check covers entry names only; a link
// pointing outside would let a later entry write through it past the
// destination. With every materialized link constrained to point back
// inside destDir, path resolution that starts inside cannot leave.
func linkWithin(destDir, dest, linkname string) error {
	target := linkname
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(dest), linkname)
	}
	target = filepath.Clean(target)

	root := filepath.Clean(destDir)
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return errors.Errorf("link target escapes destination: %s", linkname)
	}
	return nil
}

// 🤐 extractZip unpacks standard deflate/store zip entries, preserving
// relative paths
func extractZip(ctx context.Context, src, destDir string) error {
	reader, err := zip.OpenReader(src)
	if err != nil {
		return errors.Errorf("opening archive: %w", err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		select {
		case <-ctx.Done():
			return errors.Errorf("extraction cancelled: %w", ctx.Err())
		default:
		}

		dest, err := entryDest(destDir, file.Name)
		if err != nil {
			return err
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0755); err != nil {
				return errors.Errorf("creating directory %s: %w", file.Name, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return errors.Errorf("creating parent directories for %s: %w", file.Name, err)
		}

		entry, err := file.Open()
		if err != nil {
			return errors.Errorf("opening entry %s: %w", file.Name, err)
		}

		if err := writeEntry(dest, entry, file.Mode()); err != nil {
			entry.Close()
			return errors.Errorf("writing entry %s: %w", file.Name, err)
		}
		entry.Close()

		if mod := file.Modified; !mod.IsZero() {
			_ = os.Chtimes(dest, mod, mod)
		}
	}

	return nil
}

// 🫙 extractTarGz unpacks a gzip-compressed tarball
func extractTarGz(ctx context.Context, src, destDir string) error {
	f, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return errors.Errorf("reading gzip stream: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		select {
		case <-ctx.Done():
			return errors.Errorf("extraction cancelled: %w", ctx.Err())
		default:
		}

		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Errorf("reading tar entry: %w", err)
		}

		dest, err := entryDest(destDir, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(dest, os.FileMode(header.Mode).Perm()); err != nil {
				return errors.Errorf("creating directory %s: %w", header.Name, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
				return errors.Errorf("creating parent directories for %s: %w", header.Name, err)
			}
			if err := writeEntry(dest, tr, os.FileMode(header.Mode).Perm()); err != nil {
				return errors.Errorf("writing entry %s: %w", header.Name, err)
			}
			_ = os.Chtimes(dest, header.ModTime, header.ModTime)
		case tar.TypeSymlink:
			if err := linkWithin(destDir, dest, header.Linkname); err != nil {
				return err
			}
			if err := os.Symlink(header.Linkname, dest); err != nil {
				return errors.Errorf("creating link %s: %w", header.Name, err)
			}
		default:
			// device nodes and the like are not something a file
			// manager should materialize
			continue
		}
	}
}

func writeEntry(dest string, content io.Reader, mode os.FileMode) error {
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return errors.Errorf("creating file: %w", err)
	}
	if _, err := io.Copy(out, content); err != nil {
		out.Close()
		return errors.Errorf("copying content: %w", err)
	}
	if err := out.Close(); err != nil {
		return errors.Errorf("closing file: %w", err)
	}
	return nil
}
