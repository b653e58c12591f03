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
	"context"
	"os"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
	"gitlab.com/tozd/go/errors"
)

// 📐 Usage summarizes a subtree for the properties view
type Usage struct {
	Files int64 // Regular files and symlinks
	Dirs  int64 // Directories, excluding the root itself
	Bytes int64 // Total size of regular files
}

// 🔍 DiskUsage walks path's subtree and totals entry counts and sizes.
// Symlinks are never followed; unreadable entries are skipped rather
// than failing the walk. The walk runs workers in parallel, so this is
// a synchronous call meant for a background goroutine.
func DiskUsage(ctx context.Context, path string) (Usage, error) {
	if _, err := os.Lstat(path); err != nil {
		return Usage{}, errors.Errorf("inspecting path: %w", err)
	}

	var files, dirs, bytes atomic.Int64

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, path, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || p == path {
			return nil
		}

		if d.IsDir() {
			dirs.Add(1)
			return nil
		}

		files.Add(1)
		if info, err := d.Info(); err == nil && info.Mode().IsRegular() {
			bytes.Add(info.Size())
		}
		return nil
	})
	if err != nil {
		return Usage{}, errors.Errorf("walking %s: %w", path, err)
	}

	return Usage{Files: files.Load(), Dirs: dirs.Load(), Bytes: bytes.Load()}, nil
}
