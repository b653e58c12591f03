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
	"os"

	"gitlab.com/tozd/go/errors"
)

// 🗑️ deletePath removes path. Real directories are removed recursively.
// Symlinks and regular files are removed directly, so a link to a
// directory only ever loses the link, never the directory it points to.
func deletePath(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return errors.Errorf("inspecting path: %w", err)
	}

	// Lstat never reports IsDir for a symlink, which is exactly the
	// guard we need here.
	if info.IsDir() {
		if err := os.RemoveAll(path); err != nil {
			return errors.Errorf("removing directory: %w", err)
		}
		return nil
	}

	if err := os.Remove(path); err != nil {
		return errors.Errorf("removing file: %w", err)
	}
	return nil
}
