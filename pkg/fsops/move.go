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
	"path/filepath"
	"syscall"

	"gitlab.com/tozd/go/errors"
)

// rename is swapped out in tests to force the cross-volume path
var rename = os.Rename

// 🚚 movePath moves src into destDir under its own base name. An atomic
// rename is attempted first; when source and destination live on
// different volumes the rename fails with EXDEV and the move degrades to
// copy-then-delete. Callers do not need to request the fallback.
func movePath(src, destDir string) error {
	dest := filepath.Join(destDir, filepath.Base(src))

	err := rename(src, dest)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return errors.Errorf("renaming: %w", err)
	}

	if err := copyPath(src, destDir); err != nil {
		return errors.Errorf("copying across volumes: %w", err)
	}
	if err := deletePath(src); err != nil {
		return errors.Errorf("removing source after copy: %w", err)
	}

	return nil
}
