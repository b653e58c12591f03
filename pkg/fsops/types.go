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

// 📊 Kind selects the per-item semantics of a batch
type Kind int

const (
	KindUnknown Kind = iota
	KindCopy         // Copy sources into DestinationDir
	KindMove         // Rename, falling back to copy+delete across volumes
	KindDelete       // Remove sources, recursively for real directories
	KindExtract      // Unpack archive sources (zip, tar.gz)
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindCopy:
		return "copy"
	case KindMove:
		return "move"
	case KindDelete:
		return "delete"
	case KindExtract:
		return "extract"
	default:
		return "unknown"
	}
}

// 📦 Request describes one batch of file operations
type Request struct {
	// Kind selects copy, move, delete or extract semantics
	Kind Kind
	// Sources are absolute paths, processed strictly in order
	Sources []string
	// DestinationDir is required for copy and move, optional for extract
	// (defaults to each archive's parent directory) and ignored for delete
	DestinationDir string
}

// 📈 Progress is emitted once per processed item
type Progress struct {
	Completed int    // 1-based count of items processed so far
	Total     int    // Total items in the batch
	Path      string // Source path of the item just processed
}

// ❌ ItemError records one item's failure without aborting the batch
type ItemError struct {
	// Index is the item's 0-based position in the batch. It
	// disambiguates failures when the same path is listed twice.
	Index   int
	Path    string // Source path of the failed item
	Message string // Human-readable failure description
}

// 🏁 Result is delivered exactly once per batch
type Result struct {
	// Errors holds one entry per failed item, in processing order.
	// Items never reached because of cancellation are not recorded.
	Errors []ItemError
	// Cancelled reports whether the batch stopped early at a checkpoint
	Cancelled bool
}

// Ok reports whether every processed item succeeded
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}
