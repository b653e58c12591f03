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

package search

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// matchBuffer bounds how far the scan can run ahead of a slow consumer
const matchBuffer = 64

// 📦 Request describes one background scan
type Request struct {
	// Root is the directory the scan starts from
	Root string
	// Pattern is matched case-sensitively against entry base names;
	// `*` matches any run of characters, `?` any single character
	Pattern string
	// Ignore lists glob patterns whose matches are neither emitted nor
	// recursed into (typically from config, e.g. ".git")
	Ignore []string
}

// 🎫 Handle owns one background scan
type Handle struct {
	id       string
	req      Request
	matches  chan string
	stop     chan struct{}
	stopOnce sync.Once
}

// ID returns the unique identifier of this scan
func (h *Handle) ID() string {
	return h.id
}

// Matches streams matched absolute paths as they are discovered. The
// channel is closed once traversal finishes or stops, which is the
// completion signal. A caller that abandons the handle without Stop may
// keep the scan goroutine alive until the buffer fills; Stop releases
// it promptly.
func (h *Handle) Matches() <-chan string {
	return h.matches
}

// Stop abandons remaining unvisited subtrees at the next directory
// boundary. The match channel is still closed afterwards, so resource
// release stays deterministic. Safe to call multiple times.
func (h *Handle) Stop() {
	h.stopOnce.Do(func() {
		close(h.stop)
	})
}

// 🏃 Run validates the request synchronously and starts the scan on its
// own goroutine. Concurrent scans on independent handles do not
// interfere.
func Run(ctx context.Context, req Request) (*Handle, error) {
	if req.Pattern == "" {
		return nil, errors.New("pattern is required")
	}
	if !doublestar.ValidatePattern(req.Pattern) {
		return nil, errors.Errorf("malformed pattern: %s", req.Pattern)
	}
	info, err := os.Stat(req.Root)
	if err != nil {
		return nil, errors.Errorf("inspecting root %s: %w", req.Root, err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("root %s is not a directory", req.Root)
	}

	h := &Handle{
		id:      uuid.NewString(),
		req:     req,
		matches: make(chan string, matchBuffer),
		stop:    make(chan struct{}),
	}

	go func() {
		logger := zerolog.Ctx(ctx).With().Str("scan", h.id).Logger()
		h.walk(ctx, &logger, req.Root)
		close(h.matches)
	}()

	return h, nil
}

// 🚶 walk lists one directory level and recurses depth-first. Sibling
// order is filesystem-enumeration order; no explicit sort.
func (h *Handle) walk(ctx context.Context, logger *zerolog.Logger, dir string) {
	if h.stopped(ctx) {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		// unreadable directory: a per-node outcome, not a scan failure
		logger.Debug().Str("dir", dir).Err(err).Msg("skipping unreadable directory")
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if h.ignored(logger, name) {
			continue
		}

		full := filepath.Join(dir, name)

		if ok, _ := doublestar.Match(h.req.Pattern, name); ok {
			if !h.emit(ctx, full) {
				return
			}
		}

		// DirEntry types come from lstat, so a symlinked directory
		// reports as a symlink here and is never descended into.
		// That breaks symlink cycles.
		if entry.IsDir() {
			h.walk(ctx, logger, full)
		}
	}
}

// emit delivers one match unless the scan is being torn down
func (h *Handle) emit(ctx context.Context, path string) bool {
	select {
	case h.matches <- path:
		return true
	case <-h.stop:
		return false
	case <-ctx.Done():
		return false
	}
}

func (h *Handle) stopped(ctx context.Context) bool {
	select {
	case <-h.stop:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

func (h *Handle) ignored(logger *zerolog.Logger, name string) bool {
	for _, pattern := range h.req.Ignore {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			logger.Debug().Str("pattern", pattern).Err(err).Msg("error matching ignore pattern")
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
