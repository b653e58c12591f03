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
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🏭 Engine submits batches of filesystem operations
type Engine struct{}

// NewEngine creates a new engine
func NewEngine() *Engine {
	return &Engine{}
}

// 🎫 Handle represents one in-flight batch. Handles are not reused;
// exactly one batch runs per handle.
type Handle struct {
	id  string
	req Request

	progress chan Progress
	done     chan Result

	cancel     chan struct{}
	cancelOnce sync.Once
}

// ID returns the unique identifier of this batch
func (h *Handle) ID() string {
	return h.id
}

// Progress returns the per-item progress stream. The channel is buffered
// to the item count, so the worker never blocks on it; it is closed after
// the last event.
func (h *Handle) Progress() <-chan Progress {
	return h.progress
}

// Done delivers the final Result exactly once, then is closed
func (h *Handle) Done() <-chan Result {
	return h.done
}

// Cancel requests a cooperative stop. The current item finishes;
// remaining items are never attempted. Safe to call multiple times.
func (h *Handle) Cancel() {
	h.cancelOnce.Do(func() {
		close(h.cancel)
	})
}

// cancelled reports whether a checkpoint should stop the batch
func (h *Handle) cancelled(ctx context.Context) bool {
	select {
	case <-h.cancel:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// 🏃 Submit validates the request synchronously and starts a worker
// goroutine for it. Invalid requests are rejected immediately and no
// handle is created. Submit never blocks on I/O beyond validation stats.
func (e *Engine) Submit(ctx context.Context, req Request) (*Handle, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	h := &Handle{
		id:       uuid.NewString(),
		req:      req,
		progress: make(chan Progress, len(req.Sources)),
		done:     make(chan Result, 1),
		cancel:   make(chan struct{}),
	}

	go e.run(ctx, h)

	return h, nil
}

// 🔄 run processes items strictly in source order, one at a time
func (e *Engine) run(ctx context.Context, h *Handle) {
	logger := zerolog.Ctx(ctx).With().
		Str("batch", h.id).
		Stringer("kind", h.req.Kind).
		Logger()

	total := len(h.req.Sources)
	var res Result

	for i, src := range h.req.Sources {
		if h.cancelled(ctx) {
			logger.Debug().Int("completed", i).Msg("batch cancelled at checkpoint")
			res.Cancelled = true
			break
		}

		if err := e.apply(ctx, h.req, src); err != nil {
			logger.Debug().Str("path", src).Err(err).Msg("item failed")
			res.Errors = append(res.Errors, ItemError{Index: i, Path: src, Message: err.Error()})
		}

		h.progress <- Progress{Completed: i + 1, Total: total, Path: src}
	}

	close(h.progress)
	h.done <- res
	close(h.done)
}

// apply dispatches one item to its per-kind implementation
func (e *Engine) apply(ctx context.Context, req Request, src string) error {
	switch req.Kind {
	case KindCopy:
		return copyPath(src, req.DestinationDir)
	case KindMove:
		return movePath(src, req.DestinationDir)
	case KindDelete:
		return deletePath(src)
	case KindExtract:
		return extractArchive(ctx, src, req.DestinationDir)
	default:
		return errors.Errorf("unsupported operation kind: %d", req.Kind)
	}
}

// 🔍 validate rejects malformed requests before a handle exists
func validate(req Request) error {
	if len(req.Sources) == 0 {
		return errors.New("source paths are required")
	}

	switch req.Kind {
	case KindCopy, KindMove:
		if req.DestinationDir == "" {
			return errors.Errorf("%s requires a destination directory", req.Kind)
		}
		info, err := os.Stat(req.DestinationDir)
		if err != nil {
			return errors.Errorf("inspecting destination %s: %w", req.DestinationDir, err)
		}
		if !info.IsDir() {
			return errors.Errorf("destination %s is not a directory", req.DestinationDir)
		}
	case KindDelete, KindExtract:
		// no destination constraints
	default:
		return errors.Errorf("unsupported operation kind: %d", req.Kind)
	}

	// Sources must exist at submission time. The worker re-checks at
	// execution time since the filesystem may change concurrently.
	for _, src := range req.Sources {
		if _, err := os.Lstat(src); err != nil {
			return errors.Errorf("inspecting source %s: %w", src, err)
		}
	}

	return nil
}
