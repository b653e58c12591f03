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

package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultInterval is the quiet period measured from the last event,
// not the first: every new event restarts it.
const DefaultInterval = 300 * time.Millisecond

// 🔧 Options configures a subscription
type Options struct {
	// Root is the directory subtree to watch
	Root string
	// Interval overrides the debounce quiet period; zero means
	// DefaultInterval
	Interval time.Duration
}

// 🎫 Subscription binds one watched root to one private debouncer.
// Subscriptions never coordinate with each other.
type Subscription struct {
	id       string
	root     string
	watcher  *fsnotify.Watcher
	debounce func(func())

	changed chan struct{}
	errs    chan error
	stop    chan struct{}

	mu       sync.Mutex
	stopped  bool
	stopOnce sync.Once
}

// ID returns the unique identifier of this subscription
func (s *Subscription) ID() string {
	return s.id
}

// Changed delivers one value per quiet period, however many raw events
// occurred during it. The channel is buffered and the send is
// non-blocking, so an unread refresh coalesces with the next one.
func (s *Subscription) Changed() <-chan struct{} {
	return s.changed
}

// Err surfaces a watch-primitive failure at most once. After a value
// lands here the subscription is permanently inert until re-created.
func (s *Subscription) Err() <-chan error {
	return s.errs
}

// Stop tears down the underlying watches and cancels any pending
// debounce fire. No notification is delivered afterwards, including one
// already in flight at the moment of the call.
func (s *Subscription) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.stopped = true
		s.mu.Unlock()
		close(s.stop)
		s.watcher.Close()
	})
}

// 🏃 Directory watches root recursively with the default quiet period
func Directory(ctx context.Context, root string) (*Subscription, error) {
	return New(ctx, Options{Root: root})
}

// 🏭 New validates the options, establishes the watch and starts the
// event loop. Establishment failure on the root is reported
// synchronously; later failures go to Err.
func New(ctx context.Context, opts Options) (*Subscription, error) {
	info, err := os.Stat(opts.Root)
	if err != nil {
		return nil, errors.Errorf("inspecting root %s: %w", opts.Root, err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("root %s is not a directory", opts.Root)
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Errorf("creating watcher: %w", err)
	}

	s := &Subscription{
		id:       uuid.NewString(),
		root:     opts.Root,
		watcher:  watcher,
		debounce: debounce.New(interval),
		changed:  make(chan struct{}, 1),
		errs:     make(chan error, 1),
		stop:     make(chan struct{}),
	}

	if err := watcher.Add(opts.Root); err != nil {
		watcher.Close()
		return nil, errors.Errorf("watching root %s: %w", opts.Root, err)
	}
	logger := zerolog.Ctx(ctx).With().Str("subscription", s.id).Str("root", opts.Root).Logger()
	s.addTree(&logger, opts.Root)

	go s.run(&logger)

	return s, nil
}

// 🔄 run is the continuous background listener for one subscription
func (s *Subscription) run(logger *zerolog.Logger) {
	for {
		select {
		case <-s.stop:
			return

		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			// fsnotify watches are shallow; extend them as new
			// directories appear so the whole subtree stays covered
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Lstat(ev.Name); err == nil && info.IsDir() {
					s.addTree(logger, ev.Name)
				}
			}
			logger.Trace().Str("path", ev.Name).Stringer("op", ev.Op).Msg("filesystem event")
			s.debounce(s.notify)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			logger.Debug().Err(err).Msg("watch primitive failed")
			s.fail(err)
			return
		}
	}
}

// notify fires on the debounce timer's schedule, which is why it
// re-checks stopped under the lock: a fire racing Stop must lose.
func (s *Subscription) notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	select {
	case s.changed <- struct{}{}:
	default:
	}
}

func (s *Subscription) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	select {
	case s.errs <- errors.Errorf("watching %s: %w", s.root, err):
	default:
	}
	s.watcher.Close()
}

// addTree registers dir and every subdirectory under it. Re-adding an
// already watched path is harmless. Entries that cannot be listed or
// watched are skipped; they do not fail the subscription.
func (s *Subscription) addTree(logger *zerolog.Logger, dir string) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := s.watcher.Add(path); err != nil {
			logger.Debug().Str("path", path).Err(err).Msg("skipping unwatchable directory")
			return filepath.SkipDir
		}
		return nil
	})
}
