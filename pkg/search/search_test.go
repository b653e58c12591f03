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
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx(t *testing.T) context.Context {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// collect drains the match channel until completion
func collect(t *testing.T, h *Handle) []string {
	t.Helper()
	var matches []string
	timeout := time.After(5 * time.Second)
	for {
		select {
		case path, ok := <-h.Matches():
			if !ok {
				return matches
			}
			matches = append(matches, path)
		case <-timeout:
			t.Fatal("scan did not complete in time")
		}
	}
}

func TestRunFindsMatchesRecursively(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.log"), "a")
	writeFile(t, filepath.Join(tmpDir, "sub", "b.log"), "b")
	writeFile(t, filepath.Join(tmpDir, "sub", "c.txt"), "c")

	h, err := Run(testCtx(t), Request{Root: tmpDir, Pattern: "*.log"})
	require.NoError(t, err)

	matches := collect(t, h)
	assert.ElementsMatch(t, []string{
		filepath.Join(tmpDir, "a.log"),
		filepath.Join(tmpDir, "sub", "b.log"),
	}, matches)
}

func TestRunMatchesDirectoryNames(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "build", "cache"), 0755))
	writeFile(t, filepath.Join(tmpDir, "build.txt"), "x")

	h, err := Run(testCtx(t), Request{Root: tmpDir, Pattern: "build*"})
	require.NoError(t, err)

	matches := collect(t, h)
	assert.ElementsMatch(t, []string{
		filepath.Join(tmpDir, "build"),
		filepath.Join(tmpDir, "build.txt"),
	}, matches)
}

func TestRunQuestionMarkPattern(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a1.txt"), "x")
	writeFile(t, filepath.Join(tmpDir, "a22.txt"), "x")

	h, err := Run(testCtx(t), Request{Root: tmpDir, Pattern: "a?.txt"})
	require.NoError(t, err)

	matches := collect(t, h)
	assert.Equal(t, []string{filepath.Join(tmpDir, "a1.txt")}, matches)
}

func TestRunIsCaseSensitive(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "README.md"), "x")
	writeFile(t, filepath.Join(tmpDir, "readme.md"), "x")

	h, err := Run(testCtx(t), Request{Root: tmpDir, Pattern: "README*"})
	require.NoError(t, err)

	matches := collect(t, h)
	assert.Equal(t, []string{filepath.Join(tmpDir, "README.md")}, matches)
}

func TestRunIgnorePatternsPruneSubtrees(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "keep.log"), "x")
	writeFile(t, filepath.Join(tmpDir, ".git", "skipped.log"), "x")
	writeFile(t, filepath.Join(tmpDir, "node_modules", "dep", "also.log"), "x")

	h, err := Run(testCtx(t), Request{
		Root:    tmpDir,
		Pattern: "*.log",
		Ignore:  []string{".git", "node_modules"},
	})
	require.NoError(t, err)

	matches := collect(t, h)
	assert.Equal(t, []string{filepath.Join(tmpDir, "keep.log")}, matches)
}

func TestRunDoesNotFollowSymlinkedDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "real", "inner.log"), "x")
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "real"), filepath.Join(tmpDir, "link")))

	h, err := Run(testCtx(t), Request{Root: tmpDir, Pattern: "*.log"})
	require.NoError(t, err)

	matches := collect(t, h)
	assert.Equal(t, []string{filepath.Join(tmpDir, "real", "inner.log")}, matches,
		"the symlinked copy of real/ must not be descended into")
}

func TestRunSymlinkNameStillMatches(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "target.txt"), "x")
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "target.txt"), filepath.Join(tmpDir, "alias.log")))

	h, err := Run(testCtx(t), Request{Root: tmpDir, Pattern: "*.log"})
	require.NoError(t, err)

	matches := collect(t, h)
	assert.Equal(t, []string{filepath.Join(tmpDir, "alias.log")}, matches)
}

func TestStopClosesMatchChannel(t *testing.T) {
	tmpDir := t.TempDir()
	// enough files to outlast the channel buffer
	for i := 0; i < matchBuffer*2; i++ {
		writeFile(t, filepath.Join(tmpDir, "f"+string(rune('a'+i%26))+string(rune('a'+i/26))+".log"), "x")
	}

	h, err := Run(testCtx(t), Request{Root: tmpDir, Pattern: "*.log"})
	require.NoError(t, err)

	h.Stop()
	h.Stop() // idempotent

	// the channel still drains and closes after Stop
	matches := collect(t, h)
	assert.LessOrEqual(t, len(matches), matchBuffer*2)
}

func TestRunConcurrentScansAreIndependent(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "one.log"), "x")
	writeFile(t, filepath.Join(tmpDir, "two.txt"), "x")

	ctx := testCtx(t)
	logs, err := Run(ctx, Request{Root: tmpDir, Pattern: "*.log"})
	require.NoError(t, err)
	texts, err := Run(ctx, Request{Root: tmpDir, Pattern: "*.txt"})
	require.NoError(t, err)

	assert.NotEqual(t, logs.ID(), texts.ID())
	assert.Equal(t, []string{filepath.Join(tmpDir, "one.log")}, collect(t, logs))
	assert.Equal(t, []string{filepath.Join(tmpDir, "two.txt")}, collect(t, texts))
}

func TestRunValidation(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "plain.txt")
	writeFile(t, file, "x")

	tests := []struct {
		name    string
		req     Request
		wantErr string
	}{
		{
			name:    "empty_pattern",
			req:     Request{Root: tmpDir},
			wantErr: "pattern is required",
		},
		{
			name:    "malformed_pattern",
			req:     Request{Root: tmpDir, Pattern: "[unclosed"},
			wantErr: "malformed pattern",
		},
		{
			name:    "missing_root",
			req:     Request{Root: filepath.Join(tmpDir, "ghost"), Pattern: "*"},
			wantErr: "inspecting root",
		},
		{
			name:    "root_is_a_file",
			req:     Request{Root: file, Pattern: "*"},
			wantErr: "not a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := Run(testCtx(t), tt.req)
			require.Error(t, err)
			assert.Nil(t, h)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
