package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/spleen/cmd/spleen/opts"
	"github.com/walteh/spleen/pkg/config"
	"github.com/walteh/spleen/pkg/fsops"
	"github.com/walteh/spleen/pkg/log"
)

func testCtx(t *testing.T, console *bytes.Buffer) context.Context {
	t.Helper()
	color.NoColor = true
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())
	return opts.NewContext(ctx, &opts.RootOpts{
		Config:  config.Default(),
		Console: log.New(console, zerolog.Disabled),
	})
}

func TestRunBatchReportsDuplicatePathOutcomesSeparately(t *testing.T) {
	tmpDir := t.TempDir()
	victim := filepath.Join(tmpDir, "twice.txt")
	require.NoError(t, os.WriteFile(victim, []byte("x"), 0644))

	// the first delete succeeds and the second finds nothing; each
	// occurrence gets its own console line
	buf := &bytes.Buffer{}
	err := runBatch(testCtx(t, buf), fsops.KindDelete, []string{victim, victim}, "")
	require.Error(t, err)

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "✓"), "first occurrence succeeded:\n%s", out)
	assert.Equal(t, 1, strings.Count(out, "✗"), "second occurrence failed:\n%s", out)
}

func TestRunBatchSucceeds(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()
	src := filepath.Join(srcDir, "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("a"), 0644))

	buf := &bytes.Buffer{}
	err := runBatch(testCtx(t, buf), fsops.KindCopy, []string{src}, destDir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(destDir, "a.txt"))
	assert.Contains(t, buf.String(), "1 item(s) processed")
}
