package commands

import (
	"context"
	"path/filepath"

	"github.com/walteh/spleen/cmd/spleen/opts"
	"github.com/walteh/spleen/pkg/fsops"
	"github.com/walteh/spleen/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// absAll resolves every path to an absolute one; the engine works on
// absolute paths only
func absAll(paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, errors.Errorf("resolving %s: %w", p, err)
		}
		out = append(out, abs)
	}
	return out, nil
}

// runBatch submits one batch, drains its progress and reports the
// per-item outcome on the console
func runBatch(ctx context.Context, kind fsops.Kind, sources []string, dest string) error {
	ro := opts.FromContext(ctx)

	sources, err := absAll(sources)
	if err != nil {
		return err
	}
	if dest != "" {
		dest, err = filepath.Abs(dest)
		if err != nil {
			return errors.Errorf("resolving destination: %w", err)
		}
	}

	engine := fsops.NewEngine()
	handle, err := engine.Submit(ctx, fsops.Request{
		Kind:           kind,
		Sources:        sources,
		DestinationDir: dest,
	})
	if err != nil {
		return errors.Errorf("submitting %s batch: %w", kind, err)
	}

	ro.Console.StartBatchOperation(ctx, log.BatchOperation{
		Kind:        kind.String(),
		Total:       len(sources),
		Destination: dest,
	})

	processed := 0
	for p := range handle.Progress() {
		processed = p.Completed
	}
	res := <-handle.Done()

	// keyed by batch position, not path: the same path may be listed
	// twice with different outcomes
	failed := make(map[int]error, len(res.Errors))
	for _, itemErr := range res.Errors {
		failed[itemErr.Index] = errors.New(itemErr.Message)
	}
	for i, src := range sources[:processed] {
		item := log.ItemOperation{Path: src, Kind: kind.String(), Status: "ok"}
		if err, ok := failed[i]; ok {
			item.Status = "failed"
			item.Err = err
		}
		ro.Console.LogItemOperation(ctx, item)
	}
	ro.Console.EndBatchOperation(ctx, len(res.Errors), res.Cancelled)

	switch {
	case res.Cancelled:
		ro.Console.Warningf("cancelled after %d of %d item(s)", processed, len(sources))
	case !res.Ok():
		ro.Console.Errorf("%d of %d item(s) failed", len(res.Errors), len(sources))
		return errors.Errorf("%d item(s) failed", len(res.Errors))
	default:
		ro.Console.Successf("%d item(s) processed", processed)
	}
	return nil
}
