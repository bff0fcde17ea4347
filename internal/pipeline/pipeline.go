// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives a conversion run: enumerate note files, skip the
// ones the ledger already records, push the rest through parse, compose,
// and both document writers, then persist the updated ledger.
package pipeline

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/pdiddy/keepdown/internal/ledger"
	"github.com/pdiddy/keepdown/internal/note"
	"github.com/pdiddy/keepdown/internal/render"
	"github.com/pdiddy/keepdown/pkg/types"
)

// Result holds the per-file outcomes of one run.
type Result struct {
	// Converted lists the note paths newly converted this run. In a dry
	// run it lists the notes that would have been converted.
	Converted []string

	// Skipped lists the note paths the ledger already recorded.
	Skipped []string

	// Failed lists the notes that did not complete, with error text.
	Failed []Failure
}

// Failure is one note that failed somewhere in its pipeline.
type Failure struct {
	Path string
	Err  string
}

// Total returns the number of notes seen this run.
func (r Result) Total() int {
	return len(r.Converted) + len(r.Skipped) + len(r.Failed)
}

// HasFailures reports whether any note failed.
func (r Result) HasFailures() bool {
	return len(r.Failed) > 0
}

// Options configures a run.
type Options struct {
	Config types.ConvertConfig

	// DryRun enumerates and classifies the notes without converting
	// anything or touching the ledger.
	DryRun bool
}

// Run executes one batch. Per-note failures are logged to w and isolated:
// a failed note stays out of the ledger so the next run retries it, and the
// batch continues. Only ledger load/save and directory enumeration abort
// the run.
func Run(r render.Renderer, opts Options, w io.Writer) (Result, error) {
	cfg := opts.Config

	led, err := ledger.Load(cfg.LedgerPath)
	if err != nil {
		return Result{}, err
	}

	paths, err := filepath.Glob(filepath.Join(cfg.KeepDir, "*.json"))
	if err != nil {
		return Result{}, fmt.Errorf("enumerating notes in %s: %w", cfg.KeepDir, err)
	}

	var result Result
	for _, path := range paths {
		if led.Has(path) {
			fmt.Fprintf(w, "skipping   %s (already converted)\n", path)
			result.Skipped = append(result.Skipped, path)
			continue
		}

		if opts.DryRun {
			fmt.Fprintf(w, "would process %s\n", path)
			result.Converted = append(result.Converted, path)
			continue
		}

		fmt.Fprintf(w, "processing %s\n", path)
		if err := convertNote(r, path, cfg.OutDir); err != nil {
			fmt.Fprintf(w, "error      %s: %v\n", path, err)
			result.Failed = append(result.Failed, Failure{Path: path, Err: err.Error()})
			continue
		}

		led.Add(path)
		result.Converted = append(result.Converted, path)
	}

	if !opts.DryRun {
		if err := led.Save(cfg.LedgerPath); err != nil {
			return result, err
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		len(result.Converted), len(result.Skipped), len(result.Failed), result.Total())
	return result, nil
}

// convertNote runs one note through the full pipeline: read, parse, compose,
// render the PDF, write the Markdown body.
func convertNote(r render.Renderer, path, outDir string) error {
	raw, err := note.Read(path)
	if err != nil {
		return err
	}

	n := note.Parse(path, raw)
	doc := note.Compose(n)

	if err := render.WritePDF(r, outDir, n.Filename, doc); err != nil {
		return err
	}
	return render.WriteMarkdown(outDir, n.Filename, n.Content)
}
