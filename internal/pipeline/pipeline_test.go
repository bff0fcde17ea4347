// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/keepdown/internal/ledger"
	"github.com/pdiddy/keepdown/pkg/types"
)

// fakeRenderer writes the document to the destination path, or fails.
type fakeRenderer struct {
	err error
}

func (f *fakeRenderer) Name() string { return "fake" }

func (f *fakeRenderer) RenderPDF(markdown, destPath string) error {
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(destPath, []byte("%PDF "+markdown), 0o644)
}

// setupRun builds a working directory with keep/ and generated/ and returns
// the options pointing at it.
func setupRun(t *testing.T) (Options, string) {
	t.Helper()
	dir := t.TempDir()
	for _, sub := range []string{"keep", "generated"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	opts := Options{
		Config: types.ConvertConfig{
			KeepDir:    filepath.Join(dir, "keep"),
			OutDir:     filepath.Join(dir, "generated"),
			LedgerPath: filepath.Join(dir, "processed.txt"),
		},
	}
	return opts, dir
}

func writeNote(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, "keep", name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_ConvertsAndSkips(t *testing.T) {
	opts, dir := setupRun(t)

	oldPath := writeNote(t, dir, "old.json", `{"title": "Old note", "textContent": "seen before"}`)
	newPath := writeNote(t, dir, "new.json", `{"title": "New note", "textContent": "fresh"}`)

	// Pre-populate the ledger with the old note.
	led := ledger.New()
	led.Add(oldPath)
	if err := led.Save(opts.Config.LedgerPath); err != nil {
		t.Fatal(err)
	}

	var log bytes.Buffer
	result, err := Run(&fakeRenderer{}, opts, &log)
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Converted) != 1 || result.Converted[0] != newPath {
		t.Errorf("Converted = %v, want only the new note", result.Converted)
	}
	if len(result.Skipped) != 1 || result.Skipped[0] != oldPath {
		t.Errorf("Skipped = %v, want only the old note", result.Skipped)
	}
	if result.HasFailures() {
		t.Errorf("Failed = %v, want none", result.Failed)
	}

	// Exactly one new PDF+Markdown pair.
	for _, name := range []string{"New_note.pdf", "New_note.md"} {
		if _, err := os.Stat(filepath.Join(dir, "generated", name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "generated", "Old_note.pdf")); err == nil {
		t.Error("ledger-recorded note was reconverted")
	}

	// Ledger now holds both paths.
	reloaded, err := ledger.Load(opts.Config.LedgerPath)
	if err != nil {
		t.Fatal(err)
	}
	if !reloaded.Has(oldPath) || !reloaded.Has(newPath) {
		t.Errorf("ledger entries = %v, want both notes", reloaded.Entries())
	}

	for _, want := range []string{"skipping", "processing", "Batch summary: 1 converted, 1 skipped, 0 failed"} {
		if !strings.Contains(log.String(), want) {
			t.Errorf("log %q does not contain %q", log.String(), want)
		}
	}
}

func TestRun_FailureIsolation(t *testing.T) {
	opts, dir := setupRun(t)

	badPath := writeNote(t, dir, "bad.json", "{not json")
	goodPath := writeNote(t, dir, "good.json", `{"title": "Good", "textContent": "fine"}`)

	var log bytes.Buffer
	result, err := Run(&fakeRenderer{}, opts, &log)
	if err != nil {
		t.Fatalf("a bad note must not abort the batch: %v", err)
	}

	if len(result.Converted) != 1 || result.Converted[0] != goodPath {
		t.Errorf("Converted = %v, want the good note", result.Converted)
	}
	if len(result.Failed) != 1 || result.Failed[0].Path != badPath {
		t.Errorf("Failed = %v, want the bad note", result.Failed)
	}

	for _, name := range []string{"Good.pdf", "Good.md"} {
		if _, err := os.Stat(filepath.Join(dir, "generated", name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}

	// The failed note stays out of the ledger so the next run retries it.
	led, err := ledger.Load(opts.Config.LedgerPath)
	if err != nil {
		t.Fatal(err)
	}
	if led.Has(badPath) {
		t.Error("failed note must not enter the ledger")
	}
	if !led.Has(goodPath) {
		t.Error("converted note missing from the ledger")
	}

	if !strings.Contains(log.String(), "error") {
		t.Errorf("log %q does not mention the failure", log.String())
	}
}

func TestRun_RenderFailureLeavesNoteEligible(t *testing.T) {
	opts, dir := setupRun(t)
	path := writeNote(t, dir, "note.json", `{"title": "Note", "textContent": "body"}`)

	var log bytes.Buffer
	result, err := Run(&fakeRenderer{err: errors.New("render crashed")}, opts, &log)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Failed) != 1 {
		t.Fatalf("Failed = %v, want one entry", result.Failed)
	}

	led, err := ledger.Load(opts.Config.LedgerPath)
	if err != nil {
		t.Fatal(err)
	}
	if led.Has(path) {
		t.Error("note with failed render must stay out of the ledger")
	}

	// Ledger file is written even when nothing succeeded.
	if _, err := os.Stat(opts.Config.LedgerPath); err != nil {
		t.Errorf("ledger not persisted: %v", err)
	}
}

func TestRun_MarkdownSinkGetsStrippedBody(t *testing.T) {
	opts, dir := setupRun(t)
	writeNote(t, dir, "note.json",
		`{"title": "Note", "textContent": "Source: http://x.com\nplain body"}`)

	var log bytes.Buffer
	if _, err := Run(&fakeRenderer{}, opts, &log); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "generated", "Note.md"))
	if err != nil {
		t.Fatal(err)
	}
	// The .md sink receives the body after source stripping but before the
	// heading and footer are added.
	if string(data) != "plain body" {
		t.Errorf("markdown output = %q, want the stripped body only", data)
	}
}

func TestRun_DryRun(t *testing.T) {
	opts, dir := setupRun(t)
	opts.DryRun = true
	writeNote(t, dir, "note.json", `{"title": "Note", "textContent": "body"}`)

	var log bytes.Buffer
	result, err := Run(nil, opts, &log)
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Converted) != 1 {
		t.Errorf("Converted = %v, want the pending note listed", result.Converted)
	}
	if _, err := os.Stat(filepath.Join(dir, "generated", "Note.pdf")); err == nil {
		t.Error("dry run must not produce outputs")
	}
	if _, err := os.Stat(opts.Config.LedgerPath); err == nil {
		t.Error("dry run must not write the ledger")
	}
	if !strings.Contains(log.String(), "would process") {
		t.Errorf("log %q does not list pending notes", log.String())
	}
}

func TestRun_EmptyDirectory(t *testing.T) {
	opts, _ := setupRun(t)

	var log bytes.Buffer
	result, err := Run(&fakeRenderer{}, opts, &log)
	if err != nil {
		t.Fatal(err)
	}
	if result.Total() != 0 {
		t.Errorf("Total = %d, want 0", result.Total())
	}
	if !strings.Contains(log.String(), "Batch summary: 0 converted, 0 skipped, 0 failed") {
		t.Errorf("log %q missing empty summary", log.String())
	}
}
