// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render writes the two document outputs: PDF via an external
// Markdown renderer, and the raw Markdown body. Renderer backends (pandoc,
// wkhtmltopdf) are pluggable behind the Renderer interface.
package render

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pdiddy/keepdown/pkg/types"
)

// Renderer turns a Markdown document into a PDF file. Implementations wrap
// external tools and must run them without a deadline: a slow render is
// acceptable in this batch context, a truncated one is not.
type Renderer interface {
	// Name returns the backend name for logs and errors.
	Name() string

	// RenderPDF writes the Markdown document as a PDF at destPath,
	// overwriting any existing file.
	RenderPDF(markdown, destPath string) error
}

// executor abstracts command execution so backends are testable without the
// external tools installed.
type executor interface {
	LookPath(file string) (string, error)
	RunPiped(name string, args []string, stdin io.Reader) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunPiped(name string, args []string, stdin io.Reader) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	var errBuf strings.Builder
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(errBuf.String())
		if msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

var defaultExec executor = &osExecutor{}

// DetectRenderer resolves the configured backend and verifies its binary is
// on PATH, failing before the batch starts rather than once per note.
func DetectRenderer(backend types.RenderBackend) (Renderer, error) {
	return detectRenderer(backend, defaultExec)
}

func detectRenderer(backend types.RenderBackend, exec executor) (Renderer, error) {
	var r Renderer
	switch backend {
	case types.BackendPandoc:
		r = newPandocRenderer(exec)
	case types.BackendWkhtmltopdf:
		r = newWkhtmltopdfRenderer(exec)
	default:
		return nil, fmt.Errorf("unknown render backend %q: want pandoc or wkhtmltopdf", backend)
	}

	if _, err := exec.LookPath(r.Name()); err != nil {
		return nil, fmt.Errorf("render backend %s not found on PATH: %w", r.Name(), err)
	}
	return r, nil
}

// WritePDF renders doc to outDir/stem.pdf through the given backend.
func WritePDF(r Renderer, outDir, stem, doc string) error {
	dest := filepath.Join(outDir, stem+".pdf")
	if err := r.RenderPDF(doc, dest); err != nil {
		return fmt.Errorf("rendering %s with %s: %w", dest, r.Name(), err)
	}
	return nil
}

// WriteMarkdown writes the unrendered note body to outDir/stem.md,
// overwriting any existing file. The output directory is expected to exist.
func WriteMarkdown(outDir, stem, content string) error {
	dest := filepath.Join(outDir, stem+".md")
	if err := os.WriteFile(dest, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}
