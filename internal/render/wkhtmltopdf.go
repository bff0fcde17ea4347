// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const binWkhtmltopdf = "wkhtmltopdf"

// wkhtmltopdfRenderer converts Markdown to HTML with goldmark, then pipes
// the HTML through wkhtmltopdf. Useful where no TeX toolchain is installed.
type wkhtmltopdfRenderer struct {
	exec executor
	md   goldmark.Markdown
}

func newWkhtmltopdfRenderer(exec executor) *wkhtmltopdfRenderer {
	return &wkhtmltopdfRenderer{
		exec: exec,
		md:   goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (w *wkhtmltopdfRenderer) Name() string { return binWkhtmltopdf }

func (w *wkhtmltopdfRenderer) RenderPDF(markdown, destPath string) error {
	var html bytes.Buffer
	if err := w.md.Convert([]byte(markdown), &html); err != nil {
		return fmt.Errorf("converting markdown to html: %w", err)
	}

	// "-" reads the HTML from stdin.
	args := []string{"--quiet", "-", destPath}
	if err := w.exec.RunPiped(binWkhtmltopdf, args, strings.NewReader(html.String())); err != nil {
		return fmt.Errorf("wkhtmltopdf: %w", err)
	}
	return nil
}
