// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"strings"
)

const binPandoc = "pandoc"

// pandocRenderer pipes Markdown through pandoc, which produces the PDF
// directly. The command runs without a deadline.
type pandocRenderer struct {
	exec executor
}

func newPandocRenderer(exec executor) *pandocRenderer {
	return &pandocRenderer{exec: exec}
}

func (p *pandocRenderer) Name() string { return binPandoc }

func (p *pandocRenderer) RenderPDF(markdown, destPath string) error {
	args := []string{"--from", "gfm", "--output", destPath}
	if err := p.exec.RunPiped(binPandoc, args, strings.NewReader(markdown)); err != nil {
		return fmt.Errorf("pandoc: %w", err)
	}
	return nil
}
