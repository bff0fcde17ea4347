// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RenderBackend identifies the external Markdown-to-PDF tool.
type RenderBackend string

const (
	BackendPandoc      RenderBackend = "pandoc"
	BackendWkhtmltopdf RenderBackend = "wkhtmltopdf"
)

// ConvertConfig holds settings for a conversion run.
type ConvertConfig struct {
	// KeepDir is the directory scanned (non-recursively) for *.json notes.
	KeepDir string `json:"keep_dir" yaml:"keep_dir"`

	// OutDir is the directory receiving the .pdf and .md outputs. It is
	// expected to exist before the run; see mage init.
	OutDir string `json:"out_dir" yaml:"out_dir"`

	// LedgerPath is the newline-delimited file recording already-converted
	// note paths.
	LedgerPath string `json:"ledger" yaml:"ledger"`

	// Backend selects the PDF rendering tool: pandoc or wkhtmltopdf.
	Backend RenderBackend `json:"backend" yaml:"backend"`
}
