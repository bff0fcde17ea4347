// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared records passed between keepdown stages.
package types

// RawNote is the on-disk JSON shape of one exported note. Every field is
// optional in the export format; absent fields decode to zero values.
type RawNote struct {
	// Title is the note title as entered by the user. May be empty.
	Title string `json:"title"`

	// TextContent is the note body.
	TextContent string `json:"textContent"`

	// Labels lists the labels attached to the note, in export order.
	Labels []Label `json:"labels"`

	// Annotations lists link annotations attached to the note, in export order.
	Annotations []Annotation `json:"annotations"`
}

// Label is one label entry on a raw note.
type Label struct {
	Name string `json:"name"`
}

// Annotation is one link annotation on a raw note.
type Annotation struct {
	URL string `json:"url"`
}

// Note is the normalized form of a raw note, ready for templating.
type Note struct {
	// Title is the note title, falling back to the source filename
	// (extension stripped) when the export carries no title.
	Title string `json:"title" yaml:"title"`

	// Heading is the heading to synthesize above the content. Empty when
	// the content already begins with a Markdown heading of its own.
	Heading string `json:"heading,omitempty" yaml:"heading,omitempty"`

	// Content is the note body with any trailing "Source: ..." line removed.
	Content string `json:"content" yaml:"content"`

	// Source is the extracted source URL, the comma-joined annotation URLs,
	// or "N/A" when the note carries no source information.
	Source string `json:"source" yaml:"source"`

	// Labels is the comma-joined label names; empty when the note has none.
	Labels string `json:"labels,omitempty" yaml:"labels,omitempty"`

	// Filename is the slug derived from Title, used as the output file stem.
	Filename string `json:"filename" yaml:"filename"`
}
