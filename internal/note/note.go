// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package note loads exported note JSON and normalizes it into the record
// the document writers consume.
package note

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pdiddy/keepdown/pkg/types"
)

// sourceLineRe matches a "Source:" marker (case-insensitive, anywhere in the
// body) and captures the rest of that line.
var sourceLineRe = regexp.MustCompile(`(?i)source:[ \t]*([^\n]+)`)

// headingRe matches a Markdown heading marker followed by text.
var headingRe = regexp.MustCompile(`# .+`)

// noSource is the placeholder used when a note carries no source information.
const noSource = "N/A"

// Read loads and decodes one exported note file. Missing files and invalid
// JSON surface as errors for the caller's per-file boundary.
func Read(path string) (types.RawNote, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.RawNote{}, fmt.Errorf("reading note %s: %w", path, err)
	}
	var raw types.RawNote
	if err := json.Unmarshal(data, &raw); err != nil {
		return types.RawNote{}, fmt.Errorf("parsing note %s: %w", path, err)
	}
	return raw, nil
}

// Parse normalizes a raw note. path supplies the title fallback when the
// export has no title. The steps run in a fixed order because later ones
// see earlier mutations: the source line is stripped from the body before
// heading detection inspects it.
func Parse(path string, raw types.RawNote) types.Note {
	title := raw.Title
	if title == "" {
		base := filepath.Base(path)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	content, source := extractSource(raw.TextContent, raw.Annotations)

	heading := title
	if selfHeaded(content) {
		heading = ""
	}

	return types.Note{
		Title:    title,
		Heading:  heading,
		Content:  content,
		Source:   source,
		Labels:   joinLabels(raw.Labels),
		Filename: Slug(title),
	}
}

// extractSource pulls the source URL out of the body. The first line carrying
// a "Source:" marker wins and is removed whole from the body. Without one,
// the annotation URLs are comma-joined; without those, the source is "N/A".
func extractSource(body string, annotations []types.Annotation) (content, source string) {
	loc := sourceLineRe.FindStringSubmatchIndex(body)
	if loc != nil {
		source = strings.TrimSpace(body[loc[2]:loc[3]])
		return removeLine(body, loc[0]), source
	}

	if len(annotations) > 0 {
		urls := make([]string, len(annotations))
		for i, a := range annotations {
			urls[i] = a.URL
		}
		return body, strings.Join(urls, ", ")
	}

	return body, noSource
}

// removeLine deletes the whole line containing byte offset at, including its
// trailing newline.
func removeLine(s string, at int) string {
	start := strings.LastIndexByte(s[:at], '\n') + 1
	end := strings.IndexByte(s[at:], '\n')
	if end < 0 {
		return s[:start]
	}
	return s[:start] + s[at+end+1:]
}

// selfHeaded reports whether the content supplies its own Markdown heading.
// Only the first three lines are inspected, so a heading deep in the body
// does not suppress the synthesized one.
func selfHeaded(content string) bool {
	lines := strings.SplitN(content, "\n", 4)
	if len(lines) == 4 {
		lines = lines[:3]
	}
	return headingRe.MatchString(strings.Join(lines, "\n"))
}

func joinLabels(labels []types.Label) string {
	names := make([]string, len(labels))
	for i, l := range labels {
		names[i] = l.Name
	}
	return strings.Join(names, ", ")
}

// Compose renders a normalized note into the final Markdown document: an
// optional synthesized heading, the body, then a footer with the source and
// labels.
func Compose(n types.Note) string {
	var b strings.Builder
	if n.Heading != "" {
		fmt.Fprintf(&b, "# %s\n\n", n.Heading)
	}
	b.WriteString(n.Content)
	b.WriteString("\n\n----\n")
	fmt.Fprintf(&b, "Source: %s\n\n", n.Source)
	fmt.Fprintf(&b, "Labels: %s\n", n.Labels)
	return b.String()
}
