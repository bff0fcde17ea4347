// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger persists the set of note paths that already have outputs,
// so repeated runs skip completed work. The format is deliberately plain:
// one path per line in a text file.
package ledger

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Ledger is the in-memory working set of converted note paths.
type Ledger struct {
	paths map[string]struct{}
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{paths: make(map[string]struct{})}
}

// Load reads the ledger file at path. A missing file is not an error; it
// means nothing has been converted yet.
func Load(path string) (*Ledger, error) {
	l := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			l.paths[line] = struct{}{}
		}
	}
	return l, nil
}

// Save rewrites the ledger file from the working set, fully replacing any
// prior contents so stale duplicates never accumulate across runs.
func (l *Ledger) Save(path string) error {
	entries := l.Entries()
	var b strings.Builder
	for _, p := range entries {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing ledger %s: %w", path, err)
	}
	return nil
}

// Add records a note path as converted.
func (l *Ledger) Add(path string) {
	l.paths[path] = struct{}{}
}

// Has reports whether a note path was already converted.
func (l *Ledger) Has(path string) bool {
	_, ok := l.paths[path]
	return ok
}

// Len returns the number of recorded paths.
func (l *Ledger) Len() int {
	return len(l.paths)
}

// Entries returns the recorded paths in sorted order.
func (l *Ledger) Entries() []string {
	entries := make([]string, 0, len(l.paths))
	for p := range l.paths {
		entries = append(entries, p)
	}
	sort.Strings(entries)
	return entries
}
