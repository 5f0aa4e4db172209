// Package org provides the outline document model and the incremental
// structural parser for org-style outlines: headlines marked by leading
// stars, list bullets, and checkbox expressions.
package org

import (
	"path/filepath"
	"strings"
)

// ContentType is the content type declared by outline documents. Documents
// with any other content type are ignored by the decoration engine.
const ContentType = "org"

// Document is an in-memory text document with a generation counter that
// increases on every content change.
type Document struct {
	id          string
	path        string
	contentType string
	lines       []string
	generation  uint64
}

// NewDocument creates a document from full file content. The content type is
// derived from the path extension.
func NewDocument(id, path, content string) *Document {
	ct := "text"
	if strings.EqualFold(filepath.Ext(path), ".org") {
		ct = ContentType
	}
	return &Document{
		id:          id,
		path:        path,
		contentType: ct,
		lines:       splitLines(content),
		generation:  1,
	}
}

// ID returns the host-assigned document handle.
func (d *Document) ID() string { return d.id }

// Path returns the backing file path.
func (d *Document) Path() string { return d.path }

// ContentType reports the document's declared content type.
func (d *Document) ContentType() string { return d.contentType }

// Generation returns the current content version. It only ever increases.
func (d *Document) Generation() uint64 { return d.generation }

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int { return len(d.lines) }

// Line returns the text of the given 0-based row.
func (d *Document) Line(row int) (string, bool) {
	if row < 0 || row >= len(d.lines) {
		return "", false
	}
	return d.lines[row], true
}

// Lines returns a copy of all lines.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// SetContent replaces the whole document text and bumps the generation.
func (d *Document) SetContent(content string) {
	d.lines = splitLines(content)
	d.generation++
}

// ReplaceLine replaces a single row and bumps the generation. Rows outside
// the document are ignored.
func (d *Document) ReplaceLine(row int, text string) {
	if row < 0 || row >= len(d.lines) {
		return
	}
	d.lines[row] = text
	d.generation++
}

func splitLines(content string) []string {
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return []string{""}
	}
	return strings.Split(content, "\n")
}
