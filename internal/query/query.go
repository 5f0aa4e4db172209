// Package query runs the fixed structural pattern against parsed outline
// documents and yields node occurrences for the decoration engine.
package query

import "github.com/zjrosen/orglyph/internal/org"

// Kind identifies the construct an occurrence decorates.
type Kind uint8

const (
	// HeadlineMarker is a run of headline stars.
	HeadlineMarker Kind = iota
	// ListBullet is a -, + or * list bullet.
	ListBullet
	// CheckboxDone is a checkbox expression equal to "[X]".
	CheckboxDone
	// CheckboxHalf is a checkbox expression equal to "[-]".
	CheckboxHalf
)

func (k Kind) String() string {
	switch k {
	case HeadlineMarker:
		return "headline_marker"
	case ListBullet:
		return "list_bullet"
	case CheckboxDone:
		return "checkbox_done"
	case CheckboxHalf:
		return "checkbox_half"
	default:
		return "unknown"
	}
}

// Span is a half-open row/column range in document coordinates.
type Span struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// Occurrence is a matched construct. Occurrences are produced fresh on every
// query, consumed within the same call, and never stored.
type Occurrence struct {
	Kind    Kind
	RawText string
	Span    Span
}

// spanOf converts a parsed node's position. All matched constructs are
// single-line, so EndRow equals StartRow.
func spanOf(n *org.Node) Span {
	return Span{StartRow: n.Row, StartCol: n.StartCol, EndRow: n.Row, EndCol: n.EndCol}
}
