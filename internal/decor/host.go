// Package decor applies visual replacements to outline documents: it turns
// query occurrences into overlay requests against a host and drives the work
// from the host's redraw cycle.
package decor

import (
	"github.com/zjrosen/orglyph/internal/query"
	"github.com/zjrosen/orglyph/internal/rules"
)

// BlendMode tells the host how an overlay interacts with existing styling.
type BlendMode string

// BlendCombine replaces the cell content for the span while merging with any
// underlying highlight instead of clearing it.
const BlendCombine BlendMode = "combine"

// Host is the display subsystem consuming overlay requests. Overlays are
// purely visual; the document text is never touched.
type Host interface {
	// CreateOverlay replaces the rendered content of span with the given
	// segments. The span is half-open and single-line.
	CreateOverlay(docID string, span query.Span, segments []rules.Segment, blend BlendMode) error

	// CursorPosition returns the cursor's current row and column in the
	// document, or (-1, -1) when the document has no cursor.
	CursorPosition(docID string) (row, col int)
}
