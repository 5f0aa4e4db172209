package query

import (
	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/orglyph/internal/log"
	"github.com/zjrosen/orglyph/internal/org"
)

// Engine answers row-range structural queries. Parser handles are created
// lazily per document and cached for the document's lifetime; the handle
// count tracks open documents, which are few and stable, so entries are never
// evicted.
type Engine struct {
	parsers *gocache.Cache
}

// NewEngine creates an engine with an empty parser cache.
func NewEngine() *Engine {
	return &Engine{parsers: gocache.New(gocache.NoExpiration, 0)}
}

// parserFor returns the cached parser handle for the document, creating it on
// first access.
func (e *Engine) parserFor(doc *org.Document) *org.Parser {
	if cached, ok := e.parsers.Get(doc.ID()); ok {
		if p, ok := cached.(*org.Parser); ok && p.Document() == doc {
			return p
		}
	}
	p := org.NewParser(doc)
	e.parsers.Set(doc.ID(), p, gocache.NoExpiration)
	log.Debug(log.CatQuery, "Created parser handle", "doc", doc.ID(), "path", doc.Path())
	return p
}

// Range returns every occurrence whose start row falls in [startRow, endRow),
// in document order. Non-outline documents and empty ranges yield nothing;
// there is no error to report, a failed query is just an empty result.
func (e *Engine) Range(doc *org.Document, startRow, endRow int) []Occurrence {
	if doc == nil || doc.ContentType() != org.ContentType || endRow <= startRow {
		return nil
	}

	var out []Occurrence
	e.parserFor(doc).ForEachTree(func(tree *org.Node) {
		for _, n := range tree.Children {
			if n.Row < startRow || n.Row >= endRow {
				continue
			}
			if occ, ok := match(n); ok {
				out = append(out, occ)
			}
		}
	})
	return out
}

// match applies the fixed pattern: stars and bullets match by kind; checkbox
// expressions match by exact text equality against "[X]" or "[-]". The
// grammar tokenizes bracket, state and bracket separately, so an unchecked
// "[ ]" never satisfies a single-node equality test and stays undecorated.
func match(n *org.Node) (Occurrence, bool) {
	switch n.Kind {
	case org.KindStars:
		return Occurrence{Kind: HeadlineMarker, RawText: n.Text, Span: spanOf(n)}, true
	case org.KindBullet:
		return Occurrence{Kind: ListBullet, RawText: n.Text, Span: spanOf(n)}, true
	case org.KindCheckbox:
		switch n.Text {
		case "[X]":
			return Occurrence{Kind: CheckboxDone, RawText: n.Text, Span: spanOf(n)}, true
		case "[-]":
			return Occurrence{Kind: CheckboxHalf, RawText: n.Text, Span: spanOf(n)}, true
		}
	}
	return Occurrence{}, false
}
