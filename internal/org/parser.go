package org

import (
	"strings"

	"github.com/zjrosen/orglyph/internal/log"
)

// Parser parses a document into section trees. It is incremental at line
// granularity: on reparse, rows whose text is unchanged reuse their cached
// nodes instead of being scanned again. Outline constructs are line-local, so
// a changed line never invalidates its neighbors.
type Parser struct {
	doc        *Document
	generation uint64
	valid      bool
	rows       []rowEntry
	trees      []*Node
}

type rowEntry struct {
	src   string
	nodes []*Node
}

// NewParser creates a parser bound to a document for its lifetime.
func NewParser(doc *Document) *Parser {
	return &Parser{doc: doc}
}

// Document returns the document this parser is bound to.
func (p *Parser) Document() *Document { return p.doc }

// ForEachTree invokes fn for every section tree of the current parse,
// refreshing the parse first if the document changed.
func (p *Parser) ForEachTree(fn func(*Node)) {
	p.refresh()
	for _, t := range p.trees {
		fn(t)
	}
}

// Trees returns the section trees of the current parse.
func (p *Parser) Trees() []*Node {
	p.refresh()
	return p.trees
}

func (p *Parser) refresh() {
	if p.valid && p.generation == p.doc.Generation() {
		return
	}

	count := p.doc.LineCount()
	rows := make([]rowEntry, count)
	reused := 0
	for row := 0; row < count; row++ {
		line, _ := p.doc.Line(row)
		if row < len(p.rows) && p.rows[row].src == line {
			rows[row] = p.rows[row]
			for _, n := range rows[row].nodes {
				n.Row = row
			}
			reused++
			continue
		}
		rows[row] = rowEntry{src: line, nodes: parseLine(row, line)}
	}

	p.rows = rows
	p.trees = buildSections(rows)
	p.generation = p.doc.Generation()
	p.valid = true

	log.Debug(log.CatParse, "Reparsed document",
		"doc", p.doc.ID(), "generation", p.generation, "lines", count, "reused", reused)
}

// parseLine scans one line for outline constructs. Headlines are star runs at
// column zero followed by a space; bullets are -, + or an indented *, followed
// by a space; a checkbox expression may follow a bullet directly.
func parseLine(row int, line string) []*Node {
	if line == "" {
		return nil
	}

	if line[0] == '*' {
		return parseHeadline(row, line)
	}
	return parseListItem(row, line)
}

func parseHeadline(row int, line string) []*Node {
	stars := 0
	for stars < len(line) && line[stars] == '*' {
		stars++
	}
	if stars == len(line) || line[stars] != ' ' {
		// A star run without a separating space is plain text.
		return nil
	}
	return []*Node{{
		Kind:     KindStars,
		Row:      row,
		StartCol: 0,
		EndCol:   stars + 1, // conceal the separator space along with the stars
		Text:     line[:stars],
	}}
}

func parseListItem(row int, line string) []*Node {
	indent := 0
	for indent < len(line) && (line[indent] == ' ' || line[indent] == '\t') {
		indent++
	}
	if indent >= len(line) {
		return nil
	}

	ch := line[indent]
	if ch != '-' && ch != '+' && ch != '*' {
		return nil
	}
	// A star at column zero is headline territory, handled above.
	if ch == '*' && indent == 0 {
		return nil
	}
	if indent+1 >= len(line) || line[indent+1] != ' ' {
		return nil
	}

	nodes := []*Node{{
		Kind:     KindBullet,
		Row:      row,
		StartCol: indent,
		EndCol:   indent + 1,
		Text:     string(ch),
	}}

	if box := parseCheckbox(row, line, indent+2); box != nil {
		nodes = append(nodes, box)
	}
	return nodes
}

// parseCheckbox matches a checkbox expression at the given column. The state
// character is tokenized as its own byte between the brackets, so only the
// single-character states ' ', '-', 'x' and 'X' form a checkbox expression.
func parseCheckbox(row int, line string, col int) *Node {
	if col+3 > len(line) {
		return nil
	}
	if line[col] != '[' || line[col+2] != ']' {
		return nil
	}
	switch line[col+1] {
	case ' ', '-', 'x', 'X':
	default:
		return nil
	}
	// Require the expression to end the line or be followed by a space, so
	// "[X]extra" inside a word is not a checkbox.
	if col+3 < len(line) && line[col+3] != ' ' {
		return nil
	}
	return &Node{
		Kind:     KindCheckbox,
		Row:      row,
		StartCol: col,
		EndCol:   col + 3,
		Text:     line[col : col+3],
	}
}

// buildSections groups per-row nodes into section trees: each headline starts
// a section that owns every row until the next headline. Rows before the
// first headline form a preamble section.
func buildSections(rows []rowEntry) []*Node {
	var sections []*Node
	var current *Node

	open := func(row int) *Node {
		s := &Node{Kind: KindSection, Row: row}
		sections = append(sections, s)
		return s
	}

	for row, entry := range rows {
		if isHeadline(entry.nodes) {
			current = open(row)
		} else if current == nil && len(entry.nodes) > 0 {
			current = open(row)
		}
		if current != nil {
			current.Children = append(current.Children, entry.nodes...)
		}
	}
	return sections
}

func isHeadline(nodes []*Node) bool {
	return len(nodes) == 1 && nodes[0].Kind == KindStars
}

// HeadlineDepth returns the nesting depth of a stars node, the number of
// marker characters.
func HeadlineDepth(n *Node) int {
	return strings.Count(n.Text, "*")
}
