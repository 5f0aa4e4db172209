package org

// NodeKind is the syntactic category of a parsed construct.
type NodeKind uint8

const (
	// KindSection is a headline together with its body, the unit yielded by
	// ForEachTree.
	KindSection NodeKind = iota
	// KindStars is the leading star run of a headline. Its span covers the
	// stars and the separating space; its text is the stars only.
	KindStars
	// KindBullet is a list bullet: -, + or an indented *.
	KindBullet
	// KindCheckbox is a checkbox expression following a bullet. The text
	// spans the brackets and the state character, e.g. "[X]", "[-]", "[ ]".
	KindCheckbox
)

func (k NodeKind) String() string {
	switch k {
	case KindSection:
		return "section"
	case KindStars:
		return "stars"
	case KindBullet:
		return "bullet"
	case KindCheckbox:
		return "checkbox"
	default:
		return "unknown"
	}
}

// Node is a parsed syntax node. All leaf constructs are single-line, so a
// node's span lives entirely on Row.
type Node struct {
	Kind     NodeKind
	Row      int
	StartCol int // byte column, inclusive
	EndCol   int // byte column, exclusive
	Text     string
	Children []*Node
}
