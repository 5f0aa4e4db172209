// Package rules maps node occurrences to their visual replacement segments.
// The table is pure: output depends only on the node kind, its raw text, and
// the configuration passed in.
package rules

import (
	"fmt"
	"strings"

	"github.com/zjrosen/orglyph/internal/config"
	"github.com/zjrosen/orglyph/internal/query"
)

// Style tags understood by hosts. Headline tags are built per depth as
// "HeadlineLevel" + depth.
const (
	StyleBulletDash          = "BulletDash"
	StyleBulletPlus          = "BulletPlus"
	StyleBulletStar          = "BulletStar"
	StyleCheckboxBracketDone = "CheckboxBracketDone"
	StyleCheckboxBracketHalf = "CheckboxBracketHalf"

	// HeadlineStylePrefix prefixes the per-depth headline style tags.
	HeadlineStylePrefix = "HeadlineLevel"
)

// Segment is one piece of a replacement: literal text plus the style tag the
// host should render it with. An empty style tag means unstyled.
type Segment struct {
	Text     string
	StyleTag string
}

// Resolve returns the replacement segments for an occurrence, or nil when the
// construct passes through undecorated. Callers skip nil silently.
func Resolve(kind query.Kind, rawText string, cfg config.Config) []Segment {
	switch kind {
	case query.HeadlineMarker:
		return resolveHeadline(rawText, cfg)
	case query.ListBullet:
		return resolveBullet(rawText, cfg)
	case query.CheckboxDone:
		return resolveCheckbox(cfg.Symbols.Checkboxes.Done, StyleCheckboxBracketDone)
	case query.CheckboxHalf:
		return resolveCheckbox(cfg.Symbols.Checkboxes.Half, StyleCheckboxBracketHalf)
	default:
		return nil
	}
}

// resolveHeadline pads the depth glyph so the replacement's width matches the
// raw marker's contribution to indentation and sibling text keeps its column.
func resolveHeadline(rawText string, cfg config.Config) []Segment {
	depth := strings.Count(rawText, "*")
	if depth < 1 {
		depth = 1
	}

	glyph := cfg.Symbols.HeadlineGlyph(depth)
	pad := strings.Repeat(" ", depth-1)

	text := glyph + pad
	if cfg.Indent {
		text = pad + glyph
	}

	return []Segment{{
		Text:     text,
		StyleTag: fmt.Sprintf("%s%d", HeadlineStylePrefix, depth),
	}}
}

func resolveBullet(rawText string, cfg config.Config) []Segment {
	// Padding sits in front, matching the marker width.
	text := strings.Repeat(" ", len(rawText)-1) + cfg.Symbols.Bullet

	var tag string
	switch rawText {
	case "-":
		tag = StyleBulletDash
	case "+":
		tag = StyleBulletPlus
	case "*":
		tag = StyleBulletStar
	}

	return []Segment{{Text: text, StyleTag: tag}}
}

// resolveCheckbox keeps the brackets as literal text so the box shape stays
// put and only the state character is replaced. An empty glyph conceals the
// state character to a blank cell.
func resolveCheckbox(glyph config.CheckboxGlyph, bracketTag string) []Segment {
	state := glyph.Glyph
	if state == "" {
		state = " "
	}
	return []Segment{
		{Text: "[", StyleTag: bracketTag},
		{Text: state, StyleTag: glyph.StyleTag},
		{Text: "]", StyleTag: bracketTag},
	}
}
