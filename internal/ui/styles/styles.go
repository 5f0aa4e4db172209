// Package styles contains Lip Gloss style definitions.
package styles

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/orglyph/internal/rules"
)

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#CCCCCC"} // Main/primary text
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#BBBBBB"} // Status bar, secondary info
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Hints, help text, footers

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"} // Success states
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"} // Warnings
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"} // Errors

	// Outline glyph colors (Catppuccin Mocha). Levels past the palette
	// cycle back to the first entry.
	headlineColors = []lipgloss.AdaptiveColor{
		{Light: "#1E66F5", Dark: "#89B4FA"}, // blue
		{Light: "#8839EF", Dark: "#CBA6F7"}, // mauve
		{Light: "#179299", Dark: "#94E2D5"}, // teal
		{Light: "#DF8E1D", Dark: "#F9E2AF"}, // yellow
		{Light: "#FE640B", Dark: "#FAB387"}, // peach
		{Light: "#D20F39", Dark: "#F38BA8"}, // red
	}

	BulletColor       = lipgloss.AdaptiveColor{Light: "#9CA0B0", Dark: "#6C7086"} // overlay0
	CheckboxDoneColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	CheckboxHalfColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	BracketColor      = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"}

	BulletStyle       = lipgloss.NewStyle().Foreground(BulletColor)
	CheckboxDoneStyle = lipgloss.NewStyle().Foreground(CheckboxDoneColor).Bold(true)
	CheckboxHalfStyle = lipgloss.NewStyle().Foreground(CheckboxHalfColor)
	BracketStyle      = lipgloss.NewStyle().Foreground(BracketColor)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)

	// Toast notification colors
	ToastBorderErrorColor = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	ToastBorderInfoColor  = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
)

// HeadlineStyle returns the style for a headline glyph at depth
// (1-based). Depths beyond the palette wrap around.
func HeadlineStyle(depth int) lipgloss.Style {
	if depth < 1 {
		depth = 1
	}
	color := headlineColors[(depth-1)%len(headlineColors)]
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

// ForTag resolves a segment style tag to a renderable style. Unknown
// or empty tags render unstyled.
func ForTag(tag string) lipgloss.Style {
	switch tag {
	case rules.StyleBulletDash, rules.StyleBulletPlus, rules.StyleBulletStar:
		return BulletStyle
	case "CheckboxDone":
		return CheckboxDoneStyle
	case "CheckboxHalf":
		return CheckboxHalfStyle
	case rules.StyleCheckboxBracketDone, rules.StyleCheckboxBracketHalf:
		return BracketStyle
	}
	if depth, ok := headlineDepth(tag); ok {
		return HeadlineStyle(depth)
	}
	return lipgloss.NewStyle()
}

func headlineDepth(tag string) (int, bool) {
	suffix, found := strings.CutPrefix(tag, rules.HeadlineStylePrefix)
	if !found {
		return 0, false
	}
	depth, err := strconv.Atoi(suffix)
	if err != nil || depth < 1 {
		return 0, false
	}
	return depth, true
}
