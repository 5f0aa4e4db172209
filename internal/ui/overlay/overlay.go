// Package overlay provides utilities for splicing decorated glyphs
// into document lines and for rendering modal content on top of
// background views without clearing the screen.
package overlay

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Splice replaces the byte range [startCol, endCol) of a plain source
// line with rendered content. Columns are byte offsets into the
// original line and must land on rune boundaries. The content may
// carry ANSI styling; the line must not.
func Splice(line string, startCol, endCol int, content string) (string, error) {
	if startCol < 0 || endCol < startCol || endCol > len(line) {
		return "", fmt.Errorf("invalid span [%d, %d) for line of %d bytes", startCol, endCol, len(line))
	}
	if !utf8.RuneStart(safeByte(line, startCol)) || !utf8.RuneStart(safeByte(line, endCol)) {
		return "", fmt.Errorf("span [%d, %d) splits a rune", startCol, endCol)
	}
	return line[:startCol] + content + line[endCol:], nil
}

func safeByte(s string, i int) byte {
	if i >= len(s) {
		return 0
	}
	return s[i]
}

// Position specifies where to place overlay content.
type Position int

const (
	Center Position = iota
	Top
	Bottom
)

// Config controls overlay rendering behavior.
type Config struct {
	Width    int
	Height   int
	Position Position
	// PadY adds vertical padding from edges for Top/Bottom positions.
	PadY int
}

// Place renders foreground content on top of background. Uses
// ANSI-aware string manipulation so styling survives on both sides.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	fgHeight := len(fgLines)
	fgWidth := lipgloss.Width(fg)

	startX, startY := calculatePosition(cfg, fgWidth, fgHeight)

	for i, fgLine := range fgLines {
		bgY := startY + i
		if bgY >= len(bgLines) {
			break
		}

		bgLine := bgLines[bgY]
		fgLineWidth := ansi.StringWidth(fgLine)

		leftPart := ansi.Truncate(bgLine, startX, "")

		leftWidth := ansi.StringWidth(leftPart)
		if leftWidth < startX {
			leftPart += strings.Repeat(" ", startX-leftWidth)
		}

		endX := startX + fgLineWidth
		bgWidth := ansi.StringWidth(bgLine)
		var rightPart string
		if endX < bgWidth {
			// TruncateLeft drops cells from the left, keeping the right
			rightPart = ansi.TruncateLeft(bgLine, endX, "")
		}

		bgLines[bgY] = leftPart + fgLine + rightPart
	}

	return strings.Join(bgLines, "\n")
}

func calculatePosition(cfg Config, fgWidth, fgHeight int) (x, y int) {
	switch cfg.Position {
	case Top:
		x = (cfg.Width - fgWidth) / 2
		y = cfg.PadY
	case Bottom:
		x = (cfg.Width - fgWidth) / 2
		y = cfg.Height - fgHeight - cfg.PadY
	default:
		x = (cfg.Width - fgWidth) / 2
		y = (cfg.Height - fgHeight) / 2
	}

	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}
