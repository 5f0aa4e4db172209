// Package toaster provides a notification toast overlay component.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/orglyph/internal/decor"
	"github.com/zjrosen/orglyph/internal/ui/overlay"
	"github.com/zjrosen/orglyph/internal/ui/styles"
)

// Model holds the toaster state.
type Model struct {
	title    string
	message  string
	severity decor.Severity
	visible  bool
}

// New creates a new toaster model.
func New() Model {
	return Model{}
}

// Show displays a toast for the given notification.
func (m Model) Show(n decor.Notification) Model {
	m.title = n.Title
	m.message = n.Message
	m.severity = n.Severity
	m.visible = true
	return m
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Visible returns whether the toast is currently showing.
func (m Model) Visible() bool {
	return m.visible
}

// View renders the toast box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	style := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())

	var content string
	switch m.severity {
	case decor.SeverityError:
		style = style.BorderForeground(styles.ToastBorderErrorColor)
		content = "❌ " + m.title + ": " + m.message
	default:
		style = style.BorderForeground(styles.ToastBorderInfoColor)
		content = "ℹ️ " + m.title + ": " + m.message
	}

	return style.Render(content)
}

// Overlay renders the toast on top of a background view, bottom
// centered with padding from the bottom edge.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.visible || m.message == "" {
		return bg
	}

	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.View(), bg)
}

// DismissMsg signals that the toast should be dismissed.
type DismissMsg struct{}

// ScheduleDismiss returns a command that dismisses the toast after a duration.
func ScheduleDismiss(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return DismissMsg{}
	})
}
