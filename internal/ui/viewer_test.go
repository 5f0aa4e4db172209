package ui

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/orglyph/internal/config"
	"github.com/zjrosen/orglyph/internal/decor"
	"github.com/zjrosen/orglyph/internal/query"
	"github.com/zjrosen/orglyph/internal/rules"
)

func newTestViewer(t *testing.T, content string) (*Model, *decor.Notifier) {
	t.Helper()
	notifier := decor.NewNotifier()
	t.Cleanup(notifier.Close)

	m := New(context.Background(), "notes.org", content, config.Defaults(), notifier, nil)
	return m, notifier
}

func sized(m *Model, width, height int) {
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})
}

func TestViewer_DecoratesHeadlines(t *testing.T) {
	m, _ := newTestViewer(t, "preamble\n* top\n** second\n")
	sized(m, 40, 10)

	view := m.View()
	require.Contains(t, view, "◉ top")
	require.Contains(t, view, " ○ second")
	require.NotContains(t, view, "* top")
}

func TestViewer_CursorRowStaysRaw(t *testing.T) {
	m, _ := newTestViewer(t, "* one\n* two\n")
	sized(m, 40, 10)

	// Cursor starts on row 0, which renders undecorated.
	view := m.View()
	require.Contains(t, view, "* one")
	require.Contains(t, view, "◉ two")

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	view = m.View()
	require.Contains(t, view, "◉ one")
	require.Contains(t, view, "* two")
}

func TestViewer_ShowCurrentLineToggle(t *testing.T) {
	m, _ := newTestViewer(t, "* one\n")
	sized(m, 40, 10)

	require.Contains(t, m.View(), "* one")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	require.Contains(t, m.View(), "◉ one")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	require.Contains(t, m.View(), "* one")
}

func TestViewer_ChecklistDecoration(t *testing.T) {
	m, _ := newTestViewer(t, "filler\n- [X] done\n- [ ] open\n")
	sized(m, 40, 10)

	view := m.View()
	require.Contains(t, view, "• [✓] done")
	require.Contains(t, view, "• [ ] open", "unchecked boxes pass through untouched")
}

func TestViewer_CreateOverlayValidation(t *testing.T) {
	m, _ := newTestViewer(t, "* one\n")

	err := m.CreateOverlay("wrong-id", query.Span{}, nil, decor.BlendCombine)
	require.ErrorContains(t, err, "unknown document")

	err = m.CreateOverlay(m.doc.ID(), query.Span{StartRow: 0, EndRow: 1}, nil, decor.BlendCombine)
	require.ErrorContains(t, err, "multi-line span")

	err = m.CreateOverlay(m.doc.ID(), query.Span{StartRow: 9, EndRow: 9}, nil, decor.BlendCombine)
	require.ErrorContains(t, err, "out of range")

	err = m.CreateOverlay(m.doc.ID(),
		query.Span{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 99}, nil, decor.BlendCombine)
	require.ErrorContains(t, err, "invalid span")
}

func TestViewer_RepeatedOverlayReplacesPrevious(t *testing.T) {
	m, _ := newTestViewer(t, "* one\n")
	span := query.Span{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 2}

	seg := []rules.Segment{{Text: "◉"}}
	require.NoError(t, m.CreateOverlay(m.doc.ID(), span, seg, decor.BlendCombine))
	require.NoError(t, m.CreateOverlay(m.doc.ID(), span, seg, decor.BlendCombine))

	require.Len(t, m.overlays[0], 1)
}

func TestViewer_CursorPosition(t *testing.T) {
	m, _ := newTestViewer(t, "* one\n* two\n")
	sized(m, 40, 10)

	row, col := m.CursorPosition(m.doc.ID())
	require.Equal(t, 0, row)
	require.Equal(t, 0, col)

	row, col = m.CursorPosition("other-doc")
	require.Equal(t, -1, row)
	require.Equal(t, -1, col)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	row, _ = m.CursorPosition(m.doc.ID())
	require.Equal(t, 1, row)
}

func TestViewer_CursorClampsAtEdges(t *testing.T) {
	m, _ := newTestViewer(t, "* one\n* two\n")
	sized(m, 40, 10)

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, 0, m.cursor)

	for i := 0; i < 5; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	require.Equal(t, 1, m.cursor)
}

func TestViewer_ReloadSmallEdit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.org")
	require.NoError(t, os.WriteFile(path, []byte("text\n* one\n* two\n"), 0644))

	notifier := decor.NewNotifier()
	defer notifier.Close()
	m := New(context.Background(), path, "text\n* one\n* two\n", config.Defaults(), notifier, nil)
	sized(m, 40, 10)

	genBefore := m.doc.Generation()
	require.NoError(t, os.WriteFile(path, []byte("text\n* one\n** two\n"), 0644))

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	require.Greater(t, m.doc.Generation(), genBefore)
	line, _ := m.doc.Line(2)
	require.Equal(t, "** two", line)
	require.Contains(t, m.View(), " ○ two")
}

func TestViewer_ReloadStructuralChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.org")
	require.NoError(t, os.WriteFile(path, []byte("text\n* one\n"), 0644))

	notifier := decor.NewNotifier()
	defer notifier.Close()
	m := New(context.Background(), path, "text\n* one\n", config.Defaults(), notifier, nil)
	sized(m, 40, 10)

	require.NoError(t, os.WriteFile(path, []byte("text\n* one\n* added\n* more\n"), 0644))
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	require.Equal(t, 4, m.doc.LineCount())
	require.Contains(t, m.View(), "◉ added")
}

func TestChangedRows(t *testing.T) {
	rows, ok := changedRows("a\nb\nc", "a\nB\nc")
	require.True(t, ok)
	require.Equal(t, []int{1}, rows)

	rows, ok = changedRows("a\nb", "a\nb")
	require.True(t, ok)
	require.Empty(t, rows)

	_, ok = changedRows("a\nb", "a\nb\nc")
	require.False(t, ok, "insertions shift rows")

	_, ok = changedRows("a\nb\nc", "a\nc")
	require.False(t, ok, "deletions shift rows")
}

func TestViewer_TeatestSmoke(t *testing.T) {
	m, _ := newTestViewer(t, "filler\n* top\n- [X] done\n")
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(60, 20))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("◉ top")) && bytes.Contains(out, []byte("✓"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))
}

func TestViewer_StatusBarShowsPathAndPosition(t *testing.T) {
	m, _ := newTestViewer(t, "* one\n* two\n* three\n")
	sized(m, 60, 10)

	view := m.View()
	require.Contains(t, view, "notes.org")
	require.Contains(t, view, "1/3")

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Contains(t, m.View(), "2/3")
}

func TestViewer_LongStatusBarTruncates(t *testing.T) {
	longPath := strings.Repeat("a", 100) + ".org"
	notifier := decor.NewNotifier()
	defer notifier.Close()
	m := New(context.Background(), longPath, "* one\n", config.Defaults(), notifier, nil)
	sized(m, 30, 10)

	require.Contains(t, m.View(), "…")
}
