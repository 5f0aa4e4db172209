// Package ui implements the terminal document viewer. It hosts the
// decoration engine: the viewer owns the overlay table, reports cursor
// position, and drives window and line passes from its update loop.
package ui

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/zjrosen/orglyph/internal/config"
	"github.com/zjrosen/orglyph/internal/decor"
	"github.com/zjrosen/orglyph/internal/log"
	"github.com/zjrosen/orglyph/internal/org"
	"github.com/zjrosen/orglyph/internal/pubsub"
	"github.com/zjrosen/orglyph/internal/query"
	"github.com/zjrosen/orglyph/internal/rules"
	"github.com/zjrosen/orglyph/internal/ui/overlay"
	"github.com/zjrosen/orglyph/internal/ui/styles"
	"github.com/zjrosen/orglyph/internal/ui/toaster"
	"github.com/zjrosen/orglyph/internal/watcher"
)

const toastDuration = 4 * time.Second

// reloadLineThreshold caps how many changed rows get individual line
// passes before a reload falls back to a full window pass.
const reloadLineThreshold = 20

// fileChangedMsg signals that the backing file changed on disk.
type fileChangedMsg struct{}

// rowOverlay is one decoration spliced into a row at render time.
type rowOverlay struct {
	startCol int
	endCol   int
	rendered string
}

// Model is the Bubble Tea model for the document viewer.
type Model struct {
	ctx    context.Context
	doc    *org.Document
	driver *decor.Driver

	notifyListener *pubsub.Listener[decor.Notification]
	watch          *watcher.Watcher
	watchCh        <-chan struct{}

	vp       viewport.Model
	toast    toaster.Model
	overlays map[int][]rowOverlay

	cursor int
	width  int
	height int
	ready  bool
}

// New creates a viewer for the file at path and wires the decoration
// pipeline to it. The watcher may be nil when auto reload is disabled.
func New(ctx context.Context, path, content string, cfg config.Config, notifier *decor.Notifier, watch *watcher.Watcher, opts ...decor.DriverOption) *Model {
	m := &Model{
		ctx:      ctx,
		doc:      org.NewDocument(uuid.NewString(), path, content),
		toast:    toaster.New(),
		overlays: make(map[int][]rowOverlay),
		watch:    watch,
	}
	m.driver = decor.NewDriver(query.NewEngine(), decor.NewApplier(m, notifier), cfg, opts...)
	if notifier != nil {
		m.notifyListener = pubsub.NewListener(ctx, notifier.Broker())
	}
	return m
}

// Document exposes the open document, mainly for tests.
func (m *Model) Document() *org.Document { return m.doc }

// Driver exposes the render-cycle driver.
func (m *Model) Driver() *decor.Driver { return m.driver }

// CreateOverlay records a decoration for later splicing into the view.
// A repeated request for the same span replaces the previous overlay,
// which keeps redraw passes idempotent.
func (m *Model) CreateOverlay(docID string, span query.Span, segments []rules.Segment, blend decor.BlendMode) error {
	if docID != m.doc.ID() {
		return fmt.Errorf("unknown document %q", docID)
	}
	if span.StartRow != span.EndRow {
		return fmt.Errorf("multi-line span [%d, %d]", span.StartRow, span.EndRow)
	}
	line, ok := m.doc.Line(span.StartRow)
	if !ok {
		return fmt.Errorf("row %d out of range", span.StartRow)
	}
	if span.StartCol > span.EndCol || span.EndCol > len(line) {
		return fmt.Errorf("invalid span [%d, %d) for row %d", span.StartCol, span.EndCol, span.StartRow)
	}

	var b strings.Builder
	contentWidth := 0
	for _, seg := range segments {
		if seg.Text == "" {
			continue
		}
		b.WriteString(styles.ForTag(seg.StyleTag).Render(seg.Text))
		contentWidth += runewidth.StringWidth(seg.Text)
	}

	// The overlay paints over the span; cells it does not cover keep
	// their original text, so a replacement one column narrower than
	// the marker leaves the separator space in place.
	b.WriteString(trimWidth(line[span.StartCol:span.EndCol], contentWidth))

	ov := rowOverlay{startCol: span.StartCol, endCol: span.EndCol, rendered: b.String()}
	row := m.overlays[span.StartRow]
	for i, existing := range row {
		if existing.startCol == ov.startCol && existing.endCol == ov.endCol {
			row[i] = ov
			return nil
		}
	}
	row = append(row, ov)
	sort.Slice(row, func(i, j int) bool { return row[i].startCol < row[j].startCol })
	m.overlays[span.StartRow] = row
	return nil
}

// trimWidth drops the first w display columns from s.
func trimWidth(s string, w int) string {
	for i, r := range s {
		if w <= 0 {
			return s[i:]
		}
		w -= runewidth.RuneWidth(r)
	}
	return ""
}

// CursorPosition reports the cursor location in the document.
func (m *Model) CursorPosition(docID string) (int, int) {
	if docID != m.doc.ID() {
		return -1, -1
	}
	return m.cursor, 0
}

func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.notifyListener != nil {
		cmds = append(cmds, m.notifyListener.Listen())
	}
	if m.watch != nil {
		ch, err := m.watch.Start()
		if err != nil {
			log.ErrorErr(log.CatWatch, "Failed to start watcher", err, "path", m.doc.Path())
		} else {
			m.watchCh = ch
			cmds = append(cmds, m.waitForChange())
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return nil
		case _, ok := <-m.watchCh:
			if !ok {
				return nil
			}
			return fileChangedMsg{}
		}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := msg.Height - 1 // status bar
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = vpHeight
		}
		m.fullPass()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case fileChangedMsg:
		m.reload()
		return m, m.waitForChange()

	case pubsub.Event[decor.Notification]:
		m.toast = m.toast.Show(msg.Payload)
		return m, tea.Batch(m.notifyListener.Listen(), toaster.ScheduleDismiss(toastDuration))

	case toaster.DismissMsg:
		m.toast = m.toast.Hide()
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(m.cursor - 1)
	case "down", "j":
		m.moveCursor(m.cursor + 1)
	case "pgup", "ctrl+u":
		m.moveCursor(m.cursor - m.vp.Height)
	case "pgdown", "ctrl+d":
		m.moveCursor(m.cursor + m.vp.Height)
	case "g", "home":
		m.moveCursor(0)
	case "G", "end":
		m.moveCursor(m.doc.LineCount() - 1)
	case "r":
		m.reload()
	case "c":
		cfg := m.driver.Config()
		cfg.ShowCurrentLine = !cfg.ShowCurrentLine
		m.driver.SetConfig(cfg)
		m.refreshRow(m.cursor)
	}
	return m, nil
}

// moveCursor moves the cursor and redecorates the rows it left and
// entered. The old row regains its glyphs, the new one loses them
// unless the current line is configured to stay decorated.
func (m *Model) moveCursor(row int) {
	if row < 0 {
		row = 0
	}
	if max := m.doc.LineCount() - 1; row > max {
		row = max
	}
	if row == m.cursor {
		return
	}

	old := m.cursor
	m.cursor = row
	m.driver.LineRedraw(m.ctx, m.doc, old)
	m.driver.LineRedraw(m.ctx, m.doc, row)
	m.scrollToCursor()
}

func (m *Model) scrollToCursor() {
	if !m.ready {
		return
	}
	before := m.vp.YOffset
	if m.cursor < m.vp.YOffset {
		m.vp.SetYOffset(m.cursor)
	} else if m.cursor >= m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(m.cursor - m.vp.Height + 1)
	}
	if m.vp.YOffset != before {
		// Newly revealed rows have no overlays yet. Same generation,
		// so this bypasses the WindowStart dedup on purpose.
		m.driver.WindowRedraw(m.ctx, m.doc, m.vp.YOffset, m.vp.YOffset+m.vp.Height)
	}
}

// fullPass runs a window pass over the visible rows. When the document
// generation moved since the last pass, stale overlays are dropped
// first; otherwise the pass only fills in rows that lack decorations.
func (m *Model) fullPass() {
	if m.driver.WindowStart(m.doc.ID(), m.doc.Generation()) {
		m.overlays = make(map[int][]rowOverlay)
	}
	m.driver.WindowRedraw(m.ctx, m.doc, m.vp.YOffset, m.vp.YOffset+m.vp.Height)
}

// refreshRow drops a row's overlays and runs a line pass for it.
func (m *Model) refreshRow(row int) {
	delete(m.overlays, row)
	m.driver.LineRedraw(m.ctx, m.doc, row)
}

// reload re-reads the backing file. Small edits get per-line passes,
// anything structural falls back to a full pass.
func (m *Model) reload() {
	data, err := os.ReadFile(m.doc.Path())
	if err != nil {
		log.ErrorErr(log.CatWatch, "Reload failed", err, "path", m.doc.Path())
		return
	}

	oldText := strings.Join(m.doc.Lines(), "\n")
	newText := strings.TrimSuffix(string(data), "\n")
	if oldText == newText {
		return
	}

	changed, ok := changedRows(oldText, newText)
	if !ok || len(changed) > reloadLineThreshold {
		m.doc.SetContent(string(data))
		m.fullPass()
	} else {
		newLines := strings.Split(newText, "\n")
		for _, row := range changed {
			m.doc.ReplaceLine(row, newLines[row])
		}
		for _, row := range changed {
			m.refreshRow(row)
		}
		// Generation moved, keep the window dedup in sync.
		m.driver.WindowStart(m.doc.ID(), m.doc.Generation())
	}

	if m.cursor >= m.doc.LineCount() {
		m.cursor = m.doc.LineCount() - 1
	}
	log.Info(log.CatWatch, "Reloaded document", "path", m.doc.Path(), "lines", m.doc.LineCount())
}

// changedRows diffs the two texts line by line. It reports the rows
// that were replaced in place, or ok=false when lines were added or
// removed and row numbers shifted.
func changedRows(oldText, newText string) ([]int, bool) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldText+"\n", newText+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var changed []int
	row := 0
	for i := 0; i < len(diffs); i++ {
		d := diffs[i]
		n := strings.Count(d.Text, "\n")
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			row += n
		case diffmatchpatch.DiffDelete:
			if i+1 >= len(diffs) || diffs[i+1].Type != diffmatchpatch.DiffInsert {
				return nil, false
			}
			if strings.Count(diffs[i+1].Text, "\n") != n {
				return nil, false
			}
			for j := 0; j < n; j++ {
				changed = append(changed, row+j)
			}
			row += n
			i++ // consume the paired insert
		case diffmatchpatch.DiffInsert:
			return nil, false
		}
	}
	return changed, true
}

func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}

	m.vp.SetContent(m.renderDocument())
	view := m.vp.View() + "\n" + m.statusBar()
	return m.toast.Overlay(view, m.width, m.height)
}

// renderDocument splices overlays into every row. The cursor row is
// rendered raw unless the current line is configured to stay decorated.
func (m *Model) renderDocument() string {
	showCurrent := m.driver.Config().ShowCurrentLine
	lines := m.doc.Lines()
	out := make([]string, len(lines))
	for row, line := range lines {
		if row == m.cursor && !showCurrent {
			out[row] = line
			continue
		}
		out[row] = m.renderRow(row, line)
	}
	return strings.Join(out, "\n")
}

func (m *Model) renderRow(row int, line string) string {
	ovs := m.overlays[row]
	if len(ovs) == 0 {
		return line
	}
	// Splice right to left so earlier byte offsets stay valid.
	for i := len(ovs) - 1; i >= 0; i-- {
		ov := ovs[i]
		spliced, err := overlay.Splice(line, ov.startCol, ov.endCol, ov.rendered)
		if err != nil {
			log.Warn(log.CatUI, "Dropping stale overlay", "row", row, "error", err.Error())
			continue
		}
		line = spliced
	}
	return line
}

func (m *Model) statusBar() string {
	status := fmt.Sprintf("%s  %d/%d", m.doc.Path(), m.cursor+1, m.doc.LineCount())
	if m.width > 0 {
		status = truncate.StringWithTail(status, uint(m.width), "…")
	}
	return styles.StatusBarStyle.Render(status)
}
