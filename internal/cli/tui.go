package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/conceptmap/pkg/engine"
	"github.com/matzehuels/conceptmap/pkg/progress"
	"github.com/matzehuels/conceptmap/pkg/tree"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listKnownStyle    = lipgloss.NewStyle().Foreground(colorGreen)
)

// =============================================================================
// Key Map
// =============================================================================

type browseKeys struct {
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	Expand      key.Binding
	Collapse    key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	Reset       key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newBrowseKeys() browseKeys {
	return browseKeys{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("⏎/space", "toggle")),
		Expand:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "expand")),
		Collapse:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "collapse")),
		ExpandAll:   key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "expand all")),
		CollapseAll: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "collapse all")),
		Reset:       key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset progress")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:        key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k browseKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Help, k.Quit}
}

func (k browseKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Expand, k.Collapse, k.ExpandAll, k.CollapseAll},
		{k.Reset, k.Help, k.Quit},
	}
}

// =============================================================================
// BrowseModel - Interactive outline
// =============================================================================

// browseRow is one visible line of the outline.
type browseRow struct {
	node  tree.Node
	depth int
}

// BrowseModel is the bubbletea model for the outline browser. Enter on a
// card toggles known; on a topic or subtopic it toggles collapsed.
type BrowseModel struct {
	ctx   context.Context
	sess  *engine.Session
	title string

	rows   []browseRow
	cursor int
	offset int
	height int

	keys   browseKeys
	help   help.Model
	status string
}

// NewBrowseModel creates a browser over sess.
func NewBrowseModel(ctx context.Context, sess *engine.Session, title string) BrowseModel {
	m := BrowseModel{
		ctx:    ctx,
		sess:   sess,
		title:  title,
		height: 20,
		keys:   newBrowseKeys(),
		help:   help.New(),
	}
	m.refresh()
	return m
}

// refresh rebuilds the visible rows, keeping the cursor on the same id.
func (m *BrowseModel) refresh() {
	var current string
	if m.cursor < len(m.rows) {
		current = m.rows[m.cursor].node.ID
	}

	m.rows = nil
	tree.Walk(tree.Prune(m.sess.Roots(), m.sess.IsCollapsed), func(n tree.Node, depth int, _ string) bool {
		m.rows = append(m.rows, browseRow{node: n, depth: depth})
		return true
	})

	m.cursor = 0
	for i, r := range m.rows {
		if r.node.ID == current {
			m.cursor = i
			break
		}
	}
	m.clampOffset()
}

func (m *BrowseModel) clampOffset() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m BrowseModel) current() (tree.Node, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return tree.Node{}, false
	}
	return m.rows[m.cursor].node, true
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 5)
		m.help.Width = msg.Width
		m.clampOffset()
	}
	return m, nil
}

func (m BrowseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.clampOffset()
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
			m.clampOffset()
		}
	case key.Matches(msg, m.keys.Toggle):
		m.toggle()
	case key.Matches(msg, m.keys.Expand):
		if n, ok := m.current(); ok && n.Kind != tree.KindCard && m.sess.IsCollapsed(n.ID) {
			m.toggle()
		}
	case key.Matches(msg, m.keys.Collapse):
		if n, ok := m.current(); ok && n.Kind != tree.KindCard && !m.sess.IsCollapsed(n.ID) {
			m.toggle()
		}
	case key.Matches(msg, m.keys.ExpandAll):
		m.sess.ExpandAll(m.ctx, true)
		m.refresh()
	case key.Matches(msg, m.keys.CollapseAll):
		m.sess.ExpandAll(m.ctx, false)
		m.refresh()
	case key.Matches(msg, m.keys.Reset):
		m.sess.ResetProgress(m.ctx)
		m.status = "progress reset"
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// toggle flips the node under the cursor.
func (m *BrowseModel) toggle() {
	n, ok := m.current()
	if !ok {
		return
	}
	var err error
	if n.Kind == tree.KindCard {
		_, err = m.sess.ToggleKnown(m.ctx, n.ID)
	} else {
		_, err = m.sess.ToggleCollapsed(m.ctx, n.ID)
		m.refresh()
	}
	if err != nil {
		m.status = err.Error()
	}
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("  ")
	b.WriteString(progressPill(m.sess.Overall()))
	b.WriteString("\n\n")

	report := m.sess.Progress()
	end := min(m.offset+m.height, len(m.rows))
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(i, report))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(StyleWarning.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("[%d/%d]  ", m.cursor+1, len(m.rows))))
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m BrowseModel) renderRow(i int, report progress.Report) string {
	r := m.rows[i]
	cursor := "  "
	if i == m.cursor {
		cursor = "▸ "
	}
	indent := strings.Repeat("  ", r.depth)

	var icon, suffix string
	style := listNormalStyle
	switch r.node.Kind {
	case tree.KindCard:
		icon = iconUnknown
		if m.sess.IsKnown(r.node.ID) {
			icon = iconKnown
			style = listKnownStyle
		}
	default:
		icon = iconOpen
		if m.sess.IsCollapsed(r.node.ID) {
			icon = iconClosed
		}
		if p, ok := report.For(r.node.ID); ok {
			suffix = "  " + progressPill(p)
		}
	}
	if i == m.cursor {
		style = listSelectedStyle
	}
	return cursor + indent + style.Render(icon+" "+r.node.Label) + suffix
}
