// Package ui is the terminal front end: a search field over the ranked
// entry list. It re-ranks on every edit of the search text and hands the
// selected entry to the launcher on enter.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jiggak/waymenu/internal/catalog"
	"github.com/jiggak/waymenu/internal/config"
	"github.com/jiggak/waymenu/internal/rank"
)

// Launcher executes the chosen entry.
type Launcher interface {
	Launch(entry catalog.Entry) error
}

// Options configures a Model.
type Options struct {
	Settings config.Settings
	Style    config.Style
	Launcher Launcher
	// KeepOrder shows entries in the given order instead of sorting them by
	// history and label. History is ignored.
	KeepOrder bool
	// Renderer defaults to lipgloss.DefaultRenderer().
	Renderer *lipgloss.Renderer
}

// Model is the bubbletea model of one launcher session.
type Model struct {
	ranker   *rank.Ranker
	visible  []catalog.Entry
	cursor   int
	offset   int
	input    textinput.Model
	settings config.Settings
	styles   Styles
	keys     KeyMap
	launcher Launcher

	termWidth  int
	termHeight int

	err      error
	launched bool
}

// New creates a model over entries ranked with history.
func New(entries []catalog.Entry, history []string, opts Options) Model {
	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	styles := NewStyles(r, opts.Style)

	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "Search"
	input.PromptStyle = styles.Prompt
	input.TextStyle = styles.Text
	input.PlaceholderStyle = styles.Dim
	input.Focus()

	var ranker *rank.Ranker
	if opts.KeepOrder {
		ranker = rank.NewOrderedRanker(entries)
	} else {
		ranker = rank.NewRanker(entries, history)
	}

	return Model{
		ranker:   ranker,
		visible:  ranker.Base(),
		input:    input,
		settings: opts.Settings,
		styles:   styles,
		keys:     DefaultKeyMap(),
		launcher: opts.Launcher,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Launched reports whether the session ended with a successful launch.
func (m Model) Launched() bool {
	return m.launched
}

// Visible returns the entries currently shown, in display order.
func (m Model) Visible() []catalog.Entry {
	return m.visible
}

// Selected returns the highlighted entry.
func (m Model) Selected() (catalog.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return catalog.Entry{}, false
	}
	return m.visible[m.cursor], true
}

// Err returns the last launch error, cleared by the next edit.
func (m Model) Err() error {
	return m.err
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.scroll()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Prev):
			if m.cursor > 0 {
				m.cursor--
				m.scroll()
			}
			return m, nil

		case key.Matches(msg, m.keys.Next):
			if m.cursor < len(m.visible)-1 {
				m.cursor++
				m.scroll()
			}
			return m, nil

		case key.Matches(msg, m.keys.Launch):
			return m.launch()
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.search(after)
	}
	return m, cmd
}

// search re-ranks for a new search text and resets the selection.
func (m *Model) search(text string) {
	m.visible = m.ranker.Search(text)
	m.cursor = 0
	m.offset = 0
	m.err = nil
}

func (m Model) launch() (tea.Model, tea.Cmd) {
	entry, ok := m.Selected()
	if !ok || m.launcher == nil {
		return m, nil
	}
	if err := m.launcher.Launch(entry); err != nil {
		m.err = err
		m.scroll()
		return m, nil
	}
	m.launched = true
	return m, tea.Quit
}

// width is the configured width capped by the terminal.
func (m Model) width() int {
	w := m.settings.Width
	if m.termWidth > 0 && m.termWidth < w {
		w = m.termWidth
	}
	return max(w, 4)
}

// height is the configured height capped by the terminal.
func (m Model) height() int {
	h := m.settings.Height
	if m.termHeight > 0 && m.termHeight < h {
		h = m.termHeight
	}
	return max(h, 3)
}

// innerWidth excludes the two border columns.
func (m Model) innerWidth() int {
	return m.width() - 2
}

// listRows is how many entries fit in vertical mode.
func (m Model) listRows() int {
	rows := m.height() - 2
	if !m.settings.HideSearch {
		rows--
	}
	if m.err != nil {
		rows--
	}
	return max(rows, 1)
}

// scroll moves offset so the cursor stays on screen.
func (m *Model) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.settings.Orientation == config.Horizontal {
		for m.offset < m.cursor && !m.fitsHorizontally(m.offset, m.cursor) {
			m.offset++
		}
		return
	}
	if rows := m.listRows(); m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

// fitsHorizontally reports whether entries from..to fit on one line.
func (m Model) fitsHorizontally(from, to int) bool {
	used := 0
	for i := from; i <= to && i < len(m.visible); i++ {
		if i > from {
			used++
		}
		used += m.cellWidth(m.visible[i])
	}
	return used <= m.innerWidth()
}

// cellWidth is the rendered width of one horizontal cell.
func (m Model) cellWidth(e catalog.Entry) int {
	return runewidth.StringWidth(m.truncate(e.Label, m.innerWidth()-2)) + 2
}

func (m Model) truncate(s string, w int) string {
	return runewidth.Truncate(s, max(w, 1), "…")
}

// View implements tea.Model.
func (m Model) View() string {
	var lines []string
	if !m.settings.HideSearch {
		m.input.Width = max(m.innerWidth()-runewidth.StringWidth(m.input.Prompt)-1, 1)
		lines = append(lines, m.input.View())
	}

	switch {
	case len(m.visible) == 0:
		lines = append(lines, m.styles.Dim.Render("No matches"))
	case m.settings.Orientation == config.Horizontal:
		lines = append(lines, m.horizontalView())
	default:
		lines = append(lines, m.verticalView()...)
	}

	if m.err != nil {
		lines = append(lines, m.styles.Error.Render(m.truncate(m.err.Error(), m.innerWidth())))
	}

	return m.styles.Box.
		Width(m.innerWidth()).
		Height(m.height() - 2).
		Render(strings.Join(lines, "\n"))
}

func (m Model) verticalView() []string {
	inner := m.innerWidth()
	end := min(m.offset+m.listRows(), len(m.visible))

	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		label := m.truncate(m.visible[i].Label, inner-2)
		cell := " " + label + strings.Repeat(" ", max(inner-2-runewidth.StringWidth(label), 0)) + " "
		if i == m.cursor {
			lines = append(lines, m.styles.Selected.Render(cell))
		} else {
			lines = append(lines, m.styles.Text.Render(cell))
		}
	}
	return lines
}

func (m Model) horizontalView() string {
	inner := m.innerWidth()
	var cells []string
	used := 0
	for i := m.offset; i < len(m.visible); i++ {
		w := m.cellWidth(m.visible[i])
		if len(cells) > 0 {
			w++
		}
		if used+w > inner && len(cells) > 0 {
			break
		}
		used += w

		cell := " " + m.truncate(m.visible[i].Label, inner-2) + " "
		if i == m.cursor {
			cells = append(cells, m.styles.Selected.Render(cell))
		} else {
			cells = append(cells, m.styles.Text.Render(cell))
		}
	}
	return strings.Join(cells, " ")
}
