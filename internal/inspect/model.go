package inspect

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nirinav/nirinav/internal/compositor"
	"github.com/nirinav/nirinav/internal/errors"
	"github.com/nirinav/nirinav/internal/nav"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

const maxTitleWidth = 48

type rowKind int

const (
	rowOutput rowKind = iota
	rowWorkspace
	rowWindow
)

// row is one rendered line of the topology tree. Only window rows carry an
// actionable id.
type row struct {
	kind     rowKind
	text     string
	windowID nav.WindowID
}

type topologyMsg struct {
	rows []row
	err  error
}

type focusResultMsg struct {
	id  nav.WindowID
	err error
}

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Enter   key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "focus window")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Refresh, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Enter, k.Refresh, k.Quit},
	}
}

// Model is the inspector's bubbletea model.
type Model struct {
	client  Compositor
	handler *errors.TUIHandler

	keys     keyMap
	help     help.Model
	viewport viewport.Model

	rows    []row
	cursor  int
	loading bool
	ready   bool
}

// NewModel builds the inspector model over client.
func NewModel(client Compositor) Model {
	return Model{
		client:  client,
		handler: errors.NewTUIHandler(nil),
		keys:    newKeyMap(),
		help:    help.New(),
		loading: true,
	}
}

// Init kicks off the first topology load.
func (m Model) Init() tea.Cmd {
	return loadTopology(m.client)
}

// Update handles messages and keys.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		chrome := lipgloss.Height(m.headerView()) + lipgloss.Height(m.footerView())
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-chrome)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - chrome
		}
		m.help.Width = msg.Width
		m.viewport.SetContent(m.rowsView())
		return m, nil

	case topologyMsg:
		m.loading = false
		if msg.err != nil {
			m.handler.Error(fmt.Sprintf("topology: %v", msg.err))
			return m, nil
		}
		m.rows = msg.rows
		if m.cursor >= len(m.rows) {
			m.cursor = len(m.rows) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.viewport.SetContent(m.rowsView())
		return m, nil

	case focusResultMsg:
		if msg.err != nil {
			m.handler.Error(fmt.Sprintf("focus window %d: %v", msg.id, msg.err))
			return m, nil
		}
		m.handler.Success(fmt.Sprintf("focused window %d", msg.id))
		m.loading = true
		return m, loadTopology(m.client)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1)
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1)
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			m.viewport.SetContent(m.rowsView())
			return m, loadTopology(m.client)
		case key.Matches(msg, m.keys.Enter):
			if selected, ok := m.selected(); ok && selected.kind == rowWindow {
				return m, focusWindow(m.client, selected.windowID)
			}
			m.handler.Warning("selection is not a window")
		}
		m.viewport.SetContent(m.rowsView())
		return m, nil
	}
	return m, nil
}

// View renders header, topology viewport, status and help.
func (m Model) View() string {
	if !m.ready {
		return dimStyle.Render("loading topology...")
	}
	return m.headerView() + "\n" + m.viewport.View() + "\n" + m.footerView()
}

func (m Model) headerView() string {
	title := titleStyle.Render("nirinav inspect")
	if m.loading {
		title += dimStyle.Render("  loading...")
	}
	return title
}

func (m Model) footerView() string {
	status := " "
	if msg, ok := m.handler.GetLatest(); ok {
		status = messageStyle(msg.Type).Render(msg.Text)
	}
	return status + "\n" + m.help.View(m.keys)
}

func (m Model) rowsView() string {
	if len(m.rows) == 0 {
		return dimStyle.Render("no windows")
	}
	var b strings.Builder
	for i, r := range m.rows {
		marker := "  "
		line := r.text
		if i == m.cursor {
			marker = "> "
			line = cursorStyle.Render(line)
		}
		b.WriteString(marker + line)
		if i < len(m.rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) selected() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m *Model) moveCursor(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor > len(m.rows)-1 {
		m.cursor = len(m.rows) - 1
	}
	m.scrollToCursor()
}

// scrollToCursor keeps the cursor row inside the viewport.
func (m *Model) scrollToCursor() {
	if !m.ready {
		return
	}
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	}
	bottom := m.viewport.YOffset + m.viewport.Height - 1
	if m.cursor > bottom {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func messageStyle(t errors.MessageType) lipgloss.Style {
	switch t {
	case errors.MessageTypeError:
		return errorStyle
	case errors.MessageTypeWarning:
		return warningStyle
	case errors.MessageTypeSuccess:
		return successStyle
	default:
		return infoStyle
	}
}

// loadTopology fetches outputs, workspaces and windows and flattens them
// into rows.
func loadTopology(client Compositor) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		outputs, err := client.Outputs(ctx)
		if err != nil {
			return topologyMsg{err: err}
		}
		workspaces, err := client.Workspaces(ctx)
		if err != nil {
			return topologyMsg{err: err}
		}
		windows, err := client.Windows(ctx)
		if err != nil {
			return topologyMsg{err: err}
		}
		return topologyMsg{rows: buildRows(outputs, workspaces, windows)}
	}
}

func focusWindow(client Compositor, id nav.WindowID) tea.Cmd {
	return func() tea.Msg {
		return focusResultMsg{id: id, err: client.FocusWindow(context.Background(), id)}
	}
}

// buildRows flattens the topology into display order: outputs sorted by
// name, their workspaces by index, each workspace's windows by id. Windows
// without a workspace trail at the end.
func buildRows(outputs map[string]compositor.Output, workspaces []compositor.Workspace, windows []compositor.Window) []row {
	byOutput := make(map[string][]compositor.Workspace)
	for _, ws := range workspaces {
		name := ""
		if ws.Output != nil {
			name = *ws.Output
		}
		byOutput[name] = append(byOutput[name], ws)
	}
	names := make([]string, 0, len(byOutput))
	for name := range byOutput {
		names = append(names, name)
	}
	sort.Strings(names)

	byWorkspace := make(map[uint64][]compositor.Window)
	var orphans []compositor.Window
	for _, w := range windows {
		if w.WorkspaceID == nil {
			orphans = append(orphans, w)
			continue
		}
		byWorkspace[*w.WorkspaceID] = append(byWorkspace[*w.WorkspaceID], w)
	}

	var rows []row
	for _, name := range names {
		rows = append(rows, outputRow(name, outputs[name]))
		group := byOutput[name]
		sort.Slice(group, func(i, j int) bool { return group[i].Idx < group[j].Idx })
		for _, ws := range group {
			rows = append(rows, workspaceRow(ws))
			wins := byWorkspace[ws.ID]
			sort.Slice(wins, func(i, j int) bool { return wins[i].ID < wins[j].ID })
			for i := range wins {
				rows = append(rows, windowRow(&wins[i]))
			}
		}
	}
	sort.Slice(orphans, func(i, j int) bool { return orphans[i].ID < orphans[j].ID })
	for i := range orphans {
		rows = append(rows, windowRow(&orphans[i]))
	}
	return rows
}

func outputRow(name string, output compositor.Output) row {
	if name == "" {
		return row{kind: rowOutput, text: "(no output)"}
	}
	text := name
	if output.Logical != nil {
		text = fmt.Sprintf("%s  %dx%d", name, output.Logical.Width, output.Logical.Height)
	}
	return row{kind: rowOutput, text: text}
}

func workspaceRow(ws compositor.Workspace) row {
	text := fmt.Sprintf("  workspace %d", ws.Idx)
	if ws.Name != nil && *ws.Name != "" {
		text = fmt.Sprintf("  workspace %d (%s)", ws.Idx, *ws.Name)
	}
	switch {
	case ws.IsFocused:
		text += "  [focused]"
	case ws.IsActive:
		text += "  [active]"
	}
	return row{kind: rowWorkspace, text: text}
}

func windowRow(w *compositor.Window) row {
	marker := "  "
	if w.IsFocused {
		marker = "● "
	}
	app := w.App()
	if app == "" {
		app = "-"
	}
	title := ""
	if w.Title != nil {
		title = *w.Title
	}
	if len(title) > maxTitleWidth {
		title = title[:maxTitleWidth-3] + "..."
	}
	return row{
		kind:     rowWindow,
		text:     strings.TrimRight(fmt.Sprintf("    %s[%d] %s  %s", marker, w.ID, app, title), " "),
		windowID: nav.WindowID(w.ID),
	}
}
