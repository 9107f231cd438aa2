package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/reviewdeck/internal/capability"
	"github.com/rshade/reviewdeck/internal/logging"
	"github.com/rshade/reviewdeck/internal/reviews"
)

// ErrNoIDs is returned when a browser is built without review ids.
var ErrNoIDs = errors.New("no review ids")

// ViewState is the browser's state.
type ViewState int

const (
	// ViewStateBrowsing shows the current summary.
	ViewStateBrowsing ViewState = iota
	// ViewStateQuitting is set once the user quits.
	ViewStateQuitting
)

// KeyMap holds the browser key bindings.
type KeyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Remount key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "l", "n"),
			key.WithHelp("→/n", "next review"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "p"),
			key.WithHelp("←/p", "previous review"),
		),
		Remount: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "remount"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev}, {k.Remount, k.Help, k.Quit}}
}

// BrowserModel steps through review ids with a single wrapped summary. Moving between ids
// changes the summary's props; remounting tears it down and constructs a fresh one.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type BrowserModel struct {
	ctx   context.Context
	state ViewState

	ids   []reviews.ID
	index int
	props ReviewProps

	construct capability.Constructor[ReviewProps]
	summary   capability.Component[ReviewProps]
	mounts    int

	keys  KeyMap
	help  help.Model
	width int
}

// NewBrowserModel builds a browser over ids. ids must not be empty.
func NewBrowserModel(
	ctx context.Context,
	construct capability.Constructor[ReviewProps],
	ids []reviews.ID,
	props ReviewProps,
) (BrowserModel, error) {
	if len(ids) == 0 {
		return BrowserModel{}, ErrNoIDs
	}
	props.ID = ids[0]
	width := TerminalWidth()
	m := BrowserModel{
		ctx:       ctx,
		ids:       append([]reviews.ID(nil), ids...),
		props:     props,
		construct: construct,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		width:     width,
	}
	m.help.Width = width
	m.mount()
	return m, nil
}

func (m *BrowserModel) mount() {
	m.summary = m.construct(m.ctx, m.props)
	m.mounts++
}

// Init implements tea.Model.
func (m BrowserModel) Init() tea.Cmd {
	return m.summary.Init()
}

// Update implements tea.Model.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	_, cmd := m.summary.Update(msg)
	return m, cmd
}

func (m BrowserModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	log := logging.FromContext(m.ctx)
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.state = ViewStateQuitting
		m.summary.Teardown()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		return m, m.step(1)
	case key.Matches(msg, m.keys.Prev):
		return m, m.step(-1)
	case key.Matches(msg, m.keys.Remount):
		m.summary.Teardown()
		m.mount()
		log.Debug().
			Str("component", "tui").
			Int("review_id", int(m.props.ID)).
			Int("mounts", m.mounts).
			Msg("summary remounted")
		return m, m.summary.Init()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

func (m *BrowserModel) step(delta int) tea.Cmd {
	n := len(m.ids)
	m.index = ((m.index+delta)%n + n) % n
	m.props.ID = m.ids[m.index]
	return m.summary.SetProps(m.props)
}

// View implements tea.Model.
func (m BrowserModel) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("Review %d of %d", m.index+1, len(m.ids))))
	b.WriteString("  ")
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("id %d", m.props.ID)))
	b.WriteString("\n")
	b.WriteString(BoxStyle.Width(max(m.width-borderPadding*2, 0)).Render(m.summary.View()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// State returns the browser state.
func (m BrowserModel) State() ViewState {
	return m.state
}

// CurrentID returns the id shown.
func (m BrowserModel) CurrentID() reviews.ID {
	return m.props.ID
}

// Summary returns the mounted summary component.
func (m BrowserModel) Summary() capability.Component[ReviewProps] {
	return m.summary
}

// Mounts counts how many summaries have been constructed.
func (m BrowserModel) Mounts() int {
	return m.mounts
}
