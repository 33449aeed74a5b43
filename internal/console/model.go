package console

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nerrad567/cuepad-core/internal/palette"
	"github.com/nerrad567/cuepad-core/internal/surface"
)

// Source is the press source tag for console input.
const Source = "console"

// DefaultKeys assigns press keys to pads in index order. q and space are
// reserved, so pads past the end of the list are reachable only by selection.
const DefaultKeys = "1234567890wertyuiopasdfghjklzxcvbnm"

// DefaultColumns is the grid width used when Options.Columns is unset.
const DefaultColumns = 8

const cellWidth = 6

// Loop queues closures on the tick loop. *tick.Runtime satisfies it.
type Loop interface {
	Post(fn func()) error
}

// Board is the pad board as seen by the console. *pad.Board satisfies it.
type Board interface {
	PressFrom(idx int, velocity float64, source string) error
}

// Pauser flips the global pause. *pauseclock.Clock satisfies it.
type Pauser interface {
	Toggle() bool
}

// Options configures a Model.
type Options struct {
	Loop  Loop   // required
	Board Board  // required
	Pause Pauser // optional; space is ignored when nil
	Feed  *Feed  // optional; the grid stays static when nil

	// Pads is the initial surface snapshot, in any order.
	Pads    []surface.PadState
	Paused  bool
	Columns int
	Title   string
}

type (
	stateMsg surface.PadState
	pauseMsg bool
)

// Model is the bubbletea model for the console.
type Model struct {
	loop  Loop
	board Board
	pause Pauser
	feed  *Feed

	order  []int
	states map[int]surface.PadState
	keys   map[string]int
	labels map[int]string

	columns  int
	selected int // position in order
	paused   bool
	status   string
	title    string
	quitting bool
}

// NewModel builds a console model from an initial surface snapshot.
func NewModel(opts Options) Model {
	m := Model{
		loop:    opts.Loop,
		board:   opts.Board,
		pause:   opts.Pause,
		feed:    opts.Feed,
		states:  make(map[int]surface.PadState, len(opts.Pads)),
		keys:    make(map[string]int),
		labels:  make(map[int]string),
		columns: opts.Columns,
		paused:  opts.Paused,
		title:   opts.Title,
	}
	if m.columns <= 0 {
		m.columns = DefaultColumns
	}
	if m.title == "" {
		m.title = "cuepad"
	}

	for _, st := range opts.Pads {
		if _, dup := m.states[st.Index]; !dup {
			m.order = append(m.order, st.Index)
		}
		m.states[st.Index] = st
	}
	sort.Ints(m.order)

	for i, idx := range m.order {
		if i >= len(DefaultKeys) {
			break
		}
		key := string(DefaultKeys[i])
		m.keys[key] = idx
		m.labels[idx] = key
	}
	return m
}

func listenStates(f *Feed) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-f.states)
	}
}

func listenPause(f *Feed) tea.Cmd {
	return func() tea.Msg {
		return pauseMsg(<-f.pause)
	}
}

// Init starts listening to the feed.
func (m Model) Init() tea.Cmd {
	if m.feed == nil {
		return nil
	}
	return tea.Batch(listenStates(m.feed), listenPause(m.feed))
}

// Update handles key presses and feed messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ":
			m.togglePause()

		case "left":
			m.move(-1)
		case "right":
			m.move(1)
		case "up":
			m.move(-m.columns)
		case "down":
			m.move(m.columns)

		case "enter":
			if len(m.order) > 0 {
				m.press(m.order[m.selected])
			}

		default:
			if idx, ok := m.keys[key]; ok {
				m.selected = m.position(idx)
				m.press(idx)
			}
		}

	case stateMsg:
		st := surface.PadState(msg)
		if _, known := m.states[st.Index]; known {
			m.states[st.Index] = st
		}
		return m, listenStates(m.feed)

	case pauseMsg:
		m.paused = bool(msg)
		return m, listenPause(m.feed)
	}

	return m, nil
}

func (m *Model) move(delta int) {
	next := m.selected + delta
	if next < 0 || next >= len(m.order) {
		return
	}
	m.selected = next
}

func (m *Model) position(idx int) int {
	for i, v := range m.order {
		if v == idx {
			return i
		}
	}
	return m.selected
}

// press posts a full-velocity press to the loop.
func (m *Model) press(idx int) {
	board := m.board
	if err := m.loop.Post(func() {
		board.PressFrom(idx, 1, Source) //nolint:errcheck // pads come from the surface snapshot
	}); err != nil {
		m.status = fmt.Sprintf("pad %d: %v", idx, err)
		return
	}
	m.status = fmt.Sprintf("pressed pad %d", idx)
}

func (m *Model) togglePause() {
	if m.pause == nil {
		return
	}
	pause := m.pause
	if err := m.loop.Post(func() { pause.Toggle() }); err != nil {
		m.status = fmt.Sprintf("pause: %v", err)
		return
	}
	m.status = "pause toggled"
}

// View renders the header, the grid and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7f7f7f"))

	mode := "LIVE"
	if m.paused {
		mode = "PAUSED"
	}
	header := headerStyle.Render(fmt.Sprintf("%s  %s  pads:%d", m.title, mode, len(m.order)))

	var rows []string
	for start := 0; start < len(m.order); start += m.columns {
		end := min(start+m.columns, len(m.order))
		cells := make([]string, 0, end-start)
		for pos := start; pos < end; pos++ {
			cells = append(cells, m.cell(pos))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	out.WriteString("\n\n")
	if len(m.order) > 0 {
		st := m.states[m.order[m.selected]]
		out.WriteString(fmt.Sprintf("pad %d  %s (base %s)\n", st.Index, st.Appearance, st.Base))
	}
	if m.status != "" {
		out.WriteString(dimStyle.Render(m.status))
		out.WriteString("\n")
	}
	out.WriteString(dimStyle.Render("keys:press  arrows+enter:select  space:pause  q:quit"))
	return out.String()
}

func (m Model) cell(pos int) string {
	idx := m.order[pos]
	st := m.states[idx]

	label, ok := m.labels[idx]
	if !ok {
		label = "·"
	}
	if pos == m.selected {
		label = "[" + label + "]"
	}

	style := lipgloss.NewStyle().
		Width(cellWidth).
		Align(lipgloss.Center).
		MarginRight(1).
		Background(lipgloss.Color(st.Appearance.Hex())).
		Foreground(textColor(st.Appearance))
	if st.Scale > surface.RestScale {
		style = style.Bold(true)
	}
	return style.Render(label)
}

// textColor picks black or white for legibility on a.
func textColor(a palette.Appearance) lipgloss.Color {
	if l, _, _ := a.Color.Clamped().Lab(); l > 0.6 {
		return lipgloss.Color("#000000")
	}
	return lipgloss.Color("#ffffff")
}

// Run shows the console until the user quits or ctx is cancelled.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("console: %w", err)
	}
	return nil
}
