// Package tui is the interactive terminal dashboard. It drives the world
// one tick per frame on the bubbletea update loop and shows four panels:
// population, recent events, needs and the selected estajo.
package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/talgya/estajoj/internal/agents"
	"github.com/talgya/estajoj/internal/engine"
	"github.com/talgya/estajoj/internal/events"
)

// EventsShown is how many recent events the log panel lists.
const EventsShown = 10

type tickMsg time.Time

// Model is the bubbletea model around a World.
type Model struct {
	world    *engine.World
	interval time.Duration
	onTick   func(tick uint32, tickEvents []events.Event)

	selected    agents.AgentID
	hasSelected bool
	paused      bool
	extinct     bool
	err         error

	width, height int
}

// New creates a dashboard ticking world every interval. onTick may be nil.
func New(world *engine.World, interval time.Duration, onTick func(uint32, []events.Event)) Model {
	return Model{
		world:    world,
		interval: interval,
		onTick:   onTick,
	}
}

// Err is the tick error that ended the program, if any. Extinction is
// not an error here.
func (m Model) Err() error { return m.err }

// Extinct reports whether the program ended because everyone died.
func (m Model) Extinct() bool { return m.extinct }

// Paused reports whether ticking is suspended.
func (m Model) Paused() bool { return m.paused }

// Selected returns the selected estajo id, if any.
func (m Model) Selected() (agents.AgentID, bool) { return m.selected, m.hasSelected }

func (m Model) Init() tea.Cmd {
	return m.scheduleTick()
}

func (m Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "p":
			m.paused = !m.paused
		case "left":
			m.selectPrevious()
		case "right":
			m.selectNext()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tickMsg:
		if m.paused {
			return m, m.scheduleTick()
		}
		tickEvents, err := m.world.Tick()
		if err != nil {
			if errors.Is(err, engine.ErrPopulationExtinct) {
				m.extinct = true
			} else {
				m.err = err
			}
			return m, tea.Quit
		}
		if m.onTick != nil {
			m.onTick(m.world.CurrentTick(), tickEvents)
		}
		return m, m.scheduleTick()
	}
	return m, nil
}

// selectNext moves to the next id in ascending order, wrapping around.
// With nothing (or a dead estajo) selected it starts from the first id.
func (m *Model) selectNext() {
	ids := m.world.IDs()
	if len(ids) == 0 {
		return
	}
	if !m.hasSelected {
		m.selected, m.hasSelected = ids[0], true
		return
	}
	pos := position(ids, m.selected)
	m.selected = ids[(pos+1)%len(ids)]
}

// selectPrevious moves to the previous id, wrapping around.
func (m *Model) selectPrevious() {
	ids := m.world.IDs()
	if len(ids) == 0 {
		return
	}
	if !m.hasSelected {
		m.selected, m.hasSelected = ids[len(ids)-1], true
		return
	}
	pos := position(ids, m.selected)
	m.selected = ids[(pos+len(ids)-1)%len(ids)]
}

// position finds id in ids, falling back to 0 when it is gone.
func position(ids []agents.AgentID, id agents.AgentID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return 0
}

// Run shows the dashboard on the alternate screen until the user quits or
// the population dies out. A user quit returns nil.
func Run(world *engine.World, interval time.Duration, onTick func(uint32, []events.Event)) error {
	p := tea.NewProgram(New(world, interval, onTick), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	return exitError(final)
}

// exitError reports how the dashboard ended. Extinction is returned as
// ErrPopulationExtinct so the caller can tell it from a user quit.
func exitError(final tea.Model) error {
	m, ok := final.(Model)
	if !ok {
		return nil
	}
	if m.Err() != nil {
		return m.Err()
	}
	if m.Extinct() {
		return fmt.Errorf("dashboard: %w", engine.ErrPopulationExtinct)
	}
	return nil
}
