package tui

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/talgya/estajoj/internal/agents"
	"github.com/talgya/estajoj/internal/config"
	"github.com/talgya/estajoj/internal/engine"
	"github.com/talgya/estajoj/internal/history"
)

func newTestModel(t *testing.T, population uint32) Model {
	t.Helper()
	params := config.SimulationParams{SimulationDuration: 100, InitialPopulation: population}
	w, err := engine.NewWorld(params,
		engine.WithRand(rand.New(rand.NewSource(1))),
		engine.WithHistoryOptions(history.WithDir(t.TempDir())),
	)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return New(w, time.Millisecond, nil)
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestSelectionCycles(t *testing.T) {
	m := newTestModel(t, 3)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if id, ok := m.Selected(); !ok || id != 0 {
		t.Fatalf("first Right should select 0, got %d (%v)", id, ok)
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if id, _ := m.Selected(); id != 0 {
		t.Errorf("Right should wrap to 0, got %d", id)
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if id, _ := m.Selected(); id != 2 {
		t.Errorf("Left should wrap to 2, got %d", id)
	}
}

func TestSelectPreviousStartsAtLast(t *testing.T) {
	m := newTestModel(t, 4)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if id, ok := m.Selected(); !ok || id != 3 {
		t.Errorf("first Left should select the last id, got %d (%v)", id, ok)
	}
}

func TestPauseSkipsTicks(t *testing.T) {
	m := newTestModel(t, 3)

	m, _ = press(m, runes("p"))
	if !m.Paused() {
		t.Fatal("p should pause")
	}
	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(Model)
	if m.world.CurrentTick() != 0 {
		t.Errorf("paused model ticked to %d", m.world.CurrentTick())
	}
	if cmd == nil {
		t.Error("paused model should keep scheduling ticks")
	}

	m, _ = press(m, runes("p"))
	next, _ = m.Update(tickMsg(time.Now()))
	m = next.(Model)
	if m.world.CurrentTick() != 1 {
		t.Errorf("resumed model should tick, at %d", m.world.CurrentTick())
	}
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t, 2)
	for _, k := range []tea.KeyMsg{runes("q"), {Type: tea.KeyEsc}} {
		if _, cmd := press(m, k); !isQuit(cmd) {
			t.Errorf("%s should quit", k)
		}
	}
}

func TestExtinctionQuitsCleanly(t *testing.T) {
	m := newTestModel(t, 3)
	m.world.Each(func(a *agents.Agent) { a.Life = 0.05 })

	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(Model)
	if !isQuit(cmd) {
		t.Fatal("extinction should end the program")
	}
	if !m.Extinct() || m.Err() != nil {
		t.Errorf("extinction is a normal exit, got extinct=%v err=%v", m.Extinct(), m.Err())
	}
	if err := exitError(m); !errors.Is(err, engine.ErrPopulationExtinct) {
		t.Errorf("dashboard should report extinction to its caller, got %v", err)
	}
}

func TestQuitExitsWithoutError(t *testing.T) {
	m := newTestModel(t, 2)
	m, _ = press(m, runes("q"))
	if err := exitError(m); err != nil {
		t.Errorf("user quit should not be an error, got %v", err)
	}
}

func TestViewPanels(t *testing.T) {
	m := newTestModel(t, 5)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})

	view := m.View()
	for _, want := range []string{"Population", "Events Log", "Needs Status", "Selected Estajo", "Total: 5", "Name: Estajo_0"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
