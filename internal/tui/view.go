package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/talgya/estajoj/internal/census"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	footerStyle = lipgloss.NewStyle().Faint(true)
)

func (m Model) View() string {
	w, h := m.panelSize()

	snap := census.Take(m.world.CurrentTick(), m.world.Agents())

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		panel("Population", m.populationLines(snap), w, h),
		panel("Events Log", m.eventLines(), w, h),
	)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		panel("Needs Status", m.needsLines(snap), w, h),
		panel("Selected Estajo", m.selectedLines(), w, h),
	)
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom, m.footer())
}

// panelSize splits the window into a 2x2 grid, leaving a line for the
// footer.
func (m Model) panelSize() (int, int) {
	width, height := m.width, m.height
	if width == 0 || height == 0 {
		width, height = 100, 30
	}
	// Border adds two columns and two rows to every panel.
	w := width/2 - 2
	h := (height-1)/2 - 2
	return max(w, 20), max(h, 4)
}

func panel(title string, lines []string, w, h int) string {
	body := titleStyle.Render(title) + "\n" + strings.Join(lines, "\n")
	return panelStyle.Width(w).Height(h).Render(body)
}

func (m Model) populationLines(s census.Snapshot) []string {
	return []string{
		fmt.Sprintf("Total: %d", s.Total),
		fmt.Sprintf("Males: %d", s.Males),
		fmt.Sprintf("Females: %d", s.Females),
	}
}

func (m Model) eventLines() []string {
	recent := m.world.RecentEvents(EventsShown)
	lines := make([]string, 0, len(recent))
	for _, e := range recent {
		lines = append(lines, e.String())
	}
	return lines
}

func (m Model) needsLines(s census.Snapshot) []string {
	return []string{
		fmt.Sprintf("Hungry: %d", s.Hungry),
		fmt.Sprintf("Ambitious: %d", s.Ambitious),
	}
}

func (m Model) selectedLines() []string {
	if !m.hasSelected {
		return []string{"No estajo selected"}
	}
	a, ok := m.world.Agent(m.selected)
	if !ok {
		return []string{"No estajo selected"}
	}
	return []string{
		fmt.Sprintf("Name: %s", a.Name),
		fmt.Sprintf("Sex: %s", a.Sex),
		fmt.Sprintf("Life: %.1f%%", a.Life),
		fmt.Sprintf("Hunger: %.1f%%", a.Needs.Hunger),
		fmt.Sprintf("Ambition: %.1f%%", a.Needs.Ambition),
	}
}

func (m Model) footer() string {
	state := "running"
	if m.paused {
		state = "paused"
	}
	return footerStyle.Render(fmt.Sprintf(" tick %d · %s · q quit · p pause · ←/→ select",
		m.world.CurrentTick(), state))
}
