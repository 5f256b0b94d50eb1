// Agent history: the append-only record of everything notable that
// happened to one estajo. Separate from the world-level event stream.
package agents

import "github.com/talgya/estajoj/internal/events"

// AddEvent appends to the agent's history. Entries are never removed.
func (a *Agent) AddEvent(e events.Event) {
	a.History = append(a.History, e)
}

// RecentHistory returns up to count entries, newest first.
func (a *Agent) RecentHistory(count int) []events.Event {
	if count > len(a.History) {
		count = len(a.History)
	}
	recent := make([]events.Event, 0, count)
	for i := len(a.History) - 1; i >= 0 && len(recent) < count; i-- {
		recent = append(recent, a.History[i])
	}
	return recent
}

// CountHistory returns how many history entries match t.
func (a *Agent) CountHistory(t events.EventType) int {
	n := 0
	for _, e := range a.History {
		if e.Type.Is(t) {
			n++
		}
	}
	return n
}
