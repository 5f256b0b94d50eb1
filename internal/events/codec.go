package events

import (
	"encoding/json"
	"fmt"
)

var categoryNames = [...]string{
	CategoryAction:      "Action",
	CategoryStateChange: "StateChange",
	CategoryNeed:        "Need",
}

var actionNames = [...]string{
	ActionHelp: "Help",
	ActionHurt: "Hurt",
	ActionPlot: "Plot",
}

var stateChangeNames = [...]string{
	StateEnergyUpdate:       "EnergyUpdate",
	StateSatisfactionUpdate: "SatisfactionUpdate",
	StateInfluenceUpdate:    "InfluenceUpdate",
	StateReproduction:       "Reproduction",
	StateDeath:              "Death",
}

var needNames = [...]string{
	NeedFood:         "Food",
	NeedReproduction: "Reproduction",
	NeedAmbition:     "Ambition",
}

var actionLabels = [...]string{"HELP", "HURT", "PLOT"}

var stateChangeLabels = [...]string{"ENERGY", "SATISFACTION", "INFLUENCE", "REPRODUCTION", "DEAD"}

var needLabels = [...]string{"FOOD", "REPRODUCTION", "AMBITION"}

// MarshalJSON writes the externally tagged form, e.g. {"Need":"Food"}.
func (t EventType) MarshalJSON() ([]byte, error) {
	if int(t.Category) >= len(categoryNames) {
		return nil, fmt.Errorf("event type: unknown category %d", t.Category)
	}
	return json.Marshal(map[string]string{categoryNames[t.Category]: t.variant()})
}

// UnmarshalJSON reads the externally tagged form.
func (t *EventType) UnmarshalJSON(data []byte) error {
	var tagged map[string]string
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("event type: %w", err)
	}
	if len(tagged) != 1 {
		return fmt.Errorf("event type: want exactly one tag, got %d", len(tagged))
	}
	for tag, variant := range tagged {
		parsed, err := ParseEventType(tag, variant)
		if err != nil {
			return err
		}
		*t = parsed
	}
	return nil
}

// CategoryName returns the outer tag name ("Action", "StateChange", "Need").
func (t EventType) CategoryName() string {
	return categoryNames[t.Category]
}

// VariantName returns the inner variant name, e.g. "Death".
func (t EventType) VariantName() string {
	return t.variant()
}

// ParseEventType is the inverse of CategoryName/VariantName.
func ParseEventType(category, variant string) (EventType, error) {
	switch category {
	case "Action":
		if i := indexOf(actionNames[:], variant); i >= 0 {
			return ActionType(Action(i)), nil
		}
	case "StateChange":
		if i := indexOf(stateChangeNames[:], variant); i >= 0 {
			return StateChangeType(StateChange(i)), nil
		}
	case "Need":
		if i := indexOf(needNames[:], variant); i >= 0 {
			return NeedType(Need(i)), nil
		}
	default:
		return EventType{}, fmt.Errorf("event type: unknown category %q", category)
	}
	return EventType{}, fmt.Errorf("event type: unknown %s variant %q", category, variant)
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
