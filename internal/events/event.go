// Package events defines the immutable event record shared by agent
// histories, the world-level event stream and the history store.
package events

import (
	"fmt"
	"time"
)

// Category is the outer tag of an EventType.
type Category uint8

const (
	CategoryAction Category = iota
	CategoryStateChange
	CategoryNeed
)

// Action is something one estajo does to another.
type Action uint8

const (
	ActionHelp Action = iota
	ActionHurt
	ActionPlot
)

// StateChange records a change in an estajo's own state.
type StateChange uint8

const (
	StateEnergyUpdate StateChange = iota
	StateSatisfactionUpdate
	StateInfluenceUpdate
	StateReproduction
	StateDeath
)

// Need records a need becoming pressing or being met.
type Need uint8

const (
	NeedFood Need = iota
	NeedReproduction
	NeedAmbition
)

// EventType is a tagged union: Category selects which of the variant
// fields is meaningful.
type EventType struct {
	Category    Category
	Action      Action
	StateChange StateChange
	Need        Need
}

// ActionType builds an Action event type.
func ActionType(a Action) EventType {
	return EventType{Category: CategoryAction, Action: a}
}

// StateChangeType builds a StateChange event type.
func StateChangeType(s StateChange) EventType {
	return EventType{Category: CategoryStateChange, StateChange: s}
}

// NeedType builds a Need event type.
func NeedType(n Need) EventType {
	return EventType{Category: CategoryNeed, Need: n}
}

// Is reports whether t and other carry the same tag and variant.
func (t EventType) Is(other EventType) bool {
	return t.Category == other.Category && t.variant() == other.variant()
}

func (t EventType) variant() string {
	switch t.Category {
	case CategoryAction:
		return actionNames[t.Action]
	case CategoryStateChange:
		return stateChangeNames[t.StateChange]
	default:
		return needNames[t.Need]
	}
}

// Label is the short upper-case tag shown in the events log.
func (t EventType) Label() string {
	switch t.Category {
	case CategoryAction:
		return actionLabels[t.Action]
	case CategoryStateChange:
		return stateChangeLabels[t.StateChange]
	default:
		return needLabels[t.Need]
	}
}

func (t EventType) String() string {
	return categoryNames[t.Category] + "(" + t.variant() + ")"
}

// Event is an immutable record of something notable. Copies are
// independent; nothing mutates an Event after New returns it.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"event_type"`
	Details   string    `json:"details"`
}

// New stamps an event with the current local time.
func New(t EventType, details string) Event {
	return Event{
		Timestamp: time.Now(),
		Type:      t,
		Details:   details,
	}
}

// Newf is New with a formatted detail string.
func Newf(t EventType, format string, args ...any) Event {
	return New(t, fmt.Sprintf(format, args...))
}

func (e Event) String() string {
	return e.Timestamp.Format("15:04:05") + " " + e.Type.Label() + " " + e.Details
}
