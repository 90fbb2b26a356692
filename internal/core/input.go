package core

import (
	"fmt"
	"time"
)

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionLeft             // "L"  - move left
	ActionRight            // "R"  - move right
	ActionSoftDrop         // "SD" - move down one row
	ActionHardDrop         // "HD" - drop to the deepest legal row
	ActionSpinLeft         // "SL" - rotate counter-clockwise
	ActionSpinRight        // "SR" - rotate clockwise
	ActionPause            // "Pause"
	ActionContinue         // "Continue"
	ActionStart            // "Start" - (re)start the session
	ActionQuit             // Q, Ctrl+C - exit (platform only)
	ActionBack             // B, Esc - back to menu (platform only)
)

var actionCodes = map[Action]string{
	ActionLeft:      "L",
	ActionRight:     "R",
	ActionSoftDrop:  "SD",
	ActionHardDrop:  "HD",
	ActionSpinLeft:  "SL",
	ActionSpinRight: "SR",
	ActionPause:     "Pause",
	ActionContinue:  "Continue",
	ActionStart:     "Start",
}

// String returns the key code used by hosts for the action.
func (a Action) String() string {
	if code, ok := actionCodes[a]; ok {
		return code
	}
	switch a {
	case ActionNone:
		return "None"
	case ActionQuit:
		return "Quit"
	case ActionBack:
		return "Back"
	default:
		return "Unknown"
	}
}

// ParseAction converts a host key code ("L", "R", "SD", "HD", "SL", "SR",
// "Pause", "Continue", "Start") into an Action.
func ParseAction(code string) (Action, error) {
	for a, c := range actionCodes {
		if c == code {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("core: unknown action code %q", code)
}

// KeyEvent is a single key transition delivered by the host.
// Releases carry no action: only one key is tracked as held at a time.
// Tap marks a press from a host that cannot report the matching release.
type KeyEvent struct {
	Action Action
	Down   bool
	Tap    bool
}

// InputFrame collects the key transitions that arrived since the previous
// frame, in arrival order, together with the frame timestamp.
type InputFrame struct {
	Now    time.Time
	Events []KeyEvent
}

// NewInputFrame creates an empty input frame stamped with now.
func NewInputFrame(now time.Time) InputFrame {
	return InputFrame{Now: now}
}

// Press appends a key-down transition for the action.
func (f *InputFrame) Press(a Action) {
	f.Events = append(f.Events, KeyEvent{Action: a, Down: true})
}

// Tap appends a press that will never be released.
func (f *InputFrame) Tap(a Action) {
	f.Events = append(f.Events, KeyEvent{Action: a, Down: true, Tap: true})
}

// Release appends a key-up transition.
func (f *InputFrame) Release() {
	f.Events = append(f.Events, KeyEvent{})
}

// Clear resets the frame for the next tick, keeping the backing array.
func (f *InputFrame) Clear() {
	f.Events = f.Events[:0]
}
