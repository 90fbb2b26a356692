package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// repeatable reports whether holding the action keeps re-applying it.
func repeatable(a core.Action) bool {
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionSoftDrop,
		core.ActionSpinLeft, core.ActionSpinRight:
		return true
	default:
		return false
	}
}

// keyRepeat tracks the single held key and when it fires next.
type keyRepeat struct {
	action core.Action
	held   bool
	next   time.Time
}

func (k *keyRepeat) press(a core.Action, now time.Time, interval time.Duration) {
	k.action = a
	k.held = true
	k.next = now.Add(interval)
}

// due reports whether the held action should fire at now, and if so
// schedules the following repeat.
func (k *keyRepeat) due(now time.Time, interval time.Duration) bool {
	if !k.held || k.action == core.ActionNone || now.Before(k.next) {
		return false
	}
	k.next = k.next.Add(interval)
	return true
}

func (k *keyRepeat) release() {
	*k = keyRepeat{}
}
