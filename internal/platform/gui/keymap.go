package gui

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// keyActions binds keyboard keys to tetris actions.
var keyActions = map[ebiten.Key]core.Action{
	ebiten.KeyArrowLeft:  core.ActionLeft,
	ebiten.KeyArrowRight: core.ActionRight,
	ebiten.KeyArrowDown:  core.ActionSoftDrop,
	ebiten.KeySpace:      core.ActionHardDrop,
	ebiten.KeyZ:          core.ActionSpinLeft,
	ebiten.KeyX:          core.ActionSpinRight,
	ebiten.KeyArrowUp:    core.ActionSpinRight,
	ebiten.KeyP:          core.ActionPause,
	ebiten.KeyC:          core.ActionContinue,
	ebiten.KeyR:          core.ActionStart,
}

// keyTracker turns key transitions into frame events. Only the most
// recently pressed bound key counts as held, so releasing any other key
// is ignored.
type keyTracker struct {
	held    ebiten.Key
	holding bool
}

// collect appends this frame's transitions to f. Releases are applied
// before presses so a key swap within one frame ends held.
func (t *keyTracker) collect(f *core.InputFrame, pressed, released []ebiten.Key) {
	for _, k := range released {
		if t.holding && k == t.held {
			f.Release()
			t.holding = false
		}
	}
	for _, k := range pressed {
		a, ok := keyActions[k]
		if !ok {
			continue
		}
		f.Press(a)
		t.held, t.holding = k, true
	}
}
