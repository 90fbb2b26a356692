// Package registry maps variant IDs to game factories. Variants register
// themselves in init() so the shells can list and create them by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Game is what a platform shell drives. Implementations hold no terminal
// or window state: the shell maps keys to actions, stamps frames with
// the wall clock and presents whatever Render draws.
type Game interface {
	// ID is the variant identifier used on the command line and as the
	// score table key (e.g. "tetris", "tetris_classic").
	ID() string

	// Title is the display name.
	Title() string

	// Reset discards the current game and prepares a new one for the
	// given screen size, frame rate and seed.
	Reset(cfg core.RuntimeConfig)

	// Step applies the frame's key transitions, then advances timers to
	// the frame timestamp.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state. dst is cleared beforehand.
	Render(dst *core.Screen)

	State() core.GameState
}

// GameInfo describes a registered variant.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh, un-reset game.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register adds a factory under id. It panics on duplicates.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
	titles[id] = f().Title()
}

// List returns every registered variant sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates the variant registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
