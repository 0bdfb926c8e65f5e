// Package registry maps mode IDs to game constructors. Modes add themselves
// from init(), so the CLI, the menu and the SSH server only need the ID.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-tower/internal/core"
)

// Game is what the terminal platform drives. Implementations hold pure
// simulation state; input mapping, timing and drawing to the terminal stay
// in the platform.
type Game interface {
	// ID names the mode ("tower", "tower_chaos"). Scores are stored under it.
	ID() string

	// Title is the display name shown in menus and the HUD.
	Title() string

	// Reset starts a fresh climb sized and seeded by cfg.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick with the actions held this frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State reports score, pause and game over.
	State() core.GameState
}

// Describer is implemented by games that carry a one-line blurb for menus.
type Describer interface {
	Description() string
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory builds a new game instance.
type Factory func() Game

type entry struct {
	factory Factory
	info    GameInfo
}

var (
	mu    sync.RWMutex
	modes = make(map[string]entry)
)

// Register adds a mode. It panics if id is taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := modes[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	// A throwaway instance supplies the display metadata
	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}
	modes[id] = entry{factory: f, info: info}
}

// List returns every registered mode, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(modes))
	for _, e := range modes {
		result = append(result, e.info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Lookup returns the metadata for id.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := modes[id]
	return e.info, ok
}

// Create builds a new instance of the mode id.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := modes[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := modes[id]
	return ok
}
