package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tower/internal/core"
	_ "github.com/vovakirdan/tui-tower/internal/games/tower"
	"github.com/vovakirdan/tui-tower/internal/storage"
)

// stubGame ends its run after a fixed number of steps.
type stubGame struct {
	steps, endAfter int
	resets          int
	score           int
	paused          bool
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.steps = 0
	g.resets++
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if !g.paused && g.steps < g.endAfter {
		g.steps++
	}
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.steps >= g.endAfter, Paused: g.paused}
}

func (g *stubGame) Summary() core.RunSummary {
	return core.RunSummary{Score: g.score, Height: 1234, MaxCombo: 3, Seed: 5}
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm
}

func TestModelSavesRunOnce(t *testing.T) {
	store := openTestStore(t)
	game := &stubGame{endAfter: 3, score: 420}
	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 20, ScreenH: 5, TickRate: 60, Seed: 5})
	m.Init()

	for i := 0; i < 10; i++ {
		m = step(t, m, TickMsg{})
	}

	runs, err := store.TopRuns("stub", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 saved run, got %d", len(runs))
	}
	if runs[0].Score != 420 || runs[0].Height != 1234 || runs[0].MaxCombo != 3 {
		t.Errorf("saved run = %+v", runs[0])
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	game := &stubGame{endAfter: 1}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 20, ScreenH: 5, TickRate: 60, Seed: 1})
	m.Init()

	m = step(t, m, TickMsg{})
	if !m.gameState.GameOver {
		t.Fatal("expected game over after first tick")
	}

	m = step(t, m, runeKey('r'))
	m = step(t, m, TickMsg{})
	if game.resets != 2 {
		t.Errorf("expected a second Reset, got %d", game.resets)
	}
	if m.gameState.GameOver {
		t.Error("restart should clear game over")
	}
}

func TestModelBackToMenu(t *testing.T) {
	game := &stubGame{endAfter: 100}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 20, ScreenH: 5, TickRate: 60})
	m.Init()

	// B is ignored mid-run
	m = step(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("B should not leave a running climb")
	}

	m = step(t, m, runeKey('p'))
	m = step(t, m, TickMsg{})
	if !m.gameState.Paused {
		t.Fatal("expected pause")
	}

	m = step(t, m, runeKey('b'))
	if !m.BackToMenu() || m.IsQuitting() {
		t.Errorf("BackToMenu = %v, IsQuitting = %v", m.BackToMenu(), m.IsQuitting())
	}
	if m.View() != "" {
		t.Error("View should be empty after leaving")
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	game := &stubGame{endAfter: 100}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 20, ScreenH: 5, TickRate: 60})
	m.Init()

	m = step(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if game.resets != 1 {
		t.Errorf("resize should not reset the run, resets = %d", game.resets)
	}
	if !strings.HasPrefix(m.View(), "stub") {
		t.Errorf("View() = %q", m.View())
	}
}

func TestSessionModelFlow(t *testing.T) {
	store := openTestStore(t)
	s := NewSessionModel(store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}, "tester")

	update := func(msg tea.Msg) tea.Cmd {
		next, cmd := s.Update(msg)
		s = next.(SessionModel)
		return cmd
	}

	// Tab opens the scoreboard without ending the session
	update(tea.KeyMsg{Type: tea.KeyTab})
	if s.scoreboard == nil || s.quitting {
		t.Fatal("expected scoreboard")
	}
	if !strings.Contains(s.View(), "HIGH SCORES") {
		t.Errorf("scoreboard view missing title")
	}

	// Esc goes back to the menu
	update(tea.KeyMsg{Type: tea.KeyEsc})
	if s.scoreboard != nil || s.quitting {
		t.Fatal("expected menu after leaving the scoreboard")
	}
	if !strings.Contains(s.View(), "T O W E R") {
		t.Errorf("menu view missing title")
	}

	update(runeKey('q'))
	if !s.quitting {
		t.Error("q in menu should quit the session")
	}
}

func TestMenuShowsSelectedDescription(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 100, ScreenH: 30})
	if len(m.items) < 2 {
		t.Fatalf("expected both modes in the menu, got %d", len(m.items))
	}

	if !strings.Contains(m.View(), m.items[0].Description) {
		t.Errorf("menu missing description of %q", m.items[0].GameID)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	view := m.View()
	if !strings.Contains(view, m.items[1].Description) {
		t.Errorf("menu missing description of %q after moving down", m.items[1].GameID)
	}
	if !strings.Contains(view, "jump") || !strings.Contains(view, "scores") {
		t.Error("menu missing key hints")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if m.Selected() == nil || m.Selected().GameID != m.items[1].GameID {
		t.Errorf("Selected() = %v, expected %q", m.Selected(), m.items[1].GameID)
	}
}
