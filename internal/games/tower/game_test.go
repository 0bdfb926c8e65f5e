package tower

import (
	"io"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tower/internal/core"
	"github.com/vovakirdan/tui-tower/internal/games/tower/level"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func newTestGame(t *testing.T, mode string, observers ...GameplayObserver) *Game {
	t.Helper()
	g := New(Options{Mode: mode, Logger: log.New(io.Discard), Observers: observers})
	g.Reset(testRuntime(42))
	return g
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// countingObserver records how often each event fired.
type countingObserver struct {
	BaseObserver
	jumps    int
	landings int
	scores   []int
	bonuses  []int
	damage   []int
	gameOver []core.RunSummary
}

func (o *countingObserver) OnJump(bool)            { o.jumps++ }
func (o *countingObserver) OnLanded(LandedEvent)   { o.landings++ }
func (o *countingObserver) OnScore(score int)      { o.scores = append(o.scores, score) }
func (o *countingObserver) OnBonus(amount int)     { o.bonuses = append(o.bonuses, amount) }
func (o *countingObserver) OnDamage(amount, _ int) { o.damage = append(o.damage, amount) }
func (o *countingObserver) OnGameOver(s core.RunSummary) {
	o.gameOver = append(o.gameOver, s)
}

func TestGameDeterminism(t *testing.T) {
	// Jump on a rhythm while weaving left and right
	inputs := make([]core.InputFrame, 900)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		if i%25 == 0 {
			inputs[i].Set(core.ActionJump)
		}
		switch (i / 60) % 3 {
		case 0:
			inputs[i].Set(core.ActionLeft)
		case 1:
			inputs[i].Set(core.ActionRight)
		}
	}

	run := func() (*Game, core.GameState) {
		g := New(Options{Mode: ModeChaos, Logger: log.New(io.Discard)})
		g.Reset(testRuntime(7))
		var st core.GameState
		for _, in := range inputs {
			st = g.Step(in).State
			if st.GameOver {
				break
			}
		}
		return g, st
	}

	g1, s1 := run()
	g2, s2 := run()

	if s1 != s2 {
		t.Errorf("states differ: %+v vs %+v", s1, s2)
	}
	if g1.tickCount != g2.tickCount || g1.Height() != g2.Height() {
		t.Errorf("runs diverged: ticks %d/%d height %d/%d", g1.tickCount, g2.tickCount, g1.Height(), g2.Height())
	}
	if g1.world.Bottom() != g2.world.Bottom() || g1.world.CenterX() != g2.world.CenterX() {
		t.Error("player positions differ")
	}
	if len(g1.platforms.Platforms()) != len(g2.platforms.Platforms()) {
		t.Error("platform sets differ")
	}
}

func TestResetSettlesOnBasePlatform(t *testing.T) {
	obs := &countingObserver{}
	g := newTestGame(t, ModeClassic, obs)

	if !g.world.Grounded() {
		t.Fatal("player not standing after reset")
	}
	if got := g.world.Bottom(); math.Abs(got-g.baseTop) > 1e-6 {
		t.Errorf("player feet at %v, want base top %v", got, g.baseTop)
	}
	if g.Health() != g.cfg.Rules.Health {
		t.Errorf("health = %d, want %d", g.Health(), g.cfg.Rules.Health)
	}

	for i := 0; i < 30; i++ {
		g.Step(idle())
	}
	if obs.landings != 0 {
		t.Errorf("standing still reported %d landings", obs.landings)
	}
	if st := g.State(); st.Score != 0 || st.GameOver {
		t.Errorf("idle state = %+v", st)
	}
}

func TestJumpLeavesTheGround(t *testing.T) {
	obs := &countingObserver{}
	g := newTestGame(t, ModeClassic, obs)
	start := g.world.Bottom()

	g.Step(press(core.ActionJump))
	for i := 0; i < 10; i++ {
		g.Step(idle())
	}
	if g.world.Bottom() >= start {
		t.Errorf("feet at %v after jumping, want above %v", g.world.Bottom(), start)
	}
	if obs.jumps != 1 {
		t.Errorf("jump events = %d, want 1", obs.jumps)
	}
	if g.Height() <= 0 {
		t.Errorf("height = %d, want positive", g.Height())
	}
}

func TestSteeringHoldWindow(t *testing.T) {
	g := newTestGame(t, ModeClassic)
	x0 := g.world.CenterX()

	g.Step(press(core.ActionRight))
	for i := 0; i < 3; i++ {
		g.Step(idle())
	}
	x1 := g.world.CenterX()
	if x1 <= x0 {
		t.Fatalf("held steering did not move the player: %v -> %v", x0, x1)
	}

	// The hold window is 150ms, well under 20 frames
	for i := 0; i < 20; i++ {
		g.Step(idle())
	}
	x2 := g.world.CenterX()
	g.Step(idle())
	if g.world.CenterX() != x2 {
		t.Error("player kept moving after the hold window")
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newTestGame(t, ModeClassic)
	g.Step(press(core.ActionJump))

	st := g.Step(press(core.ActionPause)).State
	if !st.Paused {
		t.Fatal("pause did not toggle on")
	}
	ticks, y := g.tickCount, g.world.Bottom()
	for i := 0; i < 10; i++ {
		g.Step(idle())
	}
	if g.tickCount != ticks || g.world.Bottom() != y {
		t.Error("simulation advanced while paused")
	}

	if st := g.Step(press(core.ActionPause)).State; st.Paused {
		t.Error("pause did not toggle off")
	}
}

func TestFallingEndsRunOnce(t *testing.T) {
	obs := &countingObserver{}
	g := newTestGame(t, ModeClassic, obs)

	// Far below the death line, nothing to land on
	g.world.Place(g.cfg.World.Width/2, g.cameraY+g.cfg.World.Height*3)
	st := g.Step(idle()).State
	if !st.GameOver {
		t.Fatal("falling below the camera did not end the run")
	}

	g.end()
	for i := 0; i < 5; i++ {
		g.Step(press(core.ActionJump))
	}
	if len(obs.gameOver) != 1 {
		t.Fatalf("game over fired %d times, want 1", len(obs.gameOver))
	}
	if got := obs.gameOver[0]; got.Seed != 42 || got.Score != g.State().Score {
		t.Errorf("summary = %+v", got)
	}
	if g.Summary() != obs.gameOver[0] {
		t.Error("Summary() differs from the reported summary")
	}
}

func TestDamageEndsRunAtZeroHealth(t *testing.T) {
	obs := &countingObserver{}
	g := newTestGame(t, ModeClassic, obs)

	g.apply(level.Effect{Kind: level.EffectDamage, Amount: 30})
	g.emit()
	if g.Health() != g.cfg.Rules.Health-30 {
		t.Fatalf("health = %d", g.Health())
	}
	if len(obs.damage) != 1 || obs.damage[0] != 30 {
		t.Errorf("damage events = %v", obs.damage)
	}

	g.apply(level.Effect{Kind: level.EffectDamage, Amount: 1000})
	if g.Health() != 0 {
		t.Fatalf("health = %d, want clamped to 0", g.Health())
	}
	if st := g.Step(idle()).State; !st.GameOver {
		t.Error("zero health did not end the run")
	}
}

func TestLandingEffects(t *testing.T) {
	obs := &countingObserver{}
	g := newTestGame(t, ModeClassic, obs)

	g.apply(level.Effect{Kind: level.EffectBonus, Amount: 500})
	g.emit()
	if g.State().Score != 500 {
		t.Errorf("score after bonus = %d, want 500", g.State().Score)
	}
	if len(obs.bonuses) != 1 || len(obs.scores) != 1 || obs.scores[0] != 500 {
		t.Errorf("bonus events %v score events %v", obs.bonuses, obs.scores)
	}

	g.apply(level.Effect{Kind: level.EffectRelocate, TargetX: 100, TargetY: 300})
	if math.Abs(g.world.CenterX()-100) > 1e-6 || math.Abs(g.world.Bottom()-300) > 1e-6 {
		t.Errorf("relocated to (%v, %v), want (100, 300)", g.world.CenterX(), g.world.Bottom())
	}

	g.apply(level.Effect{Kind: level.EffectImpulse, VelocityY: -600})
	if _, vy := g.world.Velocity(); vy != -600 {
		t.Errorf("vy after impulse = %v, want -600", vy)
	}
}

func TestModes(t *testing.T) {
	tests := []struct {
		mode     string
		wantID   string
		specials bool
	}{
		{ModeClassic, "tower", false},
		{ModeChaos, "tower_chaos", true},
		{"unknown", "tower", false},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			g := newTestGame(t, tt.mode)
			if g.ID() != tt.wantID {
				t.Errorf("ID() = %q, want %q", g.ID(), tt.wantID)
			}
			if g.cfg.Generation.Specials != tt.specials {
				t.Errorf("specials = %v, want %v", g.cfg.Generation.Specials, tt.specials)
			}
		})
	}
}

func TestRenderShowsPlayerAndHUD(t *testing.T) {
	g := newTestGame(t, ModeClassic)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
	if !strings.ContainsRune(screen.String(), PlayerChar) {
		t.Error("player not drawn")
	}
	if !strings.ContainsRune(screen.String(), '=') {
		t.Error("no platforms drawn")
	}

	g.Step(press(core.ActionDebug))
	g.Render(screen)
	if !strings.Contains(screen.String(), "platforms") {
		t.Error("debug overlay not drawn")
	}

	g.end()
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over box not drawn")
	}
}

func TestRenderResizeRebuildsGlyphs(t *testing.T) {
	g := newTestGame(t, ModeClassic)

	g.Render(core.NewScreen(80, 24))
	small := len(g.glyphs[g.textures.Key(level.Normal, 384, 24)])

	g.Render(core.NewScreen(160, 48))
	large := len(g.glyphs[g.textures.Key(level.Normal, 384, 24)])
	if large <= small {
		t.Errorf("glyph run %d cells after widening, was %d", large, small)
	}
}

func TestCameraEaseIndependentOfTickRate(t *testing.T) {
	const lerp = 0.08

	if got := cameraEase(lerp, cameraFrameMs); math.Abs(got-lerp) > 1e-9 {
		t.Errorf("one 60Hz frame = %f, expected %f", got, lerp)
	}

	// Distance left after 1/10 s at 60, 30 and 20 fps must agree
	remaining := func(fps int) float64 {
		dt := 1000.0 / float64(fps)
		left := 1.0
		for i := 0; i < fps/10; i++ {
			left *= 1 - cameraEase(lerp, dt)
		}
		return left
	}
	at60 := remaining(60)
	for _, fps := range []int{30, 20} {
		if got := remaining(fps); math.Abs(got-at60) > 1e-9 {
			t.Errorf("remaining at %d fps = %f, expected %f", fps, got, at60)
		}
	}

	if cameraEase(lerp, 0) != 0 || cameraEase(1, cameraFrameMs) != 1 {
		t.Error("degenerate inputs not clamped")
	}
}
