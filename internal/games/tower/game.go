// Package tower implements the endless climber. The player bounces up a
// column of procedurally generated platforms while the camera follows,
// scoring height and landing combos.
package tower

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tower/internal/config"
	"github.com/vovakirdan/tui-tower/internal/core"
	"github.com/vovakirdan/tui-tower/internal/games/tower/level"
	"github.com/vovakirdan/tui-tower/internal/games/tower/physics"
	"github.com/vovakirdan/tui-tower/internal/games/tower/player"
	"github.com/vovakirdan/tui-tower/internal/games/tower/scoring"
	"github.com/vovakirdan/tui-tower/internal/registry"
)

// Game modes, also the registry IDs.
const (
	ModeClassic = "tower"
	ModeChaos   = "tower_chaos"
)

// cameraLead places the player this fraction of the viewport above its
// bottom edge once the camera catches up.
const cameraLead = 0.6

// cameraFrameMs is the frame length camera_lerp is tuned for.
const cameraFrameMs = 1000.0 / 60

// Settings used by the registry factories, set from the CLI.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           *log.Logger
	highScores       KeyValueStore
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = "" // Use config default
	}
}

// SetLogger sets the logger handed to new games.
func SetLogger(l *log.Logger) {
	logger = l
}

// SetHighScoreStore sets where new games keep the high score.
func SetHighScoreStore(s KeyValueStore) {
	highScores = s
}

// Options configures a Game.
type Options struct {
	Mode       string // ModeClassic or ModeChaos
	ConfigPath string
	Preset     config.DifficultyPreset
	Logger     *log.Logger
	HighScores KeyValueStore
	// Observers are notified after the built-in HUD, high score and log observers.
	Observers []GameplayObserver
}

// Game wires the platform manager, physics, jump timing and scoring into
// the fixed frame order of a run.
type Game struct {
	opts    Options
	logger  *log.Logger
	runtime core.RuntimeConfig
	cfg     config.TowerConfig

	difficulty *config.DifficultyManager
	world      *physics.World
	platforms  *level.Manager
	jump       *player.JumpController
	tracker    *scoring.Tracker

	hud       *HUDFeed
	highScore *HighScoreObserver
	observers Observers
	events    frameEvents

	textures       *TextureKeyCache
	glyphs         map[string][]core.Cell
	glyphW, glyphH int

	baseTop    float64 // Surface of the base platform; height is measured from here
	cameraY    float64 // World y of the view's top edge
	height     int
	lastHeight int
	lastScore  int
	health     int
	elapsedMs  float64
	tickCount  int

	holdDir int
	holdMs  float64

	paused   bool
	debug    bool
	gameOver bool
	isEnding bool
	summary  core.RunSummary
}

// New creates a tower game.
func New(opts Options) *Game {
	if opts.Mode != ModeChaos {
		opts.Mode = ModeClassic
	}
	l := opts.Logger
	if l == nil {
		l = log.New(io.Discard)
	}

	g := &Game{
		opts:      opts,
		logger:    l,
		hud:       NewHUDFeed(),
		highScore: NewHighScoreObserver(opts.HighScores, l),
		textures:  NewTextureKeyCache(),
	}
	g.observers = append(Observers{g.hud, g.highScore, NewLogObserver(l)}, opts.Observers...)
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.opts.Mode
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.opts.Mode == ModeChaos {
		return "Tower Climb: Chaos"
	}
	return "Tower Climb"
}

// Description is the menu blurb for this mode.
func (g *Game) Description() string {
	if g.opts.Mode == ModeChaos {
		return "Springs, magnets, toxic ledges and teleporters join the climb"
	}
	return "Ice, boosts, conveyors and crumbling steps"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	// Load game config
	cfg, err := config.LoadTower(g.opts.ConfigPath)
	if err != nil {
		g.logger.Warn("using default config", "err", err)
		cfg = config.DefaultTowerConfig()
	}

	// Apply difficulty preset if set
	if g.opts.Preset != "" {
		config.ApplyTowerPreset(&cfg, g.opts.Preset)
	}
	if g.opts.Mode == ModeChaos {
		cfg.Generation.Specials = true
	}
	g.cfg = cfg

	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.world = physics.NewWorld(&g.cfg)
	behaviors := level.DefaultBehaviors(cfg.Behaviors, cfg.Physics.JumpVelocity)
	g.platforms = level.NewManager(runtime.Seed, &g.cfg, g.difficulty, behaviors, g.world)
	g.jump = player.NewJumpController(cfg.Physics)
	g.tracker = scoring.NewTracker(cfg.Scoring)

	// The world must be reset before platforms are mirrored into it
	spawnY := cfg.World.SpawnY
	g.baseTop = spawnY - level.Spec(level.Normal).Height/2
	g.world.Reset(cfg.World.Width/2, g.baseTop)
	g.platforms.Initialize(spawnY)
	// Settle onto the base platform so the first frame is not a landing
	g.world.Step(0, physics.Intent{})

	g.cameraY = spawnY - cfg.World.Height*0.9
	g.height, g.lastHeight, g.lastScore = 0, 0, 0
	g.health = cfg.Rules.Health
	g.elapsedMs = 0
	g.tickCount = 0
	g.holdDir, g.holdMs = 0, 0
	g.paused = false
	g.gameOver = false
	g.isEnding = false
	g.summary = core.RunSummary{Seed: runtime.Seed}
	g.events.reset()
	g.hud.Reset()
	g.glyphs = nil

	g.logger.Debug("run started", "mode", g.opts.Mode, "seed", runtime.Seed, "specials", cfg.Generation.Specials)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if in.Has(core.ActionDebug) {
		g.debug = !g.debug
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	dt := g.runtime.FrameDelta()
	g.tickCount++
	g.elapsedMs += dt
	g.events.reset()

	// 1. Jump input
	dir := g.steer(in, dt)
	if res := g.jump.Update(dt, g.world.Grounded(), in.Has(core.ActionJump)); res.Fired {
		g.world.SetVelocityY(res.VelocityY)
		g.events.jumped = true
		g.events.airJump = res.AirJump
	}

	// 2. Physics, after platform timers moved or hid their platforms
	g.platforms.Tick(dt)
	pull := g.platforms.MagneticPull(g.world.CenterX(), g.world.Bottom())
	contact := g.world.Step(dt, physics.Intent{Direction: dir, PullX: pull})

	// 3. Landing behaviors
	if contact.Landed && contact.Platform != nil {
		g.land(contact)
	}

	// 4. Platform window
	g.followCamera(dt)
	g.platforms.Update(g.cameraY)

	// 5. Score and combo timers
	climbed := g.baseTop - g.world.Bottom()
	if climbed > float64(g.height) {
		g.height = int(climbed)
	}
	_, milestones := g.tracker.OnHeightIncrease(climbed)
	g.events.milestones = append(g.events.milestones, milestones...)
	if g.tracker.Decay(dt) {
		g.events.comboEnded = true
	}

	if g.world.Bottom() > g.cameraY+g.cfg.World.Height+g.cfg.Rules.DeathMargin || g.health <= 0 {
		g.end()
	}

	// 6. Notifications
	g.hud.Advance(dt)
	g.emit()

	return core.StepResult{State: g.State()}
}

// steer turns key presses into a held direction. Terminals report key
// presses without releases, so each press steers for InputHoldMs.
func (g *Game) steer(in core.InputFrame, dtMs float64) int {
	if dir := in.Horizontal(); dir != 0 {
		g.holdDir = dir
		g.holdMs = g.cfg.Physics.InputHoldMs
		return dir
	}
	if g.holdMs > 0 {
		g.holdMs -= dtMs
		if g.holdMs > 0 {
			return g.holdDir
		}
	}
	g.holdDir = 0
	return 0
}

func (g *Game) land(c physics.Contact) {
	p := c.Platform
	l := g.tracker.OnLanding(g.elapsedMs, c.ImpactVelocity)

	g.events.landed = &LandedEvent{
		X:        g.world.CenterX(),
		Y:        g.world.Bottom(),
		Velocity: c.ImpactVelocity,
		Platform: p.Type.String(),
	}
	g.events.combo = &ComboEvent{
		Count:      l.Count,
		Multiplier: l.Multiplier,
		Bonus:      l.Bonus,
		Progress:   g.tracker.ComboProgress(),
	}

	for _, e := range g.platforms.HandleLanding(p) {
		g.apply(e)
	}
}

// apply carries out the player-side part of a landing effect.
func (g *Game) apply(e level.Effect) {
	switch e.Kind {
	case level.EffectImpulse:
		g.world.SetVelocityY(e.VelocityY)
	case level.EffectDamage:
		g.health = max(0, g.health-e.Amount)
		g.events.damage = append(g.events.damage, e.Amount)
	case level.EffectRelocate:
		g.world.Place(e.TargetX, e.TargetY)
		g.world.SetVelocityY(0)
	case level.EffectBonus:
		g.tracker.AddBonus(e.Amount)
		g.events.bonuses = append(g.events.bonuses, e.Amount)
	}
}

// followCamera eases the camera toward the player. It only ever moves up.
func (g *Game) followCamera(dt float64) {
	target := g.world.Bottom() - g.cfg.World.Height*cameraLead
	if target < g.cameraY {
		g.cameraY += (target - g.cameraY) * cameraEase(g.cfg.World.CameraLerp, dt)
	}
}

// cameraEase converts the per-60Hz-frame lerp into the fraction closed over
// dt milliseconds, so catch-up speed does not depend on the tick rate.
func cameraEase(lerp, dt float64) float64 {
	if lerp <= 0 || dt <= 0 {
		return 0
	}
	if lerp >= 1 {
		return 1
	}
	return 1 - math.Pow(1-lerp, dt/cameraFrameMs)
}

// end finishes the run once; later calls do nothing.
func (g *Game) end() {
	if g.isEnding {
		return
	}
	g.isEnding = true
	g.gameOver = true
	g.summary = core.RunSummary{
		Score:    g.tracker.Score(),
		Height:   g.height,
		MaxCombo: g.tracker.MaxCombo(),
		Seed:     g.runtime.Seed,
	}
	g.events.ended = true
}

func (g *Game) emit() {
	e := &g.events
	obs := g.observers

	if e.jumped {
		obs.OnJump(e.airJump)
	}
	if e.landed != nil {
		obs.OnLanded(*e.landed)
	}
	if e.combo != nil {
		obs.OnCombo(*e.combo)
	}
	if e.comboEnded {
		obs.OnComboEnded()
	}
	for _, m := range e.milestones {
		obs.OnMilestone(m)
	}
	for _, b := range e.bonuses {
		obs.OnBonus(b)
	}
	for _, d := range e.damage {
		obs.OnDamage(d, g.health)
	}
	if score := g.tracker.Score(); score != g.lastScore {
		g.lastScore = score
		obs.OnScore(score)
	}
	if g.height != g.lastHeight {
		g.lastHeight = g.height
		obs.OnHeight(g.height)
	}
	if e.ended {
		obs.OnGameOver(g.summary)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.tracker != nil {
		score = g.tracker.Score()
	}
	return core.GameState{
		Score:    score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Summary returns the finished run. It is only meaningful after game over.
func (g *Game) Summary() core.RunSummary {
	return g.summary
}

// Height returns the best height climbed this run.
func (g *Game) Height() int { return g.height }

// Health returns the remaining health.
func (g *Game) Health() int { return g.health }

// HighScore returns the best score known, including this run.
func (g *Game) HighScore() int { return g.highScore.Best() }

func defaultOptions(mode string) Options {
	return Options{
		Mode:       mode,
		ConfigPath: configPath,
		Preset:     difficultyPreset,
		Logger:     logger,
		HighScores: highScores,
	}
}

// Register both modes with the registry
func init() {
	registry.Register(ModeClassic, func() registry.Game {
		return New(defaultOptions(ModeClassic))
	})
	registry.Register(ModeChaos, func() registry.Game {
		return New(defaultOptions(ModeChaos))
	})
}
