package level

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-tower/internal/config"
)

// maxGenerateSteps caps one Update's generation loop.
const maxGenerateSteps = 512

// CollisionGroup mirrors the active platform set into the physics world.
type CollisionGroup interface {
	Add(p *Platform)
	Remove(p *Platform)
	SetEnabled(p *Platform, enabled bool)
	Move(p *Platform)
}

type nopGroup struct{}

func (nopGroup) Add(*Platform)              {}
func (nopGroup) Remove(*Platform)           {}
func (nopGroup) SetEnabled(*Platform, bool) {}
func (nopGroup) Move(*Platform)             {}

// Stats is a snapshot of generator health for the debug overlay.
type Stats struct {
	Active     int
	Frontier   float64 // Y of the most recently generated platform
	LargestGap float64 // Largest vertical gap between neighbors in the active set
	Generated  int
	Evicted    int
	Pattern    string
}

// Manager owns the live platform set. It extends the frontier above the
// camera, evicts platforms far below it, and dispatches landing behaviors.
type Manager struct {
	cfg        *config.TowerConfig
	difficulty *config.DifficultyManager
	behaviors  BehaviorTable
	group      CollisionGroup

	seq *Sequencer
	rng *rand.Rand

	platforms []*Platform
	nextID    int
	cursorY   float64
	lastX     float64
	startY    float64
	elapsedMs float64

	generated int
	evicted   int
}

// NewManager creates a platform manager. A nil group disables collision
// mirroring; a nil difficulty manager uses the default height curve.
func NewManager(seed int64, cfg *config.TowerConfig, diff *config.DifficultyManager, behaviors BehaviorTable, group CollisionGroup) *Manager {
	if cfg == nil {
		def := config.DefaultTowerConfig()
		cfg = &def
	}
	if group == nil {
		group = nopGroup{}
	}
	if behaviors == nil {
		behaviors = BehaviorTable{}
	}

	gen := cfg.Generation
	opts := SequencerOptions{
		Phases:  NewPhaseTable(PhasesFromConfig(gen.Phases)),
		Weights: NewWeightTable(WeightsFromNames(gen.SpecialWeights), gen.Specials),
		Limits:  WidthLimits{Min: gen.MinWidth, MaxFraction: gen.MaxWidthFraction},
		Spacing: Range{Min: gen.MinSpacing, Max: gen.MaxSpacing},
		Padding: cfg.World.Padding,
	}

	m := &Manager{
		cfg:        cfg,
		difficulty: diff,
		behaviors:  behaviors,
		group:      group,
		seq:        NewSequencer(seed, opts),
		platforms:  make([]*Platform, 0, 64),
	}
	m.rng = rand.New(rand.NewSource(seed ^ 0x5eed))
	return m
}

// Reset reseeds the generators and drops every platform.
func (m *Manager) Reset(seed int64) {
	m.clear()
	m.seq.Reset(seed)
	m.rng = rand.New(rand.NewSource(seed ^ 0x5eed))
	m.nextID = 0
	m.generated = 0
	m.evicted = 0
	m.elapsedMs = 0
}

// Initialize lays out the start of a run: the base platform at startY, a
// safe runway of easy platforms, then generated platforms until the
// frontier is PreGenerate units above the start.
func (m *Manager) Initialize(startY float64) {
	m.clear()
	m.startY = startY

	w := m.cfg.World.Width
	limits := m.seq.opts.Limits

	base := m.spawn(w/2, startY, limits.Clamp(w*0.8, w), Normal)
	m.cursorY = base.Y
	m.lastX = base.X

	runwayWidth := m.seq.opts.Phases.PhaseForProgress(0).Width.Max * w
	for i := 1; i <= m.cfg.Generation.SafePlatformCount; i++ {
		typ := Wide
		if i%2 == 0 {
			typ = Normal
		}
		width := m.seq.finalWidth(typ, runwayWidth, w)
		minX, maxX := m.seq.xBounds(width, w)

		x := w/2 + (m.rng.Float64()*2-1)*m.cfg.Generation.RunwayJitter
		if minX > maxX {
			x = w / 2
		} else {
			x = clamp(x, minX, maxX)
		}

		p := m.spawn(x, startY-float64(i)*m.cfg.Generation.RunwaySpacing, width, typ)
		m.cursorY = p.Y
		m.lastX = p.X
	}

	m.generateUpTo(startY - m.cfg.Generation.PreGenerate)
}

// Update extends the frontier ahead of the camera and evicts platforms
// that scrolled far below it. cameraY is the world y of the view's top edge.
func (m *Manager) Update(cameraY float64) {
	cameraBottom := cameraY + m.cfg.World.Height
	m.generateUpTo(cameraBottom - m.cfg.Generation.GenerationOffset)

	limit := cameraBottom + m.cfg.Generation.EvictionMargin
	for i := len(m.platforms) - 1; i >= 0; i-- {
		if p := m.platforms[i]; p.Y > limit {
			m.Remove(p)
			m.evicted++
		}
	}
}

func (m *Manager) generateUpTo(targetY float64) {
	for steps := 0; m.cursorY > targetY && steps < maxGenerateSteps; steps++ {
		height := m.startY - m.cursorY
		spec := m.seq.Next(Request{
			CursorY:       m.cursorY,
			HeightClimbed: height,
			Progress:      m.progress(height),
			ScreenWidth:   m.cfg.World.Width,
			LastX:         m.lastX,
		})
		p := m.spawn(spec.X, spec.Y, spec.Width, spec.Type)
		m.cursorY = p.Y
		m.lastX = p.X
		m.generated++
	}
}

func (m *Manager) progress(height float64) float64 {
	if m.difficulty == nil {
		return ProgressForHeight(height)
	}
	return m.difficulty.HeightProgress(height)
}

func (m *Manager) spawn(x, y, width float64, t PlatformType) *Platform {
	m.nextID++
	p := &Platform{
		ID:      m.nextID,
		X:       x,
		Y:       y,
		Width:   width,
		Height:  Spec(t).Height,
		Type:    t,
		Enabled: true,
		Alpha:   1,
		CenterX: x,
	}
	m.platforms = append(m.platforms, p)
	m.group.Add(p)
	return p
}

// Remove drops p from the active set and the collision group.
// It is the only way a platform leaves the game.
func (m *Manager) Remove(p *Platform) {
	if p == nil || p.removed {
		return
	}
	kept := m.platforms[:0]
	for _, q := range m.platforms {
		if q != p {
			kept = append(kept, q)
		}
	}
	for i := len(kept); i < len(m.platforms); i++ {
		m.platforms[i] = nil
	}
	m.platforms = kept
	p.removed = true
	p.cycle = nil
	m.group.Remove(p)
}

func (m *Manager) clear() {
	for _, p := range m.platforms {
		p.removed = true
		m.group.Remove(p)
	}
	for i := range m.platforms {
		m.platforms[i] = nil
	}
	m.platforms = m.platforms[:0]
}

// HandleLanding runs the landing behavior of p. Platform-side effects
// (destroy, restore cycle) are applied here; relocate targets are resolved
// against the active set. The effects are returned for the caller to apply
// to the player. Types without a behavior yield nothing.
func (m *Manager) HandleLanding(p *Platform) []Effect {
	if p == nil || p.removed {
		return nil
	}
	behavior, ok := m.behaviors[p.Type]
	if !ok {
		return nil
	}

	effects := behavior(p)
	out := effects[:0]
	for _, e := range effects {
		switch e.Kind {
		case EffectDestroy:
			m.Remove(p)
		case EffectScheduleRestore:
			p.cycle = newDisappearCycle(e.FadeMs, e.OffMs, e.RestoreMs)
		case EffectRelocate:
			target := m.NearestAbove(p)
			if target == nil {
				continue
			}
			e.TargetID = target.ID
			e.TargetX = target.X
			e.TargetY = target.Top() - m.cfg.Behaviors.TeleportLift
		}
		out = append(out, e)
	}
	return out
}

// NearestAbove returns the enabled platform closest above p, or nil.
func (m *Manager) NearestAbove(p *Platform) *Platform {
	var best *Platform
	for _, q := range m.platforms {
		if q == p || !q.Enabled || q.Y >= p.Y {
			continue
		}
		if best == nil || q.Y > best.Y {
			best = q
		}
	}
	return best
}

// Tick advances per-platform timers: moving oscillation and the
// disappearing fade cycle.
func (m *Manager) Tick(dtMs float64) {
	m.elapsedMs += dtMs
	b := m.cfg.Behaviors
	w := m.cfg.World.Width

	for _, p := range m.platforms {
		p.DeltaX = 0

		if p.Type == Moving {
			minX, maxX := m.seq.xBounds(p.Width, w)
			x := p.CenterX + math.Sin(m.elapsedMs/1000*b.MovingSpeed)*b.MovingAmplitude
			if minX <= maxX {
				x = clamp(x, minX, maxX)
			}
			if x != p.X {
				p.DeltaX = x - p.X
				p.X = x
				m.group.Move(p)
			}
		}

		if p.cycle != nil {
			alpha, enabled, finished := p.cycle.advance(dtMs)
			p.Alpha = alpha
			if enabled != p.Enabled {
				p.Enabled = enabled
				m.group.SetEnabled(p, enabled)
			}
			if finished {
				p.cycle = nil
				p.DisappearStarted = false
			}
		}
	}
}

// MagneticPull returns the horizontal velocity nudge magnetic platforms
// apply to a body at (x, y).
func (m *Manager) MagneticPull(x, y float64) float64 {
	b := m.cfg.Behaviors
	pull := 0.0
	for _, p := range m.platforms {
		if p.Type != Magnetic || !p.Enabled {
			continue
		}
		if math.Abs(p.Top()-y) >= b.MagnetRange {
			continue
		}
		dx := p.X - x
		v := math.Min(math.Abs(dx)*b.MagnetStrength, b.MagnetMaxPull)
		if dx < 0 {
			v = -v
		}
		pull += v
	}
	return clamp(pull, -b.MagnetMaxPull, b.MagnetMaxPull)
}

// Platforms returns the active platforms in generation order.
// The slice must not be modified.
func (m *Manager) Platforms() []*Platform {
	return m.platforms
}

// Frontier returns the y of the most recently generated platform.
func (m *Manager) Frontier() float64 {
	return m.cursorY
}

// Stats returns generator metrics for the debug overlay.
func (m *Manager) Stats() Stats {
	s := Stats{
		Active:    len(m.platforms),
		Frontier:  m.cursorY,
		Generated: m.generated,
		Evicted:   m.evicted,
		Pattern:   m.seq.ActivePattern(),
	}
	for i := 1; i < len(m.platforms); i++ {
		gap := math.Abs(m.platforms[i-1].Y - m.platforms[i].Y)
		if gap > s.LargestGap {
			s.LargestGap = gap
		}
	}
	return s
}
