package level

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Platform is one live platform. X and Y are the center in world space.
// Only the Manager creates, moves or removes platforms.
type Platform struct {
	ID     int
	X, Y   float64
	Width  float64
	Height float64
	Type   PlatformType

	// Consumed marks one-shot behaviors (boost, spring, golden, toxic, teleport) as spent.
	Consumed  bool
	LandCount int
	// Used is set once a golden platform paid out; the renderer dims it.
	Used bool

	// Collision and visibility, driven by the disappearing cycle.
	Enabled          bool
	Alpha            float64
	DisappearStarted bool

	// CenterX is the anchor a moving platform oscillates around.
	CenterX float64
	// DeltaX is how far the platform moved during the last tick.
	DeltaX float64

	removed bool
	cycle   *disappearCycle
}

// Top returns the y of the walkable surface.
func (p *Platform) Top() float64 {
	return p.Y - p.Height/2
}

// Left returns the x of the left edge.
func (p *Platform) Left() float64 {
	return p.X - p.Width/2
}

// Right returns the x of the right edge.
func (p *Platform) Right() float64 {
	return p.X + p.Width/2
}

// Removed reports whether the manager has dropped the platform.
func (p *Platform) Removed() bool {
	return p.removed
}

type cycleStage int

const (
	stageFading cycleStage = iota
	stageHidden
	stageRestoring
)

// disappearCycle fades a platform out, keeps it gone, then fades it back in.
type disappearCycle struct {
	stage     cycleStage
	tween     *gween.Tween
	offMs     float64
	restoreMs float64
}

func newDisappearCycle(fadeMs, offMs, restoreMs float64) *disappearCycle {
	return &disappearCycle{
		stage:     stageFading,
		tween:     gween.New(1, 0, float32(fadeMs), ease.Linear),
		offMs:     offMs,
		restoreMs: restoreMs,
	}
}

// advance steps the cycle by dtMs. It reports the current alpha, whether
// collision should be on, and whether the cycle has finished.
func (c *disappearCycle) advance(dtMs float64) (alpha float64, enabled bool, finished bool) {
	value, done := c.tween.Update(float32(dtMs))
	switch c.stage {
	case stageFading:
		if done {
			c.stage = stageHidden
			c.tween = gween.New(0, 0, float32(c.offMs), ease.Linear)
			return 0, false, false
		}
		return float64(value), true, false
	case stageHidden:
		if done {
			c.stage = stageRestoring
			c.tween = gween.New(0, 1, float32(c.restoreMs), ease.OutQuad)
			return 0, true, false
		}
		return 0, false, false
	default:
		if done {
			return 1, true, true
		}
		return float64(value), true, false
	}
}
