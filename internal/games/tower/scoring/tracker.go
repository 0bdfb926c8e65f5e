// Package scoring tracks the climb score: passive height points, landing
// bonuses with a decaying combo, and one-time height milestones.
package scoring

import (
	"math"

	"github.com/vovakirdan/tui-tower/internal/config"
)

// Milestone is a crossed height threshold and the bonus it paid.
type Milestone struct {
	Height int
	Bonus  int
}

// Landing describes the combo state after a landing.
type Landing struct {
	Count      int
	Multiplier float64
	Bonus      int
}

// ComboState is the live combo.
type ComboState struct {
	Count             int
	WindowRemainingMs float64
	LastLandingMs     float64
}

// Tracker accumulates score for one run.
type Tracker struct {
	cfg config.TowerScoring

	score   int
	passive int

	nextMilestone int
	milestoneStep int

	combo    ComboState
	landed   bool
	maxCombo int
}

// NewTracker creates a tracker from scoring config.
func NewTracker(cfg config.TowerScoring) *Tracker {
	t := &Tracker{cfg: cfg}
	t.Reset()
	return t
}

// Reset starts a new run.
func (t *Tracker) Reset() {
	t.score = 0
	t.passive = 0
	t.nextMilestone = t.cfg.MilestoneStart
	t.milestoneStep = t.cfg.MilestoneStep
	t.combo = ComboState{Count: 1}
	t.landed = false
	t.maxCombo = 1
}

// OnHeightIncrease updates passive height score for the given climbed
// height. Passive score never decreases; the returned delta is the passive
// gain. Every milestone crossed on the way is paid once and returned.
func (t *Tracker) OnHeightIncrease(height float64) (int, []Milestone) {
	delta := 0
	if passive := int(math.Floor(height * t.cfg.HeightFactor)); passive > t.passive {
		delta = passive - t.passive
		t.passive = passive
		t.score += delta
	}

	var crossed []Milestone
	for t.nextMilestone > 0 && height >= float64(t.nextMilestone) {
		m := Milestone{
			Height: t.nextMilestone,
			Bonus:  t.cfg.MilestoneBase + int(math.Floor(float64(t.nextMilestone)*t.cfg.MilestoneFactor)),
		}
		t.score += m.Bonus
		crossed = append(crossed, m)

		t.nextMilestone += t.milestoneStep
		t.milestoneStep = min(t.milestoneStep+t.cfg.MilestoneGrowth, t.cfg.MilestoneMaxStep)
	}
	return delta, crossed
}

// OnLanding registers a landing at nowMs with the given impact velocity.
// Landings within the combo window of the previous one extend the combo.
func (t *Tracker) OnLanding(nowMs, impactVelocity float64) Landing {
	if t.landed && nowMs-t.combo.LastLandingMs <= t.cfg.ComboWindowMs {
		t.combo.Count++
	} else {
		t.combo.Count = 1
	}
	t.landed = true
	t.combo.LastLandingMs = nowMs
	t.combo.WindowRemainingMs = t.cfg.ComboWindowMs
	t.maxCombo = max(t.maxCombo, t.combo.Count)

	multiplier := 1 + float64(min(t.combo.Count-1, t.cfg.ComboCap))*t.cfg.ComboStep
	base := clamp(math.Abs(impactVelocity)*t.cfg.LandingFactor, t.cfg.LandingMin, t.cfg.LandingMax)
	bonus := int(math.Round(base * multiplier))
	t.score += bonus

	return Landing{Count: t.combo.Count, Multiplier: multiplier, Bonus: bonus}
}

// Decay counts the combo window down. It reports true when a combo ended.
func (t *Tracker) Decay(dtMs float64) bool {
	if t.combo.Count <= 1 {
		return false
	}
	t.combo.WindowRemainingMs -= dtMs
	if t.combo.WindowRemainingMs > 0 {
		return false
	}
	t.combo.WindowRemainingMs = 0
	t.combo.Count = 1
	return true
}

// AddBonus adds flat points, such as a golden platform payout.
func (t *Tracker) AddBonus(points int) {
	if points > 0 {
		t.score += points
	}
}

// Score returns the total score.
func (t *Tracker) Score() int { return t.score }

// Combo returns the live combo.
func (t *Tracker) Combo() ComboState { return t.combo }

// ComboProgress returns the remaining fraction of the combo window.
func (t *Tracker) ComboProgress() float64 {
	if t.combo.Count <= 1 || t.cfg.ComboWindowMs <= 0 {
		return 0
	}
	return clamp(t.combo.WindowRemainingMs/t.cfg.ComboWindowMs, 0, 1)
}

// MaxCombo returns the longest combo of the run.
func (t *Tracker) MaxCombo() int { return t.maxCombo }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
