package tower

import (
	"github.com/vovakirdan/tui-tower/internal/core"
	"github.com/vovakirdan/tui-tower/internal/games/tower/scoring"
)

// ComboEvent describes the combo after a landing.
type ComboEvent struct {
	Count      int
	Multiplier float64
	Bonus      int
	Progress   float64 // Remaining fraction of the combo window
}

// LandedEvent is a touchdown on a platform.
type LandedEvent struct {
	X, Y     float64
	Velocity float64
	Platform string // Platform type name
}

// GameplayObserver receives cosmetic and HUD notifications. Calls are
// synchronous, once per event, after the frame's gameplay has settled.
// Observers never feed back into gameplay.
type GameplayObserver interface {
	OnHeight(height int)
	OnScore(score int)
	OnCombo(e ComboEvent)
	OnComboEnded()
	OnMilestone(m scoring.Milestone)
	OnLanded(e LandedEvent)
	OnJump(airJump bool)
	OnBonus(amount int)
	OnDamage(amount, health int)
	OnGameOver(summary core.RunSummary)
}

// BaseObserver implements every GameplayObserver method as a no-op.
// Embed it to handle only some events.
type BaseObserver struct{}

func (BaseObserver) OnHeight(int)                  {}
func (BaseObserver) OnScore(int)                   {}
func (BaseObserver) OnCombo(ComboEvent)            {}
func (BaseObserver) OnComboEnded()                 {}
func (BaseObserver) OnMilestone(scoring.Milestone) {}
func (BaseObserver) OnLanded(LandedEvent)          {}
func (BaseObserver) OnJump(bool)                   {}
func (BaseObserver) OnBonus(int)                   {}
func (BaseObserver) OnDamage(int, int)             {}
func (BaseObserver) OnGameOver(core.RunSummary)    {}

// Observers fans every event out to each registered observer in order.
type Observers []GameplayObserver

func (o Observers) OnHeight(height int) {
	for _, obs := range o {
		obs.OnHeight(height)
	}
}

func (o Observers) OnScore(score int) {
	for _, obs := range o {
		obs.OnScore(score)
	}
}

func (o Observers) OnCombo(e ComboEvent) {
	for _, obs := range o {
		obs.OnCombo(e)
	}
}

func (o Observers) OnComboEnded() {
	for _, obs := range o {
		obs.OnComboEnded()
	}
}

func (o Observers) OnMilestone(m scoring.Milestone) {
	for _, obs := range o {
		obs.OnMilestone(m)
	}
}

func (o Observers) OnLanded(e LandedEvent) {
	for _, obs := range o {
		obs.OnLanded(e)
	}
}

func (o Observers) OnJump(airJump bool) {
	for _, obs := range o {
		obs.OnJump(airJump)
	}
}

func (o Observers) OnBonus(amount int) {
	for _, obs := range o {
		obs.OnBonus(amount)
	}
}

func (o Observers) OnDamage(amount, health int) {
	for _, obs := range o {
		obs.OnDamage(amount, health)
	}
}

func (o Observers) OnGameOver(summary core.RunSummary) {
	for _, obs := range o {
		obs.OnGameOver(summary)
	}
}

// frameEvents collects one frame's notifications so they go out together
// at the end of Step.
type frameEvents struct {
	jumped     bool
	airJump    bool
	landed     *LandedEvent
	combo      *ComboEvent
	comboEnded bool
	milestones []scoring.Milestone
	bonuses    []int
	damage     []int
	ended      bool
}

func (e *frameEvents) reset() {
	milestones, bonuses, damage := e.milestones[:0], e.bonuses[:0], e.damage[:0]
	*e = frameEvents{milestones: milestones, bonuses: bonuses, damage: damage}
}
