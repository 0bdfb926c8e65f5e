package tower

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/tui-tower/internal/core"
	"github.com/vovakirdan/tui-tower/internal/games/tower/scoring"
)

const (
	popupMs   = 900
	popupRise = 60 // World units a popup floats up over its life
	maxPopups = 6
)

// Popup is a floating text shown near the player.
type Popup struct {
	Text  string
	Color core.Color
	X, Y  float64 // World position, already risen
}

type popup struct {
	text  string
	color core.Color
	x, y  float64
	rise  float64
	tween *gween.Tween
}

// HUDFeed is the observer behind the status bar and floating popups.
type HUDFeed struct {
	BaseObserver

	score   int
	height  int
	combo   ComboEvent
	inCombo bool

	anchorX, anchorY float64
	popups           []popup
}

// NewHUDFeed creates an empty feed.
func NewHUDFeed() *HUDFeed {
	return &HUDFeed{}
}

// Reset clears the feed for a new run.
func (h *HUDFeed) Reset() {
	*h = HUDFeed{popups: h.popups[:0]}
}

func (h *HUDFeed) OnScore(score int)   { h.score = score }
func (h *HUDFeed) OnHeight(height int) { h.height = height }

func (h *HUDFeed) OnLanded(e LandedEvent) {
	h.anchorX, h.anchorY = e.X, e.Y
}

func (h *HUDFeed) OnCombo(e ComboEvent) {
	h.combo = e
	h.inCombo = e.Count > 1
	if h.inCombo {
		h.push(fmt.Sprintf("x%d +%d", e.Count, e.Bonus), core.ColorBrightCyan)
	}
}

func (h *HUDFeed) OnComboEnded() {
	h.inCombo = false
}

func (h *HUDFeed) OnMilestone(m scoring.Milestone) {
	h.push(fmt.Sprintf("%d! +%d", m.Height, m.Bonus), core.ColorBrightYellow)
}

func (h *HUDFeed) OnBonus(amount int) {
	h.push(fmt.Sprintf("+%d", amount), core.ColorGold)
}

func (h *HUDFeed) OnDamage(amount, _ int) {
	h.push(fmt.Sprintf("-%d HP", amount), core.ColorToxic)
}

func (h *HUDFeed) push(text string, color core.Color) {
	if len(h.popups) == maxPopups {
		h.popups = append(h.popups[:0], h.popups[1:]...)
	}
	h.popups = append(h.popups, popup{
		text:  text,
		color: color,
		x:     h.anchorX,
		y:     h.anchorY,
		tween: gween.New(0, popupRise, popupMs, ease.OutCubic),
	})
}

// Advance moves popups along their rise and drops finished ones.
func (h *HUDFeed) Advance(dtMs float64) {
	kept := h.popups[:0]
	for _, p := range h.popups {
		rise, done := p.tween.Update(float32(dtMs))
		if done {
			continue
		}
		p.rise = float64(rise)
		kept = append(kept, p)
	}
	h.popups = kept
}

// Popups returns the live popups, oldest first.
func (h *HUDFeed) Popups() []Popup {
	out := make([]Popup, len(h.popups))
	for i, p := range h.popups {
		out[i] = Popup{Text: p.text, Color: p.color, X: p.x, Y: p.y - p.rise}
	}
	return out
}

// Combo returns the last combo and whether it is still running.
func (h *HUDFeed) Combo() (ComboEvent, bool) {
	return h.combo, h.inCombo
}

// Score returns the last score reported.
func (h *HUDFeed) Score() int { return h.score }

// Height returns the last height reported.
func (h *HUDFeed) Height() int { return h.height }
