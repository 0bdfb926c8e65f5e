package tower

import (
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tower/internal/core"
	"github.com/vovakirdan/tui-tower/internal/games/tower/scoring"
)

// HighScoreKey is the key the best score is stored under.
const HighScoreKey = "tower-highscore"

// LogObserver writes gameplay events to a structured logger. Frequent
// events go to debug level.
type LogObserver struct {
	BaseObserver
	logger *log.Logger
}

// NewLogObserver creates a log observer. A nil logger uses the default.
func NewLogObserver(logger *log.Logger) *LogObserver {
	if logger == nil {
		logger = log.Default()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnLanded(e LandedEvent) {
	o.logger.Debug("landed", "platform", e.Platform, "x", int(e.X), "y", int(e.Y), "velocity", int(e.Velocity))
}

func (o *LogObserver) OnJump(airJump bool) {
	o.logger.Debug("jump", "air", airJump)
}

func (o *LogObserver) OnCombo(e ComboEvent) {
	if e.Count > 1 {
		o.logger.Debug("combo", "count", e.Count, "multiplier", e.Multiplier, "bonus", e.Bonus)
	}
}

func (o *LogObserver) OnMilestone(m scoring.Milestone) {
	o.logger.Info("milestone", "height", m.Height, "bonus", m.Bonus)
}

func (o *LogObserver) OnBonus(amount int) {
	o.logger.Info("bonus", "amount", amount)
}

func (o *LogObserver) OnDamage(amount, health int) {
	o.logger.Warn("damage", "amount", amount, "health", health)
}

func (o *LogObserver) OnGameOver(s core.RunSummary) {
	o.logger.Info("game over", "score", s.Score, "height", s.Height, "max_combo", s.MaxCombo, "seed", s.Seed)
}

// KeyValueStore persists small named blobs.
type KeyValueStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// HighScoreObserver keeps the best score in a KeyValueStore. Store
// failures are logged and otherwise ignored; the high score then only
// lasts for the session.
type HighScoreObserver struct {
	BaseObserver
	store  KeyValueStore
	logger *log.Logger
	best   int
}

// NewHighScoreObserver loads the stored high score. A nil store keeps the
// high score in memory only.
func NewHighScoreObserver(store KeyValueStore, logger *log.Logger) *HighScoreObserver {
	if logger == nil {
		logger = log.Default()
	}
	o := &HighScoreObserver{store: store, logger: logger}
	o.best = o.load()
	return o
}

func (o *HighScoreObserver) load() int {
	if o.store == nil {
		return 0
	}
	data, err := o.store.LoadItem(HighScoreKey)
	if err != nil {
		o.logger.Debug("high score unavailable", "err", err)
		return 0
	}
	if data == nil {
		return 0
	}
	v, err := strconv.Atoi(string(data))
	if err != nil || v < 0 {
		o.logger.Debug("high score unreadable", "value", string(data))
		return 0
	}
	return v
}

// OnScore persists the score whenever it beats the stored best.
func (o *HighScoreObserver) OnScore(score int) {
	if score <= o.best {
		return
	}
	o.best = score
	if o.store == nil {
		return
	}
	if err := o.store.SaveItem(HighScoreKey, []byte(strconv.Itoa(score))); err != nil {
		o.logger.Debug("high score not saved", "err", err)
	}
}

// Best returns the best score seen, stored or live.
func (o *HighScoreObserver) Best() int { return o.best }
