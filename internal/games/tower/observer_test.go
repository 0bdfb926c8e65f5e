package tower

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tower/internal/core"
	"github.com/vovakirdan/tui-tower/internal/games/tower/level"
	"github.com/vovakirdan/tui-tower/internal/games/tower/scoring"
)

// memStore is an in-memory KeyValueStore.
type memStore struct {
	items   map[string][]byte
	saves   int
	failErr error
}

func newMemStore() *memStore {
	return &memStore{items: make(map[string][]byte)}
}

func (s *memStore) LoadItem(key string) ([]byte, error) {
	if s.failErr != nil {
		return nil, s.failErr
	}
	return s.items[key], nil
}

func (s *memStore) SaveItem(key string, data []byte) error {
	if s.failErr != nil {
		return s.failErr
	}
	s.saves++
	s.items[key] = append([]byte(nil), data...)
	return nil
}

type orderObserver struct {
	BaseObserver
	name string
	log  *[]string
}

func (o orderObserver) OnScore(score int) {
	*o.log = append(*o.log, o.name)
}

func TestObserversFanOutInOrder(t *testing.T) {
	var got []string
	obs := Observers{
		orderObserver{name: "a", log: &got},
		orderObserver{name: "b", log: &got},
		BaseObserver{},
	}

	obs.OnScore(10)
	obs.OnGameOver(core.RunSummary{})
	if strings.Join(got, ",") != "a,b" {
		t.Errorf("call order = %v, want [a b]", got)
	}
}

func TestHighScoreObserver(t *testing.T) {
	store := newMemStore()
	store.items[HighScoreKey] = []byte("250")

	o := NewHighScoreObserver(store, log.New(io.Discard))
	if o.Best() != 250 {
		t.Fatalf("loaded best = %d, want 250", o.Best())
	}

	o.OnScore(200)
	if store.saves != 0 {
		t.Error("saved a score below the best")
	}

	o.OnScore(300)
	o.OnScore(300)
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}
	if string(store.items[HighScoreKey]) != "300" {
		t.Errorf("stored %q, want 300", store.items[HighScoreKey])
	}
}

func TestHighScoreObserverIgnoresStoreErrors(t *testing.T) {
	tests := []struct {
		name  string
		store KeyValueStore
	}{
		{"nil store", nil},
		{"failing store", &memStore{items: map[string][]byte{}, failErr: errors.New("disk full")}},
		{"garbage value", &memStore{items: map[string][]byte{HighScoreKey: []byte("lots")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewHighScoreObserver(tt.store, log.New(io.Discard))
			if o.Best() != 0 {
				t.Errorf("best = %d, want 0", o.Best())
			}
			o.OnScore(120)
			if o.Best() != 120 {
				t.Errorf("session best = %d, want 120", o.Best())
			}
		})
	}
}

func TestHighScoreFromGame(t *testing.T) {
	store := newMemStore()
	g := New(Options{Mode: ModeClassic, Logger: log.New(io.Discard), HighScores: store})
	g.Reset(testRuntime(1))

	g.apply(level.Effect{Kind: level.EffectBonus, Amount: 700})
	g.emit()
	if string(store.items[HighScoreKey]) != "700" {
		t.Errorf("stored %q, want 700", store.items[HighScoreKey])
	}
	if g.HighScore() != 700 {
		t.Errorf("HighScore() = %d", g.HighScore())
	}
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&buf)
	l.SetLevel(log.DebugLevel)
	o := NewLogObserver(l)

	o.OnMilestone(scoring.Milestone{Height: 100, Bonus: 60})
	o.OnCombo(ComboEvent{Count: 1})
	o.OnCombo(ComboEvent{Count: 3, Multiplier: 1.3, Bonus: 40})
	o.OnGameOver(core.RunSummary{Score: 900, Height: 1200, MaxCombo: 3, Seed: 5})

	out := buf.String()
	for _, want := range []string{"milestone", "combo", "count=3", "game over", "score=900"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "count=") != 1 {
		t.Errorf("single landings should not log a combo:\n%s", out)
	}
}

func TestHUDFeedPopups(t *testing.T) {
	h := NewHUDFeed()
	h.OnLanded(LandedEvent{X: 200, Y: 500})
	h.OnCombo(ComboEvent{Count: 1})
	if len(h.Popups()) != 0 {
		t.Fatal("a single landing produced a popup")
	}

	h.OnCombo(ComboEvent{Count: 2, Bonus: 30})
	h.OnBonus(500)
	popups := h.Popups()
	if len(popups) != 2 {
		t.Fatalf("popups = %v, want 2", popups)
	}
	if popups[0].Text != "x2 +30" || popups[0].X != 200 || popups[0].Y != 500 {
		t.Errorf("combo popup = %+v", popups[0])
	}
	if _, active := h.Combo(); !active {
		t.Error("combo not active")
	}

	h.Advance(300)
	if p := h.Popups()[0]; p.Y >= 500 {
		t.Errorf("popup did not rise: y = %v", p.Y)
	}

	h.Advance(popupMs)
	if len(h.Popups()) != 0 {
		t.Errorf("expired popups remain: %v", h.Popups())
	}

	h.OnComboEnded()
	if _, active := h.Combo(); active {
		t.Error("combo still active after it ended")
	}
}

func TestHUDFeedCapsPopups(t *testing.T) {
	h := NewHUDFeed()
	for i := 0; i < maxPopups+3; i++ {
		h.OnBonus(i)
	}
	popups := h.Popups()
	if len(popups) != maxPopups {
		t.Fatalf("popups = %d, want %d", len(popups), maxPopups)
	}
	if popups[0].Text != "+3" {
		t.Errorf("oldest popup = %q, want +3", popups[0].Text)
	}
}
