package scoring

import (
	"testing"

	"github.com/vovakirdan/tui-tower/internal/config"
)

func newTracker() *Tracker {
	return NewTracker(config.DefaultTowerConfig().Scoring)
}

func TestPassiveHeightScore(t *testing.T) {
	tr := newTracker()

	delta, _ := tr.OnHeightIncrease(50)
	if delta != 20 {
		t.Errorf("delta at 50 = %d, want 20", delta)
	}

	delta, _ = tr.OnHeightIncrease(30)
	if delta != 0 {
		t.Errorf("falling back produced delta %d, want 0", delta)
	}
	if tr.Score() != 20 {
		t.Errorf("score = %d, want 20", tr.Score())
	}

	delta, _ = tr.OnHeightIncrease(52.6)
	if delta != 1 {
		t.Errorf("delta at 52.6 = %d, want 1 (floor of 21.04 minus 20)", delta)
	}
}

func TestMilestones(t *testing.T) {
	tr := newTracker()

	_, crossed := tr.OnHeightIncrease(99)
	if len(crossed) != 0 {
		t.Fatalf("crossed %v below the first threshold", crossed)
	}

	_, crossed = tr.OnHeightIncrease(100)
	if len(crossed) != 1 || crossed[0] != (Milestone{Height: 100, Bonus: 60}) {
		t.Fatalf("at 100 crossed %v, want [{100 60}]", crossed)
	}

	if _, again := tr.OnHeightIncrease(100); len(again) != 0 {
		t.Errorf("threshold 100 paid twice: %v", again)
	}

	// Steps grow 100, 150, 200, 250, 300, 350, 400, 400
	want := []int{200, 350, 550, 800, 1100, 1450, 1850, 2250}
	_, crossed = tr.OnHeightIncrease(2300)
	if len(crossed) != len(want) {
		t.Fatalf("crossed %d thresholds, want %d: %v", len(crossed), len(want), crossed)
	}
	for i, m := range crossed {
		if m.Height != want[i] {
			t.Errorf("milestone %d at %d, want %d", i, m.Height, want[i])
		}
		if wantBonus := 50 + want[i]/10; m.Bonus != wantBonus {
			t.Errorf("milestone %d bonus %d, want %d", i, m.Bonus, wantBonus)
		}
	}
}

func TestComboWindow(t *testing.T) {
	tr := newTracker()

	if l := tr.OnLanding(0, 200); l.Count != 1 {
		t.Fatalf("first landing count = %d, want 1", l.Count)
	}
	if l := tr.OnLanding(1000, 200); l.Count != 2 {
		t.Fatalf("landing at 1000ms count = %d, want 2", l.Count)
	}
	if l := tr.OnLanding(3000, 200); l.Count != 1 {
		t.Fatalf("landing at 3000ms count = %d, want 1", l.Count)
	}
	if tr.MaxCombo() != 2 {
		t.Errorf("max combo = %d, want 2", tr.MaxCombo())
	}
}

func TestLandingBonus(t *testing.T) {
	tests := []struct {
		name     string
		landings int
		velocity float64
		want     int
	}{
		{"floor", 1, 10, 6},
		{"scaled", 1, 200, 30},
		{"ceiling", 1, 2000, 90},
		{"negative impact", 1, -200, 30},
		{"combo of two", 2, 300, 52},    // 45 * 1.15 = 51.75
		{"combo capped", 12, 2000, 198}, // 90 * 2.2
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTracker()
			var l Landing
			for i := 0; i < tt.landings; i++ {
				l = tr.OnLanding(float64(i*100), tt.velocity)
			}
			if l.Bonus != tt.want {
				t.Errorf("bonus = %d, want %d", l.Bonus, tt.want)
			}
		})
	}
}

func TestDecayEndsCombo(t *testing.T) {
	tr := newTracker()

	if tr.Decay(5000) {
		t.Error("decay with no combo reported an end")
	}

	tr.OnLanding(0, 200)
	tr.OnLanding(500, 200)

	if tr.Decay(1000) {
		t.Fatal("combo ended before the window ran out")
	}
	if p := tr.ComboProgress(); p <= 0 || p >= 1 {
		t.Errorf("progress mid-window = %v", p)
	}
	if !tr.Decay(400) {
		t.Fatal("combo did not end when the window ran out")
	}
	if c := tr.Combo(); c.Count != 1 || c.WindowRemainingMs != 0 {
		t.Errorf("combo after decay = %+v", c)
	}
	if tr.Decay(16) {
		t.Error("combo ended twice")
	}
}

func TestAddBonusAndReset(t *testing.T) {
	tr := newTracker()
	tr.AddBonus(500)
	tr.AddBonus(-10)
	if tr.Score() != 500 {
		t.Errorf("score = %d, want 500", tr.Score())
	}

	tr.OnHeightIncrease(400)
	tr.Reset()
	if tr.Score() != 0 || tr.MaxCombo() != 1 {
		t.Errorf("after reset score=%d max combo=%d", tr.Score(), tr.MaxCombo())
	}
	if _, crossed := tr.OnHeightIncrease(100); len(crossed) != 1 {
		t.Errorf("milestones not rearmed after reset: %v", crossed)
	}
}
