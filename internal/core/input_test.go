package core

import "testing"

func TestInputFrameSetHasClear(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionJump) {
		t.Error("new frame should be empty")
	}

	f.Set(ActionJump)
	if !f.Has(ActionJump) {
		t.Error("Has(Jump) should be true after Set")
	}

	clone := f.Clone()
	f.Clear()
	if f.Has(ActionJump) {
		t.Error("Clear should remove all actions")
	}
	if !clone.Has(ActionJump) {
		t.Error("Clone should not share state with the original")
	}

	var zero InputFrame
	zero.Set(ActionPause)
	if !zero.Has(ActionPause) {
		t.Error("Set on zero frame should allocate the map")
	}
}

func TestInputFrameHorizontal(t *testing.T) {
	tests := []struct {
		name    string
		actions []Action
		want    int
	}{
		{"none", nil, 0},
		{"left", []Action{ActionLeft}, -1},
		{"right", []Action{ActionRight}, 1},
		{"both cancel", []Action{ActionLeft, ActionRight}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := NewInputFrame()
			for _, a := range tc.actions {
				f.Set(a)
			}
			if got := f.Horizontal(); got != tc.want {
				t.Errorf("Horizontal() = %d, expected %d", got, tc.want)
			}
		})
	}
}

func TestFrameDelta(t *testing.T) {
	cfg := RuntimeConfig{TickRate: 50}
	if got := cfg.FrameDelta(); got != 20 {
		t.Errorf("FrameDelta() at 50 ticks = %f, expected 20", got)
	}

	cfg.TickRate = 0
	if got := cfg.FrameDelta(); got < 16.6 || got > 16.7 {
		t.Errorf("FrameDelta() fallback = %f, expected ~16.67", got)
	}
}
