package level

import "math"

// TypeWeights holds one draw weight per platform type. An array keeps the
// weighted draw deterministic for a given seed.
type TypeWeights [typeCount]float64

// WeightsFromNames converts a name-keyed map, ignoring unknown names.
func WeightsFromNames(m map[string]float64) TypeWeights {
	var w TypeWeights
	for name, v := range m {
		t, err := ParsePlatformType(name)
		if err != nil {
			continue
		}
		w[t] = v
	}
	return w
}

// Add returns the element-wise sum of w and o.
func (w TypeWeights) Add(o TypeWeights) TypeWeights {
	for i := range w {
		w[i] += o[i]
	}
	return w
}

// Total returns the sum of all positive weights.
func (w TypeWeights) Total() float64 {
	sum := 0.0
	for _, v := range w {
		if v > 0 {
			sum += v
		}
	}
	return sum
}

// unlockAt is the progress a type needs before it can be drawn at all.
var unlockAt = TypeWeights{
	Narrow:        0.25,
	Ice:           0.35,
	Boost:         0.45,
	ConveyorRight: 0.55,
	Crumble:       0.65,
	Spring:        0.10,
	Moving:        0.15,
	Fragile:       0.20,
	Golden:        0.20,
	Magnetic:      0.25,
	Disappearing:  0.35,
	Toxic:         0.40,
	Teleport:      0.50,
}

// baseWeights is the per-progress weight curve of the base types.
func baseWeights(progress float64) TypeWeights {
	var w TypeWeights
	w[Normal] = math.Max(0.15, 0.70-0.45*progress)
	w[Wide] = 0.15 * (1 - progress)
	w[Narrow] = 0.10 + 0.25*progress
	w[Ice] = 0.06 + 0.14*progress
	w[Boost] = 0.05 + 0.10*progress
	w[ConveyorRight] = 0.05 + 0.10*progress
	w[Crumble] = 0.04 + 0.10*progress
	return w
}

// WeightTable computes the eligible type weights for a draw.
type WeightTable struct {
	specials        TypeWeights
	specialsEnabled bool
}

// NewWeightTable creates a table. Special weights only apply when enabled.
func NewWeightTable(specials TypeWeights, enabled bool) *WeightTable {
	return &WeightTable{specials: specials, specialsEnabled: enabled}
}

// Weights merges base, phase and call-level weights additively, then zeroes
// every type that is still locked at this progress.
func (wt *WeightTable) Weights(progress float64, phase, call TypeWeights) TypeWeights {
	w := baseWeights(progress)
	if wt.specialsEnabled {
		w = w.Add(wt.specials)
	}
	w = w.Add(phase).Add(call)

	for t := range w {
		pt := PlatformType(t)
		switch {
		case progress < unlockAt[t]:
			w[t] = 0
		case pt.IsSpecial() && !wt.specialsEnabled:
			w[t] = 0
		case w[t] < 0:
			w[t] = 0
		}
	}
	return w
}

// pickWeighted maps r in [0, 1) onto the weight distribution.
// All-zero weights fall back to Normal.
func pickWeighted(w TypeWeights, r float64) PlatformType {
	total := w.Total()
	if total <= 0 {
		return Normal
	}

	target := r * total
	for t, v := range w {
		if v <= 0 {
			continue
		}
		if target < v {
			return PlatformType(t)
		}
		target -= v
	}

	// Floating point leftovers land on the last eligible type
	for t := len(w) - 1; t >= 0; t-- {
		if w[t] > 0 {
			return PlatformType(t)
		}
	}
	return Normal
}
