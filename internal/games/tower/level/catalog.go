package level

import "math"

// TypeSpec holds the static gameplay multipliers of a platform type.
type TypeSpec struct {
	WidthMultiplier float64
	Height          float64
	// OneWay platforms only collide with bodies landing from above.
	OneWay bool
}

// catalog is indexed by PlatformType.
var catalog = [typeCount]TypeSpec{
	Normal:        {WidthMultiplier: 1.0, Height: 24, OneWay: true},
	Wide:          {WidthMultiplier: 1.35, Height: 24, OneWay: true},
	Narrow:        {WidthMultiplier: 0.8, Height: 26, OneWay: true},
	Ice:           {WidthMultiplier: 1.05, Height: 24, OneWay: true},
	Boost:         {WidthMultiplier: 1.05, Height: 24, OneWay: true},
	ConveyorRight: {WidthMultiplier: 1.1, Height: 24, OneWay: true},
	Crumble:       {WidthMultiplier: 1.0, Height: 22, OneWay: true},
	Magnetic:      {WidthMultiplier: 1.0, Height: 24, OneWay: true},
	Spring:        {WidthMultiplier: 1.0, Height: 24, OneWay: true},
	Fragile:       {WidthMultiplier: 1.0, Height: 24, OneWay: true},
	Moving:        {WidthMultiplier: 1.0, Height: 24, OneWay: true},
	Disappearing:  {WidthMultiplier: 1.0, Height: 24, OneWay: true},
	Golden:        {WidthMultiplier: 1.0, Height: 24, OneWay: true},
	Toxic:         {WidthMultiplier: 1.0, Height: 24, OneWay: true},
	Teleport:      {WidthMultiplier: 1.0, Height: 24, OneWay: true},
}

// Spec returns the catalog entry for t. Unknown types get the normal entry.
func Spec(t PlatformType) TypeSpec {
	if t < 0 || t >= typeCount {
		return catalog[Normal]
	}
	return catalog[t]
}

// WidthLimits bounds every platform width for a given screen.
type WidthLimits struct {
	Min         float64
	MaxFraction float64
}

// Max returns the widest allowed platform on a screen of width screenW.
func (l WidthLimits) Max(screenW float64) float64 {
	return math.Max(l.Min, screenW*l.MaxFraction)
}

// Clamp restricts w to [Min, Max(screenW)].
func (l WidthLimits) Clamp(w, screenW float64) float64 {
	return clamp(w, l.Min, l.Max(screenW))
}

// DisplayWidth applies the type multiplier to a raw width and clamps it.
func (l WidthLimits) DisplayWidth(t PlatformType, raw, screenW float64) float64 {
	return l.Clamp(raw*Spec(t).WidthMultiplier, screenW)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
