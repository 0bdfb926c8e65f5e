package level

import (
	"math"
	"math/rand"
)

// Horizontal placement tuning.
const (
	walkRange      = 220.0 // Max random walk from the previous x
	minSeparation  = 50.0  // Closer than this to the previous x gets nudged
	separationPush = 70.0
	rerollChance   = 0.15
	swingChance    = 0.35
)

// Freeform size tuning.
const (
	bigGapChance     = 0.12
	bigGapFactor     = 1.35
	clusterChance    = 0.20
	clusterFactor    = 0.78
	widthModChance   = 0.18
	widthModFactor   = 0.25
	jitterMin        = 0.08
	jitterSpread     = 0.07
	wideCoercion     = 1.15
	narrowCoercion   = 0.75
	defaultPadding   = 20.0
	defaultMinWidth  = 60.0
	defaultMaxWidth  = 0.85
	defaultMinGap    = 65.0
	defaultMaxGap    = 260.0
	defaultMaxHeight = 12000.0
)

// Request is the input of one sequencer step.
type Request struct {
	CursorY       float64 // Y of the most recently generated platform
	HeightClimbed float64
	Progress      float64 // Normalized difficulty in [0, 1]
	ScreenWidth   float64
	LastX         float64
	Overrides     TypeWeights // Call-level weights merged into the draw
}

// PlatformSpec describes the next platform to place.
type PlatformSpec struct {
	X       float64
	Y       float64
	Width   float64 // Final display width
	Spacing float64
	Type    PlatformType
	Pattern string // Name of the pattern that produced it, empty for freeform
}

// SequencerOptions configures a Sequencer.
type SequencerOptions struct {
	Phases  *PhaseTable
	Weights *WeightTable
	Limits  WidthLimits
	Spacing Range // Clamp applied to every returned spacing
	Padding float64
}

// DefaultSequencerOptions returns options built from the default tables.
func DefaultSequencerOptions() SequencerOptions {
	return SequencerOptions{
		Limits:  WidthLimits{Min: defaultMinWidth, MaxFraction: defaultMaxWidth},
		Spacing: Range{Min: defaultMinGap, Max: defaultMaxGap},
		Padding: defaultPadding,
	}
}

// Sequencer produces the next platform from the generation cursor.
// It owns its RNG; equal seeds and requests yield equal sequences.
type Sequencer struct {
	rng     *rand.Rand
	opts    SequencerOptions
	pattern *activePattern
}

// NewSequencer creates a sequencer. Missing tables fall back to defaults.
func NewSequencer(seed int64, opts SequencerOptions) *Sequencer {
	if opts.Phases == nil {
		opts.Phases = NewPhaseTable(nil)
	}
	if opts.Weights == nil {
		opts.Weights = NewWeightTable(TypeWeights{}, false)
	}
	if opts.Limits.Min <= 0 {
		opts.Limits.Min = defaultMinWidth
	}
	if opts.Limits.MaxFraction <= 0 {
		opts.Limits.MaxFraction = defaultMaxWidth
	}
	if opts.Spacing.Min <= 0 || opts.Spacing.Max < opts.Spacing.Min {
		opts.Spacing = Range{Min: defaultMinGap, Max: defaultMaxGap}
	}
	return &Sequencer{
		rng:  rand.New(rand.NewSource(seed)),
		opts: opts,
	}
}

// Reset reseeds the RNG and drops any active pattern.
func (s *Sequencer) Reset(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
	s.pattern = nil
}

// ActivePattern returns the name of the pattern being consumed, if any.
func (s *Sequencer) ActivePattern() string {
	if s.pattern == nil {
		return ""
	}
	return s.pattern.pattern.Name
}

// Next produces the platform following the cursor.
func (s *Sequencer) Next(req Request) PlatformSpec {
	phase := s.opts.Phases.PhaseForProgress(req.Progress)

	if s.pattern != nil {
		return s.consumePatternStep(req, phase)
	}

	if s.rng.Float64() < phase.PatternChance {
		family := patternFamily(req.Progress)
		if len(family) > 0 {
			s.pattern = &activePattern{pattern: family[s.rng.Intn(len(family))]}
			return s.consumePatternStep(req, phase)
		}
	}

	return s.freeform(req, phase)
}

func (s *Sequencer) consumePatternStep(req Request, phase DifficultyPhase) PlatformSpec {
	a := s.pattern
	step := a.pattern.Steps[a.next]

	width := step.WidthFactor * req.ScreenWidth
	if step.WidthFactor <= 0 {
		width = phase.Width.Lerp(s.rng.Float64()) * req.ScreenWidth
	}

	typ := step.Type
	if !step.FixedType {
		typ = s.rollType(req, phase)
	}
	width = s.finalWidth(typ, width, req.ScreenWidth)

	minX, maxX := s.xBounds(width, req.ScreenWidth)

	// Mirror the whole run when its opening step would leave the screen
	if a.next == 0 {
		first := req.LastX + step.OffsetX
		a.mirror = first < minX || first > maxX
	}
	offset := step.OffsetX
	if a.mirror {
		offset = -offset
	}

	x := req.LastX + offset
	if minX > maxX {
		x = req.ScreenWidth / 2
	} else {
		x = clamp(x, minX, maxX)
	}

	spacing := clamp(step.Spacing, s.opts.Spacing.Min, s.opts.Spacing.Max)
	name := a.pattern.Name

	a.next++
	if a.done() {
		s.pattern = nil
	}

	return PlatformSpec{
		X:       x,
		Y:       req.CursorY - spacing,
		Width:   width,
		Spacing: spacing,
		Type:    typ,
		Pattern: name,
	}
}

func (s *Sequencer) freeform(req Request, phase DifficultyPhase) PlatformSpec {
	width := phase.Width.Lerp(s.rng.Float64()) * req.ScreenWidth
	spacing := phase.Spacing.Lerp(s.rng.Float64())

	width *= 1 + s.jitter()
	spacing *= 1 + s.jitter()

	switch r := s.rng.Float64(); {
	case r < bigGapChance:
		spacing *= bigGapFactor
	case r < bigGapChance+clusterChance:
		spacing *= clusterFactor
	}

	typ := s.rollType(req, phase)

	if s.rng.Float64() < widthModChance {
		if s.rng.Float64() < 0.5 {
			if typ != Wide {
				width *= 1 + widthModFactor
			}
		} else {
			width *= 1 - widthModFactor
			if typ == Normal || typ == Wide {
				typ = Narrow
			}
		}
	}

	width = s.finalWidth(typ, width, req.ScreenWidth)
	spacing = clamp(spacing, s.opts.Spacing.Min, s.opts.Spacing.Max)

	return PlatformSpec{
		X:       s.placeX(req, width),
		Y:       req.CursorY - spacing,
		Width:   width,
		Spacing: spacing,
		Type:    typ,
	}
}

// rollType draws a type from merged base, phase and call weights.
func (s *Sequencer) rollType(req Request, phase DifficultyPhase) PlatformType {
	w := s.opts.Weights.Weights(req.Progress, phase.Overrides, req.Overrides)
	return pickWeighted(w, s.rng.Float64())
}

// finalWidth applies the type coercion, the catalog multiplier and the clamp.
func (s *Sequencer) finalWidth(t PlatformType, width, screenW float64) float64 {
	switch t {
	case Wide:
		width = math.Min(width*wideCoercion, s.opts.Limits.Max(screenW))
	case Narrow:
		width = math.Max(width*narrowCoercion, s.opts.Limits.Min)
	}
	return s.opts.Limits.DisplayWidth(t, width, screenW)
}

// jitter returns a signed factor with magnitude in [8%, 15%].
func (s *Sequencer) jitter() float64 {
	mag := jitterMin + jitterSpread*s.rng.Float64()
	if s.rng.Float64() < 0.5 {
		return -mag
	}
	return mag
}

func (s *Sequencer) xBounds(width, screenW float64) (float64, float64) {
	return s.opts.Padding + width/2, screenW - s.opts.Padding - width/2
}

// placeX picks a horizontal center near the previous platform.
func (s *Sequencer) placeX(req Request, width float64) float64 {
	minX, maxX := s.xBounds(width, req.ScreenWidth)
	if minX > maxX {
		return req.ScreenWidth / 2
	}

	last := req.LastX
	var x float64
	switch r := s.rng.Float64(); {
	case r < rerollChance:
		x = minX + s.rng.Float64()*(maxX-minX)
	case r < rerollChance+swingChance:
		// Swing into the half opposite the previous platform
		center := req.ScreenWidth / 2
		if last >= center {
			x = minX + s.rng.Float64()*math.Max(0, center-minX)
		} else {
			x = center + s.rng.Float64()*math.Max(0, maxX-center)
		}
	default:
		x = last + (s.rng.Float64()*2-1)*walkRange
	}

	if math.Abs(x-last) < minSeparation {
		push := separationPush
		if x < last {
			push = -push
		}
		x = last + push
		if x < minX || x > maxX {
			x = last - push
		}
	}

	return clamp(x, minX, maxX)
}

// ProgressForHeight is the default progress curve when no difficulty
// manager is supplied.
func ProgressForHeight(height float64) float64 {
	return clamp(height/defaultMaxHeight, 0, 1)
}
