package level

// PatternStep is one scripted platform of a pattern.
type PatternStep struct {
	Spacing     float64
	OffsetX     float64 // Relative to the previous platform's x
	WidthFactor float64 // Fraction of screen width; zero rolls from the phase
	Type        PlatformType
	FixedType   bool // When false the type comes from the weighted draw
}

// Pattern is a short hand-authored jump challenge.
type Pattern struct {
	Name  string
	Steps []PatternStep
}

func free(spacing, offset, width float64) PatternStep {
	return PatternStep{Spacing: spacing, OffsetX: offset, WidthFactor: width}
}

func typed(spacing, offset, width float64, t PlatformType) PatternStep {
	return PatternStep{Spacing: spacing, OffsetX: offset, WidthFactor: width, Type: t, FixedType: true}
}

var earlyPatterns = []Pattern{
	{Name: "staircase", Steps: []PatternStep{
		free(100, 90, 0.30),
		free(100, 90, 0.30),
		free(110, 90, 0.28),
	}},
	{Name: "zigzag", Steps: []PatternStep{
		free(110, 150, 0),
		free(110, -150, 0),
		free(110, 150, 0),
	}},
	{Name: "rest-stop", Steps: []PatternStep{
		typed(90, 0, 0.40, Wide),
		free(120, 120, 0),
	}},
}

var midPatterns = []Pattern{
	{Name: "narrow-narrow-boost", Steps: []PatternStep{
		typed(120, 100, 0, Narrow),
		typed(120, -100, 0, Narrow),
		typed(140, 60, 0, Boost),
	}},
	{Name: "ice-slide", Steps: []PatternStep{
		typed(130, 130, 0, Ice),
		typed(130, 130, 0, Ice),
		typed(120, -60, 0, Normal),
	}},
	{Name: "long-zigzag", Steps: []PatternStep{
		free(150, 170, 0),
		free(150, -170, 0),
		free(150, 170, 0),
		free(150, -170, 0),
	}},
}

var latePatterns = []Pattern{
	{Name: "crumble-chain", Steps: []PatternStep{
		typed(160, 120, 0, Crumble),
		typed(150, -120, 0, Crumble),
		typed(170, 80, 0, Narrow),
	}},
	{Name: "conveyor-gap", Steps: []PatternStep{
		typed(170, -140, 0, ConveyorRight),
		typed(190, 160, 0, Narrow),
		typed(160, -40, 0, Boost),
	}},
	{Name: "needle-climb", Steps: []PatternStep{
		typed(180, 60, 0.14, Narrow),
		typed(180, -60, 0.14, Narrow),
		typed(200, 60, 0.14, Narrow),
	}},
}

// patternFamily returns the patterns authored for a progress band.
func patternFamily(progress float64) []Pattern {
	switch {
	case progress < 0.35:
		return earlyPatterns
	case progress < 0.7:
		return midPatterns
	default:
		return latePatterns
	}
}

// activePattern tracks the one pattern currently being consumed.
type activePattern struct {
	pattern Pattern
	next    int
	mirror  bool
}

func (a *activePattern) done() bool {
	return a.next >= len(a.pattern.Steps)
}
