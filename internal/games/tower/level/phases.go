package level

import (
	"sort"

	"github.com/vovakirdan/tui-tower/internal/config"
)

// Range is an inclusive [Min, Max] interval.
type Range struct {
	Min, Max float64
}

// Lerp returns the point t of the way from Min to Max.
func (r Range) Lerp(t float64) float64 {
	return r.Min + (r.Max-r.Min)*t
}

// DifficultyPhase is one row of the phase table.
type DifficultyPhase struct {
	ProgressStart float64
	Spacing       Range
	Width         Range // Fraction of screen width
	PatternChance float64
	Overrides     TypeWeights
}

// PhaseTable maps normalized climb progress to a difficulty phase.
// Rows are kept sorted by ProgressStart.
type PhaseTable struct {
	phases []DifficultyPhase
}

// NewPhaseTable builds a table from phase rows in any order.
// An empty input yields a table with a single default phase.
func NewPhaseTable(phases []DifficultyPhase) *PhaseTable {
	rows := make([]DifficultyPhase, len(phases))
	copy(rows, phases)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ProgressStart < rows[j].ProgressStart
	})
	if len(rows) == 0 {
		rows = append(rows, DifficultyPhase{
			Spacing:       Range{Min: 80, Max: 120},
			Width:         Range{Min: 0.3, Max: 0.42},
			PatternChance: 0,
		})
	}
	return &PhaseTable{phases: rows}
}

// PhasesFromConfig converts config rows, skipping unknown type names in overrides.
func PhasesFromConfig(rows []config.PhaseConfig) []DifficultyPhase {
	out := make([]DifficultyPhase, 0, len(rows))
	for _, r := range rows {
		out = append(out, DifficultyPhase{
			ProgressStart: r.ProgressStart,
			Spacing:       Range{Min: r.SpacingMin, Max: r.SpacingMax},
			Width:         Range{Min: r.WidthMin, Max: r.WidthMax},
			PatternChance: r.PatternChance,
			Overrides:     WeightsFromNames(r.TypeWeights),
		})
	}
	return out
}

// PhaseForProgress scans from the highest ProgressStart down and returns the
// first phase starting at or below progress. The lowest phase is the fallback.
func (t *PhaseTable) PhaseForProgress(progress float64) DifficultyPhase {
	for i := len(t.phases) - 1; i >= 0; i-- {
		if t.phases[i].ProgressStart <= progress {
			return t.phases[i]
		}
	}
	return t.phases[0]
}

// Len returns the number of phases.
func (t *PhaseTable) Len() int {
	return len(t.phases)
}
