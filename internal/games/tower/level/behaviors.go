package level

import "github.com/vovakirdan/tui-tower/internal/config"

// EffectKind tags a landing outcome.
type EffectKind int

const (
	// EffectImpulse sets the player's vertical velocity (overrides, not adds).
	EffectImpulse EffectKind = iota + 1
	// EffectDestroy removes the platform.
	EffectDestroy
	// EffectDamage hurts the player by Amount.
	EffectDamage
	// EffectRelocate moves the player onto the nearest higher platform.
	EffectRelocate
	// EffectScheduleRestore starts the fade, hide and restore cycle.
	EffectScheduleRestore
	// EffectBonus awards Amount points.
	EffectBonus
)

// String returns the effect name for logs.
func (k EffectKind) String() string {
	switch k {
	case EffectImpulse:
		return "impulse"
	case EffectDestroy:
		return "destroy"
	case EffectDamage:
		return "damage"
	case EffectRelocate:
		return "relocate"
	case EffectScheduleRestore:
		return "schedule-restore"
	case EffectBonus:
		return "bonus"
	default:
		return "none"
	}
}

// Effect is a tagged landing outcome. Only the fields of its Kind are set.
type Effect struct {
	Kind EffectKind

	VelocityY float64 // Impulse, negative is up
	Amount    int     // Damage and Bonus

	// Relocate: filled in by the Manager with the landing spot on the target.
	TargetX, TargetY float64
	TargetID         int

	// ScheduleRestore timings in milliseconds.
	FadeMs, OffMs, RestoreMs float64
}

// Behavior decides the outcome of a landing on p. It may update the
// platform's per-instance counters but never touches the active set.
type Behavior func(p *Platform) []Effect

// BehaviorTable maps platform types to landing behaviors. Types without an
// entry have no landing behavior.
type BehaviorTable map[PlatformType]Behavior

// DefaultBehaviors builds the landing behavior table from config.
func DefaultBehaviors(cfg config.TowerBehaviors, jumpVelocity float64) BehaviorTable {
	boostVelocity := -jumpVelocity * cfg.BoostFactor
	fragileLandings := cfg.FragileLandings
	if fragileLandings < 1 {
		fragileLandings = 2
	}

	return BehaviorTable{
		Boost:  oneShot(Effect{Kind: EffectImpulse, VelocityY: boostVelocity}),
		Spring: oneShot(Effect{Kind: EffectImpulse, VelocityY: -cfg.SpringVelocity}),
		Fragile: func(p *Platform) []Effect {
			p.LandCount++
			if p.LandCount >= fragileLandings {
				return []Effect{{Kind: EffectDestroy}}
			}
			return nil
		},
		Disappearing: func(p *Platform) []Effect {
			if p.DisappearStarted {
				return nil
			}
			p.DisappearStarted = true
			return []Effect{{
				Kind:      EffectScheduleRestore,
				FadeMs:    cfg.DisappearFadeMs,
				OffMs:     cfg.DisappearOffMs,
				RestoreMs: cfg.DisappearRestoreMs,
			}}
		},
		Golden: func(p *Platform) []Effect {
			if p.Consumed {
				return nil
			}
			p.Consumed = true
			p.Used = true
			return []Effect{{Kind: EffectBonus, Amount: cfg.GoldenBonus}}
		},
		Toxic:    oneShot(Effect{Kind: EffectDamage, Amount: cfg.ToxicDamage}),
		Teleport: oneShot(Effect{Kind: EffectRelocate}),
	}
}

// oneShot fires e on the first landing of each platform instance only.
func oneShot(e Effect) Behavior {
	return func(p *Platform) []Effect {
		if p.Consumed {
			return nil
		}
		p.Consumed = true
		return []Effect{e}
	}
}
