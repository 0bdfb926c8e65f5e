// Package level generates and manages the tower's platforms: the type
// catalog, difficulty phases, the platform sequencer and the manager that
// keeps a window of live platforms around the camera.
package level

import "fmt"

// PlatformType tags a platform with its gameplay behavior.
type PlatformType int

// Base types are generated in every mode.
const (
	Normal PlatformType = iota
	Wide
	Narrow
	Ice
	Boost
	ConveyorRight
	Crumble

	// Special types are only generated when specials are enabled.
	Magnetic
	Spring
	Fragile
	Moving
	Disappearing
	Golden
	Toxic
	Teleport

	typeCount
)

var typeNames = [typeCount]string{
	Normal:        "normal",
	Wide:          "wide",
	Narrow:        "narrow",
	Ice:           "ice",
	Boost:         "boost",
	ConveyorRight: "conveyorRight",
	Crumble:       "crumble",
	Magnetic:      "magnetic",
	Spring:        "spring",
	Fragile:       "fragile",
	Moving:        "moving",
	Disappearing:  "disappearing",
	Golden:        "golden",
	Toxic:         "toxic",
	Teleport:      "teleport",
}

// String returns the type name used in config files and logs.
func (t PlatformType) String() string {
	if t < 0 || t >= typeCount {
		return fmt.Sprintf("PlatformType(%d)", int(t))
	}
	return typeNames[t]
}

// IsSpecial reports whether t is one of the special behavior types.
func (t PlatformType) IsSpecial() bool {
	return t >= Magnetic && t < typeCount
}

// ParsePlatformType resolves a type name as written in config files.
func ParsePlatformType(name string) (PlatformType, error) {
	for i, n := range typeNames {
		if n == name {
			return PlatformType(i), nil
		}
	}
	return Normal, fmt.Errorf("level: unknown platform type %q", name)
}

// AllTypes returns every platform type in declaration order.
func AllTypes() []PlatformType {
	out := make([]PlatformType, 0, typeCount)
	for t := Normal; t < typeCount; t++ {
		out = append(out, t)
	}
	return out
}
