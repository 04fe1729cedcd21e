package guitar

import "fmt"

// A Preset overwrites a named subset of specification fields in one step so
// callers never observe a half-applied combination.
type Preset struct {
	Name        string
	Description string
	apply       func(s *Specification)
}

const (
	// HybridModNotes is the fixed notes text the hybrid-mod preset installs.
	// The word "hybrid" in it is what later flips prompt synthesis into the
	// deviate-from-philosophy branch.
	HybridModNotes = "Hybrid mod build: modern hardware on a vintage soul, custom shop attitude."

	PresetHybridMod     = "hybrid-mod"
	PresetVintageReturn = "vintage-return"
	PresetShredMachine  = "shred-machine"
)

var presets = map[string]Preset{
	PresetHybridMod: {
		Name:        PresetHybridMod,
		Description: "Locking tremolo, bridge humbucker and a bright lightweight body for a hot-rodded player build.",
		apply: func(s *Specification) {
			s.Bridge = BridgeFloydRose
			s.Pickups = PickupsHSS
			s.BodyWood = BodyWoodSwampAsh
			s.Notes = HybridModNotes
		},
	},
	PresetVintageReturn: {
		Name:        PresetVintageReturn,
		Description: "Classic fifties appointments: deep neck, single coils and a six-screw tremolo.",
		apply: func(s *Specification) {
			s.NeckProfile = NeckProfileVintage50s
			s.Fretboard = FretboardMaple
			s.Bridge = BridgeVintageTremolo
			s.Pickups = PickupsSSS
			s.FretboardRadius = `7.25" (184mm)`
		},
	},
	PresetShredMachine: {
		Name:        PresetShredMachine,
		Description: "Flat board, thin neck and high-output pickups for modern technical playing.",
		apply: func(s *Specification) {
			s.NeckProfile = NeckProfileCompoundD
			s.Fretboard = FretboardEbony
			s.Pickups = PickupsHSH
			s.BodyWood = BodyWoodBasswood
			s.FretboardRadius = `16" (406mm)`
		},
	},
}

// Presets lists the available presets in a stable order.
func Presets() []Preset {
	return []Preset{presets[PresetHybridMod], presets[PresetVintageReturn], presets[PresetShredMachine]}
}

// ApplyPreset overwrites the preset's fields on s atomically. Unknown preset
// names leave s untouched.
func (s *Specification) ApplyPreset(name string) error {
	p, ok := presets[name]
	if !ok {
		return fmt.Errorf("unknown preset: %q", name)
	}
	p.apply(s)
	return nil
}
