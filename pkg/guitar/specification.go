package guitar

import "fmt"

// Specification is the user's target configuration for one session. It is
// owned by the session that created it; collaborators only read it.
type Specification struct {
	BodyWood    BodyWood          `json:"body_wood"`
	NeckProfile NeckProfile       `json:"neck_profile"`
	Fretboard   FretboardMaterial `json:"fretboard"`
	Bridge      BridgeSystem      `json:"bridge"`
	Pickups     PickupConfig      `json:"pickups"`

	ScaleLength     string `json:"scale_length"`
	FretboardRadius string `json:"fretboard_radius"`

	Notes        string `json:"notes,omitempty"`
	Construction string `json:"construction,omitempty"`
	Philosophy   string `json:"philosophy,omitempty"`
}

// Updatable field names accepted by Set.
const (
	FieldBodyWood        = "body_wood"
	FieldNeckProfile     = "neck_profile"
	FieldFretboard       = "fretboard"
	FieldBridge          = "bridge"
	FieldPickups         = "pickups"
	FieldScaleLength     = "scale_length"
	FieldFretboardRadius = "fretboard_radius"
	FieldNotes           = "notes"
	FieldConstruction    = "construction"
	FieldPhilosophy      = "philosophy"
)

// DefaultSpecification returns the configuration every session starts from:
// a balanced wood, a standard neck, a warm fretboard, a fixed bridge and
// dual humbuckers on a standard long scale.
func DefaultSpecification() *Specification {
	return &Specification{
		BodyWood:        BodyWoodAlder,
		NeckProfile:     NeckProfileModernC,
		Fretboard:       FretboardRosewood,
		Bridge:          BridgeHardtail,
		Pickups:         PickupsHH,
		ScaleLength:     `25.5" (648mm)`,
		FretboardRadius: `9.5" (241mm)`,
	}
}

// Set updates a single field. Enum fields are checked against their closed
// set; free-text fields accept arbitrary strings.
func (s *Specification) Set(field, value string) error {
	switch field {
	case FieldBodyWood:
		v := BodyWood(value)
		if !v.Valid() {
			return fmt.Errorf("invalid body wood: %q", value)
		}
		s.BodyWood = v
	case FieldNeckProfile:
		v := NeckProfile(value)
		if !v.Valid() {
			return fmt.Errorf("invalid neck profile: %q", value)
		}
		s.NeckProfile = v
	case FieldFretboard:
		v := FretboardMaterial(value)
		if !v.Valid() {
			return fmt.Errorf("invalid fretboard material: %q", value)
		}
		s.Fretboard = v
	case FieldBridge:
		v := BridgeSystem(value)
		if !v.Valid() {
			return fmt.Errorf("invalid bridge system: %q", value)
		}
		s.Bridge = v
	case FieldPickups:
		v := PickupConfig(value)
		if !v.Valid() {
			return fmt.Errorf("invalid pickup configuration: %q", value)
		}
		s.Pickups = v
	case FieldScaleLength:
		s.ScaleLength = value
	case FieldFretboardRadius:
		s.FretboardRadius = value
	case FieldNotes:
		s.Notes = value
	case FieldConstruction:
		s.Construction = value
	case FieldPhilosophy:
		s.Philosophy = value
	default:
		return fmt.Errorf("unknown specification field: %q", field)
	}
	return nil
}

// Clone returns a copy the caller may mutate freely.
func (s *Specification) Clone() *Specification {
	cp := *s
	return &cp
}
