package guitar

import (
	"strings"
	"testing"
)

func TestDefaultSpecification(t *testing.T) {
	s := DefaultSpecification()

	if s.BodyWood != BodyWoodAlder {
		t.Errorf("BodyWood = %q, want %q", s.BodyWood, BodyWoodAlder)
	}
	if s.NeckProfile != NeckProfileModernC {
		t.Errorf("NeckProfile = %q, want %q", s.NeckProfile, NeckProfileModernC)
	}
	if s.Fretboard != FretboardRosewood {
		t.Errorf("Fretboard = %q, want %q", s.Fretboard, FretboardRosewood)
	}
	if s.Bridge != BridgeHardtail {
		t.Errorf("Bridge = %q, want %q", s.Bridge, BridgeHardtail)
	}
	if s.Pickups != PickupsHH {
		t.Errorf("Pickups = %q, want %q", s.Pickups, PickupsHH)
	}
	if s.Notes != "" {
		t.Errorf("Notes should start empty, got %q", s.Notes)
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		wantErr bool
	}{
		{name: "valid body wood", field: FieldBodyWood, value: "mahogany"},
		{name: "invalid body wood", field: FieldBodyWood, value: "plywood", wantErr: true},
		{name: "valid bridge", field: FieldBridge, value: "floyd_rose"},
		{name: "invalid pickups", field: FieldPickups, value: "quad", wantErr: true},
		{name: "free text notes", field: FieldNotes, value: "anything goes here"},
		{name: "free text scale", field: FieldScaleLength, value: `24.75"`},
		{name: "unknown field", field: "headstock", value: "reverse", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSpecification()
			err := s.Set(tt.field, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Set(%q, %q) error = %v, wantErr %v", tt.field, tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestSetInvalidValueLeavesFieldUntouched(t *testing.T) {
	s := DefaultSpecification()
	if err := s.Set(FieldBodyWood, "plywood"); err == nil {
		t.Fatal("expected error")
	}
	if s.BodyWood != BodyWoodAlder {
		t.Errorf("BodyWood mutated on failed Set: %q", s.BodyWood)
	}
}

func TestHybridModPresetIsDeterministic(t *testing.T) {
	// The preset must land on the same four-field combination no matter
	// what the specification looked like before.
	priors := []*Specification{
		DefaultSpecification(),
		{BodyWood: BodyWoodMahogany, NeckProfile: NeckProfileChunkyU, Fretboard: FretboardEbony, Bridge: BridgeTuneOMatic, Pickups: PickupsP90, Notes: "old notes"},
	}

	for _, s := range priors {
		if err := s.ApplyPreset(PresetHybridMod); err != nil {
			t.Fatalf("ApplyPreset error = %v", err)
		}
		if s.Bridge != BridgeFloydRose {
			t.Errorf("Bridge = %q, want %q", s.Bridge, BridgeFloydRose)
		}
		if s.Pickups != PickupsHSS {
			t.Errorf("Pickups = %q, want %q", s.Pickups, PickupsHSS)
		}
		if s.BodyWood != BodyWoodSwampAsh {
			t.Errorf("BodyWood = %q, want %q", s.BodyWood, BodyWoodSwampAsh)
		}
		if !strings.Contains(strings.ToLower(s.Notes), "hybrid mod") {
			t.Errorf("Notes = %q, want hybrid mod phrase", s.Notes)
		}
	}
}

func TestApplyUnknownPreset(t *testing.T) {
	s := DefaultSpecification()
	if err := s.ApplyPreset("does-not-exist"); err == nil {
		t.Error("expected error for unknown preset")
	}
	if s.Bridge != BridgeHardtail {
		t.Errorf("spec mutated by unknown preset")
	}
}
