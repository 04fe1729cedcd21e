package prompt

import (
	"strings"
	"testing"

	"ai-luthier-be/pkg/guitar"
)

func TestHasModTrigger(t *testing.T) {
	tests := []struct {
		name  string
		notes string
		want  bool
	}{
		{name: "empty notes", notes: "", want: false},
		{name: "plain notes", notes: "please keep the sunburst finish", want: false},
		{name: "hybrid lowercase", notes: "going for a hybrid build", want: true},
		{name: "hybrid mixed case", notes: "HyBrId mod please", want: true},
		{name: "hybrid among other words", notes: "modern electronics, hybrid aesthetic, gold hardware", want: true},
		{name: "relic", notes: "Relic the finish heavily", want: true},
		{name: "aged", notes: "lightly AGED nickel parts", want: true},
		{name: "hot rod", notes: "full hot rod treatment", want: true},
		{name: "hot rod split by newline does not match", notes: "hot\nrod", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasModTrigger(tt.notes); got != tt.want {
				t.Errorf("HasModTrigger(%q) = %v, want %v", tt.notes, got, tt.want)
			}
		})
	}
}

func TestBuildPreservesPhilosophyWithoutTrigger(t *testing.T) {
	specs := guitar.DefaultSpecification()
	got := NewSynthesisBuilder(specs, "Artesanal (Gibson)").Build()

	if !strings.Contains(got, "Artesanal (Gibson)") {
		t.Error("philosophy label missing from instruction")
	}
	if !strings.Contains(got, "Preserve the original design philosophy") {
		t.Error("expected preserve-philosophy clause for default notes")
	}
	if strings.Contains(got, "Deliberately break") {
		t.Error("deviate clause present without a trigger word")
	}
}

func TestBuildDeviatesWithTrigger(t *testing.T) {
	specs := guitar.DefaultSpecification()
	if err := specs.ApplyPreset(guitar.PresetHybridMod); err != nil {
		t.Fatalf("ApplyPreset error = %v", err)
	}
	got := NewSynthesisBuilder(specs, "Modular (Fender)").Build()

	if !strings.Contains(got, "Deliberately break") {
		t.Error("expected deviate clause when notes contain a trigger word")
	}
	if strings.Contains(got, "Preserve the original design philosophy") {
		t.Error("preserve clause present alongside deviate clause")
	}
	if !strings.Contains(got, "custom-shop") {
		t.Error("deviate clause should push toward a custom-shop aesthetic")
	}
}

func TestBuildExpandsSpecsThroughCharacteristics(t *testing.T) {
	specs := guitar.DefaultSpecification()
	got := NewSynthesisBuilder(specs, "").Build()

	wood, _ := specs.BodyWood.Describe()
	if !strings.Contains(got, wood) {
		t.Error("body wood characteristic missing from instruction")
	}
	if !strings.Contains(got, specs.ScaleLength) {
		t.Error("scale length missing from instruction")
	}
	if !strings.Contains(got, "unknown") {
		t.Error("empty philosophy should render as unknown")
	}
}
