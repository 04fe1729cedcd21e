package guitar

import (
	"testing"
)

func TestEveryEnumValueHasDescription(t *testing.T) {
	for _, w := range BodyWoods() {
		desc, err := w.Describe()
		if err != nil {
			t.Errorf("Describe(%q) error = %v", w, err)
		}
		if desc == "" {
			t.Errorf("Describe(%q) returned empty description", w)
		}
	}
	for _, n := range NeckProfiles() {
		desc, err := n.Describe()
		if err != nil {
			t.Errorf("Describe(%q) error = %v", n, err)
		}
		if desc == "" {
			t.Errorf("Describe(%q) returned empty description", n)
		}
	}
	for _, f := range FretboardMaterials() {
		desc, err := f.Describe()
		if err != nil {
			t.Errorf("Describe(%q) error = %v", f, err)
		}
		if desc == "" {
			t.Errorf("Describe(%q) returned empty description", f)
		}
	}
	for _, b := range BridgeSystems() {
		desc, err := b.Describe()
		if err != nil {
			t.Errorf("Describe(%q) error = %v", b, err)
		}
		if desc == "" {
			t.Errorf("Describe(%q) returned empty description", b)
		}
	}
	for _, p := range PickupConfigs() {
		desc, err := p.Describe()
		if err != nil {
			t.Errorf("Describe(%q) error = %v", p, err)
		}
		if desc == "" {
			t.Errorf("Describe(%q) returned empty description", p)
		}
	}
}

func TestDescribeUnknownValueFails(t *testing.T) {
	if _, err := BodyWood("plywood").Describe(); err == nil {
		t.Error("expected error for unknown body wood")
	}
	if _, err := BridgeSystem("kazoo").Describe(); err == nil {
		t.Error("expected error for unknown bridge system")
	}
}
