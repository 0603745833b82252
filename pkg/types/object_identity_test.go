package types

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseObjectIdentity(t *testing.T) {
	tests := []struct {
		input    string
		expected ObjectIdentity
		wantErr  bool
	}{
		{"gloves", IdentityGloves, false},
		{"Striker", IdentityStriker, false},
		{"PETRIDISH", IdentityPetriDish, false},
		{"finalResult", IdentityFinalResult, false},
		{"lab bench", IdentityUnknown, true},
		{"", IdentityUnknown, true},
	}

	for _, tt := range tests {
		got, err := ParseObjectIdentity(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseObjectIdentity(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseObjectIdentity(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

// TestObjectIdentity_StringRoundTrip 每个身份的名称都能解析回自身
func TestObjectIdentity_StringRoundTrip(t *testing.T) {
	for _, id := range AllIdentities() {
		parsed, err := ParseObjectIdentity(id.String())
		if err != nil {
			t.Fatalf("identity %d: %v", id, err)
		}
		if parsed != id {
			t.Errorf("round trip of %v produced %v", id, parsed)
		}
	}

	if IdentityUnknown.String() != "unknown" {
		t.Errorf("expected unknown, got %q", IdentityUnknown.String())
	}
}

func TestGateEffect_YAML(t *testing.T) {
	var row struct {
		Identity ObjectIdentity `yaml:"identity"`
		Effect   GateEffect     `yaml:"effect"`
	}
	if err := yaml.Unmarshal([]byte("identity: striker\neffect: armDrag\n"), &row); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if row.Identity != IdentityStriker {
		t.Errorf("expected striker, got %v", row.Identity)
	}
	if row.Effect != EffectArmDrag {
		t.Errorf("expected armDrag, got %v", row.Effect)
	}
	if row.Effect.AdvancesOnClick() {
		t.Error("armDrag must not advance on click")
	}

	if err := yaml.Unmarshal([]byte("identity: striker\neffect: explode\n"), &row); err == nil {
		t.Error("expected error for unknown effect")
	}
}
