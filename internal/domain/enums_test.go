package domain

import "testing"

func TestAffixType_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag  AffixType
		want bool
	}{
		{AffixTypePrefix, true},
		{AffixTypeSuffix, true},
		{AffixTypeReplacement, true},
		{AffixTypeParticle, true},
		{AffixType("infix"), false},
		{AffixType("PREFIX"), false},
		{AffixType(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			t.Parallel()
			if got := tt.tag.IsValid(); got != tt.want {
				t.Errorf("AffixType(%q).IsValid() = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestDerivationType_AffixType(t *testing.T) {
	t.Parallel()

	if got := DerivationTypePrefix.AffixType(); got != AffixTypePrefix {
		t.Errorf("PREFIX.AffixType() = %q, want prefix", got)
	}
	if got := DerivationTypeSuffix.AffixType(); got != AffixTypeSuffix {
		t.Errorf("SUFFIX.AffixType() = %q, want suffix", got)
	}
	if DerivationType("prefix").IsValid() {
		t.Error("lower-case derivation type should be invalid")
	}
}

func TestParseWordOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want WordOrder
	}{
		{"SOV", WordOrderSOV},
		{"OVS", WordOrderOVS},
		{"svo", WordOrderSVO},
		{"", WordOrderSVO},
		{"XYZ", WordOrderSVO},
	}
	for _, tt := range tests {
		if got := ParseWordOrder(tt.in); got != tt.want {
			t.Errorf("ParseWordOrder(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParsePositions(t *testing.T) {
	t.Parallel()

	if got := ParseAdjectivePosition("AFTER"); got != AdjectivePositionAfter {
		t.Errorf("ParseAdjectivePosition(AFTER) = %q", got)
	}
	if got := ParseAdjectivePosition("sideways"); got != AdjectivePositionBefore {
		t.Errorf("ParseAdjectivePosition(sideways) = %q", got)
	}
	if got := ParsePrePostPosition("Postposition"); got != PrePostPositionPostposition {
		t.Errorf("ParsePrePostPosition(Postposition) = %q", got)
	}
	if got := ParsePrePostPosition(""); got != PrePostPositionPreposition {
		t.Errorf("ParsePrePostPosition(\"\") = %q", got)
	}
}
