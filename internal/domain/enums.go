package domain

import "strings"

// AffixType is the tag of an affix layer.
type AffixType string

const (
	AffixTypePrefix      AffixType = "prefix"
	AffixTypeSuffix      AffixType = "suffix"
	AffixTypeReplacement AffixType = "replacement"
	AffixTypeParticle    AffixType = "particle"
)

func (t AffixType) String() string { return string(t) }

func (t AffixType) IsValid() bool {
	switch t {
	case AffixTypePrefix, AffixTypeSuffix, AffixTypeReplacement, AffixTypeParticle:
		return true
	}
	return false
}

// AffixKind identifies which shape an Affix carries.
type AffixKind string

const (
	AffixKindNone        AffixKind = "none"
	AffixKindFixed       AffixKind = "fixed"
	AffixKindConditional AffixKind = "conditional"
	AffixKindReplacement AffixKind = "replacement"
)

func (k AffixKind) String() string { return string(k) }

// DerivationType says where a derivational affix attaches.
type DerivationType string

const (
	DerivationTypePrefix DerivationType = "PREFIX"
	DerivationTypeSuffix DerivationType = "SUFFIX"
)

func (t DerivationType) String() string { return string(t) }

func (t DerivationType) IsValid() bool {
	switch t {
	case DerivationTypePrefix, DerivationTypeSuffix:
		return true
	}
	return false
}

// AffixType maps the derivation type onto the matching declension position.
func (t DerivationType) AffixType() AffixType {
	if t == DerivationTypePrefix {
		return AffixTypePrefix
	}
	return AffixTypeSuffix
}

// WordOrder is the basic constituent order of a clause.
type WordOrder string

const (
	WordOrderSVO WordOrder = "SVO"
	WordOrderSOV WordOrder = "SOV"
	WordOrderVSO WordOrder = "VSO"
	WordOrderVOS WordOrder = "VOS"
	WordOrderOSV WordOrder = "OSV"
	WordOrderOVS WordOrder = "OVS"
)

func (o WordOrder) String() string { return string(o) }

func (o WordOrder) IsValid() bool {
	switch o {
	case WordOrderSVO, WordOrderSOV, WordOrderVSO, WordOrderVOS, WordOrderOSV, WordOrderOVS:
		return true
	}
	return false
}

// ParseWordOrder is exact-match; anything unknown falls back to SVO.
func ParseWordOrder(s string) WordOrder {
	if o := WordOrder(s); o.IsValid() {
		return o
	}
	return WordOrderSVO
}

// AdjectivePosition says whether adjectives precede or follow the noun.
type AdjectivePosition string

const (
	AdjectivePositionBefore AdjectivePosition = "Before"
	AdjectivePositionAfter  AdjectivePosition = "After"
)

func (p AdjectivePosition) String() string { return string(p) }

// ParseAdjectivePosition is case-insensitive and defaults to Before.
func ParseAdjectivePosition(s string) AdjectivePosition {
	if strings.EqualFold(strings.TrimSpace(s), "after") {
		return AdjectivePositionAfter
	}
	return AdjectivePositionBefore
}

// PrePostPosition says whether the language uses prepositions or postpositions.
type PrePostPosition string

const (
	PrePostPositionPreposition  PrePostPosition = "preposition"
	PrePostPositionPostposition PrePostPosition = "postposition"
)

func (p PrePostPosition) String() string { return string(p) }

// ParsePrePostPosition is case-insensitive and defaults to preposition.
func ParsePrePostPosition(s string) PrePostPosition {
	if strings.EqualFold(strings.TrimSpace(s), "postposition") {
		return PrePostPositionPostposition
	}
	return PrePostPositionPreposition
}
