package model

import "github.com/aegis-sec/aegis/pkg/domain/types"

// SubjectProfile is a structured snapshot of the assessed subject, rebuilt
// fresh from the current answer set on every scoring run. It is never
// mutated incrementally and has no identity beyond its parent assessment.
type SubjectProfile struct {
	ExposureLevel   types.ExposureLevel
	TravelFrequency types.TravelFrequency

	// FamilyComposition holds deduplicated category tags such as
	// "spouse" or "minor-children", sorted for determinism.
	FamilyComposition []string

	// CurrentMeasures holds deduplicated tags of protective measures
	// already in place, sorted for determinism.
	CurrentMeasures []string

	// HighRiskDestinations holds deduplicated destination tags from the
	// travel section, sorted for determinism.
	HighRiskDestinations []string

	// NetWorthBracket is the canonical bracket tag, empty when unknown.
	NetWorthBracket string

	KnownThreatHistory bool
	ActiveAdversary    bool
}

// HasMeasure reports whether a protective measure tag is present
func (p *SubjectProfile) HasMeasure(tag string) bool {
	for _, m := range p.CurrentMeasures {
		if m == tag {
			return true
		}
	}
	return false
}

// HasDependents reports whether the family composition includes anyone
// beyond the subject
func (p *SubjectProfile) HasDependents() bool {
	return len(p.FamilyComposition) > 0
}
