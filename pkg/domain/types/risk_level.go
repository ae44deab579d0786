package types

import "fmt"

// RiskLevel represents the five-step level derived from a raw
// likelihood x impact product on the 1-25 scale. It is used by the facility
// scenario progression (inherent / current / residual), not by the
// normalized 0-100 classification.
type RiskLevel string

const (
	RiskLevelCritical RiskLevel = "Critical"
	RiskLevelHigh     RiskLevel = "High"
	RiskLevelMedium   RiskLevel = "Medium"
	RiskLevelLow      RiskLevel = "Low"
	RiskLevelVeryLow  RiskLevel = "Very Low"
)

// AllRiskLevels returns all valid risk levels, most severe first
func AllRiskLevels() []RiskLevel {
	return []RiskLevel{
		RiskLevelCritical,
		RiskLevelHigh,
		RiskLevelMedium,
		RiskLevelLow,
		RiskLevelVeryLow,
	}
}

// IsValid checks if the risk level is valid
func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskLevelCritical,
		RiskLevelHigh,
		RiskLevelMedium,
		RiskLevelLow,
		RiskLevelVeryLow:
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk level
func (l RiskLevel) String() string {
	return string(l)
}

// ParseRiskLevel parses a string into a RiskLevel
func ParseRiskLevel(s string) (RiskLevel, error) {
	l := RiskLevel(s)
	if !l.IsValid() {
		return "", fmt.Errorf("invalid risk level: %s", s)
	}
	return l, nil
}

// TreatmentEffect represents which risk factor a treatment plan reduces
type TreatmentEffect string

const (
	TreatmentReduceLikelihood TreatmentEffect = "reduce_likelihood"
	TreatmentReduceImpact     TreatmentEffect = "reduce_impact"
)

// IsValid checks if the treatment effect is valid
func (e TreatmentEffect) IsValid() bool {
	switch e {
	case TreatmentReduceLikelihood,
		TreatmentReduceImpact:
		return true
	default:
		return false
	}
}

// String returns the string representation of the treatment effect
func (e TreatmentEffect) String() string {
	return string(e)
}
