package types

import "fmt"

// SignalCategory represents which scoring factor a risk signal feeds
type SignalCategory string

const (
	SignalCategoryThreat          SignalCategory = "threat"
	SignalCategoryVulnerability   SignalCategory = "vulnerability"
	SignalCategoryExposure        SignalCategory = "exposure"
	SignalCategoryImpactAmplifier SignalCategory = "impact_amplifier"
)

// AllSignalCategories returns all valid signal categories
func AllSignalCategories() []SignalCategory {
	return []SignalCategory{
		SignalCategoryThreat,
		SignalCategoryVulnerability,
		SignalCategoryExposure,
		SignalCategoryImpactAmplifier,
	}
}

// IsValid checks if the signal category is valid
func (c SignalCategory) IsValid() bool {
	switch c {
	case SignalCategoryThreat,
		SignalCategoryVulnerability,
		SignalCategoryExposure,
		SignalCategoryImpactAmplifier:
		return true
	default:
		return false
	}
}

// String returns the string representation of the signal category
func (c SignalCategory) String() string {
	return string(c)
}

// SignalSeverity represents how strongly a risk signal should be weighted
type SignalSeverity string

const (
	SeverityIndicator         SignalSeverity = "indicator"
	SeverityConcern           SignalSeverity = "concern"
	SeverityCriticalIndicator SignalSeverity = "critical_indicator"
)

// AllSignalSeverities returns all valid signal severities
func AllSignalSeverities() []SignalSeverity {
	return []SignalSeverity{
		SeverityIndicator,
		SeverityConcern,
		SeverityCriticalIndicator,
	}
}

// IsValid checks if the signal severity is valid
func (s SignalSeverity) IsValid() bool {
	switch s {
	case SeverityIndicator,
		SeverityConcern,
		SeverityCriticalIndicator:
		return true
	default:
		return false
	}
}

// String returns the string representation of the signal severity
func (s SignalSeverity) String() string {
	return string(s)
}

// ParseSignalSeverity parses a string into a SignalSeverity
func ParseSignalSeverity(s string) (SignalSeverity, error) {
	sev := SignalSeverity(s)
	if !sev.IsValid() {
		return "", fmt.Errorf("invalid signal severity: %s", s)
	}
	return sev, nil
}
