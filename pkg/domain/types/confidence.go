package types

import "fmt"

// Confidence represents how much of an assessment relied on the assisted
// scoring strategy versus the algorithmic fallback
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	// ConfidenceFallback marks a result produced entirely without the
	// completion service.
	ConfidenceFallback Confidence = "fallback"
)

// AllConfidences returns all valid confidence values
func AllConfidences() []Confidence {
	return []Confidence{
		ConfidenceHigh,
		ConfidenceMedium,
		ConfidenceLow,
		ConfidenceFallback,
	}
}

// IsValid checks if the confidence value is valid
func (c Confidence) IsValid() bool {
	switch c {
	case ConfidenceHigh,
		ConfidenceMedium,
		ConfidenceLow,
		ConfidenceFallback:
		return true
	default:
		return false
	}
}

// Degrade returns the confidence one step lower. Fallback stays fallback.
func (c Confidence) Degrade() Confidence {
	switch c {
	case ConfidenceHigh:
		return ConfidenceMedium
	case ConfidenceMedium:
		return ConfidenceLow
	default:
		return c
	}
}

// String returns the string representation of the confidence value
func (c Confidence) String() string {
	return string(c)
}

// ParseConfidence parses a string into a Confidence
func ParseConfidence(s string) (Confidence, error) {
	c := Confidence(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid confidence: %s", s)
	}
	return c, nil
}
