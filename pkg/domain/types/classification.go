package types

import "fmt"

// Classification represents the risk classification bucket derived from a
// normalized 0-100 threat score
type Classification string

const (
	ClassificationCritical Classification = "critical"
	ClassificationHigh     Classification = "high"
	ClassificationMedium   Classification = "medium"
	ClassificationLow      Classification = "low"
)

// AllClassifications returns all valid classifications, most severe first
func AllClassifications() []Classification {
	return []Classification{
		ClassificationCritical,
		ClassificationHigh,
		ClassificationMedium,
		ClassificationLow,
	}
}

// IsValid checks if the classification is valid
func (c Classification) IsValid() bool {
	switch c {
	case ClassificationCritical,
		ClassificationHigh,
		ClassificationMedium,
		ClassificationLow:
		return true
	default:
		return false
	}
}

// Rank returns a comparable severity rank. Lower is more severe.
func (c Classification) Rank() int {
	switch c {
	case ClassificationCritical:
		return 0
	case ClassificationHigh:
		return 1
	case ClassificationMedium:
		return 2
	default:
		return 3
	}
}

// String returns the string representation of the classification
func (c Classification) String() string {
	return string(c)
}

// ParseClassification parses a string into a Classification
func ParseClassification(s string) (Classification, error) {
	c := Classification(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid classification: %s", s)
	}
	return c, nil
}
