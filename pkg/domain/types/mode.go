package types

import "fmt"

// ScoringMode represents which strategy produced an assessment run
type ScoringMode string

const (
	// ModeAssisted means every threat was scored by the completion service.
	ModeAssisted ScoringMode = "assisted"
	// ModeHybrid means some threats fell back to the algorithmic strategy.
	ModeHybrid ScoringMode = "hybrid"
	// ModeAlgorithmic means every threat was scored deterministically.
	ModeAlgorithmic ScoringMode = "algorithmic"
)

// AllScoringModes returns all valid scoring modes
func AllScoringModes() []ScoringMode {
	return []ScoringMode{
		ModeAssisted,
		ModeHybrid,
		ModeAlgorithmic,
	}
}

// IsValid checks if the scoring mode is valid
func (m ScoringMode) IsValid() bool {
	switch m {
	case ModeAssisted,
		ModeHybrid,
		ModeAlgorithmic:
		return true
	default:
		return false
	}
}

// String returns the string representation of the scoring mode
func (m ScoringMode) String() string {
	return string(m)
}

// ParseScoringMode parses a string into a ScoringMode
func ParseScoringMode(s string) (ScoringMode, error) {
	m := ScoringMode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid scoring mode: %s", s)
	}
	return m, nil
}
