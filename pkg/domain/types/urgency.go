package types

import "fmt"

// ControlUrgency represents how quickly a recommended control should be
// implemented
type ControlUrgency string

const (
	UrgencyImmediate  ControlUrgency = "immediate"
	UrgencyShortTerm  ControlUrgency = "short_term"
	UrgencyMediumTerm ControlUrgency = "medium_term"
)

// AllControlUrgencies returns all valid urgencies, most urgent first
func AllControlUrgencies() []ControlUrgency {
	return []ControlUrgency{
		UrgencyImmediate,
		UrgencyShortTerm,
		UrgencyMediumTerm,
	}
}

// IsValid checks if the urgency is valid
func (u ControlUrgency) IsValid() bool {
	switch u {
	case UrgencyImmediate,
		UrgencyShortTerm,
		UrgencyMediumTerm:
		return true
	default:
		return false
	}
}

// Rank returns a comparable urgency rank. Lower is more urgent.
func (u ControlUrgency) Rank() int {
	switch u {
	case UrgencyImmediate:
		return 0
	case UrgencyShortTerm:
		return 1
	default:
		return 2
	}
}

// MoreUrgent returns the more urgent of the two urgencies
func (u ControlUrgency) MoreUrgent(other ControlUrgency) ControlUrgency {
	if other.Rank() < u.Rank() {
		return other
	}
	return u
}

// String returns the string representation of the urgency
func (u ControlUrgency) String() string {
	return string(u)
}

// ParseControlUrgency parses a string into a ControlUrgency
func ParseControlUrgency(s string) (ControlUrgency, error) {
	u := ControlUrgency(s)
	if !u.IsValid() {
		return "", fmt.Errorf("invalid control urgency: %s", s)
	}
	return u, nil
}
