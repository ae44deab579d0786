package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

var idPattern = regexp.MustCompile(`^[a-z0-9]+([_-][a-z0-9]+)*$`)

// ThreatID represents a unique identifier for a catalog threat
type ThreatID string

// Validate checks if the ThreatID is valid
func (t ThreatID) Validate() error {
	if t == "" {
		return goerr.New("threat ID cannot be empty")
	}
	if !idPattern.MatchString(string(t)) {
		return goerr.New("threat ID must be lowercase alphanumeric with hyphens or underscores", goerr.V("id", t))
	}
	return nil
}

// String returns the string representation of ThreatID
func (t ThreatID) String() string {
	return string(t)
}

// QuestionID represents a unique identifier for an interview question
type QuestionID string

// Validate checks if the QuestionID is valid
func (q QuestionID) Validate() error {
	if q == "" {
		return goerr.New("question ID cannot be empty")
	}
	if !idPattern.MatchString(string(q)) {
		return goerr.New("question ID must be lowercase alphanumeric with hyphens or underscores", goerr.V("id", q))
	}
	return nil
}

// String returns the string representation of QuestionID
func (q QuestionID) String() string {
	return string(q)
}

// SectionID represents a unique identifier for an interview section
type SectionID string

// Validate checks if the SectionID is valid
func (s SectionID) Validate() error {
	if s == "" {
		return goerr.New("section ID cannot be empty")
	}
	if !idPattern.MatchString(string(s)) {
		return goerr.New("section ID must be lowercase alphanumeric with hyphens or underscores", goerr.V("id", s))
	}
	return nil
}

// String returns the string representation of SectionID
func (s SectionID) String() string {
	return string(s)
}

// ControlID represents a unique identifier for a control library entry
type ControlID string

// Validate checks if the ControlID is valid
func (c ControlID) Validate() error {
	if c == "" {
		return goerr.New("control ID cannot be empty")
	}
	if !idPattern.MatchString(string(c)) {
		return goerr.New("control ID must be lowercase alphanumeric with hyphens or underscores", goerr.V("id", c))
	}
	return nil
}

// String returns the string representation of ControlID
func (c ControlID) String() string {
	return string(c)
}
