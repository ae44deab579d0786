package catalog

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/aegis-sec/aegis/pkg/domain/types"
)

// ErrThreatNotFound is returned when a threat ID is not part of a catalog
var ErrThreatNotFound = goerr.New("threat not found in catalog")

// ThreatDefinition is one static catalog threat
type ThreatDefinition struct {
	ID         types.ThreatID
	Name       string
	Category   string
	BaseWeight float64
}

// Section groups interview questions and carries the expected answer count
// used by the completion validator
type Section struct {
	ID        types.SectionID
	Name      string
	Questions []types.QuestionID
}

// SignalRule is one declarative rule of the risk signal table. The rule
// fires when the normalized answer for QuestionID case-insensitively
// contains any of the BadAnswers substrings.
type SignalRule struct {
	QuestionID      types.QuestionID
	BadAnswers      []string
	Signal          string
	Severity        types.SignalSeverity
	Category        types.SignalCategory
	AffectedThreats []types.ThreatID
}

// Catalog is the fixed, versioned threat catalog and interview layout of one
// assessment template. Catalogs are process-wide read-only constants loaded
// once; they are never user-editable at runtime.
type Catalog struct {
	Template types.TemplateID
	Version  string

	// FourFactor selects the T x V x I x E model; three-factor catalogs
	// score T x V x I only.
	FourFactor bool

	// Divisor is the catalog-specific normalization ceiling: 50 for the
	// four-factor model, 125 for the three-factor model.
	Divisor int

	Threats  []ThreatDefinition
	Sections []Section
	Required []types.QuestionID
	Rules    []SignalRule
}

// Threat looks up a threat definition by ID. A missing entry is surfaced to
// the caller, never silently skipped.
func (c *Catalog) Threat(id types.ThreatID) (*ThreatDefinition, error) {
	for i := range c.Threats {
		if c.Threats[i].ID == id {
			return &c.Threats[i], nil
		}
	}
	return nil, goerr.Wrap(ErrThreatNotFound, "unknown threat ID",
		goerr.V("threat_id", id),
		goerr.V("template", c.Template),
	)
}

// TotalExpected returns the total number of questions the template expects
func (c *Catalog) TotalExpected() int {
	total := 0
	for _, s := range c.Sections {
		total += len(s.Questions)
	}
	return total
}

// Section looks up a section by ID
func (c *Catalog) Section(id types.SectionID) (*Section, error) {
	for i := range c.Sections {
		if c.Sections[i].ID == id {
			return &c.Sections[i], nil
		}
	}
	return nil, goerr.New("section not found in catalog", goerr.V("section_id", id))
}

// Validate checks catalog consistency: well-formed IDs, positive weights,
// rules referencing cataloged threats
func (c *Catalog) Validate() error {
	if err := c.Template.Validate(); err != nil {
		return goerr.Wrap(err, "invalid template ID")
	}
	if c.Divisor <= 0 {
		return goerr.New("catalog divisor must be positive", goerr.V("divisor", c.Divisor))
	}
	if len(c.Threats) == 0 {
		return goerr.New("catalog has no threats", goerr.V("template", c.Template))
	}

	seen := make(map[types.ThreatID]bool, len(c.Threats))
	for _, t := range c.Threats {
		if err := t.ID.Validate(); err != nil {
			return goerr.Wrap(err, "invalid threat ID in catalog")
		}
		if seen[t.ID] {
			return goerr.New("duplicate threat ID in catalog", goerr.V("threat_id", t.ID))
		}
		seen[t.ID] = true
		if t.BaseWeight <= 0 {
			return goerr.New("threat base weight must be positive",
				goerr.V("threat_id", t.ID), goerr.V("base_weight", t.BaseWeight))
		}
	}

	questions := make(map[types.QuestionID]bool)
	for _, s := range c.Sections {
		if err := s.ID.Validate(); err != nil {
			return goerr.Wrap(err, "invalid section ID in catalog")
		}
		for _, q := range s.Questions {
			if err := q.Validate(); err != nil {
				return goerr.Wrap(err, "invalid question ID in catalog", goerr.V("section_id", s.ID))
			}
			if questions[q] {
				return goerr.New("duplicate question ID in catalog", goerr.V("question_id", q))
			}
			questions[q] = true
		}
	}

	for _, q := range c.Required {
		if !questions[q] {
			return goerr.New("required question not present in any section", goerr.V("question_id", q))
		}
	}

	for _, r := range c.Rules {
		if !questions[r.QuestionID] {
			return goerr.New("signal rule references unknown question", goerr.V("question_id", r.QuestionID))
		}
		if !r.Severity.IsValid() {
			return goerr.New("signal rule has invalid severity",
				goerr.V("question_id", r.QuestionID), goerr.V("severity", r.Severity))
		}
		if !r.Category.IsValid() {
			return goerr.New("signal rule has invalid category",
				goerr.V("question_id", r.QuestionID), goerr.V("category", r.Category))
		}
		for _, id := range r.AffectedThreats {
			if !seen[id] {
				return goerr.New("signal rule references unknown threat",
					goerr.V("question_id", r.QuestionID), goerr.V("threat_id", id))
			}
		}
	}

	return nil
}

// Registry holds catalogs by template ID in registration order
type Registry struct {
	entries map[types.TemplateID]*Catalog
	order   []types.TemplateID
}

// NewRegistry creates an empty catalog registry
func NewRegistry() *Registry {
	return &Registry{entries: make(map[types.TemplateID]*Catalog)}
}

// Register adds or replaces a catalog in the registry
func (r *Registry) Register(c *Catalog) {
	if _, exists := r.entries[c.Template]; !exists {
		r.order = append(r.order, c.Template)
	}
	r.entries[c.Template] = c
}

// Get retrieves a catalog by template ID
func (r *Registry) Get(id types.TemplateID) (*Catalog, error) {
	c, ok := r.entries[id]
	if !ok {
		return nil, goerr.New("catalog not registered", goerr.V("template", id))
	}
	return c, nil
}

// List returns all registered catalogs in registration order
func (r *Registry) List() []*Catalog {
	out := make([]*Catalog, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id])
	}
	return out
}
