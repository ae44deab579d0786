package types

import "github.com/m-mizutani/goerr/v2"

// TemplateID identifies an assessment template and its threat catalog.
// Beyond the built-in templates, new IDs may be introduced by file-loaded
// catalogs, so validity is a format check rather than an enum membership.
type TemplateID string

const (
	// TemplateExecutiveProtection is the person-centric template scored with
	// the four-factor T x V x I x E model.
	TemplateExecutiveProtection TemplateID = "executive-protection"

	// TemplateFacility is the facility template scored with the three-factor
	// T x V x I model.
	TemplateFacility TemplateID = "facility"
)

// AllTemplateIDs returns all built-in template IDs
func AllTemplateIDs() []TemplateID {
	return []TemplateID{
		TemplateExecutiveProtection,
		TemplateFacility,
	}
}

// Validate checks if the TemplateID is well-formed
func (t TemplateID) Validate() error {
	if t == "" {
		return goerr.New("template ID cannot be empty")
	}
	if !idPattern.MatchString(string(t)) {
		return goerr.New("template ID must be lowercase alphanumeric with hyphens or underscores", goerr.V("id", t))
	}
	return nil
}

// String returns the string representation of the template ID
func (t TemplateID) String() string {
	return string(t)
}
