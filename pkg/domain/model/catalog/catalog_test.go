package catalog_test

import (
	"errors"
	"testing"

	"github.com/aegis-sec/aegis/pkg/domain/model/catalog"
	"github.com/aegis-sec/aegis/pkg/domain/types"
)

func TestBuiltinCatalogsValidate(t *testing.T) {
	for _, c := range catalog.NewBuiltinRegistry().List() {
		if err := c.Validate(); err != nil {
			t.Errorf("builtin catalog %q failed validation: %v", c.Template, err)
		}
	}
}

func TestBuiltinExecutiveProtection(t *testing.T) {
	c := catalog.BuiltinExecutiveProtection()

	if !c.FourFactor {
		t.Error("executive protection catalog should be four-factor")
	}
	if c.Divisor != catalog.DivisorFourFactor {
		t.Errorf("Divisor = %d, want %d", c.Divisor, catalog.DivisorFourFactor)
	}
	if got := c.TotalExpected(); got != 40 {
		t.Errorf("TotalExpected = %d, want 40", got)
	}

	def, err := c.Threat("kidnapping")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.BaseWeight != 1.5 {
		t.Errorf("kidnapping base weight = %v, want 1.5", def.BaseWeight)
	}
}

func TestBuiltinFacility(t *testing.T) {
	c := catalog.BuiltinFacility()

	if c.FourFactor {
		t.Error("facility catalog should be three-factor")
	}
	if c.Divisor != catalog.DivisorThreeFactor {
		t.Errorf("Divisor = %d, want %d", c.Divisor, catalog.DivisorThreeFactor)
	}
}

func TestThreatLookupUnknown(t *testing.T) {
	c := catalog.BuiltinFacility()

	_, err := c.Threat("orbital-strike")
	if err == nil {
		t.Fatal("expected error for unknown threat ID")
	}
	if !errors.Is(err, catalog.ErrThreatNotFound) {
		t.Errorf("expected ErrThreatNotFound, got %v", err)
	}
}

func TestRegistry(t *testing.T) {
	r := catalog.NewBuiltinRegistry()

	c, err := r.Get(types.TemplateExecutiveProtection)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Template != types.TemplateExecutiveProtection {
		t.Errorf("Template = %v, want executive-protection", c.Template)
	}

	if _, err := r.Get(types.TemplateID("nonexistent")); err == nil {
		t.Error("expected error for unregistered template")
	}

	if got := len(r.List()); got != 2 {
		t.Errorf("List() returned %d catalogs, want 2", got)
	}
}

func TestCatalogValidateRejectsBadRule(t *testing.T) {
	c := catalog.BuiltinFacility()
	c.Rules = append(c.Rules, catalog.SignalRule{
		QuestionID:      "badge-system",
		BadAnswers:      []string{"no"},
		Signal:          "references a threat the catalog does not carry",
		Severity:        types.SeverityIndicator,
		Category:        types.SignalCategoryVulnerability,
		AffectedThreats: []types.ThreatID{"kidnapping"},
	})

	if err := c.Validate(); err == nil {
		t.Error("expected validation failure for rule referencing unknown threat")
	}
}
