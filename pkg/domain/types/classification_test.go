package types_test

import (
	"testing"

	"github.com/aegis-sec/aegis/pkg/domain/types"
)

func TestClassificationIsValid(t *testing.T) {
	valid := []types.Classification{
		types.ClassificationCritical,
		types.ClassificationHigh,
		types.ClassificationMedium,
		types.ClassificationLow,
	}
	for _, c := range valid {
		if !c.IsValid() {
			t.Errorf("Classification %q should be valid", c)
		}
	}

	invalid := []types.Classification{"", "severe", "CRITICAL"}
	for _, c := range invalid {
		if c.IsValid() {
			t.Errorf("Classification %q should be invalid", c)
		}
	}
}

func TestClassificationRankOrdering(t *testing.T) {
	all := types.AllClassifications()
	for i := 1; i < len(all); i++ {
		if all[i-1].Rank() >= all[i].Rank() {
			t.Errorf("expected %q to rank more severe than %q", all[i-1], all[i])
		}
	}
}

func TestParseClassification(t *testing.T) {
	c, err := types.ParseClassification("high")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != types.ClassificationHigh {
		t.Errorf("ParseClassification = %v, want %v", c, types.ClassificationHigh)
	}

	if _, err := types.ParseClassification("unknown"); err == nil {
		t.Error("expected error for unknown classification")
	}
}

func TestConfidenceDegrade(t *testing.T) {
	cases := []struct {
		in   types.Confidence
		want types.Confidence
	}{
		{types.ConfidenceHigh, types.ConfidenceMedium},
		{types.ConfidenceMedium, types.ConfidenceLow},
		{types.ConfidenceLow, types.ConfidenceLow},
		{types.ConfidenceFallback, types.ConfidenceFallback},
	}
	for _, tc := range cases {
		if got := tc.in.Degrade(); got != tc.want {
			t.Errorf("Degrade(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestControlUrgencyMoreUrgent(t *testing.T) {
	if got := types.UrgencyMediumTerm.MoreUrgent(types.UrgencyImmediate); got != types.UrgencyImmediate {
		t.Errorf("MoreUrgent = %q, want immediate", got)
	}
	if got := types.UrgencyImmediate.MoreUrgent(types.UrgencyShortTerm); got != types.UrgencyImmediate {
		t.Errorf("MoreUrgent = %q, want immediate", got)
	}
}

func TestTemplateIDValidate(t *testing.T) {
	// Any well-formed ID validates, not just the built-in templates,
	// so file-loaded catalogs can introduce new templates.
	valid := []types.TemplateID{
		types.TemplateExecutiveProtection,
		types.TemplateFacility,
		"data-center",
		"regional_office",
	}
	for _, id := range valid {
		if err := id.Validate(); err != nil {
			t.Errorf("TemplateID %q should be valid: %v", id, err)
		}
	}

	invalid := []types.TemplateID{"", "Data-Center", "data center", "-leading"}
	for _, id := range invalid {
		if err := id.Validate(); err == nil {
			t.Errorf("TemplateID %q should be invalid", id)
		}
	}
}

func TestThreatIDValidate(t *testing.T) {
	valid := []types.ThreatID{"kidnapping", "insider-threat", "home_invasion", "threat2"}
	for _, id := range valid {
		if err := id.Validate(); err != nil {
			t.Errorf("ThreatID %q should be valid: %v", id, err)
		}
	}

	invalid := []types.ThreatID{"", "Kidnapping", "threat id", "-leading"}
	for _, id := range invalid {
		if err := id.Validate(); err == nil {
			t.Errorf("ThreatID %q should be invalid", id)
		}
	}
}
