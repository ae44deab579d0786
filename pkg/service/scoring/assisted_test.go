package scoring_test

import (
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/aegis-sec/aegis/pkg/domain/model"
	"github.com/aegis-sec/aegis/pkg/domain/types"
	"github.com/aegis-sec/aegis/pkg/service/scoring"
)

// mockLLMSession is a mock gollem Session for testing
type mockLLMSession struct {
	generateContentFn func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error)
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	if s.generateContentFn != nil {
		return s.generateContentFn(ctx, input...)
	}
	return &gollem.Response{Texts: []string{"{}"}}, nil
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) Generate(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
	return s.GenerateContent(ctx, input...)
}

func (s *mockLLMSession) Stream(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (<-chan *gollem.Response, error) {
	return s.GenerateStream(ctx, input...)
}

func (s *mockLLMSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *mockLLMSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

// mockLLMClient is a mock gollem LLMClient for testing
type mockLLMClient struct {
	newSessionFn func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error)
	response     string
	err          error
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	if c.newSessionFn != nil {
		return c.newSessionFn(ctx, options...)
	}
	return &mockLLMSession{
		generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
			if c.err != nil {
				return nil, c.err
			}
			return &gollem.Response{Texts: []string{c.response}}, nil
		},
	}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

func assistedInput() *scoring.Input {
	in := fourFactorInput(&model.SubjectProfile{
		ExposureLevel:      types.ExposureSignificant,
		TravelFrequency:    types.TravelFrequent,
		KnownThreatHistory: true,
	}, nil)
	in.AllowedControls = []*model.Control{
		{ID: "ctl-1", Name: "Executive Protection Detail", Category: "Targeted Violence", EstimatedCost: "$$$"},
		{ID: "ctl-2", Name: "Secure Transport Program", Category: "Mobility", EstimatedCost: "$$"},
	}
	return in
}

func TestAssistedScoreThreat(t *testing.T) {
	llm := &mockLLMClient{
		response: `{
			"threat_likelihood": 8,
			"vulnerability": 7,
			"impact": 9,
			"exposure": 4,
			"evidence": ["Documented threats and frequent exposure"],
			"control_gaps": ["No dedicated protection detail"],
			"priority_controls": [
				{"name": "Executive Protection Detail", "urgency": "immediate"},
				{"name": "Made Up Control", "urgency": "immediate"}
			]
		}`,
	}

	score, err := scoring.NewAssisted(llm).ScoreThreat(context.Background(), assistedInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if score.RawScore != 8*7*9*4 {
		t.Errorf("RawScore = %d, want %d", score.RawScore, 8*7*9*4)
	}
	if score.NormalizedScore != 60 {
		t.Errorf("NormalizedScore = %d, want 60", score.NormalizedScore)
	}
	if score.Classification != types.ClassificationHigh {
		t.Errorf("Classification = %v, want high", score.Classification)
	}
	if score.Confidence != types.ConfidenceHigh {
		t.Errorf("Confidence = %v, want high", score.Confidence)
	}
	if score.Adjustments != 0 {
		t.Errorf("Adjustments = %d, want 0 for in-range scores", score.Adjustments)
	}

	// The invented control name must be discarded, the library one kept.
	if len(score.PriorityControls) != 1 {
		t.Fatalf("got %d controls, want 1", len(score.PriorityControls))
	}
	if score.PriorityControls[0].Name != "Executive Protection Detail" {
		t.Errorf("control = %q, want library name", score.PriorityControls[0].Name)
	}
	if score.PriorityControls[0].EstimatedCost != "$$$" {
		t.Error("accepted control should be cost-enriched from the library")
	}
}

func TestAssistedClampsOutOfRange(t *testing.T) {
	llm := &mockLLMClient{
		response: `{
			"threat_likelihood": 14,
			"vulnerability": -2,
			"impact": 9,
			"exposure": 7,
			"evidence": [],
			"control_gaps": [],
			"priority_controls": []
		}`,
	}

	score, err := scoring.NewAssisted(llm).ScoreThreat(context.Background(), assistedInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if score.ThreatLikelihood != 10 || score.Vulnerability != 1 || score.Exposure != 5 {
		t.Errorf("factors = T%d V%d E%d, want clamped T10 V1 E5",
			score.ThreatLikelihood, score.Vulnerability, score.Exposure)
	}
	if score.Adjustments != 3 {
		t.Errorf("Adjustments = %d, want 3 clamped fields counted", score.Adjustments)
	}
	// Downstream math uses the clamped values only.
	if score.RawScore != 10*1*9*5 {
		t.Errorf("RawScore = %d, want %d", score.RawScore, 10*1*9*5)
	}
}

func TestAssistedFailsOnMalformedOutput(t *testing.T) {
	cases := []struct {
		name     string
		response string
	}{
		{"invalid JSON", `not json at all`},
		{"missing likelihood", `{"vulnerability": 5, "impact": 5, "exposure": 2}`},
		{"missing exposure on four-factor", `{"threat_likelihood": 5, "vulnerability": 5, "impact": 5}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			llm := &mockLLMClient{response: tc.response}
			_, err := scoring.NewAssisted(llm).ScoreThreat(context.Background(), assistedInput())
			if err == nil {
				t.Error("expected failure instead of silently defaulted scores")
			}
		})
	}
}

func TestAssistedPropagatesServiceError(t *testing.T) {
	llm := &mockLLMClient{err: goerr.New("completion service is down")}

	_, err := scoring.NewAssisted(llm).ScoreThreat(context.Background(), assistedInput())
	if err == nil {
		t.Fatal("expected error from failing completion service")
	}
}

func TestAssistedWithoutClient(t *testing.T) {
	if _, err := scoring.NewAssisted(nil).ScoreThreat(context.Background(), assistedInput()); err == nil {
		t.Fatal("expected error when no client is configured")
	}
}

func TestAssistedPromptCarriesDependents(t *testing.T) {
	var prompt string
	llm := &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mockLLMSession{
				generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					if len(input) > 0 {
						if txt, ok := input[0].(gollem.Text); ok {
							prompt = string(txt)
						}
					}
					resp := `{"threat_likelihood": 5, "vulnerability": 5, "impact": 5, "exposure": 2}`
					return &gollem.Response{Texts: []string{resp}}, nil
				},
			}, nil
		},
	}

	in := assistedInput()
	in.Profile.FamilyComposition = []string{"minor-children", "spouse"}

	if _, err := scoring.NewAssisted(llm).ScoreThreat(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(prompt, "Family composition: minor-children spouse") {
		t.Errorf("prompt should list family composition for subjects with dependents, got:\n%s", prompt)
	}

	// Without dependents the family block is omitted entirely.
	prompt = ""
	if _, err := scoring.NewAssisted(llm).ScoreThreat(context.Background(), assistedInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(prompt, "Family composition") {
		t.Error("prompt should omit the family block for subjects without dependents")
	}
}
