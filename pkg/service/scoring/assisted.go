package scoring

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/aegis-sec/aegis/pkg/domain/model"
	"github.com/aegis-sec/aegis/pkg/domain/types"
	"github.com/aegis-sec/aegis/pkg/utils/logging"
)

//go:embed prompt/threat_assessment.md
var threatPromptTmpl string

var threatPrompt = template.Must(template.New("threat_assessment").Parse(threatPromptTmpl))

// Assisted delegates factor estimation to the completion service. Every
// numeric field in the response is independently clamped to its domain
// before use; out-of-range values are never trusted as-is. Parse failures
// and missing required numbers are reported as errors, never silently
// defaulted to zero scores.
type Assisted struct {
	llm gollem.LLMClient
}

// NewAssisted creates the assisted strategy around an injected LLM client
func NewAssisted(llm gollem.LLMClient) *Assisted {
	return &Assisted{llm: llm}
}

// Name returns the strategy name
func (a *Assisted) Name() string {
	return "assisted"
}

// threatPromptData holds all data for the threat assessment prompt template
type threatPromptData struct {
	ThreatName     string
	ThreatCategory string
	FourFactor     bool
	Profile        *model.SubjectProfile
	Signals        []*model.RiskSignal
	Completion     *model.CompletionStatus
	Controls       []*model.Control
}

// assistedControl is one recommended control in the service response
type assistedControl struct {
	Name    string `json:"name"`
	Urgency string `json:"urgency"`
}

// assistedResult is the JSON structure the completion service returns.
// Numeric fields are pointers so absent values are distinguishable from
// zero.
type assistedResult struct {
	ThreatLikelihood *float64          `json:"threat_likelihood"`
	Vulnerability    *float64          `json:"vulnerability"`
	Impact           *float64          `json:"impact"`
	Exposure         *float64          `json:"exposure"`
	Evidence         []string          `json:"evidence"`
	ControlGaps      []string          `json:"control_gaps"`
	PriorityControls []assistedControl `json:"priority_controls"`
}

// ScoreThreat builds the structured prompt, requests a JSON completion,
// and validates the response field by field
func (a *Assisted) ScoreThreat(ctx context.Context, in *Input) (*model.ThreatScore, error) {
	if a.llm == nil {
		return nil, goerr.New("completion service is not configured")
	}

	prompt, err := a.buildPrompt(in)
	if err != nil {
		return nil, err
	}

	session, err := a.llm.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(a.responseSchema(in.Catalog.FourFactor)),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create completion session",
			goerr.V("threat_id", in.Threat.ID),
		)
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return nil, goerr.Wrap(err, "completion request failed",
			goerr.V("threat_id", in.Threat.ID),
		)
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("completion returned no content", goerr.V("threat_id", in.Threat.ID))
	}

	var result assistedResult
	if err := json.Unmarshal([]byte(resp.Texts[0]), &result); err != nil {
		return nil, goerr.Wrap(err, "completion returned invalid JSON",
			goerr.V("threat_id", in.Threat.ID),
			goerr.V("response", resp.Texts[0]),
		)
	}

	return a.buildScore(ctx, in, &result)
}

// buildScore converts a parsed service response into a ThreatScore,
// clamping every numeric field on ingest
func (a *Assisted) buildScore(ctx context.Context, in *Input, result *assistedResult) (*model.ThreatScore, error) {
	if result.ThreatLikelihood == nil || result.Vulnerability == nil || result.Impact == nil {
		return nil, goerr.New("completion response is missing required score fields",
			goerr.V("threat_id", in.Threat.ID),
		)
	}
	if in.Catalog.FourFactor && result.Exposure == nil {
		return nil, goerr.New("completion response is missing the exposure score",
			goerr.V("threat_id", in.Threat.ID),
		)
	}

	adjustments := 0
	clamp := func(v float64, lo, hi int) int {
		clamped := RoundClamp(v, lo, hi)
		if v < float64(lo) || v > float64(hi) {
			adjustments++
			logging.From(ctx).Debug("clamped out-of-range completion score",
				"threat_id", in.Threat.ID,
				"value", v,
				"clamped", clamped,
			)
		}
		return clamped
	}

	score := &model.ThreatScore{
		ThreatID:         in.Threat.ID,
		ThreatName:       in.Threat.Name,
		ThreatLikelihood: clamp(*result.ThreatLikelihood, FactorMin, FactorMax),
		Vulnerability:    clamp(*result.Vulnerability, FactorMin, FactorMax),
		Impact:           clamp(*result.Impact, FactorMin, FactorMax),
		Confidence:       types.ConfidenceHigh,
		Evidence:         result.Evidence,
		ControlGaps:      result.ControlGaps,
	}

	score.RawScore = score.ThreatLikelihood * score.Vulnerability * score.Impact
	if in.Catalog.FourFactor {
		score.Exposure = clamp(*result.Exposure, ExposureMin, ExposureMax)
		score.RawScore *= score.Exposure
	}

	score.NormalizedScore = Normalize(score.RawScore, in.Catalog.Divisor, in.Threat.BaseWeight)
	score.Classification = Classify(score.NormalizedScore)
	score.Adjustments = adjustments
	score.PriorityControls = a.acceptControls(ctx, in, result.PriorityControls)

	return score, nil
}

// acceptControls keeps only recommendations whose names match the allowed
// control library exactly (case-insensitive); anything else is discarded
// as an invented name
func (a *Assisted) acceptControls(ctx context.Context, in *Input, recommended []assistedControl) []*model.ControlRecommendation {
	var out []*model.ControlRecommendation
	for _, rec := range recommended {
		var match *model.Control
		for _, ctrl := range in.AllowedControls {
			if strings.EqualFold(ctrl.Name, rec.Name) {
				match = ctrl
				break
			}
		}
		if match == nil {
			logging.From(ctx).Warn("discarding control not in library",
				"threat_id", in.Threat.ID,
				"control", rec.Name,
			)
			continue
		}

		urgency, err := types.ParseControlUrgency(rec.Urgency)
		if err != nil {
			urgency = types.UrgencyMediumTerm
		}

		out = append(out, &model.ControlRecommendation{
			Name:            match.Name,
			Category:        match.Category,
			Urgency:         urgency,
			AddressesThreat: []types.ThreatID{in.Threat.ID},
			EstimatedCost:   match.EstimatedCost,
		})
	}
	return out
}

func (a *Assisted) buildPrompt(in *Input) (string, error) {
	data := threatPromptData{
		ThreatName:     in.Threat.Name,
		ThreatCategory: in.Threat.Category,
		FourFactor:     in.Catalog.FourFactor,
		Profile:        in.Profile,
		Signals:        model.SignalsForThreat(in.Signals, in.Threat.ID),
		Completion:     in.Completion,
		Controls:       in.AllowedControls,
	}

	var buf bytes.Buffer
	if err := threatPrompt.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to execute threat assessment prompt template",
			goerr.V("threat_id", in.Threat.ID),
		)
	}
	return buf.String(), nil
}

func (a *Assisted) responseSchema(fourFactor bool) *gollem.Parameter {
	properties := map[string]*gollem.Parameter{
		"threat_likelihood": {
			Type:        gollem.TypeNumber,
			Description: "Threat likelihood on a 1-10 integer scale.",
			Required:    true,
		},
		"vulnerability": {
			Type:        gollem.TypeNumber,
			Description: "Vulnerability on a 1-10 integer scale.",
			Required:    true,
		},
		"impact": {
			Type:        gollem.TypeNumber,
			Description: "Impact on a 1-10 integer scale.",
			Required:    true,
		},
		"evidence": {
			Type:        gollem.TypeArray,
			Description: "Short evidence statements supporting the scores.",
			Items:       &gollem.Parameter{Type: gollem.TypeString},
			Required:    true,
		},
		"control_gaps": {
			Type:        gollem.TypeArray,
			Description: "Observed gaps in the subject's current controls.",
			Items:       &gollem.Parameter{Type: gollem.TypeString},
			Required:    true,
		},
		"priority_controls": {
			Type:        gollem.TypeArray,
			Description: "Up to three controls from the allowed list, by exact name.",
			Items: &gollem.Parameter{
				Type: gollem.TypeObject,
				Properties: map[string]*gollem.Parameter{
					"name": {
						Type:        gollem.TypeString,
						Description: "Exact control name from the allowed list.",
						Required:    true,
					},
					"urgency": {
						Type:        gollem.TypeString,
						Description: "One of: immediate, short_term, medium_term.",
						Required:    true,
					},
				},
			},
			Required: true,
		},
	}

	if fourFactor {
		properties["exposure"] = &gollem.Parameter{
			Type:        gollem.TypeNumber,
			Description: "Exposure on a 1-5 integer scale.",
			Required:    true,
		}
	}

	return &gollem.Parameter{
		Title:       "ThreatAssessment",
		Description: "Structured risk scores for one threat",
		Type:        gollem.TypeObject,
		Properties:  properties,
	}
}
