package interview

import (
	"sort"
	"strings"

	"github.com/aegis-sec/aegis/pkg/domain/model"
	"github.com/aegis-sec/aegis/pkg/domain/types"
)

// Question IDs the profile extractor reads. Absent answers leave the
// corresponding profile field at its zero value.
const (
	qPublicProfile    types.QuestionID = "public-profile-level"
	qNetWorthBracket  types.QuestionID = "net-worth-bracket"
	qTravelFrequency  types.QuestionID = "travel-frequency"
	qFamilyMembers    types.QuestionID = "family-composition"
	qCurrentMeasures  types.QuestionID = "current-security-measures"
	qRiskDestinations types.QuestionID = "high-risk-destinations"
	qThreatHistory    types.QuestionID = "threat-history"
	qActiveAdversary  types.QuestionID = "active-adversary"
)

// exposureLabels maps raw interview labels onto canonical exposure levels.
// Unrecognized labels fall through to ExposureNone.
var exposureLabels = map[string]types.ExposureLevel{
	"celebrity":     types.ExposureExtensive,
	"very_high":     types.ExposureExtensive,
	"international": types.ExposureExtensive,
	"national":      types.ExposureExtensive,
	"high":          types.ExposureSignificant,
	"prominent":     types.ExposureSignificant,
	"regional":      types.ExposureSignificant,
	"moderate":      types.ExposureModerate,
	"local":         types.ExposureModerate,
	"low":           types.ExposureMinimal,
	"minimal":       types.ExposureMinimal,
	"private":       types.ExposureMinimal,
}

// travelLabels maps raw travel labels onto canonical frequencies
var travelLabels = map[string]types.TravelFrequency{
	"constant":   types.TravelConstant,
	"weekly":     types.TravelConstant,
	"frequent":   types.TravelFrequent,
	"monthly":    types.TravelFrequent,
	"occasional": types.TravelOccasional,
	"quarterly":  types.TravelOccasional,
	"rare":       types.TravelRare,
	"annual":     types.TravelRare,
	"never":      types.TravelNone,
	"none":       types.TravelNone,
}

// netWorthBrackets maps raw bracket labels onto canonical bracket tags
var netWorthBrackets = map[string]string{
	"under_10m":   "under-10m",
	"under-10m":   "under-10m",
	"10m_50m":     "10m-50m",
	"10m-50m":     "10m-50m",
	"50m_250m":    "50m-250m",
	"50m-250m":    "50m-250m",
	"over_250m":   "over-250m",
	"over-250m":   "over-250m",
	"billionaire": "over-250m",
}

// ExtractProfile builds the subject profile from the answer set. It is
// total: missing or unrecognized answers map to zero values, never errors.
func ExtractProfile(answers model.AnswerSet) *model.SubjectProfile {
	profile := &model.SubjectProfile{
		ExposureLevel:   types.ExposureNone,
		TravelFrequency: types.TravelNone,
	}

	if label, ok := normalizedLower(answers.Get(qPublicProfile)); ok {
		if level, found := exposureLabels[label]; found {
			profile.ExposureLevel = level
		}
	}

	if label, ok := normalizedLower(answers.Get(qTravelFrequency)); ok {
		if freq, found := travelLabels[label]; found {
			profile.TravelFrequency = freq
		}
	}

	if label, ok := normalizedLower(answers.Get(qNetWorthBracket)); ok {
		if bracket, found := netWorthBrackets[label]; found {
			profile.NetWorthBracket = bracket
		}
	}

	profile.FamilyComposition = extractTags(answers.Get(qFamilyMembers))
	profile.CurrentMeasures = extractTags(answers.Get(qCurrentMeasures))
	profile.HighRiskDestinations = extractTags(answers.Get(qRiskDestinations))

	if b := NormalizeBool(answers.Get(qThreatHistory)); b != nil {
		profile.KnownThreatHistory = *b
	} else if s, ok := normalizedLower(answers.Get(qThreatHistory)); ok {
		profile.KnownThreatHistory = strings.Contains(s, "yes") || strings.Contains(s, "received")
	}

	if b := NormalizeBool(answers.Get(qActiveAdversary)); b != nil {
		profile.ActiveAdversary = *b
	} else if s, ok := normalizedLower(answers.Get(qActiveAdversary)); ok {
		profile.ActiveAdversary = strings.Contains(s, "yes") || strings.Contains(s, "known") || strings.Contains(s, "suspected")
	}

	return profile
}

// extractTags accepts either a comma-separated string or an already
// list-shaped answer, deduplicates via a set, and returns sorted tags
func extractTags(r *model.RawResponse) []string {
	if r == nil {
		return nil
	}

	var raw []string
	switch v := r.Answer.(type) {
	case []any:
		for _, item := range v {
			if s, ok := scalarToString(item); ok {
				raw = append(raw, s)
			}
		}
	case []string:
		raw = v
	default:
		if s, ok := NormalizeValue(r); ok {
			raw = strings.Split(s, ",")
		}
	}

	set := make(map[string]bool, len(raw))
	for _, item := range raw {
		tag := strings.ToLower(strings.TrimSpace(item))
		if tag == "" || tag == "none" {
			continue
		}
		set[tag] = true
	}
	if len(set) == 0 {
		return nil
	}

	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
