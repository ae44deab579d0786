// Package scoring implements the threat scoring engine: a deterministic
// algorithmic strategy and an assisted strategy that delegates factor
// estimation to the completion service, both producing the same
// ThreatScore contract.
package scoring

import (
	"math"

	"github.com/aegis-sec/aegis/pkg/domain/types"
)

// Factor domains. T, V, I are integers on 1-10; E is an integer on 1-5.
const (
	FactorMin   = 1
	FactorMax   = 10
	ExposureMin = 1
	ExposureMax = 5
)

// RoundClamp rounds a factor to the nearest integer and then clamps it to
// [lo, hi]. Rounding happens before clamping so boundary values land
// deterministically; clamping an in-range value returns it unchanged.
func RoundClamp(v float64, lo, hi int) int {
	r := int(math.Round(v))
	if r < lo {
		return lo
	}
	if r > hi {
		return hi
	}
	return r
}

// Normalize maps a raw factor product onto the 0-100 scale:
// min(100, round(raw/divisor * baseWeight)).
func Normalize(raw int, divisor int, baseWeight float64) int {
	n := int(math.Round(float64(raw) / float64(divisor) * baseWeight))
	if n > 100 {
		return 100
	}
	return n
}

// Classify maps a normalized 0-100 score onto its classification bucket.
// Breakpoints are fixed and monotonic.
func Classify(normalized int) types.Classification {
	switch {
	case normalized >= 75:
		return types.ClassificationCritical
	case normalized >= 50:
		return types.ClassificationHigh
	case normalized >= 25:
		return types.ClassificationMedium
	default:
		return types.ClassificationLow
	}
}

// ClassifyProduct maps a raw likelihood x impact product on the 1-25 scale
// onto its five-step risk level. This scale is used by scenario
// progression only and is never mixed with the 0-100 scale.
func ClassifyProduct(product int) types.RiskLevel {
	switch {
	case product >= 20:
		return types.RiskLevelCritical
	case product >= 15:
		return types.RiskLevelHigh
	case product >= 10:
		return types.RiskLevelMedium
	case product >= 5:
		return types.RiskLevelLow
	default:
		return types.RiskLevelVeryLow
	}
}
