// Package interview turns raw interview answers into the canonical inputs
// of the scoring engine: normalized values, a subject profile, risk
// signals, and a completion status. Everything here is pure and total;
// malformed input degrades to an absent value instead of raising.
package interview

import (
	"strconv"
	"strings"

	"github.com/aegis-sec/aegis/pkg/domain/model"
)

// NormalizeValue converts a raw response into its canonical string value.
// A structured record yields its fullResponse when present, otherwise its
// answer. The second return value is false when no answer is present.
// Normalization is idempotent: a canonical string normalizes to itself.
func NormalizeValue(r *model.RawResponse) (string, bool) {
	if r == nil {
		return "", false
	}

	if r.FullResponse != "" {
		return r.FullResponse, true
	}

	return scalarToString(r.Answer)
}

func scalarToString(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		if val == "" {
			return "", false
		}
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	default:
		return "", false
	}
}

// NormalizeBool converts a raw response into a boolean. Returns nil when
// the answer is absent or not interpretable as a boolean.
func NormalizeBool(r *model.RawResponse) *bool {
	if r == nil {
		return nil
	}

	if b, ok := r.Answer.(bool); ok {
		return &b
	}

	s, ok := NormalizeValue(r)
	if !ok {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		v := true
		return &v
	case "false", "no", "n", "0":
		v := false
		return &v
	default:
		return nil
	}
}

// normalizedLower returns the lower-cased canonical value for matching.
// The stored normalized value preserves original case; lowering is only
// applied at match time.
func normalizedLower(r *model.RawResponse) (string, bool) {
	s, ok := NormalizeValue(r)
	if !ok {
		return "", false
	}
	return strings.ToLower(s), true
}
