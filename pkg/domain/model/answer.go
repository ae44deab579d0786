package model

import (
	"encoding/json"

	"github.com/aegis-sec/aegis/pkg/domain/types"
)

// RawResponse is one interview answer as recorded. The interview UI sends
// either a bare scalar (string, bool, number) or a structured record with
// answer / details / raw / fullResponse fields. Both shapes decode into this
// one canonical struct so downstream components only ever see a single type.
type RawResponse struct {
	// Answer holds the scalar answer value: string, bool or float64.
	Answer any `json:"answer,omitempty" firestore:"answer,omitempty"`
	// Details holds free-form elaboration provided by the interviewee.
	Details string `json:"details,omitempty" firestore:"details,omitempty"`
	// Raw marks an answer recorded verbatim without interviewer cleanup.
	Raw *bool `json:"raw,omitempty" firestore:"raw,omitempty"`
	// FullResponse is the complete narrative answer. When present it takes
	// precedence over Answer during normalization.
	FullResponse string `json:"fullResponse,omitempty" firestore:"full_response,omitempty"`
}

// rawResponseRecord mirrors the structured wire shape for decoding
type rawResponseRecord struct {
	Answer       any    `json:"answer"`
	Details      string `json:"details"`
	Raw          *bool  `json:"raw"`
	FullResponse string `json:"fullResponse"`
}

// UnmarshalJSON accepts both the bare-scalar and the structured record shape.
// Malformed input yields an empty response rather than an error so a single
// bad answer cannot sink a whole answer set.
func (r *RawResponse) UnmarshalJSON(data []byte) error {
	var record rawResponseRecord
	if err := json.Unmarshal(data, &record); err == nil {
		*r = RawResponse{
			Answer:       record.Answer,
			Details:      record.Details,
			Raw:          record.Raw,
			FullResponse: record.FullResponse,
		}
		return nil
	}

	var scalar any
	if err := json.Unmarshal(data, &scalar); err == nil {
		*r = RawResponse{Answer: scalar}
		return nil
	}

	*r = RawResponse{}
	return nil
}

// IsEmpty reports whether the response carries no answer at all
func (r *RawResponse) IsEmpty() bool {
	if r == nil {
		return true
	}
	return r.Answer == nil && r.FullResponse == "" && r.Details == ""
}

// AnswerSet maps question IDs to their recorded responses
type AnswerSet map[types.QuestionID]*RawResponse

// Get returns the response for a question, or nil when unanswered
func (s AnswerSet) Get(id types.QuestionID) *RawResponse {
	if s == nil {
		return nil
	}
	return s[id]
}
