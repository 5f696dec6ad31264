// Package assist is the AI helper API. Requests and responses are opaque
// JSON; the typed requests in dto.go are conveniences, not a contract.
package assist

import (
	"encoding/json"
	"fmt"
)

// Operation names an assist endpoint
type Operation string

const (
	OpJobMatches         Operation = "job-matches"
	OpAnalyzeResume      Operation = "analyze-resume"
	OpInterviewQuestions Operation = "interview-questions"
	OpEvaluateAnswer     Operation = "evaluate-answer"
)

// Operations lists every assist endpoint
var Operations = []Operation{OpJobMatches, OpAnalyzeResume, OpInterviewQuestions, OpEvaluateAnswer}

// Result is the raw response of an assist call
type Result json.RawMessage

// Decode unmarshals the result into out
func (r Result) Decode(out any) error {
	if len(r) == 0 {
		return fmt.Errorf("empty assist result")
	}
	return json.Unmarshal(r, out)
}

// Pretty renders the result indented, for display
func (r Result) Pretty() string {
	var v any
	if err := json.Unmarshal(r, &v); err != nil {
		return string(r)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return string(r)
	}
	return string(out)
}

// MarshalJSON keeps the raw bytes
func (r Result) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

// UnmarshalJSON stores the raw bytes
func (r *Result) UnmarshalJSON(data []byte) error {
	*r = append((*r)[:0], data...)
	return nil
}
