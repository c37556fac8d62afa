// Package evaluate scores interview answers with an LLM.
package evaluate

// Outcome records how an evaluation was obtained.
type Outcome string

const (
	OutcomeParsed      Outcome = "parsed"
	OutcomeUnparseable Outcome = "unparseable"
	OutcomeFailed      Outcome = "failed"
)

// Confidence levels reported for HR answers.
const (
	ConfidenceLow    = "Low"
	ConfidenceMedium = "Medium"
	ConfidenceHigh   = "High"
)

// Evaluation is the scored result for one answer. Score is always in 0..10.
type Evaluation struct {
	Score      int
	Feedback   string
	Confidence string // HR only
	Outcome    Outcome
}

// Messages shown when no usable evaluation exists.
const (
	noFeedbackHR       = "No feedback provided."
	errorFeedbackHR    = "Error during evaluation."
	unrecognizedFormat = "LLM returned an unrecognized format."
)
