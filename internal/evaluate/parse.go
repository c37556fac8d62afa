package evaluate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	hrScoreRe      = regexp.MustCompile(`(?m)^Score:\s*(\d+)`)
	hrFeedbackRe   = regexp.MustCompile(`(?m)^Feedback:\s*(.+)`)
	hrConfidenceRe = regexp.MustCompile(`(?mi)^Confidence Level:\s*(Low|Medium|High)`)

	techScoreRe    = regexp.MustCompile(`Score:\s*(\d+)/10`)
	techFeedbackRe = regexp.MustCompile(`(?s)Feedback:\s*(.+)`)
)

// ParseHR reads the three-line HR evaluation format. A missing Feedback
// line makes the whole reply unusable.
func ParseHR(text string) Evaluation {
	text = strings.TrimSpace(text)

	fb := hrFeedbackRe.FindStringSubmatch(text)
	if fb == nil {
		return Evaluation{
			Score:      0,
			Feedback:   noFeedbackHR,
			Confidence: parseConfidence(text),
			Outcome:    OutcomeUnparseable,
		}
	}

	score := 0
	if m := hrScoreRe.FindStringSubmatch(text); m != nil {
		score = clampScore(m[1])
	}

	return Evaluation{
		Score:      score,
		Feedback:   strings.TrimSpace(fb[1]),
		Confidence: parseConfidence(text),
		Outcome:    OutcomeParsed,
	}
}

func parseConfidence(text string) string {
	m := hrConfidenceRe.FindStringSubmatch(text)
	if m == nil {
		return ConfidenceLow
	}
	l := strings.ToLower(m[1])
	return strings.ToUpper(l[:1]) + l[1:]
}

// ParseTechnical reads "Score: n/10" and "Feedback: ...". Both are required.
// Feedback runs to the end of the reply.
func ParseTechnical(text string) Evaluation {
	text = strings.TrimSpace(text)

	sm := techScoreRe.FindStringSubmatch(text)
	fm := techFeedbackRe.FindStringSubmatch(text)
	if sm == nil || fm == nil {
		return Evaluation{Score: 0, Feedback: unrecognizedFormat, Outcome: OutcomeUnparseable}
	}

	return Evaluation{
		Score:    clampScore(sm[1]),
		Feedback: strings.TrimSpace(fm[1]),
		Outcome:  OutcomeParsed,
	}
}

func clampScore(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		// Overflowing digit runs are far above the scale.
		return 10
	}
	return max(0, min(10, n))
}
