// Package classify identifies the job domain of a job description.
package classify

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/mockinterview/internal/llm"
)

// InvalidLabel is returned for inputs that are not job descriptions.
const InvalidLabel = "Invalid job description"

const systemPrompt = "You are a job title classification assistant. " +
	"Identify the most accurate and specific job title or domain from the given job description. " +
	"If the input is not a valid job description, respond strictly with: Invalid job description. " +
	"Do NOT explain or apologize. Just return the job title or 'Invalid job description'."

// Classifier maps a job description to a job title or domain label.
type Classifier struct {
	provider llm.Provider
}

// New creates a Classifier backed by provider.
func New(provider llm.Provider) *Classifier {
	return &Classifier{provider: provider}
}

// Classify returns the domain label for jd. It never fails: errors come back
// as a label that IsInvalid recognizes.
func (c *Classifier) Classify(ctx context.Context, jd string) string {
	jd = strings.TrimSpace(jd)
	if jd == "" {
		return InvalidLabel
	}

	ctx = llm.WithPurpose(ctx, "domain-classify")
	resp, err := c.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: jd},
		},
		MaxTokens: 64,
	})
	if err != nil {
		return fmt.Sprintf("An error occurred while identifying the domain: %v", err)
	}

	label := firstLine(resp.Text())
	if label == "" {
		return InvalidLabel
	}
	return label
}

// IsInvalid reports whether label is a failure rather than a domain.
func IsInvalid(label string) bool {
	l := strings.ToLower(label)
	return strings.Contains(l, "invalid") || strings.Contains(l, "error occurred")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return strings.Trim(strings.TrimSpace(line), `"'`)
}
