package dashboard

import "github.com/abhisek/mockinterview/internal/llm"

// FeedbackSchema defines the JSON schema for personalised career feedback.
var FeedbackSchema = &llm.Schema{
	Name:        "career-feedback",
	Description: "Personalised next steps for an interview candidate",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"technical_topics": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
				"maxItems":    3,
				"description": "The top 3 technical topics or concepts to focus on next",
			},
			"soft_skills": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Soft skill or HR-related improvements",
			},
			"career_advice": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Career advice or learning path to become job-ready in this domain",
			},
		},
		"required":             []any{"technical_topics", "soft_skills", "career_advice"},
		"additionalProperties": false,
	},
}
