package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/abhisek/mockinterview/internal/llm"
	"github.com/abhisek/mockinterview/internal/results"
)

// Footer closes every rendered dashboard.
const Footer = "Recommendations powered by AI"

const (
	coachSystemPrompt   = "You are a career guidance coach."
	plannerSystemPrompt = "You are a job planning assistant."

	maxRoles = 5
)

// Feedback is the personalised guidance for a candidate.
type Feedback struct {
	TechnicalTopics []string `json:"technical_topics"`
	SoftSkills      []string `json:"soft_skills"`
	CareerAdvice    []string `json:"career_advice"`
}

// Advice bundles the AI parts of the dashboard. Either part may be missing
// when its call failed; the errors are kept for display.
type Advice struct {
	Feedback    *Feedback
	FeedbackErr error
	Roles       []string
	RolesErr    error
}

// AdvisorConfig controls the advisor calls.
type AdvisorConfig struct {
	MaxTokens int
}

// DefaultAdvisorConfig returns the default advisor settings.
func DefaultAdvisorConfig() AdvisorConfig {
	return AdvisorConfig{MaxTokens: 1024}
}

// Advisor asks the LLM for feedback and job roles, synchronously or in the
// background.
type Advisor struct {
	provider llm.Provider
	cfg      AdvisorConfig

	mu      sync.Mutex
	pending *Advice
	ready   bool
}

// NewAdvisor creates an Advisor.
func NewAdvisor(provider llm.Provider, cfg AdvisorConfig) *Advisor {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultAdvisorConfig().MaxTokens
	}
	return &Advisor{provider: provider, cfg: cfg}
}

// RequestAdvice starts generating advice for r in the background. A newer
// request replaces an unconsumed result.
func (a *Advisor) RequestAdvice(ctx context.Context, r *Report) {
	go func() {
		adv := a.Advise(ctx, r)
		a.mu.Lock()
		defer a.mu.Unlock()
		a.pending = adv
		a.ready = true
	}()
}

// ConsumeAdvice returns the pending advice if it is ready and clears the
// slot.
func (a *Advisor) ConsumeAdvice() (*Advice, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.ready {
		return nil, false
	}
	adv := a.pending
	a.pending = nil
	a.ready = false
	return adv, adv != nil
}

// Advise runs both calls and returns their combined outcome.
func (a *Advisor) Advise(ctx context.Context, r *Report) *Advice {
	adv := &Advice{}
	adv.Feedback, adv.FeedbackErr = a.Feedback(ctx, r.Domain, r.HR, r.Tech)
	adv.Roles, adv.RolesErr = a.JobRoles(ctx, r.Domain)
	return adv
}

// Feedback asks for focus topics, soft skills and career advice based on
// every answer the candidate gave.
func (a *Advisor) Feedback(ctx context.Context, domain string, hr, tech []results.Entry) (*Feedback, error) {
	ctx = llm.WithPurpose(ctx, "career-feedback")

	resp, err := a.provider.Generate(ctx, llm.Request{
		System: coachSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildFeedbackPrompt(domain, hr, tech)},
		},
		Schema:    FeedbackSchema,
		MaxTokens: a.cfg.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("career feedback: %w", err)
	}

	var fb Feedback
	if err := json.Unmarshal(resp.Content, &fb); err != nil {
		return nil, fmt.Errorf("parse career feedback: %w", err)
	}
	return &fb, nil
}

// JobRoles asks for beginner job titles to search for in domain.
func (a *Advisor) JobRoles(ctx context.Context, domain string) ([]string, error) {
	ctx = llm.WithPurpose(ctx, "job-planner")

	resp, err := a.provider.Generate(ctx, llm.Request{
		System: plannerSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPlannerPrompt(domain)},
		},
		MaxTokens: 256,
	})
	if err != nil {
		return nil, fmt.Errorf("job roles: %w", err)
	}
	return parseRoles(resp.Text()), nil
}

func buildFeedbackPrompt(domain string, hr, tech []results.Entry) string {
	var answers []string
	for _, list := range [][]results.Entry{hr, tech} {
		for _, e := range list {
			if a := strings.TrimSpace(e.Answer); a != "" {
				answers = append(answers, a)
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The candidate has completed an interview for the domain: %s.\n\n", domain)
	b.WriteString("Based on their responses below, suggest short and precise:\n")
	b.WriteString("1. The top 3 technical topics or concepts they should focus on next.\n")
	b.WriteString("2. Any soft skills or HR-related improvements.\n")
	b.WriteString("3. Career advice or learning path to become job-ready in this domain.\n\n")
	b.WriteString("Answers:\n")
	b.WriteString(strings.Join(answers, " "))
	b.WriteString("\n\nBe specific to the domain.")
	return b.String()
}

func buildPlannerPrompt(domain string) string {
	return fmt.Sprintf("You're helping a fresher in the %s domain find jobs.\n"+
		"What %d job titles or roles should they search for as a beginner?\n"+
		"Respond as a comma-separated list.", domain, maxRoles)
}

var listMarker = regexp.MustCompile(`^(?:[-*•]|\d+[.)])\s*`)

// parseRoles splits a comma or newline separated list, dropping list
// markers and duplicates.
func parseRoles(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == '\n' })
	seen := make(map[string]bool)
	var roles []string
	for _, f := range fields {
		f = strings.TrimSuffix(listMarker.ReplaceAllString(strings.TrimSpace(f), ""), ".")
		if f == "" || seen[strings.ToLower(f)] {
			continue
		}
		seen[strings.ToLower(f)] = true
		roles = append(roles, f)
		if len(roles) == maxRoles {
			break
		}
	}
	return roles
}
