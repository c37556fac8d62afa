package llm

import "context"

type callKey struct{}

// call labels one Generate call for logging.
type call struct {
	purpose   string
	candidate string
}

func callFrom(ctx context.Context) call {
	c, _ := ctx.Value(callKey{}).(call)
	return c
}

// WithPurpose labels the calls made with ctx, e.g. "hr-evaluate".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	c := callFrom(ctx)
	c.purpose = purpose
	return context.WithValue(ctx, callKey{}, c)
}

// WithCandidate tags the calls made with ctx with a candidate ID.
func WithCandidate(ctx context.Context, id string) context.Context {
	c := callFrom(ctx)
	c.candidate = id
	return context.WithValue(ctx, callKey{}, c)
}

// PurposeFrom returns the purpose label, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if p := callFrom(ctx).purpose; p != "" {
		return p
	}
	return "unknown"
}

// CandidateFrom returns the candidate ID set by WithCandidate.
func CandidateFrom(ctx context.Context) string {
	return callFrom(ctx).candidate
}
