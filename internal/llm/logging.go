package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/mockinterview/internal/logger"
	"github.com/abhisek/mockinterview/internal/store"
)

// Responses are clipped to this many bytes in the zap log; the event log
// keeps them whole.
const logPreview = 200

// LoggingProvider records each call in the event log and the zap log.
// Recording failures are logged and never fail the call.
type LoggingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
	log      *zap.Logger
}

// WithLogging wraps p. Either sink may be nil.
func WithLogging(p Provider, providerName string, events store.EventRepo, log *zap.Logger) Provider {
	return &LoggingProvider{
		inner:    p,
		provider: providerName,
		events:   events,
		log:      logger.WithCommonFields(log, providerName, p.ModelID()),
	}
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	ev := l.event(ctx, req, resp, err, time.Since(start))

	fields := []zap.Field{zap.String("purpose", ev.Purpose), zap.Int64("latency_ms", ev.LatencyMs)}
	if id := CandidateFrom(ctx); id != "" {
		fields = append(fields, zap.String("candidate_id", id))
	}
	if err != nil {
		l.log.Warn("llm request failed", append(fields, zap.Error(err))...)
	} else {
		fields = append(fields,
			zap.Int("input_tokens", ev.InputTokens),
			zap.Int("output_tokens", ev.OutputTokens),
			zap.String("response", logger.TruncateForLog(ev.ResponseBody, logPreview)),
		)
		if price := LookupCost(ev.Model); price != nil {
			fields = append(fields, zap.Float64("cost_usd", price.Cost(ev.InputTokens, ev.OutputTokens)))
		}
		l.log.Debug("llm request", fields...)
	}

	if l.events != nil {
		if werr := l.events.AppendLLMRequest(ctx, ev); werr != nil {
			l.log.Warn("failed to record llm request event", zap.Error(werr))
		}
	}
	return resp, err
}

func (l *LoggingProvider) event(ctx context.Context, req Request, resp *Response, err error, took time.Duration) store.LLMRequestEventData {
	ev := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   took.Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}
	if resp != nil {
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
		if resp.Model != "" {
			ev.Model = resp.Model
		}
	}
	return ev
}

// transcript renders a request as labelled blocks: system prompt, each
// message, then the schema as compact JSON.
func transcript(req Request) string {
	var blocks []string
	if req.System != "" {
		blocks = append(blocks, "[system]\n"+req.System)
	}
	for _, m := range req.Messages {
		blocks = append(blocks, fmt.Sprintf("[%s]\n%s", m.Role, m.Content))
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			blocks = append(blocks, fmt.Sprintf("[schema: %s]\n%s", req.Schema.Name, def))
		}
	}
	return strings.Join(blocks, "\n\n")
}
