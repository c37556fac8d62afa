package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// MockResponse is one scripted reply. A non-nil Err is returned as is.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// TextResponse scripts a plain-text completion.
func TextResponse(text string) MockResponse {
	return MockResponse{Content: json.RawMessage(text)}
}

var errScriptExhausted = errors.New("mock: no scripted response left")

// MockProvider replays scripted replies in order and keeps every request
// it was given. It is the provider behind `provider: mock`, where it
// starts with an empty script.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse
	Calls  []Request
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

func (m *MockProvider) ModelID() string { return "mock" }

// AddResponse appends to the script.
func (m *MockProvider) AddResponse(r MockResponse) {
	m.mu.Lock()
	m.script = append(m.script, r)
	m.mu.Unlock()
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// next pops the head of the script.
func (m *MockProvider) next(req Request) (MockResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)
	if len(m.script) == 0 {
		return MockResponse{}, false
	}
	r := m.script[0]
	m.script = m.script[1:]
	return r, true
}

// Generate runs structured replies through the same fence stripping and
// schema check as the real providers.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	r, ok := m.next(req)
	if !ok {
		return nil, &ErrProviderUnavailable{Err: errScriptExhausted}
	}
	if r.Err != nil {
		return nil, r.Err
	}
	content, err := checkStructured(req.Schema, r.Content)
	if err != nil {
		return nil, err
	}
	return &Response{Content: content, Usage: r.Usage, Model: m.ModelID(), StopReason: "end"}, nil
}
