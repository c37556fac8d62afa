package transcribe

import (
	"context"
	"sync"

	"github.com/abhisek/mockinterview/internal/voice"
)

// Mock returns queued results in order. When the queue is empty it
// returns Fallback, or an empty transcript if Fallback is nil.
type Mock struct {
	mu       sync.Mutex
	queue    []mockReply
	calls    int
	Fallback *Result
}

type mockReply struct {
	res *Result
	err error
}

// NewMock creates a Mock that answers with texts in order.
func NewMock(texts ...string) *Mock {
	m := &Mock{}
	for _, t := range texts {
		m.Push(&Result{Text: t, Language: "en"}, nil)
	}
	return m
}

// Push appends a reply to the queue.
func (m *Mock) Push(res *Result, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, mockReply{res: res, err: err})
}

// Calls returns how many times Transcribe was called.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *Mock) Transcribe(ctx context.Context, rec *voice.Recording) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if len(m.queue) == 0 {
		if m.Fallback != nil {
			return m.Fallback, nil
		}
		return &Result{}, nil
	}
	r := m.queue[0]
	m.queue = m.queue[1:]
	return r.res, r.err
}
