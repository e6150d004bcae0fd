package testutil

import (
	"context"
	"sync"

	"github.com/mkrogh/studyplan/internal/llm"
)

// FakeChatClient is a scripted ChatClient for tests. Responses are returned
// in order; once exhausted the last one repeats. A non-nil Err is returned
// for every call instead.
type FakeChatClient struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	Calls     [][]llm.Message
}

func (f *FakeChatClient) Complete(ctx context.Context, messages []llm.Message) (*llm.ChatResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, messages)
	if f.Err != nil {
		return nil, f.Err
	}

	idx := len(f.Calls) - 1
	if idx >= len(f.Responses) {
		idx = len(f.Responses) - 1
	}
	return &llm.ChatResponse{Content: f.Responses[idx], Model: "fake-model"}, nil
}
