package llm

import (
	"context"
	"sync"

	"google.golang.org/genai"
)

// stubGenerator returns canned responses and records every request.
type stubGenerator struct {
	mu        sync.Mutex
	responses []*genai.GenerateContentResponse
	err       error
	requests  []GenerateRequest
}

func newTextStub(texts ...string) *stubGenerator {
	s := &stubGenerator{}
	for _, t := range texts {
		s.responses = append(s.responses, textResponse(t))
	}
	return s
}

func (s *stubGenerator) GenerateContent(_ context.Context, req GenerateRequest) (*genai.GenerateContentResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.responses) == 0 {
		return &genai.GenerateContentResponse{}, nil
	}
	resp := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return resp, nil
}

func (s *stubGenerator) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

type recordingObserver struct {
	events []LLMCallEvent
}

func (o *recordingObserver) OnCallComplete(e LLMCallEvent) {
	o.events = append(o.events, e)
}
