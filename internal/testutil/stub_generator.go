package testutil

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/alexanderramin/studyplanner/internal/llm"
)

// StubGenerator is an llm.ContentGenerator returning canned text. ByTask
// entries win over the Responses queue; an exhausted queue yields a response
// with no candidates.
type StubGenerator struct {
	mu        sync.Mutex
	Responses []string
	ByTask    map[llm.TaskType]string
	Err       error
	ErrOnCall int // 1-based; 0 means Err applies to every call when set
	requests  []llm.GenerateRequest
}

// NewStubGenerator queues texts to be returned in call order.
func NewStubGenerator(texts ...string) *StubGenerator {
	return &StubGenerator{Responses: texts}
}

func (s *StubGenerator) GenerateContent(_ context.Context, req llm.GenerateRequest) (*genai.GenerateContentResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, req)
	if s.Err != nil && (s.ErrOnCall == 0 || s.ErrOnCall == len(s.requests)) {
		return nil, s.Err
	}
	if text, ok := s.ByTask[req.Task]; ok {
		return TextResponse(text), nil
	}
	if len(s.Responses) == 0 {
		return &genai.GenerateContentResponse{}, nil
	}
	text := s.Responses[0]
	s.Responses = s.Responses[1:]
	return TextResponse(text), nil
}

// Calls returns how many generations were requested.
func (s *StubGenerator) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Requests returns a copy of every request received.
func (s *StubGenerator) Requests() []llm.GenerateRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]llm.GenerateRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// TextResponse wraps text in the Gemini response shape.
func TextResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText(text, genai.RoleModel),
		}},
	}
}

// NewStubClient wraps gen in an llm.Client with default config.
func NewStubClient(gen llm.ContentGenerator) *llm.Client {
	return llm.NewClient(gen, llm.DefaultConfig(), llm.NoopObserver{}, zap.NewNop())
}
