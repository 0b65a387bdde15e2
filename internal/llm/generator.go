package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GenerateRequest holds the parameters for a single content generation call.
type GenerateRequest struct {
	Task     TaskType
	Model    string
	Sampling Sampling
	Prompt   string
}

// ContentGenerator is the outbound seam to a generative model. Implementations
// return the Gemini response shape so that callers read generated text from a
// single, well-known path regardless of provider.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, req GenerateRequest) (*genai.GenerateContentResponse, error)
}

// NewGenerator builds the ContentGenerator selected by cfg.Provider.
func NewGenerator(cfg LLMConfig) (ContentGenerator, error) {
	switch cfg.Provider {
	case ProviderGemini, "":
		return NewGeminiGenerator(cfg), nil
	case ProviderOllama:
		return NewOllamaGenerator(cfg), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// ResponseText returns the generated text found at
// candidates[0].content.parts. Thought parts are skipped. A response without
// text at that path yields ErrEmptyResponse.
func ResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return "", ErrEmptyResponse
	}
	for _, part := range cand.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		if part.Text != "" {
			return part.Text, nil
		}
	}
	return "", ErrEmptyResponse
}

// textResponse wraps plain text in the Gemini response shape.
func textResponse(text string) *genai.GenerateContentResponse {
	if text == "" {
		return &genai.GenerateContentResponse{}
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText(text, genai.RoleModel),
		}},
	}
}
