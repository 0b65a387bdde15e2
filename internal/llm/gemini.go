package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"google.golang.org/genai"
)

// GeminiGenerator implements ContentGenerator against the hosted Gemini API.
// The underlying SDK client is created on first use so that a process with no
// API key can still start; calls then fail with ErrMissingAPIKey.
type GeminiGenerator struct {
	cfg        LLMConfig
	httpClient *http.Client

	mu     sync.Mutex
	client *genai.Client
}

// NewGeminiGenerator creates a generator for the Gemini API.
func NewGeminiGenerator(cfg LLMConfig) *GeminiGenerator {
	return &GeminiGenerator{cfg: cfg}
}

// WithHTTPClient overrides the transport used by the SDK.
func (g *GeminiGenerator) WithHTTPClient(c *http.Client) *GeminiGenerator {
	g.httpClient = c
	return g
}

func (g *GeminiGenerator) sdk(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return g.client, nil
	}
	if g.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	cc := &genai.ClientConfig{
		APIKey:     g.cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.httpClient,
	}
	if g.cfg.Endpoint != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: g.cfg.Endpoint}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	g.client = client
	return client, nil
}

func (g *GeminiGenerator) GenerateContent(ctx context.Context, req GenerateRequest) (*genai.GenerateContentResponse, error) {
	client, err := g.sdk(ctx)
	if err != nil {
		return nil, err
	}

	model := req.Model
	if model == "" {
		model = g.cfg.Model
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(req.Sampling.Temperature)),
		TopP:            genai.Ptr(float32(req.Sampling.TopP)),
		TopK:            genai.Ptr(float32(req.Sampling.TopK)),
		MaxOutputTokens: int32(req.Sampling.MaxOutputTokens),
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), config)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}
	return resp, nil
}
