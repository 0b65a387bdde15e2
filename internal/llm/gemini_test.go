package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiGenerator_MissingAPIKeyFailsAtCallTime(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = ""

	gen := NewGeminiGenerator(cfg)
	_, err := gen.GenerateContent(context.Background(), GenerateRequest{Prompt: "p"})

	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestGeminiGenerator_GenerateContent(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.5-flash:generateContent"), r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"result\":{\"ok\":true}}"}]}}]}`))
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.APIKey = "test-key"
	cfg.Endpoint = srv.URL + "/"

	client := NewClient(NewGeminiGenerator(cfg).WithHTTPClient(srv.Client()), cfg, nil, nil)
	got, err := CallStructured[map[string]bool](context.Background(), client, TaskAnalysis, "analyse", "{}")

	require.NoError(t, err)
	assert.True(t, got["ok"])
	assert.Contains(t, body, "contents")
	assert.Contains(t, body, "generationConfig")
}

func TestNewGenerator_SelectsProvider(t *testing.T) {
	cfg := DefaultConfig()

	gen, err := NewGenerator(cfg)
	require.NoError(t, err)
	assert.IsType(t, &GeminiGenerator{}, gen)

	cfg.Provider = ProviderOllama
	gen, err = NewGenerator(cfg)
	require.NoError(t, err)
	assert.IsType(t, &OllamaGenerator{}, gen)

	cfg.Provider = "openai"
	_, err = NewGenerator(cfg)
	assert.Error(t, err)
}
