package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type scorePayload struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

func newTestClient(gen ContentGenerator, obs Observer) *Client {
	return NewClient(gen, DefaultConfig(), obs, nil)
}

func TestStructured_UnwrapsResultEnvelope(t *testing.T) {
	stub := newTextStub(`{"result": {"score": 0.7, "label": "core"}}`)
	client := newTestClient(stub, nil)

	got, err := CallStructured[scorePayload](context.Background(), client, TaskPriority, "rank it", `{"score": number}`)

	require.NoError(t, err)
	assert.Equal(t, scorePayload{Score: 0.7, Label: "core"}, got)
}

func TestStructured_AcceptsFencedOutput(t *testing.T) {
	stub := newTextStub("```json\n{\"result\": {\"score\": 1, \"label\": \"x\",}}\n```")
	client := newTestClient(stub, nil)

	got, err := CallStructured[scorePayload](context.Background(), client, TaskPriority, "p", "s")

	require.NoError(t, err)
	assert.Equal(t, 1.0, got.Score)
}

func TestStructured_BackticksInsideStringValue(t *testing.T) {
	stub := newTextStub("{\"result\": {\"score\": 0.5, \"label\": \"wrap code in ```go``` blocks\"}}")
	client := newTestClient(stub, nil)

	got, err := CallStructured[scorePayload](context.Background(), client, TaskPriority, "p", "s")

	require.NoError(t, err)
	assert.Equal(t, "wrap code in ```go``` blocks", got.Label)
}

func TestStructured_SendsEnvelopeInstructionsAndSampling(t *testing.T) {
	stub := newTextStub(`{"result": {}}`)
	client := newTestClient(stub, nil)

	_, err := client.Structured(context.Background(), TaskAnalysis, "Analyse topics.", `{"topics": []}`)
	require.NoError(t, err)

	require.Len(t, stub.requests, 1)
	req := stub.requests[0]
	assert.Equal(t, TaskAnalysis, req.Task)
	assert.Equal(t, "gemini-2.5-flash", req.Model)
	assert.Equal(t, DefaultSampling(), req.Sampling)
	assert.Contains(t, req.Prompt, "Analyse topics.")
	assert.Contains(t, req.Prompt, `{"result": <value>}`)
	assert.Contains(t, req.Prompt, `{"topics": []}`)
	assert.Contains(t, req.Prompt, "JSON RULES")
}

func TestStructured_EmptyResponseFailsWithoutParsing(t *testing.T) {
	stub := &stubGenerator{responses: []*genai.GenerateContentResponse{{}}}
	client := newTestClient(stub, nil)

	_, err := client.Structured(context.Background(), TaskAnalysis, "p", "s")

	assert.ErrorIs(t, err, ErrEmptyResponse)
	assert.NotErrorIs(t, err, ErrStructuredResponse)
	assert.Equal(t, 1, stub.calls())
}

func TestStructured_CandidateWithoutPartsIsEmpty(t *testing.T) {
	stub := &stubGenerator{responses: []*genai.GenerateContentResponse{{
		Candidates: []*genai.Candidate{{Content: &genai.Content{}}},
	}}}
	client := newTestClient(stub, nil)

	_, err := client.Structured(context.Background(), TaskAnalysis, "p", "s")

	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestStructured_UnparseableTextIsStructuredFailure(t *testing.T) {
	stub := newTextStub("I cannot help with that.")
	client := newTestClient(stub, nil)

	_, err := client.Structured(context.Background(), TaskAnalysis, "p", "s")

	assert.ErrorIs(t, err, ErrStructuredResponse)
}

func TestStructured_MissingOrNullEnvelopeIsStructuredFailure(t *testing.T) {
	for _, text := range []string{`{"answer": {}}`, `{"result": null}`} {
		client := newTestClient(newTextStub(text), nil)

		_, err := client.Structured(context.Background(), TaskAnalysis, "p", "s")

		assert.ErrorIs(t, err, ErrStructuredResponse, text)
	}
}

func TestStructured_TransportErrorPropagatesWithoutRetry(t *testing.T) {
	transport := errors.New("connection reset")
	stub := &stubGenerator{err: transport}
	obs := &recordingObserver{}
	client := newTestClient(stub, obs)

	_, err := client.Structured(context.Background(), TaskAllocation, "p", "s")

	assert.ErrorIs(t, err, transport)
	assert.Equal(t, 1, stub.calls())
	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
	assert.Equal(t, TaskAllocation, obs.events[0].Task)
}

func TestCallStructured_WrongShapeIsStructuredFailure(t *testing.T) {
	client := newTestClient(newTextStub(`{"result": {"score": "high"}}`), nil)

	_, err := CallStructured[scorePayload](context.Background(), client, TaskPriority, "p", "s")

	assert.ErrorIs(t, err, ErrStructuredResponse)
}

func TestFreeform_ReturnsTrimmedText(t *testing.T) {
	obs := &recordingObserver{}
	client := newTestClient(newTextStub("  Focus on calculus first.\n"), obs)

	text, err := client.Freeform(context.Background(), TaskFreeform, "advise")

	require.NoError(t, err)
	assert.Equal(t, "Focus on calculus first.", text)
	require.Len(t, obs.events, 1)
	assert.True(t, obs.events[0].Success)
}

func TestFreeform_EmptyResponse(t *testing.T) {
	client := newTestClient(&stubGenerator{}, nil)

	_, err := client.Freeform(context.Background(), TaskFreeform, "advise")

	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestResponseText_SkipsThoughtParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "thinking...", Thought: true},
				{Text: `{"result": 1}`},
			}},
		}},
	}

	text, err := ResponseText(resp)

	require.NoError(t, err)
	assert.Equal(t, `{"result": 1}`, text)
}
