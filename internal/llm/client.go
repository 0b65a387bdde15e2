package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client issues prompts through a ContentGenerator and turns the generated
// text into JSON values. It performs exactly one generation per call and
// never retries.
type Client struct {
	gen      ContentGenerator
	cfg      LLMConfig
	sampling Sampling
	observer Observer
	logger   *zap.Logger
}

// NewClient wraps gen with the sampling defaults and timeouts from cfg.
func NewClient(gen ContentGenerator, cfg LLMConfig, observer Observer, logger *zap.Logger) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		gen:      gen,
		cfg:      cfg,
		sampling: DefaultSampling(),
		observer: observer,
		logger:   logger.Named("llm"),
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.cfg.Model }

// Freeform sends prompt as-is and returns the generated text.
func (c *Client) Freeform(ctx context.Context, task TaskType, prompt string) (text string, err error) {
	start := time.Now()
	defer func() { c.observe(task, start, err) }()

	text, err = c.generate(ctx, task, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Structured sends prompt with envelope instructions for schema and returns
// the JSON value found under the "result" key. Transport errors propagate
// unchanged. A response without generated text fails with ErrEmptyResponse
// before any parsing; text that cannot be parsed into an envelope fails with
// ErrStructuredResponse.
func (c *Client) Structured(ctx context.Context, task TaskType, prompt, schema string) (result json.RawMessage, err error) {
	start := time.Now()
	defer func() { c.observe(task, start, err) }()

	text, err := c.generate(ctx, task, EnvelopePrompt(prompt, schema))
	if err != nil {
		return nil, err
	}

	clean := StripCodeFences(text)
	c.logger.Debug("structured output", zap.String("task", string(task)), zap.String("text", clean))

	var envelope map[string]json.RawMessage
	if err := DecodeLenient(clean, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStructuredResponse, err)
	}
	value, ok := envelope[EnvelopeKey]
	if !ok || isNull(value) {
		return nil, fmt.Errorf("%w: response has no %q value", ErrStructuredResponse, EnvelopeKey)
	}
	return value, nil
}

// CallStructured runs Client.Structured and decodes the result into T.
func CallStructured[T any](ctx context.Context, c *Client, task TaskType, prompt, schema string) (T, error) {
	var zero T

	raw, err := c.Structured(ctx, task, prompt, schema)
	if err != nil {
		return zero, err
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, fmt.Errorf("%w: decoding %s result: %v", ErrStructuredResponse, task, err)
	}
	return out, nil
}

func (c *Client) generate(ctx context.Context, task TaskType, prompt string) (string, error) {
	if d := c.cfg.TaskTimeout(task); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	resp, err := c.gen.GenerateContent(ctx, GenerateRequest{
		Task:     task,
		Model:    c.cfg.Model,
		Sampling: c.sampling,
		Prompt:   prompt,
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, ErrTimeout) {
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return "", err
	}
	return ResponseText(resp)
}

func (c *Client) observe(task TaskType, start time.Time, err error) {
	c.observer.OnCallComplete(LLMCallEvent{
		Task:      task,
		Model:     c.cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
