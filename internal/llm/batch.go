package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// BatchRequest is one independent prompt inside a batch call.
type BatchRequest struct {
	ID     string
	Prompt string
	Schema string
}

// BatchOutcome is the per-ID result of a batch call. Exactly one of Value or
// Err is meaningful.
type BatchOutcome[T any] struct {
	Value T
	Err   error
}

// OK reports whether the entry decoded successfully.
func (o BatchOutcome[T]) OK() bool { return o.Err == nil }

// CallBatch sends all requests in one generation and splits the answer by ID.
// The returned map has an entry for every requested ID; entries the model
// omitted, nulled or shaped wrongly carry an error wrapping ErrBatchResponse.
// Keys the model added that were never requested are ignored. The call as a
// whole fails only when the response itself cannot be obtained or parsed.
func CallBatch[T any](ctx context.Context, c *Client, reqs []BatchRequest) (out map[string]BatchOutcome[T], err error) {
	if len(reqs) == 0 {
		return map[string]BatchOutcome[T]{}, nil
	}
	seen := make(map[string]bool, len(reqs))
	for _, r := range reqs {
		if r.ID == "" {
			return nil, errors.New("batch request id must not be empty")
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("duplicate batch request id %q", r.ID)
		}
		seen[r.ID] = true
	}

	start := time.Now()
	defer func() { c.observe(TaskBatch, start, err) }()

	text, err := c.generate(ctx, TaskBatch, BatchPrompt(reqs))
	if err != nil {
		return nil, err
	}

	var entries map[string]json.RawMessage
	if err := DecodeLenient(StripCodeFences(text), &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStructuredResponse, err)
	}
	if inner, ok := entries[EnvelopeKey]; ok && !seen[EnvelopeKey] {
		var unwrapped map[string]json.RawMessage
		if json.Unmarshal(inner, &unwrapped) == nil {
			entries = unwrapped
		}
	}

	out = make(map[string]BatchOutcome[T], len(reqs))
	for _, r := range reqs {
		raw, ok := entries[r.ID]
		switch {
		case !ok:
			out[r.ID] = BatchOutcome[T]{Err: fmt.Errorf("%w: %q absent from response", ErrBatchResponse, r.ID)}
		case isNull(raw):
			out[r.ID] = BatchOutcome[T]{Err: fmt.Errorf("%w: %q is null", ErrBatchResponse, r.ID)}
		default:
			var v T
			if err := json.Unmarshal(raw, &v); err != nil {
				out[r.ID] = BatchOutcome[T]{Err: fmt.Errorf("%w: %q: %v", ErrBatchResponse, r.ID, err)}
				continue
			}
			out[r.ID] = BatchOutcome[T]{Value: v}
		}
	}
	return out, nil
}
