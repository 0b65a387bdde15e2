package intelligence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alexanderramin/studyplanner/internal/llm"
)

// Engine runs the model-backed planning stages. Each stage makes exactly one
// structured call; stages never retry.
type Engine struct {
	client *llm.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewEngine creates an Engine backed by client.
func NewEngine(client *llm.Client, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		client: client,
		logger: logger.Named("intelligence"),
		now:    time.Now,
	}
}

// WithClock overrides the engine's notion of now.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// errNoMatches reports a response list in which no entry names an input
// topic. A run never continues on placeholders alone.
func errNoMatches(list string) error {
	return fmt.Errorf("%w: no %s entry matched an input topic", llm.ErrStructuredResponse, list)
}

// decodeList reads a list either as a bare JSON array or under key in an
// object.
func decodeList[T any](raw json.RawMessage, key string) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var out []T
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, fmt.Errorf("%w: %v", llm.ErrStructuredResponse, err)
		}
		return out, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrStructuredResponse, err)
	}
	inner, ok := obj[key]
	if !ok {
		return nil, fmt.Errorf("%w: result has no %q list", llm.ErrStructuredResponse, key)
	}
	var out []T
	if err := json.Unmarshal(inner, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrStructuredResponse, err)
	}
	return out, nil
}
