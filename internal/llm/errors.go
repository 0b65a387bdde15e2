package llm

import "errors"

var (
	// ErrEmptyResponse indicates the service response carried no generated
	// text at candidates[0].content.parts.
	ErrEmptyResponse = errors.New("empty or invalid response")

	// ErrStructuredResponse indicates the generated text could not be parsed
	// as the expected JSON envelope, even after repair.
	ErrStructuredResponse = errors.New("failed to get structured response")

	// ErrMissingAPIKey indicates no credential was configured for the provider.
	ErrMissingAPIKey = errors.New("llm api key not configured")

	// ErrUnavailable indicates the model server is unreachable.
	ErrUnavailable = errors.New("llm service unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrBatchResponse marks a single batch entry that was absent, null or
	// undecodable in an otherwise parseable batch response.
	ErrBatchResponse = errors.New("batch entry missing or invalid")
)
