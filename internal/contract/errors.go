package contract

import (
	"errors"
	"net/http"
)

type PlanErrorCode string

const (
	ErrCodeValidation PlanErrorCode = "VALIDATION_FAILED"
	ErrCodeGeneration PlanErrorCode = "GENERATION_FAILED"
	ErrCodeAdaptation PlanErrorCode = "ADAPTATION_FAILED"
	ErrCodeNotFound   PlanErrorCode = "NOT_FOUND"
)

// PlanError is the error surfaced by inbound operations. Message is the
// human-readable summary; Details carries the underlying cause when known.
type PlanError struct {
	Code    PlanErrorCode
	Message string
	Details string
	Err     error
}

func (e *PlanError) Error() string {
	if e.Details == "" {
		return string(e.Code) + ": " + e.Message
	}
	return string(e.Code) + ": " + e.Message + ": " + e.Details
}

func (e *PlanError) Unwrap() error { return e.Err }

// HTTPStatus maps the code onto a response status.
func (e *PlanError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func ValidationError(message, details string) *PlanError {
	return &PlanError{Code: ErrCodeValidation, Message: message, Details: details}
}

func NotFoundError(message string, err error) *PlanError {
	return &PlanError{Code: ErrCodeNotFound, Message: message, Details: errDetail(err), Err: err}
}

// GenerationError wraps a pipeline failure.
func GenerationError(err error) *PlanError {
	return &PlanError{Code: ErrCodeGeneration, Message: "Failed to generate schedule", Details: errDetail(err), Err: err}
}

// AdaptationError wraps an adaptation failure.
func AdaptationError(err error) *PlanError {
	return &PlanError{Code: ErrCodeAdaptation, Message: "Failed to adapt schedule", Details: errDetail(err), Err: err}
}

// AsPlanError finds a PlanError in err's chain.
func AsPlanError(err error) (*PlanError, bool) {
	var pe *PlanError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

func errDetail(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
