// Package errors provides the standardized error taxonomy for the service.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Engine-side conditions. All three are recovered inside the pipeline
	// and never surface to callers as failures.
	ErrCodeSheetInputAbsent ErrorCode = "SHEET_INPUT_ABSENT"
	ErrCodeAIGatewayFailed  ErrorCode = "AI_GATEWAY_FAILED"
	ErrCodeFieldMismatch    ErrorCode = "FIELD_MISMATCH"

	// Surface-side conditions returned by the HTTP layer.
	ErrCodeWorkbookParseFailed    ErrorCode = "WORKBOOK_PARSE_FAILED"
	ErrCodeRecommendationNotFound ErrorCode = "RECOMMENDATION_NOT_FOUND"
	ErrCodeStoreFailed            ErrorCode = "STORE_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewWorkbookParseFailedError marks an upload whose bytes could not be read
// as a spreadsheet. Not retryable: the same bytes will fail again.
func NewWorkbookParseFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWorkbookParseFailed,
		Message:   "Uploaded file could not be parsed as a workbook",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecommendationNotFoundError marks a lookup of an unknown analysis id.
func NewRecommendationNotFoundError(id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecommendationNotFound,
		Message:   "No stored recommendation for the given id",
		Details:   fmt.Sprintf("id: %s", id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreFailedError marks a persistence failure; retryable because the
// database may recover.
func NewStoreFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreFailed,
		Message:   "Recommendation persistence failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
