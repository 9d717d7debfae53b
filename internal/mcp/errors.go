package mcp

import (
	"errors"
	"fmt"

	"github.com/ganot/formbuilder/internal/domain"
)

// APIError is the error reported to MCP clients as a tool error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Errors without a public
// message are reported as INTERNAL without detail.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	msg, ok := domain.PublicMessage(err)
	switch {
	case ok && errors.Is(err, domain.ErrValidation):
		return &APIError{Code: "VALIDATION_FAILED", Message: msg}
	case ok && errors.Is(err, domain.ErrNotFound):
		return &APIError{Code: "NOT_FOUND", Message: msg}
	case ok && errors.Is(err, domain.ErrConflict):
		return &APIError{Code: "CONFLICT", Message: msg}
	default:
		return &APIError{Code: "INTERNAL", Message: "Internal server error"}
	}
}
