package mcp

import (
	"errors"
	"fmt"

	"github.com/ganot/checkvault/internal/domain/activity"
	"github.com/ganot/checkvault/internal/domain/project"
	"github.com/ganot/checkvault/internal/domain/session"
	"github.com/ganot/checkvault/internal/repository"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors map to nil.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, project.ErrProjectNotFound), errors.Is(err, repository.ErrNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Call list_projects for valid ids"}
	case errors.Is(err, project.ErrItemNotFound):
		return &APIError{Code: "ITEM_NOT_FOUND", Message: "category or item not found", RecoveryHint: "Call get_project for valid category and item ids"}
	case errors.Is(err, project.ErrUnknownType):
		return &APIError{Code: "UNKNOWN_PROJECT_TYPE", Message: "unknown project type", RecoveryHint: "Use security-audit or web-development"}
	case errors.Is(err, project.ErrInvalidInput), errors.Is(err, session.ErrInvalidInput), errors.Is(err, activity.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Provide every required field"}
	case errors.Is(err, project.ErrInvalidStructure):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, session.ErrSessionNotFound):
		return &APIError{Code: "SESSION_NOT_FOUND", Message: "session not found", RecoveryHint: "Start a new session"}
	case repository.IsPersistence(err):
		return &APIError{Code: "PERSISTENCE_ERROR", Message: err.Error(), RecoveryHint: "Nothing was changed; retry later"}
	default:
		return nil
	}
}

// toolError converts a domain error into the error returned to the client.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
