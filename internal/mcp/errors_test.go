package mcp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ganot/checkvault/internal/domain/activity"
	"github.com/ganot/checkvault/internal/domain/project"
	"github.com/ganot/checkvault/internal/domain/session"
	"github.com/ganot/checkvault/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	persistence := &repository.PersistenceError{Op: "replace", Collection: "projects", ID: "p1", Err: errors.New("disk full")}

	tests := []struct {
		name string
		err  error
		code string
	}{
		{"project not found", project.ErrProjectNotFound, "PROJECT_NOT_FOUND"},
		{"document not found", fmt.Errorf("deleting project: %w", &repository.PersistenceError{Op: "delete", Err: repository.ErrNotFound}), "PROJECT_NOT_FOUND"},
		{"item not found", project.ErrItemNotFound, "ITEM_NOT_FOUND"},
		{"unknown type", fmt.Errorf("loading template: %w", project.ErrUnknownType), "UNKNOWN_PROJECT_TYPE"},
		{"project input", project.ErrInvalidInput, "INVALID_INPUT"},
		{"session input", session.ErrInvalidInput, "INVALID_INPUT"},
		{"activity input", activity.ErrInvalidInput, "INVALID_INPUT"},
		{"structure", project.ErrInvalidStructure, "INVALID_INPUT"},
		{"session", session.ErrSessionNotFound, "SESSION_NOT_FOUND"},
		{"persistence", fmt.Errorf("updating item: %w", persistence), "PERSISTENCE_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := MapError(tt.err)
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.code, apiErr.Code)
		})
	}
}

func TestMapError_Passthrough(t *testing.T) {
	assert.Nil(t, MapError(nil))
	assert.Nil(t, MapError(errors.New("boom")))

	existing := &APIError{Code: "CUSTOM", Message: "custom"}
	assert.Same(t, existing, MapError(fmt.Errorf("wrapped: %w", existing)))
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "CODE: msg", (&APIError{Code: "CODE", Message: "msg"}).Error())
	assert.Equal(t, "CODE: msg (try again)", (&APIError{Code: "CODE", Message: "msg", RecoveryHint: "try again"}).Error())
}

func TestToolError(t *testing.T) {
	var apiErr *APIError
	require.ErrorAs(t, toolError(project.ErrItemNotFound), &apiErr)
	assert.Equal(t, "ITEM_NOT_FOUND", apiErr.Code)

	plain := errors.New("boom")
	assert.Same(t, plain, toolError(plain))
}
