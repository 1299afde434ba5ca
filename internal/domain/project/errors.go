package project

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrItemNotFound indicates the category or item doesn't exist in the project.
	ErrItemNotFound = errors.New("checklist item not found")
	// ErrInvalidInput indicates invalid project input.
	ErrInvalidInput = errors.New("invalid project input")
	// ErrUnknownType indicates a project type with no checklist template.
	ErrUnknownType = errors.New("unknown project type")
	// ErrInvalidStructure indicates duplicate or missing category/item IDs.
	ErrInvalidStructure = errors.New("invalid project structure")
)
