package domain

import "errors"

// Domain errors returned by the service and repository implementations.

var (
	// ErrTitleRequired indicates the title is missing or blank.
	ErrTitleRequired = errors.New("title is required and cannot be empty")

	// ErrInvalidID indicates the provided ID is not an integer.
	ErrInvalidID = errors.New("invalid ID format")

	// ErrTodoNotFound indicates no todo exists with the given ID.
	ErrTodoNotFound = errors.New("todo not found")
)
